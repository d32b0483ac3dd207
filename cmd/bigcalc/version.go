package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"bigcalc/bignum"
	"bigcalc/internal/version"
)

type versionInfo struct {
	Version   string
	GitCommit string
	BuildDate string
}

type versionOptions struct {
	format   string
	showHash bool
	showDate bool
}

type versionPayload struct {
	Tool               string `json:"tool"`
	Version            string `json:"version"`
	Tagline            string `json:"tagline"`
	GoVersion          string `json:"go_version"`
	KaratsubaThreshold int    `json:"karatsuba_threshold"`
	GitCommit          string `json:"git_commit,omitempty"`
	BuildDate          string `json:"build_date,omitempty"`
}

const versionTagline = "integers without a ceiling"

func newVersionCmd() *cobra.Command {
	var (
		format   string
		showHash bool
		showDate bool
		showFull bool
	)
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show bigcalc build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := versionOptions{
				format:   strings.ToLower(format),
				showHash: showHash || showFull,
				showDate: showDate || showFull,
			}
			switch opts.format {
			case "pretty", "json":
			default:
				return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
			}

			info := collectVersionInfo()
			if opts.format == "json" {
				return renderVersionJSON(cmd.OutOrStdout(), info, opts)
			}
			renderVersionPretty(cmd.OutOrStdout(), info, opts)
			return nil
		},
	}
	cmd.Flags().BoolVar(&showHash, "hash", false, "include git commit hash")
	cmd.Flags().BoolVar(&showDate, "date", false, "include build timestamp")
	cmd.Flags().BoolVar(&showFull, "full", false, "show every recorded bit of build metadata")
	cmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty|json)")
	return cmd
}

func collectVersionInfo() versionInfo {
	v := strings.TrimSpace(version.Version)
	if v == "" {
		v = "dev"
	}
	return versionInfo{
		Version:   v,
		GitCommit: strings.TrimSpace(version.GitCommit),
		BuildDate: strings.TrimSpace(version.BuildDate),
	}
}

func renderVersionPretty(out io.Writer, info versionInfo, opts versionOptions) {
	fmt.Fprintf(out, "bigcalc %s: %s\n", version.Colored(info.Version), versionTagline)
	fmt.Fprintf(out, "karatsuba threshold: %d limbs\n", bignum.KaratsubaThreshold())
	if opts.showHash {
		fmt.Fprintf(out, "commit: %s\n", valueOrUnknown(info.GitCommit))
	}
	if opts.showDate {
		fmt.Fprintf(out, "built:  %s\n", valueOrUnknown(info.BuildDate))
	}
}

func renderVersionJSON(out io.Writer, info versionInfo, opts versionOptions) error {
	payload := versionPayload{
		Tool:               "bigcalc",
		Version:            info.Version,
		Tagline:            versionTagline,
		GoVersion:          runtime.Version(),
		KaratsubaThreshold: bignum.KaratsubaThreshold(),
	}
	if opts.showHash {
		payload.GitCommit = valueOrUnknown(info.GitCommit)
	}
	if opts.showDate {
		payload.BuildDate = valueOrUnknown(info.BuildDate)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
