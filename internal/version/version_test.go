package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestColored_Plain(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = orig }()

	for _, v := range []string{"0.1.0-dev", "1.2.3", "1.2.3-rc.1+build.123", "dev", "1.2"} {
		if got := Colored(v); got != v {
			t.Errorf("Colored(%q) = %q without color", v, got)
		}
	}
}

func TestColored_Escapes(t *testing.T) {
	orig := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = orig }()

	got := Colored("1.2.3-dev")
	if !strings.Contains(got, "\x1b[") {
		t.Fatalf("Colored output has no escape codes: %q", got)
	}
	if !strings.HasSuffix(got, "-dev") {
		t.Fatalf("suffix lost: %q", got)
	}
	if Colored("dev") != "dev" {
		t.Fatal("non-semver input changed")
	}
}
