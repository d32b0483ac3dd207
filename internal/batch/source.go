package batch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxLineBytes caps one expression line; multi-million digit literals fit.
const maxLineBytes = 64 << 20

// Expr is one expression read from a batch file.
type Expr struct {
	Line int
	Text string
}

// ReadExprs reads one expression per line. Blank lines are skipped and
// '#' starts a comment running to the end of the line.
func ReadExprs(r io.Reader) ([]Expr, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var exprs []Expr
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		exprs = append(exprs, Expr{Line: line, Text: text})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", line+1, err)
	}
	return exprs, nil
}

// ReadFile reads expressions from path, "-" meaning stdin.
func ReadFile(path string) ([]Expr, error) {
	if path == "-" {
		return ReadExprs(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadExprs(f)
}
