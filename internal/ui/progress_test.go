package ui

import (
	"fmt"
	"strings"
	"testing"

	"bigcalc/internal/batch"
)

func exprs(n int) []batch.Expr {
	out := make([]batch.Expr, n)
	for i := range n {
		out[i] = batch.Expr{Line: i + 1, Text: fmt.Sprintf("%d + %d", i, i)}
	}
	return out
}

func TestApplyEventCountsSettledOnce(t *testing.T) {
	m := NewProgressModel("batch", exprs(3), nil).(*progressModel)
	m.applyEvent(batch.Event{Line: 1, Status: batch.StatusWorking})
	m.applyEvent(batch.Event{Line: 1, Status: batch.StatusDone})
	m.applyEvent(batch.Event{Line: 1, Status: batch.StatusDone})
	m.applyEvent(batch.Event{Line: 2, Status: batch.StatusError})
	m.applyEvent(batch.Event{Line: 99, Status: batch.StatusDone})
	if m.settled != 2 || m.failed != 1 {
		t.Fatalf("settled=%d failed=%d", m.settled, m.failed)
	}
	view := m.View()
	if !strings.Contains(view, "batch (2/3, 1 failed)") {
		t.Fatalf("header missing from view:\n%s", view)
	}
}

func TestViewDoneAfterChannelClose(t *testing.T) {
	ch := make(chan batch.Event)
	close(ch)
	m := NewProgressModel("batch", exprs(1), ch).(*progressModel)
	msg := m.listenForEvent()()
	if _, ok := msg.(doneMsg); !ok {
		t.Fatalf("closed channel produced %T", msg)
	}
	m.Update(msg)
	if !m.done || !strings.HasPrefix(stripANSI(m.View()), "done: ") {
		t.Fatalf("model not done:\n%s", m.View())
	}
}

func TestVisibleRowsPrioritizesActive(t *testing.T) {
	items := make([]lineItem, 20)
	for i := range items {
		items[i] = lineItem{line: i + 1, status: batch.StatusDone}
	}
	items[15].status = batch.StatusWorking
	items[18].status = batch.StatusError
	items[3].status = batch.StatusQueued

	rows := visibleRows(items, 4)
	var lines []int
	for _, r := range rows {
		lines = append(lines, r.line)
	}
	if fmt.Sprint(lines) != "[16 19 4 1]" {
		t.Fatalf("rows = %v", lines)
	}
	if got := visibleRows(items[:3], 4); len(got) != 3 {
		t.Fatalf("short list trimmed to %d", len(got))
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"12345", 10, "12345"},
		{"1234567890", 6, "123..."},
		{"１２３４", 5, "１..."},
		{"abcdef", 2, "ab"},
		{"abc", 0, "abc"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.width); got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}

func TestFraction(t *testing.T) {
	if fraction(0, 0) != 1 || fraction(1, 4) != 0.25 {
		t.Fatal("fraction mismatch")
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
