package cmd

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// cell fits s into a column n terminal cells wide. Long values are cut on
// character boundaries and short ones are padded.
func cell(s string, n int) string {
	s = ansi.Truncate(s, n, "")
	if w := ansi.StringWidth(s); w < n {
		s += strings.Repeat(" ", n-w)
	}
	return s
}
