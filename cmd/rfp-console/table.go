package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// renderTable writes a pipe table. Columns are padded to display width so
// CJK and emoji cells stay aligned.
func renderTable(w io.Writer, header []string, rows [][]string) {
	colCount := len(header)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	colWidths := make([]int, colCount)
	measure := func(row []string) {
		for i := 0; i < len(row) && i < colCount; i++ {
			if width := runewidth.StringWidth(row[i]); width > colWidths[i] {
				colWidths[i] = width
			}
		}
	}
	measure(header)
	for _, row := range rows {
		measure(row)
	}
	for i := range colWidths {
		if colWidths[i] < 3 {
			colWidths[i] = 3
		}
	}

	writeRow := func(row []string) {
		var sb strings.Builder
		sb.WriteString("|")
		for j := 0; j < colCount; j++ {
			content := ""
			if j < len(row) {
				content = row[j]
			}
			sb.WriteString(" ")
			sb.WriteString(content)
			if padding := colWidths[j] - runewidth.StringWidth(content); padding > 0 {
				sb.WriteString(strings.Repeat(" ", padding))
			}
			sb.WriteString(" |")
		}
		fmt.Fprintln(w, sb.String())
	}

	writeRow(header)

	var sep strings.Builder
	sep.WriteString("|")
	for _, width := range colWidths {
		sep.WriteString(" ")
		sep.WriteString(strings.Repeat("-", width))
		sep.WriteString(" |")
	}
	fmt.Fprintln(w, sep.String())

	for _, row := range rows {
		writeRow(row)
	}
}

// truncateCell shortens s to at most width display columns.
func truncateCell(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	return runewidth.Truncate(s, width, "...")
}
