package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func TestRenderTable(t *testing.T) {
	tests := []struct {
		name     string
		header   []string
		rows     [][]string
		expected []string
	}{
		{
			name:   "ascii and wide runes align",
			header: []string{"Name", "City"},
			rows:   [][]string{{"Acme", "東京"}, {"Globex", "NY"}},
			expected: []string{
				"| Name   | City |",
				"| ------ | ---- |",
				"| Acme   | 東京 |",
				"| Globex | NY   |",
			},
		},
		{
			name:   "minimum width is three",
			header: []string{"ID"},
			rows:   [][]string{{"1"}},
			expected: []string{
				"| ID  |",
				"| --- |",
				"| 1   |",
			},
		},
		{
			name:   "short rows are padded",
			header: []string{"A", "B"},
			rows:   [][]string{{"x"}},
			expected: []string{
				"| A   | B   |",
				"| --- | --- |",
				"| x   |     |",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			renderTable(&buf, tt.header, tt.rows)
			lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
			assert.Equal(t, tt.expected, lines)

			width := runewidth.StringWidth(lines[0])
			for _, line := range lines {
				assert.Equal(t, width, runewidth.StringWidth(line), "line %q", line)
			}
		})
	}
}

func TestTruncateCell(t *testing.T) {
	assert.Equal(t, "short", truncateCell("short", 10))
	assert.Equal(t, "hello...", truncateCell("hello   world", 8))
	assert.Equal(t, "東京...", truncateCell("東京都庁舎", 7))
	assert.Equal(t, "a b", truncateCell("a\n\tb", 10))
}
