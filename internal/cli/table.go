package cli

import (
	"strings"
	"unicode/utf8"
)

// Table is a plain-text table with dynamic column widths. Widths are
// measured in runes.
type Table struct {
	headers   []string
	rows      [][]string
	padding   int
	maxWidths map[int]int // Maximum width per column index (0 = no limit)
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:   headers,
		rows:      make([][]string, 0),
		padding:   2,
		maxWidths: make(map[int]int),
	}
}

// SetColumnMaxWidth sets a maximum width for a specific column.
// Text longer than this will be wrapped to multiple lines.
func (t *Table) SetColumnMaxWidth(colIndex int, maxWidth int) {
	t.maxWidths[colIndex] = maxWidth
}

// AddRow adds a row, padding or truncating it to the header count.
func (t *Table) AddRow(row []string) {
	normalized := make([]string, len(t.headers))
	copy(normalized, row)
	t.rows = append(t.rows, normalized)
}

// FitWidth limits column col so the rendered table is at most total runes
// wide. The column keeps at least 10 runes.
func (t *Table) FitWidth(total, col int) {
	if col < 0 || col >= len(t.headers) {
		return
	}
	widths := t.naturalWidths()
	used := t.padding * (len(widths) - 1)
	for i, w := range widths {
		if i != col {
			used += w
		}
	}
	avail := max(total-used, 10)
	if widths[col] > avail {
		t.SetColumnMaxWidth(col, avail)
	}
}

func (t *Table) naturalWidths() []int {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = runeLen(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runeLen(cell))
		}
	}
	return widths
}

// Render formats and returns the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	// Wrap cells that exceed max width.
	wrappedRows := make([][][]string, len(t.rows))
	for rowIdx, row := range t.rows {
		wrappedRows[rowIdx] = make([][]string, len(row))
		for colIdx, cell := range row {
			if maxWidth := t.maxWidths[colIdx]; maxWidth > 0 {
				wrappedRows[rowIdx][colIdx] = wrapText(cell, maxWidth)
			} else {
				wrappedRows[rowIdx][colIdx] = []string{cell}
			}
		}
	}

	colWidths := make([]int, len(t.headers))
	for i, h := range t.headers {
		colWidths[i] = runeLen(h)
	}
	for _, wrappedRow := range wrappedRows {
		for i, wrappedCell := range wrappedRow {
			for _, line := range wrappedCell {
				colWidths[i] = max(colWidths[i], runeLen(line))
			}
		}
	}

	var result strings.Builder
	sep := strings.Repeat(" ", t.padding)

	headerParts := make([]string, len(t.headers))
	for i, h := range t.headers {
		headerParts[i] = padRight(h, colWidths[i])
	}
	result.WriteString(strings.TrimRight(strings.Join(headerParts, sep), " "))
	result.WriteString("\n")

	sepParts := make([]string, len(t.headers))
	for i, w := range colWidths {
		sepParts[i] = strings.Repeat("-", w)
	}
	result.WriteString(strings.Join(sepParts, sep))
	result.WriteString("\n")

	for _, wrappedRow := range wrappedRows {
		maxLines := 1
		for _, wrappedCell := range wrappedRow {
			maxLines = max(maxLines, len(wrappedCell))
		}

		for lineIdx := 0; lineIdx < maxLines; lineIdx++ {
			rowParts := make([]string, len(t.headers))
			for colIdx := range t.headers {
				cell := ""
				if lineIdx < len(wrappedRow[colIdx]) {
					cell = wrappedRow[colIdx][lineIdx]
				}
				rowParts[colIdx] = padRight(cell, colWidths[colIdx])
			}
			result.WriteString(strings.TrimRight(strings.Join(rowParts, sep), " "))
			result.WriteString("\n")
		}
	}

	return result.String()
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// padRight pads a string with spaces on the right to reach the desired width.
// If the string is already longer than or equal to the width, it is returned unchanged.
func padRight(s string, width int) string {
	n := runeLen(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// wrapText wraps text to fit within width runes, breaking at spaces and
// splitting words that are longer than a whole line.
func wrapText(text string, width int) []string {
	if width <= 0 || runeLen(text) <= width {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	var lines []string
	currentLine := ""
	for _, word := range words {
		if runeLen(word) > width {
			if currentLine != "" {
				lines = append(lines, currentLine)
			}
			runes := []rune(word)
			for len(runes) > width {
				lines = append(lines, string(runes[:width]))
				runes = runes[width:]
			}
			currentLine = string(runes)
			continue
		}

		testLine := word
		if currentLine != "" {
			testLine = currentLine + " " + word
		}
		if runeLen(testLine) <= width {
			currentLine = testLine
			continue
		}
		lines = append(lines, currentLine)
		currentLine = word
	}

	if currentLine != "" {
		lines = append(lines, currentLine)
	}
	return lines
}
