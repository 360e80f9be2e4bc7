package cli

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ansiEscape matches SGR sequences such as the truecolour swatches.
var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// Table lays out rows in columns sized to their widest visible cell.
type Table struct {
	headers   []string
	rows      [][]string
	padding   int
	maxWidths map[int]int // 0 or missing means no limit
}

// NewTable creates a table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:   headers,
		padding:   2,
		maxWidths: make(map[int]int),
	}
}

// SetColumnMaxWidth wraps cells in column col at word boundaries to fit maxWidth.
func (t *Table) SetColumnMaxWidth(col, maxWidth int) {
	t.maxWidths[col] = maxWidth
}

// AddRow appends row, padded or truncated to the number of headers.
func (t *Table) AddRow(row []string) {
	fitted := make([]string, len(t.headers))
	copy(fitted, row)
	t.rows = append(t.rows, fitted)
}

// Render returns the table with a dashed rule under the headers.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	cells := make([][][]string, len(t.rows))
	for r, row := range t.rows {
		cells[r] = make([][]string, len(row))
		for c, cell := range row {
			cells[r][c] = wrapText(cell, t.maxWidths[c])
		}
	}

	widths := make([]int, len(t.headers))
	for c, h := range t.headers {
		widths[c] = visibleWidth(h)
	}
	for _, row := range cells {
		for c, lines := range row {
			for _, line := range lines {
				widths[c] = max(widths[c], visibleWidth(line))
			}
		}
	}

	var b strings.Builder
	gap := strings.Repeat(" ", t.padding)
	writeLine := func(parts []string) {
		// Trailing spaces on the last column are dropped.
		b.WriteString(strings.TrimRight(strings.Join(parts, gap), " "))
		b.WriteByte('\n')
	}

	parts := make([]string, len(t.headers))
	for c, h := range t.headers {
		parts[c] = padRight(h, widths[c])
	}
	writeLine(parts)

	for c, w := range widths {
		parts[c] = strings.Repeat("-", w)
	}
	writeLine(parts)

	for _, row := range cells {
		height := 1
		for _, lines := range row {
			height = max(height, len(lines))
		}
		for i := 0; i < height; i++ {
			for c := range t.headers {
				line := ""
				if i < len(row[c]) {
					line = row[c][i]
				}
				parts[c] = padRight(line, widths[c])
			}
			writeLine(parts)
		}
	}

	return b.String()
}

// visibleWidth is the number of runes in s once escape sequences are removed.
func visibleWidth(s string) int {
	if strings.IndexByte(s, '\x1b') >= 0 {
		s = ansiEscape.ReplaceAllString(s, "")
	}
	return utf8.RuneCountInString(s)
}

// padRight pads s with spaces to width visible cells.
func padRight(s string, width int) string {
	if n := visibleWidth(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// wrapText splits text into lines of at most width runes, breaking between words.
// Words longer than width are split. Text containing escape sequences is not wrapped.
func wrapText(text string, width int) []string {
	if width <= 0 || visibleWidth(text) <= width || strings.IndexByte(text, '\x1b') >= 0 {
		return []string{text}
	}

	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		for utf8.RuneCountInString(word) > width {
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			r := []rune(word)
			lines = append(lines, string(r[:width]))
			word = string(r[width:])
		}
		switch {
		case line == "":
			line = word
		case utf8.RuneCountInString(line)+1+utf8.RuneCountInString(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return []string{text}
	}
	return lines
}
