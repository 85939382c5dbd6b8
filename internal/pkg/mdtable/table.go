// Package mdtable implements the markdown-table scheduling protocol: the codec
// between the pipe-delimited table dialect stored in the remote document and the
// in-memory availability model, plus the timezone-aware slot header format and
// the vote merge algorithm. Every operation in this package is a pure,
// synchronous transformation over in-memory values.
package mdtable

import (
	"regexp"
	"strings"
)

// PresenceMarker is the cell value meaning "available". Any other value,
// including the empty string, means "not available".
const PresenceMarker = "✅"

// NameHeader is the label of the first column of a scheduling table.
const NameHeader = "Name"

var lineBreakPattern = regexp.MustCompile(`(?i)<br\s*/?>`)

type Cell struct {
	Value string
}

type Row struct {
	Cells []Cell
}

// Name returns the trimmed participant name of the row (the first cell).
func (r Row) Name() string {
	if len(r.Cells) == 0 {
		return ""
	}
	return strings.TrimSpace(r.Cells[0].Value)
}

// Table is the parsed grid form of a scheduling table. Headers[0] is the name
// column label; Headers[1:] are slot headers. Every row holds exactly
// len(Headers) cells: ParseTable pads short rows with empty cells and truncates
// long ones, so the invariant holds structurally.
type Table struct {
	Headers []string
	Rows    []Row
}

// ParseTable parses pipe-delimited markdown into a Table. It returns nil when
// the input holds no table: fewer than two non-blank lines, or a first line
// that is not wrapped in pipes. The second line is the separator row and is
// discarded. A nil result is the expected "nothing to display yet" state, not
// an error.
func ParseTable(markdown string) *Table {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(markdown), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) < 2 {
		return nil
	}

	headerLine := strings.TrimSpace(lines[0])
	if !strings.HasPrefix(headerLine, "|") || !strings.HasSuffix(headerLine, "|") {
		return nil
	}

	headers := splitRow(headerLine)

	rows := make([]Row, 0, len(lines)-2)
	for _, line := range lines[2:] {
		values := splitRow(strings.TrimSpace(line))
		cells := make([]Cell, len(headers))
		for i := range cells {
			if i < len(values) {
				cells[i] = Cell{Value: values[i]}
			}
		}
		rows = append(rows, Row{Cells: cells})
	}

	return &Table{Headers: headers, Rows: rows}
}

// splitRow strips the wrapping pipes, splits on unescaped pipes, trims each
// cell, and restores escaped backslashes, escaped pipes and <br> line-break
// markers to their literal values.
func splitRow(line string) []string {
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")

	var parts []string
	var current strings.Builder
	escaped := false
	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			current.WriteRune(r)
			escaped = true
		case r == '|':
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	parts = append(parts, current.String())

	cells := make([]string, len(parts))
	for i, part := range parts {
		cell := strings.TrimSpace(part)
		cell = strings.ReplaceAll(cell, `\\`, `\`)
		cell = strings.ReplaceAll(cell, `\|`, "|")
		cells[i] = lineBreakPattern.ReplaceAllString(cell, "\n")
	}
	return cells
}

// Markdown serializes the table back to its markdown projection: header row,
// `---` separator row, then one line per data row. Cell values are trimmed,
// literal backslashes and pipes are escaped and embedded newlines re-encoded
// as <br> so the wire form always round-trips.
func (t *Table) Markdown() string {
	headerCells := make([]string, len(t.Headers))
	for i, header := range t.Headers {
		headerCells[i] = formatCell(header)
	}

	separatorCells := make([]string, len(t.Headers))
	for i := range separatorCells {
		separatorCells[i] = "---"
	}

	lines := make([]string, 0, len(t.Rows)+2)
	lines = append(lines, "| "+strings.Join(headerCells, " | ")+" |")
	lines = append(lines, "| "+strings.Join(separatorCells, " | ")+" |")

	for _, row := range t.Rows {
		cells := make([]string, len(row.Cells))
		for i, cell := range row.Cells {
			cells[i] = formatCell(cell.Value)
		}
		lines = append(lines, "| "+strings.Join(cells, " | ")+" |")
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func formatCell(value string) string {
	escaped := strings.ReplaceAll(strings.TrimSpace(value), `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, "|", `\|`)
	return strings.ReplaceAll(escaped, "\n", "<br>")
}
