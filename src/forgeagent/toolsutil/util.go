package toolsutil

import (
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// Package-level logger for tools
var logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
	Level: slog.LevelError,
}))

// SetLogger allows setting a custom logger for the tools package
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// Logger returns the logger shared by the tool packages.
func Logger() *slog.Logger {
	return logger
}

// FormatMoney renders a monetary amount with thousands separators and two
// decimal places, e.g. 1234567.5 -> "1,234,567.50".
func FormatMoney(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	return groupThousands(s)
}

// FormatSignedMoney is FormatMoney with an explicit "+" on non-negative
// amounts, used for profit/loss columns.
func FormatSignedMoney(v float64) string {
	if v >= 0 {
		return "+" + FormatMoney(v)
	}
	return FormatMoney(v)
}

// FormatPercent renders a fraction as a percentage with two decimal places,
// e.g. 0.1234 -> "12.34%".
func FormatPercent(frac float64) string {
	return strconv.FormatFloat(frac*100, 'f', 2, 64) + "%"
}

// FormatSignedPercent is FormatPercent with an explicit "+" on non-negative
// fractions.
func FormatSignedPercent(frac float64) string {
	if frac >= 0 {
		return "+" + FormatPercent(frac)
	}
	return FormatPercent(frac)
}

// FormatQuantity renders a share quantity compactly, trimming trailing
// zeros, e.g. 10 -> "10", 2.5000 -> "2.5".
func FormatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// EscapeCell escapes pipe characters so free-form text is safe inside a
// markdown table cell.
func EscapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

// Table accumulates a markdown table.
type Table struct {
	b       strings.Builder
	columns int
}

// NewTable starts a markdown table with the given header row.
func NewTable(headers ...string) *Table {
	t := &Table{columns: len(headers)}
	t.writeRow(headers)
	seps := make([]string, len(headers))
	for i := range seps {
		seps[i] = strings.Repeat("-", max(len(headers[i]), 3))
	}
	t.writeRow(seps)
	return t
}

// AddRow appends a data row. Missing cells are left empty, extra cells are
// kept so mistakes stay visible in the output.
func (t *Table) AddRow(cells ...string) {
	for len(cells) < t.columns {
		cells = append(cells, "")
	}
	t.writeRow(cells)
}

func (t *Table) writeRow(cells []string) {
	t.b.WriteString("|")
	for _, c := range cells {
		t.b.WriteString(" ")
		t.b.WriteString(c)
		t.b.WriteString(" |")
	}
	t.b.WriteString("\n")
}

// String returns the rendered table without a trailing newline.
func (t *Table) String() string {
	return strings.TrimRight(t.b.String(), "\n")
}

func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteString("-")
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(",")
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteString(".")
		b.WriteString(fracPart)
	}
	return b.String()
}
