package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"golang.org/x/term"
)

var (
	greenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	yellowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	grayStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	boldStyle   = lipgloss.NewStyle().Bold(true)
)

// colorEnabled tracks whether color output is enabled.
// It is set based on terminal detection but can be overridden.
var colorEnabled = true

func init() {
	colorEnabled = IsTerminal(os.Stdout)
}

// SetColorEnabled allows overriding the color output setting.
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

// ColorEnabled returns whether color output is currently enabled.
func ColorEnabled() bool {
	return colorEnabled
}

// IsTerminal returns true if w is a terminal.
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

func render(style lipgloss.Style, s string) string {
	if !colorEnabled {
		return s
	}
	return style.Render(s)
}

// Green renders s in green if colors are enabled.
func Green(s string) string { return render(greenStyle, s) }

// Red renders s in red if colors are enabled.
func Red(s string) string { return render(redStyle, s) }

// Yellow renders s in yellow if colors are enabled.
func Yellow(s string) string { return render(yellowStyle, s) }

// Gray renders s in gray if colors are enabled.
func Gray(s string) string { return render(grayStyle, s) }

// Bold renders s in bold if colors are enabled.
func Bold(s string) string { return render(boldStyle, s) }

// Money formats an amount with two decimals after the currency prefix.
func Money(d decimal.Decimal, currency string) string {
	return currency + d.StringFixed(2)
}

// DefaultMaxNameWidth is the widest a name column is printed.
const DefaultMaxNameWidth = 30

// Table lays out rows in columns separated by two spaces. Cells are plain
// text or lipgloss-rendered text; widths ignore escape codes.
type Table struct {
	rows       [][]string
	widths     []int
	maxWidths  map[int]int
	rightAlign map[int]bool
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{maxWidths: map[int]int{}, rightAlign: map[int]bool{}}
}

// SetMaxWidth cuts cells in col to at most width characters, ending in "...".
func (t *Table) SetMaxWidth(col, width int) {
	t.maxWidths[col] = width
}

// AlignRight pads cells in col on the left, for amounts.
func (t *Table) AlignRight(col int) {
	t.rightAlign[col] = true
}

// AddRow appends a row. Rows may have fewer cells than the widest row.
func (t *Table) AddRow(cells ...string) {
	for len(t.widths) < len(cells) {
		t.widths = append(t.widths, 0)
	}
	for i, c := range cells {
		if limit, ok := t.maxWidths[i]; ok {
			c = Truncate(c, limit)
		}
		t.widths[i] = max(t.widths[i], lipgloss.Width(c))
	}
	t.rows = append(t.rows, cells)
}

// Width returns the printed width of a full row.
func (t *Table) Width() int {
	if len(t.widths) == 0 {
		return 0
	}
	w := 2 * (len(t.widths) - 1)
	for _, cw := range t.widths {
		w += cw
	}
	return w
}

// Render writes every row to w. Trailing padding is dropped.
func (t *Table) Render(w io.Writer) {
	for _, row := range t.rows {
		cells := make([]string, len(row))
		for i, c := range row {
			if limit, ok := t.maxWidths[i]; ok {
				c = Truncate(c, limit)
			}
			pad := strings.Repeat(" ", t.widths[i]-lipgloss.Width(c))
			switch {
			case t.rightAlign[i]:
				cells[i] = pad + c
			case i == len(row)-1:
				cells[i] = c
			default:
				cells[i] = c + pad
			}
		}
		fmt.Fprintln(w, strings.Join(cells, "  "))
	}
}

// Truncate shortens plain text s to limit characters, the last three being
// "..." when there is room for them.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}
