package model1

import (
	"bufio"
	"io"
	"strings"
)

// CSVOptions tunes a table export.
type CSVOptions struct {
	// Checkbox prepends a Selected column.
	Checkbox bool

	// Actions appends an empty Actions column.
	Actions bool

	// IsSelected reports the selection state of row i.
	IsSelected func(i int, r Row) bool
}

// WriteCSV writes the rows as CSV. Every field is double quoted and lines are
// joined with a bare newline.
func WriteCSV(w io.Writer, cols Columns, rows Rows, opts CSVOptions) error {
	bw := bufio.NewWriter(w)

	header := make([]string, 0, len(cols)+2)
	if opts.Checkbox {
		header = append(header, "Selected")
	}
	header = append(header, cols.Labels()...)
	if opts.Actions {
		header = append(header, "Actions")
	}
	if err := writeCSVLine(bw, header); err != nil {
		return err
	}

	for i, r := range rows {
		if _, err := bw.WriteString("\n"); err != nil {
			return err
		}
		ff := make([]string, 0, len(header))
		if opts.Checkbox {
			sel := "No"
			if opts.IsSelected != nil && opts.IsSelected(i, r) {
				sel = "Yes"
			}
			ff = append(ff, sel)
		}
		for _, c := range cols {
			ff = append(ff, CellText(r.Get(c.Accessor)))
		}
		if opts.Actions {
			ff = append(ff, "")
		}
		if err := writeCSVLine(bw, ff); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func writeCSVLine(w *bufio.Writer, ff []string) error {
	for i, f := range ff {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(quoteCSV(f)); err != nil {
			return err
		}
	}
	return nil
}

func quoteCSV(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
