package dettable

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Header returns the column titles: det_name, order, then the parameters.
func (t *Table) Header() []string {
	return append([]string{"det_name", "order"}, t.Params...)
}

// Records returns the table as string cells, header first.
func (t *Table) Records() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	out = append(out, t.Header())
	for _, r := range t.Rows {
		rec := make([]string, 0, len(t.Params)+2)
		rec = append(rec, r.Name, strconv.Itoa(r.Order))
		for _, p := range t.Params {
			rec = append(rec, FormatValue(r.Values[p]))
		}
		out = append(out, rec)
	}
	return out
}

// FormatValue renders a resolved value for display.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// Render writes the table in a rounded box, numbers right-aligned.
func (t *Table) Render(w io.Writer) error {
	records := t.Records()
	header := records[0]

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	hr := make(table.Row, len(header))
	for i, h := range header {
		hr[i] = h
	}
	tw.AppendHeader(hr)

	for _, rec := range records[1:] {
		r := make(table.Row, len(rec))
		for i, c := range rec {
			r[i] = c
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(header))
	for i := range header {
		align := text.AlignRight
		if i == 0 {
			align = text.AlignLeft
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)
	tw.AppendFooter(table.Row{fmt.Sprintf("%d detectors", len(t.Rows))})

	_, err := io.WriteString(w, tw.Render()+"\n")
	return err
}

// WriteCSV writes the table as CSV with a header line.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(t.Records()); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
