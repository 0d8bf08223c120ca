package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	formatText  = "text"
	formatJSON  = "json"
	formatTable = "table"
)

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatTable:
		return nil
	default:
		return fmt.Errorf("unknown output format %q: want text, json or table", format)
	}
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// listing is tabular output: v for json, header and rows otherwise.
type listing struct {
	value  any
	header table.Row
	rows   []table.Row
}

// render prints l in the selected format. Text is one tab-separated line per
// row without a header.
func render(w io.Writer, l listing) error {
	switch outputFormat {
	case formatJSON:
		return writeJSON(w, l.value)
	case formatTable:
		t := newTable(w)
		t.AppendHeader(l.header)
		t.AppendRows(l.rows)
		t.Render()
		return nil
	default:
		for _, row := range l.rows {
			cells := make([]string, len(row))
			for i, c := range row {
				cells[i] = fmt.Sprint(c)
			}
			if _, err := fmt.Fprintln(w, strings.Join(cells, "\t")); err != nil {
				return err
			}
		}
		return nil
	}
}
