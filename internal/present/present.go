// Package present renders views for the terminal: kubectl-style tables by
// default, or JSON for scripting.
package present

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/Alijeyrad/clinic_console/internal/forms"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want %q or %q)", s, FormatTable, FormatJSON)
	}
}

// Table is a rendered list: one header and one string cell per column.
type Table struct {
	// Plural names the rows in the empty-state line, e.g. "doctors".
	Plural string
	Header []string
	Rows   [][]string
}

// Printer writes tables, records and messages to one stream.
type Printer struct {
	out    io.Writer
	format Format
}

func NewPrinter(out io.Writer, format Format) *Printer {
	if format == "" {
		format = FormatTable
	}
	return &Printer{out: out, format: format}
}

func (p *Printer) Format() Format { return p.format }

// List prints t as a table, or data as JSON when the printer is in JSON
// mode. data is the underlying row slice.
func (p *Printer) List(t Table, data any) error {
	if p.format == FormatJSON {
		return p.JSON(data)
	}
	if len(t.Rows) == 0 {
		_, err := fmt.Fprintf(p.out, "No %s found.\n", t.Plural)
		return err
	}
	renderTable(p.out, t)
	return nil
}

// Record prints a single entity as a two-column field/value table.
func (p *Printer) Record(fields [][2]string, data any) error {
	if p.format == FormatJSON {
		return p.JSON(data)
	}
	tw := newTableWriter(p.out)
	for _, f := range fields {
		tw.Append([]string{strings.ToUpper(f[0]), f[1]})
	}
	tw.Render()
	return nil
}

func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *Printer) Line(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// ValidationError lists field errors in a stable order.
func (p *Printer) ValidationError(verr *forms.ValidationError) {
	names := make([]string, 0, len(verr.Fields))
	for name := range verr.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(p.out, "  %s: %s\n", name, verr.Fields[name])
	}
}

func newTableWriter(w io.Writer) *tablewriter.Table {
	tw := tablewriter.NewWriter(w)
	tw.SetAutoWrapText(false)
	tw.SetAutoFormatHeaders(true)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetBorder(false)
	tw.SetCenterSeparator("")
	tw.SetColumnSeparator("")
	tw.SetRowSeparator("")
	tw.SetHeaderLine(false)
	tw.SetTablePadding("   ")
	tw.SetNoWhiteSpace(true)
	return tw
}

func renderTable(w io.Writer, t Table) {
	tw := newTableWriter(w)
	tw.SetHeader(t.Header)
	tw.AppendBulk(t.Rows)
	tw.Render()
}
