package render

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/corray333/backend-labs/payreport/internal/service/models/report"
)

// Format is an output format for report rows.
type Format string

const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
)

var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTable, FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Rows writes rows to w in the given format, preserving their order.
func Rows(w io.Writer, format Format, rows []report.Row) error {
	switch format {
	case FormatTable:
		return table(w, rows)
	case FormatCSV:
		return csvRows(w, rows)
	case FormatJSON:
		return jsonRows(w, rows)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func table(w io.Writer, rows []report.Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(tw, strings.Join(report.Columns, "\t")); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(tw, strings.Join(row.Record(), "\t")); err != nil {
			return err
		}
	}

	return tw.Flush()
}

func csvRows(w io.Writer, rows []report.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(report.Columns); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row.Record()); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

func jsonRows(w io.Writer, rows []report.Row) error {
	if rows == nil {
		rows = []report.Row{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(rows)
}
