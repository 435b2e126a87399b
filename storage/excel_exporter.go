package storage

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"employee-stats/models"
)

const (
	sheetSummary       = "Summary"
	sheetDistributions = "Distributions"
	sheetActual        = "Actual Data"
	sheetRaw           = "Raw Data"
)

// ExcelExporter writes a session result as an XLSX workbook to w.
type ExcelExporter struct {
	w io.Writer
}

// NewExcelExporter creates an exporter writing to w.
func NewExcelExporter(w io.Writer) *ExcelExporter {
	return &ExcelExporter{w: w}
}

// Export builds the workbook (summary, distributions, actual and raw data) and writes it.
func (e *ExcelExporter) Export(result *models.SessionResult) error {
	f, err := BuildWorkbook(result)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(e.w); err != nil {
		return fmt.Errorf("excel: write workbook: %w", err)
	}
	return nil
}

func (e *ExcelExporter) Close() error {
	return nil
}

// BuildWorkbook lays result out over four sheets.
func BuildWorkbook(result *models.SessionResult) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		f.Close()
		return nil, fmt.Errorf("excel: rename sheet: %w", err)
	}
	for _, name := range []string{sheetDistributions, sheetActual, sheetRaw} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("excel: new sheet %q: %w", name, err)
		}
	}

	r := result.Result
	summary := [][]any{
		{"Run ID", result.RunID.String()},
		{"Session", result.SessionID},
		{"Processed At", result.ProcessedAt.Format(time.RFC3339)},
		{"Rows Parsed", r.TotalParsedRows},
		{"Records Resolved", r.TotalResolvedRows},
		{},
		{"Winner"},
	}
	block := r.Winner.Block()
	for _, f := range models.WinnerFields {
		summary = append(summary, []any{f.Label, block[f.Key]})
	}
	summary = append(summary, []any{"Rank", r.Winner.Rank})
	if err := writeRows(f, sheetSummary, summary); err != nil {
		f.Close()
		return nil, err
	}

	dist := [][]any{{"Dimension", "Label", "Count", "Percentage"}}
	for _, d := range models.Dimensions {
		for _, entry := range r.Distributions[d] {
			dist = append(dist, []any{string(d), entry.Label, entry.Count, entry.Percentage})
		}
	}
	if err := writeRows(f, sheetDistributions, dist); err != nil {
		f.Close()
		return nil, err
	}

	actual := make([][]any, 0, len(r.Records)+1)
	actual = append(actual, toAny(recordColumns))
	for _, rec := range r.Records {
		actual = append(actual, toAny(recordCells(rec)))
	}
	if err := writeRows(f, sheetActual, actual); err != nil {
		f.Close()
		return nil, err
	}

	raw := make([][]any, 0, len(r.RawRows)+1)
	raw = append(raw, toAny(r.Headers))
	for _, row := range r.RawRows {
		cells := make([]any, len(r.Headers))
		for i, h := range r.Headers {
			cells[i] = row.Get(h)
		}
		raw = append(raw, cells)
	}
	if err := writeRows(f, sheetRaw, raw); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("excel: cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("excel: %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
