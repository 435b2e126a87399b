package services

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"employee-stats/models"
	"employee-stats/utils"
)

// ParseMode selects how rows whose cell count differs from the header are handled.
type ParseMode int

const (
	// Lenient fills missing cells with models.NotAvailable, drops extra cells
	// and records a warning.
	Lenient ParseMode = iota
	// Strict fails on the first malformed row.
	Strict
)

// Parser turns pasted tab-separated text into header-keyed rows.
type Parser struct {
	mode   ParseMode
	logger *utils.Logger
}

// NewParser creates a Parser in the given mode.
func NewParser(mode ParseMode, logger *utils.Logger) *Parser {
	return &Parser{mode: mode, logger: logger}
}

// Parse splits text on newlines and tabs. The first line is always the header.
// Empty or whitespace-only text returns *EmptyInputError.
func (p *Parser) Parse(text string) (*models.Table, error) {
	text = norm.NFC.String(strings.TrimPrefix(text, "\uFEFF"))
	body := strings.TrimLeftFunc(text, unicode.IsSpace)
	// Line numbers in warnings refer to the pasted text, blank lead-in included.
	skipped := strings.Count(text[:len(text)-len(body)], "\n")
	text = strings.TrimRightFunc(body, unicode.IsSpace)
	if text == "" {
		return nil, &EmptyInputError{}
	}

	lines := strings.Split(text, "\n")
	headers := strings.Split(lines[0], "\t")
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	table := &models.Table{
		Headers: headers,
		Rows:    make([]models.RawRow, 0, len(lines)-1),
	}

	for i, line := range lines[1:] {
		cells := strings.Split(line, "\t")

		if len(cells) != len(headers) {
			warning := models.RowWarning{Line: skipped + i + 2, Got: len(cells), Want: len(headers)}
			if p.mode == Strict {
				return nil, &MalformedRowError{RowWarning: warning}
			}
			p.logger.Debug("[parser] line %d has %d cells, header has %d", warning.Line, warning.Got, warning.Want)
			table.Warnings = append(table.Warnings, warning)
		}

		row := make(models.RawRow, len(headers))
		for idx, h := range headers {
			row[h] = cellAt(cells, idx)
		}
		table.Rows = append(table.Rows, row)
	}

	if len(table.Warnings) > 0 {
		p.logger.Warn("[parser] %d of %d rows did not match the header width", len(table.Warnings), len(table.Rows))
	}
	p.logger.Info("[parser] Parsed %d rows across %d columns", len(table.Rows), len(headers))
	return table, nil
}

// cellAt returns the trimmed cell or NotAvailable when it is missing or blank.
func cellAt(cells []string, idx int) string {
	if idx >= len(cells) {
		return models.NotAvailable
	}
	v := strings.TrimSpace(cells[idx])
	if v == "" {
		return models.NotAvailable
	}
	return v
}
