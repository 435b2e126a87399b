package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"employee-stats/models"
)

// recordColumns is the header row of the resolved-records table.
var recordColumns = []string{
	"empid", "empname", "classification", "division", "department", "site", "directorate", "grouping", "uid",
}

// CSVWriter writes the resolved employee records of a result to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(recordColumns); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Export appends one line per resolved record.
func (c *CSVWriter) Export(result *models.SessionResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range result.Result.Records {
		if err := c.writer.Write(recordCells(r)); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

func recordCells(r models.EmployeeRecord) []string {
	return []string{
		r.EmpID, r.EmpName, r.Classification, r.Division, r.Department,
		r.Site, r.Directorate, r.Grouping, r.UID,
	}
}
