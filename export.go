package main

import (
	"fmt"
	"os"
	"path/filepath"

	"employee-stats/models"
	"employee-stats/storage"
	"employee-stats/utils"
)

func exportCSV(path string, result *models.SessionResult, logger *utils.Logger) error {
	w, err := storage.NewCSVWriter(path)
	if err != nil {
		return err
	}
	if err := export(w, result); err != nil {
		return err
	}
	logger.Info("Resolved records saved to %s", path)
	return nil
}

func exportXLSX(path string, result *models.SessionResult, logger *utils.Logger) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("xlsx: create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("xlsx: create file %q: %w", path, err)
	}
	defer f.Close()

	if err := export(storage.NewExcelExporter(f), result); err != nil {
		return err
	}
	logger.Info("Workbook saved to %s", path)
	return nil
}

// export runs exp and always closes it.
func export(exp storage.ResultExporter, result *models.SessionResult) error {
	err := exp.Export(result)
	if cerr := exp.Close(); err == nil {
		err = cerr
	}
	return err
}
