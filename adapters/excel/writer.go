// Package excel exports aggregation reports to an Excel workbook, mirroring
// the console tables for sharing outside the terminal.
package excel

import (
	"fmt"
	"strings"

	"augbench/domain/run"
	"augbench/internal"
	"augbench/internal/errors"
	"augbench/internal/report"

	"github.com/xuri/excelize/v2"
)

// maxSheetName is the Excel limit on sheet name length.
const maxSheetName = 31

// ResultsWriter accumulates one "Runs" and one "Summary" sheet per model and
// saves the workbook in a single shot.
type ResultsWriter struct {
	f      *excelize.File
	sheets int
	logger *internal.Logger
}

// NewResultsWriter creates an empty workbook writer.
func NewResultsWriter(logger *internal.Logger) *ResultsWriter {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ResultsWriter{
		f:      excelize.NewFile(),
		logger: logger.WithComponent("excel"),
	}
}

// AddModel writes the per-run and per-method tables for one model. Records
// are written in the order given; rows follow registry order with N/A cells
// for zero-sample methods, matching the console report.
func (w *ResultsWriter) AddModel(model string, records []run.RunRecord, rows []report.SummaryRow) error {
	runsSheet, err := w.addSheet(sheetName(model, "Runs"))
	if err != nil {
		return err
	}
	runRows := [][]interface{}{
		{"Checkpoint", "Epoch", "Test Accuracy (%)", "Test Error (%)"},
	}
	for _, rec := range records {
		runRows = append(runRows, []interface{}{
			rec.Checkpoint, rec.EpochLabel(),
			fmt.Sprintf("%.2f", rec.AccuracyPercent()),
			fmt.Sprintf("%.2f", rec.ErrorPercent()),
		})
	}
	if err := w.writeRows(runsSheet, runRows); err != nil {
		return err
	}

	summarySheet, err := w.addSheet(sheetName(model, "Summary"))
	if err != nil {
		return err
	}
	summaryRows := [][]interface{}{
		{"Method", "n", "Mean Acc (%)", "95% CI", "Result"},
	}
	for _, row := range rows {
		if row.Stat == nil {
			summaryRows = append(summaryRows, []interface{}{row.Method, "N/A", "N/A", "N/A", "N/A"})
			continue
		}
		s := row.Stat
		ci := "n/a"
		if s.CI.Defined {
			ci = fmt.Sprintf("%.2f", s.CI.HalfWidth)
		}
		summaryRows = append(summaryRows, []interface{}{
			row.Method, s.N, fmt.Sprintf("%.2f", s.Mean), ci, s.Result(),
		})
	}
	return w.writeRows(summarySheet, summaryRows)
}

// Save writes the workbook to path.
func (w *ResultsWriter) Save(path string) error {
	if w.sheets == 0 {
		return errors.InvalidInput("workbook has no sheets to save")
	}
	if err := w.f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "saving workbook %s", path)
	}
	w.logger.Info("wrote results workbook %s (%d sheets)", path, w.sheets)
	return nil
}

// Close releases the underlying file resources.
func (w *ResultsWriter) Close() error {
	return w.f.Close()
}

// addSheet creates (or renames, for the first sheet) a worksheet.
func (w *ResultsWriter) addSheet(name string) (string, error) {
	if w.sheets == 0 {
		if err := w.f.SetSheetName("Sheet1", name); err != nil {
			return "", errors.Wrapf(err, "naming sheet %s", name)
		}
	} else if _, err := w.f.NewSheet(name); err != nil {
		return "", errors.Wrapf(err, "creating sheet %s", name)
	}
	w.sheets++
	return name, nil
}

func (w *ResultsWriter) writeRows(sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.Wrap(err, "computing cell coordinates")
		}
		if err := w.f.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.Wrapf(err, "writing row %d of %s", i+1, sheet)
		}
	}
	return nil
}

// sheetName builds a legal worksheet name from the model display name.
func sheetName(model, suffix string) string {
	name := model + " " + suffix
	for _, bad := range []string{":", "\\", "/", "?", "*", "[", "]"} {
		name = strings.ReplaceAll(name, bad, "-")
	}
	if len(name) > maxSheetName {
		name = name[:maxSheetName]
	}
	return name
}
