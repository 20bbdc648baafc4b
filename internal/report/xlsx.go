package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet    = "Resumo"
	proportionSheet = "Proporções"
)

// WriteWorkbook writes the summary and the proportion results to an .xlsx
// workbook, one sheet each.
func WriteWorkbook(path string, s Summary, props []Proportion) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeRows(f, summarySheet, s.Records()); err != nil {
		return err
	}

	if _, err := f.NewSheet(proportionSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	rows := [][]any{{"Coluna", "Total", "Sim", "Proporção"}}
	for _, p := range props {
		rows = append(rows, []any{p.Flag.Column, p.Total, p.Count, p.Value})
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(proportionSheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", proportionSheet, i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, records [][]string) error {
	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rec); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
