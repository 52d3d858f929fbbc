package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/rickgao/optionquotes/internal/normalize"
)

// SheetName is the worksheet holding the quotes.
const SheetName = "quotes"

func buildWorkbook(table *normalize.Table) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(normalize.Columns))
	for i, c := range normalize.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, q := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := []interface{}{
			q.Date.String(),
			q.Exdate.String(),
			q.StrikePrice,
			q.LifeTime,
			q.Volume,
			q.OpenInterest,
			q.BestBid,
			q.BestAsk,
			q.DaysToExpiry,
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", i, err)
		}
	}
	return f, nil
}

// WriteXLSX writes the table as an XLSX workbook.
func WriteXLSX(w io.Writer, table *normalize.Table) error {
	f, err := buildWorkbook(table)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// WriteXLSXFile writes the table as an XLSX workbook at path.
func WriteXLSXFile(path string, table *normalize.Table) error {
	f, err := buildWorkbook(table)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	return nil
}
