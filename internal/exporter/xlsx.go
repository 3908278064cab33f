package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	apperrors "arcli/internal/errors"
	"arcli/pkg/contracts/domain"
)

// ReadWorkbook loads the first sheet of an xlsx workbook as a table. The
// first row is the header; trailing all-empty rows are dropped.
func ReadWorkbook(path string) (domain.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return domain.Table{}, apperrors.NewStorageError(fmt.Sprintf("open workbook %s", path), err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return domain.Table{}, apperrors.NewStorageError(fmt.Sprintf("workbook %s has no sheets", path), nil)
	}

	return ReadSheet(f, sheets[0])
}

// ReadSheet loads one sheet of an open workbook as a table.
func ReadSheet(f *excelize.File, sheet string) (domain.Table, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return domain.Table{}, apperrors.NewStorageError(fmt.Sprintf("read sheet %s", sheet), err)
	}
	if len(rows) == 0 {
		return domain.Table{}, nil
	}

	header := rows[0]
	columns := make([]string, 0, len(header))
	for _, h := range header {
		h = strings.TrimSpace(h)
		if h != "" {
			columns = append(columns, h)
		}
	}

	table := domain.NewTable(columns...)
	for _, raw := range rows[1:] {
		if allEmpty(raw) {
			continue
		}
		row := make(domain.Row, len(columns))
		for i, col := range columns {
			var value string
			if i < len(raw) {
				value = raw[i]
			}
			row[col] = parseCell(value)
		}
		table.AppendRow(row)
	}

	return table, nil
}

// WriteWorkbook writes a table to an xlsx workbook at the given path,
// creating parent directories as needed.
func WriteWorkbook(table domain.Table, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("create directory for %s", path), err)
	}

	f, err := buildWorkbook(table)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("save workbook %s", path), err)
	}
	return nil
}

// WorkbookBytes renders a table as an in-memory xlsx workbook.
func WorkbookBytes(table domain.Table) ([]byte, error) {
	f, err := buildWorkbook(table)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, apperrors.NewStorageError("render workbook", err)
	}
	return buf.Bytes(), nil
}

// buildWorkbook fills a new single-sheet workbook with the table contents.
// The header goes into row one, data rows follow in table order.
func buildWorkbook(table domain.Table) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(table.Columns))
	for i, c := range table.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		f.Close()
		return nil, apperrors.NewStorageError("write workbook header", err)
	}

	for i, row := range table.Rows {
		values := make([]interface{}, len(table.Columns))
		for j, col := range table.Columns {
			values[j] = cellValue(row.Get(col))
		}
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, apperrors.NewStorageError("address workbook row", err)
		}
		if err := f.SetSheetRow(sheet, addr, &values); err != nil {
			f.Close()
			return nil, apperrors.NewStorageError(fmt.Sprintf("write workbook row %d", i+2), err)
		}
	}

	return f, nil
}

// cellValue converts a cell to the value handed to excelize. Numbers are
// written as floats so Excel treats the column as numeric, missing cells as
// nil so the sheet cell stays empty.
func cellValue(c domain.Cell) interface{} {
	if d, ok := c.Decimal(); ok {
		return d.InexactFloat64()
	}
	if c.IsMissing() {
		return nil
	}
	return c.String()
}

// parseCell converts a raw sheet value to a cell. Values that parse as plain
// numbers become Number cells, empty strings are missing, everything else is
// text.
func parseCell(value string) domain.Cell {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return domain.MissingCell()
	}
	if d, err := decimal.NewFromString(trimmed); err == nil {
		return domain.NumberCell(d)
	}
	return domain.TextCell(value)
}

// allEmpty reports whether every value in a raw sheet row is blank.
func allEmpty(raw []string) bool {
	for _, v := range raw {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
