// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

// Package excel provides spreadsheet helpers for bulk chapter import and
// template generation, built on excelize.
package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the sheet name used for generated templates and expected
// on uploaded workbooks.
const DefaultSheet = "Sheet1"

/*
BuildTemplate produces an xlsx workbook with a single header row.

The workbook is handed to operators so bulk uploads arrive with a known
column order.

Parameters:
  - headers: column titles written to row 1, left to right.

Returns:
  - []byte: the serialized xlsx file.
  - error: when the workbook cannot be built.
*/
func BuildTemplate(headers []string) ([]byte, error) {
	workbook := excelize.NewFile()
	defer func() { _ = workbook.Close() }()

	for columnIndex, header := range headers {
		cell, err := excelize.CoordinatesToCellName(columnIndex+1, 1)
		if err != nil {
			return nil, fmt.Errorf("excel: invalid column index %d: %w", columnIndex, err)
		}
		if err := workbook.SetCellValue(DefaultSheet, cell, header); err != nil {
			return nil, fmt.Errorf("excel: failed to write header %q: %w", header, err)
		}
	}

	// Bold the header row so the template is self-explanatory.
	styleID, err := workbook.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil && len(headers) > 0 {
		lastCell, cellErr := excelize.CoordinatesToCellName(len(headers), 1)
		if cellErr == nil {
			_ = workbook.SetCellStyle(DefaultSheet, "A1", lastCell, styleID)
		}
	}

	buffer, err := workbook.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: failed to serialize workbook: %w", err)
	}
	return buffer.Bytes(), nil
}

/*
ParseRows reads the first sheet of an uploaded workbook and returns its
data rows.

The first row is treated as a header and skipped. Fully empty rows are
dropped so trailing blank lines in hand-edited sheets do not produce
phantom records.

Parameters:
  - reader: the uploaded xlsx content.

Returns:
  - [][]string: one slice of cell values per data row.
  - error: when the file is not a readable workbook.
*/
func ParseRows(reader io.Reader) ([][]string, error) {
	workbook, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("excel: failed to open workbook: %w", err)
	}
	defer func() { _ = workbook.Close() }()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel: workbook has no sheets")
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("excel: failed to read rows: %w", err)
	}

	if len(rows) <= 1 {
		return nil, nil
	}

	dataRows := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		dataRows = append(dataRows, row)
	}
	return dataRows, nil
}

// Cell returns the value at the given zero-based column, or "" when the row
// is too short. excelize trims trailing empty cells from rows.
func Cell(row []string, column int) string {
	if column >= len(row) {
		return ""
	}
	return row[column]
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
