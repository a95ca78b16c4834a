package samplefile

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	domain "distfit/domain/fit"
	"distfit/internal/errors"
)

const (
	xlsxSheet = "Sheet1"
	// xlsxMaxRows is the row limit of a single worksheet.
	xlsxMaxRows = 1048576
)

// DecodeXLSX reads every non-blank cell of the first worksheet, row by row,
// into one sample. Cell values are read raw so stored doubles survive exactly.
func DecodeXLSX(r io.Reader) (domain.Sample, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.MalformedInput("unreadable workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.MalformedInput("workbook has no worksheets", nil)
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.MalformedInput(fmt.Sprintf("failed to read sheet %s", sheets[0]), err)
	}

	var sample domain.Sample
	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			token := strings.TrimSpace(cell)
			if token == "" {
				continue
			}
			value, err := strconv.ParseFloat(token, 64)
			if err == nil && (math.IsNaN(value) || math.IsInf(value, 0)) {
				err = fmt.Errorf("value %q is not finite", token)
			}
			if err != nil {
				name, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
				return nil, errors.MalformedInput(fmt.Sprintf("non-numeric cell %s: %q", name, token), err)
			}
			sample = append(sample, value)
		}
	}

	return sample, nil
}

// EncodeXLSX writes sample into column A of a fresh workbook, one value per
// row. A worksheet row cannot hold more than 16384 cells, so a single-row
// layout would cap the sample size.
func EncodeXLSX(w io.Writer, sample domain.Sample) error {
	if len(sample) > xlsxMaxRows {
		return errors.InvalidSize(fmt.Sprintf("a worksheet holds at most %d values, got %d", xlsxMaxRows, len(sample)))
	}

	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter(xlsxSheet)
	if err != nil {
		return errors.Wrap(err, "failed to open worksheet stream")
	}
	for i, v := range sample {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.Wrap(err, "failed to address cell")
		}
		if err := sw.SetRow(cell, []interface{}{v}); err != nil {
			return errors.Wrapf(err, "failed to write row %d", i+1)
		}
	}
	if err := sw.Flush(); err != nil {
		return errors.Wrap(err, "failed to flush worksheet")
	}

	if _, err := f.WriteTo(w); err != nil {
		return errors.Wrap(err, "failed to write workbook")
	}
	return nil
}
