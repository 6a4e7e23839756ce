// Package export writes recap and tally tables into spreadsheet files.
// It lays cells out in the order the aggregator produced them and applies
// no styling; presentation belongs to whoever opens the file.
package export

import (
	"fmt"

	"github.com/siswadata/rapor-backend/internal/model"
	"github.com/xuri/excelize/v2"
)

const recapSheet = "Rekap Nilai"
const tallySheet = "Rekap Kehadiran"

// RecapXLSX renders a recap result into a workbook. Column order is
// No, NIS, Name, one column per group (in the aggregator's order), Final.
// Cells of groups without any component stay empty — a recorded zero is
// written out, missing data is not.
func RecapXLSX(result *model.RecapResult) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	if err := f.SetSheetName(sheet, recapSheet); err != nil {
		return nil, err
	}
	sheet = recapSheet

	header := []interface{}{"No", "NIS", "Nama"}
	for _, g := range result.Groups {
		header = append(header, g)
	}
	header = append(header, "Nilai Akhir")
	if err := setRow(f, sheet, 1, header); err != nil {
		return nil, err
	}

	for i, row := range result.Rows {
		cells := []interface{}{i + 1, row.NIS, row.StudentName}
		for _, g := range result.Groups {
			cell := row.Cells[g]
			if cell.HasAny() {
				cells = append(cells, cell.GroupAverage)
			} else {
				cells = append(cells, "")
			}
		}
		cells = append(cells, row.FinalScore)
		if err := setRow(f, sheet, i+2, cells); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// TallyXLSX renders monthly attendance counts into a workbook.
func TallyXLSX(rows []model.TallyRow, month, year int) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	if err := f.SetSheetName(sheet, tallySheet); err != nil {
		return nil, err
	}
	sheet = tallySheet

	title := fmt.Sprintf("Rekap Kehadiran %02d/%d", month, year)
	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return nil, err
	}

	header := []interface{}{"No", "NIS", "Nama", "Hadir", "Sakit", "Izin", "Alpa", "Total"}
	if err := setRow(f, sheet, 2, header); err != nil {
		return nil, err
	}

	for i, row := range rows {
		cells := []interface{}{i + 1, row.NIS, row.StudentName, row.Present, row.Sick, row.Excused, row.Absent, row.Total}
		if err := setRow(f, sheet, i+3, cells); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	for col, v := range values {
		name, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, name, v); err != nil {
			return err
		}
	}
	return nil
}
