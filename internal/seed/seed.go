package seed

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/domain"
	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/utils"
	"github.com/xuri/excelize/v2"
)

// WriteRosterWorkbook 把随机值班表写成 xlsx，每个表格一个工作表，顺序为值班表、名单表、专科值班表。
// includeEP 为 false 时不写电生理值班表，由调用方单独导出
func WriteRosterWorkbook(f *utils.RosterFixture, path string, includeEP bool) error {
	sheets := []domain.Table{f.Roster, f.Names, f.CathLab}
	if includeEP {
		sheets = append(sheets, f.EP)
	}

	wb := excelize.NewFile()
	defer wb.Close()

	for i, t := range sheets {
		if i == 0 {
			if err := wb.SetSheetName(wb.GetSheetName(0), t.Name); err != nil {
				return err
			}
		} else if _, err := wb.NewSheet(t.Name); err != nil {
			return err
		}

		for r, row := range t.Rows {
			cells := make([]any, len(row))
			for c, v := range row {
				cells[c] = v
			}
			axis, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return err
			}
			if err := wb.SetSheetRow(t.Name, axis, &cells); err != nil {
				return fmt.Errorf("写入工作表 %s 第 %d 行失败：%w", t.Name, r+1, err)
			}
		}
	}

	return wb.SaveAs(path)
}

// WriteTableCSV 把单个表格写成 csv
func WriteTableCSV(t domain.Table, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.WriteAll(t.Rows); err != nil {
		return err
	}
	return file.Close()
}
