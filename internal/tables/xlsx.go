package tables

import (
	"fmt"
	"io"

	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/domain"
	"github.com/xuri/excelize/v2"
)

// decodeXlsx 每个工作表是一个表格，工作表名称作为表格标题
func decodeXlsx(name string, r io.ReaderAt, size int64) ([]domain.Table, error) {
	wb, err := excelize.OpenReader(io.NewSectionReader(r, 0, size))
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	tables := make([]domain.Table, 0)
	for _, sheet := range wb.GetSheetList() {
		rows, err := wb.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("读取工作表 %s 失败：%w", sheet, err)
		}
		tables = append(tables, domain.Table{
			Name:  fmt.Sprintf("%s#%s", name, sheet),
			Title: sheet,
			Rows:  rows,
		})
	}
	return tables, nil
}
