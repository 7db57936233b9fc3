package tables

import (
	"encoding/csv"
	"io"

	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/domain"
)

// decodeCSV 整个文件即一个表格
func decodeCSV(name string, r io.ReaderAt, size int64) ([]domain.Table, error) {
	reader := csv.NewReader(io.NewSectionReader(r, 0, size))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	return []domain.Table{{Name: name, Rows: rows}}, nil
}
