package tables

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/domain"
)

var ErrUnsupportedFormat = errors.New("不支持的文件格式，仅支持 .docx、.xlsx 和 .csv")

func Load(path string) (*domain.Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开文件 %s 失败：%w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("读取文件 %s 的信息失败：%w", path, err)
	}

	return Decode(filepath.Base(path), file, info.Size())
}

// Decode 按扩展名选择解码方式
func Decode(name string, r io.ReaderAt, size int64) (*domain.Document, error) {
	var (
		tables []domain.Table
		err    error
	)

	switch strings.ToLower(filepath.Ext(name)) {
	case ".docx":
		tables, err = decodeDocx(name, r, size)
	case ".xlsx":
		tables, err = decodeXlsx(name, r, size)
	case ".csv":
		tables, err = decodeCSV(name, r, size)
	default:
		return nil, fmt.Errorf("%w：%s", ErrUnsupportedFormat, name)
	}
	if err != nil {
		return nil, fmt.Errorf("解码 %s 失败：%w", name, err)
	}

	doc := &domain.Document{Name: name, Tables: make([]domain.Table, 0, len(tables))}
	for _, t := range tables {
		t.Rows = normalize(t.Rows)
		if len(t.Rows) == 0 {
			continue
		}
		doc.Tables = append(doc.Tables, t)
	}
	return doc, nil
}

// normalize 去掉单元格首尾空白，丢弃全空的行
func normalize(rows [][]string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, len(row))
		empty := true
		for i, cell := range row {
			cells[i] = strings.TrimSpace(strings.ReplaceAll(cell, "\r\n", "\n"))
			if cells[i] != "" {
				empty = false
			}
		}
		if !empty {
			out = append(out, cells)
		}
	}
	return out
}

func tableName(doc string, index int) string {
	return fmt.Sprintf("%s#%d", doc, index+1)
}
