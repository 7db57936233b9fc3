package tables

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/domain"
)

const documentPart = "word/document.xml"

// docxCell 是 w:tc 的解码结果
type docxCell struct {
	paragraphs []string
	span       int
	vMerge     string // "" 表示不合并，"restart" 或 "continue"
}

func (c *docxCell) text() string {
	return strings.Join(c.paragraphs, "\n")
}

// docxReader 逐个 token 读取 WordprocessingML，只关心表格和表格之前的段落
type docxReader struct {
	tables []domain.Table
	name   string

	depth     int // 表格嵌套层数，嵌套表格的文字并入外层单元格
	lastPara  string
	inText    bool
	para      *strings.Builder
	rows      [][]string
	row       []string
	cell      *docxCell
	prevRow   []string
	tableHead string
}

func decodeDocx(name string, r io.ReaderAt, size int64) ([]domain.Table, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, err
	}

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == documentPart {
			part = f
			break
		}
	}
	if part == nil {
		return nil, errors.New("文档中缺少 " + documentPart)
	}

	rc, err := part.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	dr := &docxReader{name: name, tables: make([]domain.Table, 0)}
	if err := dr.read(xml.NewDecoder(rc)); err != nil {
		return nil, fmt.Errorf("解析 %s 失败：%w", documentPart, err)
	}
	return dr.tables, nil
}

func attr(se xml.StartElement, local string) (string, bool) {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

func (dr *docxReader) read(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			dr.start(t)
		case xml.EndElement:
			dr.end(t)
		case xml.CharData:
			if dr.inText && dr.para != nil {
				dr.para.Write(t)
			}
		}
	}
}

func (dr *docxReader) start(se xml.StartElement) {
	switch se.Name.Local {
	case "tbl":
		dr.depth++
		if dr.depth == 1 {
			dr.rows = make([][]string, 0)
			dr.prevRow = nil
			dr.tableHead = dr.lastPara
		}
	case "tr":
		if dr.depth == 1 {
			dr.row = make([]string, 0)
		}
	case "tc":
		if dr.depth == 1 {
			dr.cell = &docxCell{paragraphs: make([]string, 0), span: 1}
		}
	case "gridSpan":
		if dr.depth == 1 && dr.cell != nil {
			if v, ok := attr(se, "val"); ok {
				if n, err := strconv.Atoi(v); err == nil && n > 1 {
					dr.cell.span = n
				}
			}
		}
	case "vMerge":
		if dr.depth == 1 && dr.cell != nil {
			v, _ := attr(se, "val")
			if v == "" {
				v = "continue"
			}
			dr.cell.vMerge = v
		}
	case "p":
		// 嵌套表格中的段落并入外层单元格的当前段落
		if dr.depth <= 1 || dr.para == nil {
			dr.para = &strings.Builder{}
		} else {
			dr.para.WriteString("\n")
		}
	case "t":
		dr.inText = true
	case "br", "cr":
		if dr.para != nil {
			dr.para.WriteString("\n")
		}
	case "tab":
		if dr.para != nil {
			dr.para.WriteString(" ")
		}
	}
}

func (dr *docxReader) end(ee xml.EndElement) {
	switch ee.Name.Local {
	case "t":
		dr.inText = false
	case "p":
		if dr.para == nil || dr.depth > 1 {
			return
		}
		text := strings.TrimSpace(dr.para.String())
		dr.para = nil
		switch {
		case dr.cell != nil:
			dr.cell.paragraphs = append(dr.cell.paragraphs, text)
		case dr.depth == 0 && text != "":
			dr.lastPara = text
		}
	case "tc":
		if dr.depth != 1 || dr.cell == nil {
			return
		}
		text := strings.TrimSpace(dr.cell.text())
		if dr.cell.vMerge == "continue" {
			// 纵向合并的后续单元格重复上方的内容
			col := len(dr.row)
			if col < len(dr.prevRow) {
				text = dr.prevRow[col]
			}
		}
		for i := 0; i < dr.cell.span; i++ {
			dr.row = append(dr.row, text)
		}
		dr.cell = nil
	case "tr":
		if dr.depth != 1 {
			return
		}
		dr.rows = append(dr.rows, dr.row)
		dr.prevRow = dr.row
		dr.row = nil
	case "tbl":
		dr.depth--
		if dr.depth == 1 && dr.cell != nil && dr.para != nil {
			dr.cell.paragraphs = append(dr.cell.paragraphs, strings.TrimSpace(dr.para.String()))
			dr.para = nil
		}
		if dr.depth == 0 {
			dr.tables = append(dr.tables, domain.Table{
				Name:  tableName(dr.name, len(dr.tables)),
				Title: dr.tableHead,
				Rows:  dr.rows,
			})
			dr.rows = nil
			dr.lastPara = ""
		}
	}
}
