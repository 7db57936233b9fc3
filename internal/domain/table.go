package domain

// Table 是文档解码后的表格，每行是已去除首尾空白的单元格文本。
// Title 是文档中紧挨在表格之前的段落，可能为空
type Table struct {
	Name  string     `json:"name"`
	Title string     `json:"title,omitempty"`
	Rows  [][]string `json:"rows"`
}

// Cell 越界时返回空串
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// Width 返回最长一行的列数
func (t Table) Width() int {
	w := 0
	for _, row := range t.Rows {
		w = max(w, len(row))
	}
	return w
}

// Cells 按行优先返回全部非空单元格
func (t Table) Cells() []string {
	cells := make([]string, 0)
	for _, row := range t.Rows {
		for _, cell := range row {
			if cell != "" {
				cells = append(cells, cell)
			}
		}
	}
	return cells
}

// Document 是解码后的文档，Tables 按文档中出现的顺序排列
type Document struct {
	Name   string  `json:"name"`
	Tables []Table `json:"tables"`
}
