package roster

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	onCallMark = '*'
	decoration = '>'
)

var placeholders = map[string]struct{}{"-": {}, "–": {}, "—": {}, "--": {}, "_": {}}

// 按人员排列的表格中，单元格只写一个勾选标记，人员由表头给出
var checkMarks = map[string]struct{}{"X": {}, "x": {}, "Χ": {}, "χ": {}, "✓": {}, "✔": {}, "√": {}, "+": {}}

// dutyToken 是单元格中的一条人员登记
type dutyToken struct {
	name   string
	onCall bool
}

// splitTokens 一个单元格中可以登记多人，以换行、逗号或分号分隔
func splitTokens(cell string) []string {
	parts := strings.FieldsFunc(cell, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ',' || r == ';'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// classifyToken 识别星号（on-call）并去掉装饰符号，其余字符只允许出现在人名中。
// 返回 ok=false 表示这是一个空占位符；只有标记（"*"、"X" 等）时 name 为空
func classifyToken(raw string) (tok dutyToken, ok bool, err error) {
	raw = strings.TrimSpace(raw)
	if _, isPlaceholder := placeholders[raw]; isPlaceholder || raw == "" {
		return dutyToken{}, false, nil
	}

	mark := strings.Map(func(r rune) rune {
		if r == onCallMark || r == decoration || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	onCall := strings.ContainsRune(raw, onCallMark)
	if _, isCheck := checkMarks[mark]; isCheck || (mark == "" && onCall) {
		return dutyToken{onCall: onCall}, true, nil
	}

	var sb strings.Builder
	for _, r := range raw {
		switch {
		case r == onCallMark:
			tok.onCall = true
		case r == decoration:
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsSpace(r), unicode.Is(unicode.Mn, r):
			sb.WriteRune(r)
		case r == '.', r == '-', r == '\'', r == '’', r == '(', r == ')':
			sb.WriteRune(r)
		default:
			return dutyToken{}, false, fmt.Errorf("无法识别的值班标记「%s」（非法字符 %q）", raw, r)
		}
	}

	tok.name = strings.Join(strings.Fields(sb.String()), " ")
	if aliasKey(tok.name) == "" {
		return dutyToken{}, false, fmt.Errorf("无法识别的值班标记「%s」（缺少人员）", raw)
	}
	return tok, true, nil
}
