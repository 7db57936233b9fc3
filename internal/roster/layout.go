package roster

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/domain"
)

var (
	dayRe    = regexp.MustCompile(`^(\d{1,2})\.?$`)
	dateRe   = regexp.MustCompile(`^(\d{1,2})\s*[./-]\s*(\d{1,2})(?:\s*[./-]\s*(\d{4}|\d{2}))?\.?$`)
	numberRe = regexp.MustCompile(`^\d+(?:[.,]\d+)?$`)
)

// dayValue 是日期轴上的一个值，month/year 为 0 表示单元格中只有日
type dayValue struct {
	day   int
	month int
	year  int
}

func matchDay(text string) (dayValue, bool) {
	if m := dayRe.FindStringSubmatch(text); m != nil {
		d, _ := strconv.Atoi(m[1])
		if d < 1 || d > 31 {
			return dayValue{}, false
		}
		return dayValue{day: d}, true
	}

	if m := dateRe.FindStringSubmatch(text); m != nil {
		d, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		if d < 1 || d > 31 || mo < 1 || mo > 12 {
			return dayValue{}, false
		}
		v := dayValue{day: d, month: mo}
		if m[3] != "" {
			y, _ := strconv.Atoi(m[3])
			if len(m[3]) == 2 {
				y += 2000
			}
			v.year = y
		}
		return v, true
	}

	return dayValue{}, false
}

// parseDayValue 识别 "3"、"03/03/2024"、"3 Κυρ"、"Δευτέρα 01-04-2024" 等形式
func parseDayValue(text string) (dayValue, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return dayValue{}, false
	}
	if v, ok := matchDay(text); ok {
		return v, true
	}

	// 去掉星期名称后再试一次
	rest := make([]string, 0, 2)
	stripped := false
	for _, f := range strings.Fields(fold(text)) {
		w := strings.Trim(f, ",.:;()")
		if _, ok := weekdayNames[w]; ok {
			stripped = true
			continue
		}
		if _, ok := weekdayLetters[w]; ok {
			stripped = true
			continue
		}
		rest = append(rest, f)
	}
	if !stripped || len(rest) != 1 {
		return dayValue{}, false
	}
	return matchDay(strings.Trim(rest[0], ",;:()"))
}

type axis int

const (
	daysInRows    axis = iota + 1 // 每行一天，日期在某一列中
	daysInColumns                 // 每列一天，日期在表头行中
)

func (a axis) String() string {
	switch a {
	case daysInRows:
		return "days-in-rows"
	case daysInColumns:
		return "days-in-columns"
	default:
		return "unknown"
	}
}

type layout struct {
	axis  axis
	index int // daysInRows 时为日期列，daysInColumns 时为表头行（从 0 开始）
}

// dutyCell 是日期轴之外、需要解析人员的单元格。
// header 是另一条轴上的表头（按列排列日期时为行首，按行排列日期时为列头），
// 单元格中只有标记没有人名时由它给出人员
type dutyCell struct {
	day       int
	row       int
	col       int
	text      string
	header    string
	headerRow int
	headerCol int
}

// skipLineFunc 判断日期轴之外的一整列（或一整行）是否为注释，例如星期列
type skipLineFunc func(texts []string) bool

// detectLayout 在行和列两个方向上寻找日期序列，取日期单元格最多的一条作为日期轴。
// 数量相同时优先按行排列（每行一天）
func detectLayout(t domain.Table) (layout, error) {
	colScore := make([]int, t.Width())
	bestRow, bestRowScore := -1, 0

	for r, row := range t.Rows {
		score := 0
		for c, cell := range row {
			if _, ok := parseDayValue(cell); ok {
				score++
				colScore[c]++
			}
		}
		if score > bestRowScore {
			bestRow, bestRowScore = r, score
		}
	}

	bestCol, bestColScore := -1, 0
	for c, score := range colScore {
		if score > bestColScore {
			bestCol, bestColScore = c, score
		}
	}

	switch {
	case bestColScore == 0 && bestRowScore == 0:
		return layout{}, &domain.MalformedRosterError{
			Location: domain.Location{Table: t.Name},
			Reason:   "找不到列出日期的表头行或表头列",
		}
	case bestRowScore > bestColScore:
		return layout{axis: daysInColumns, index: bestRow}, nil
	default:
		return layout{axis: daysInRows, index: bestCol}, nil
	}
}

// checkDay 校验日期轴上的值是否属于 period，并且保持递增
func checkDay(loc domain.Location, v dayValue, prev int, period domain.Period) error {
	if v.month != 0 && v.month != period.Month {
		return &domain.MalformedRosterError{
			Location: loc,
			Reason:   fmt.Sprintf("日期 %d/%d 不属于 %s，不支持跨月的值班表", v.day, v.month, period),
		}
	}
	if v.year != 0 && v.year != period.Year {
		return &domain.MalformedRosterError{
			Location: loc,
			Reason:   fmt.Sprintf("年份 %d 与 %s 不一致", v.year, period),
		}
	}
	if v.day > period.Days() {
		return &domain.MalformedRosterError{
			Location: loc,
			Reason:   fmt.Sprintf("日期 %d 超出 %s 的天数 %d", v.day, period, period.Days()),
		}
	}
	if v.day < prev {
		return &domain.MalformedRosterError{
			Location: loc,
			Reason:   fmt.Sprintf("日期 %d 出现在 %d 之后，日期必须递增（不支持跨月的值班表）", v.day, prev),
		}
	}
	return nil
}

// cells 按布局提取需要解析的值班单元格，同时校验日期轴。skip 为 true 的列（或行）整条跳过
func (l layout) cells(t domain.Table, period domain.Period, skip skipLineFunc) ([]dutyCell, error) {
	out := make([]dutyCell, 0)
	prev := 0

	switch l.axis {
	case daysInRows:
		dayRows := make([]int, 0)
		days := make(map[int]int)
		for r := range t.Rows {
			v, ok := parseDayValue(t.Cell(r, l.index))
			if !ok {
				// 表头或备注行
				continue
			}
			loc := domain.Location{Table: t.Name, Row: r + 1, Column: l.index + 1}
			if err := checkDay(loc, v, prev, period); err != nil {
				return nil, err
			}
			prev = v.day
			dayRows = append(dayRows, r)
			days[r] = v.day
		}
		if len(dayRows) == 0 {
			return out, nil
		}

		for c := 0; c < t.Width(); c++ {
			if c == l.index {
				continue
			}
			texts := make([]string, 0, len(dayRows))
			for _, r := range dayRows {
				texts = append(texts, t.Cell(r, c))
			}
			if skip != nil && skip(texts) {
				continue
			}

			header, headerRow := "", -1
			for r := dayRows[0] - 1; r >= 0; r-- {
				if h := strings.TrimSpace(t.Cell(r, c)); h != "" {
					header, headerRow = h, r
					break
				}
			}

			for i, r := range dayRows {
				if texts[i] == "" {
					continue
				}
				out = append(out, dutyCell{
					day: days[r], row: r, col: c, text: texts[i],
					header: header, headerRow: headerRow, headerCol: c,
				})
			}
		}
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].row != out[j].row {
				return out[i].row < out[j].row
			}
			return out[i].col < out[j].col
		})

	case daysInColumns:
		dayCols := make([]int, 0)
		days := make(map[int]int)
		for c, cell := range t.Rows[l.index] {
			v, ok := parseDayValue(cell)
			if !ok {
				continue
			}
			loc := domain.Location{Table: t.Name, Row: l.index + 1, Column: c + 1}
			if err := checkDay(loc, v, prev, period); err != nil {
				return nil, err
			}
			prev = v.day
			dayCols = append(dayCols, c)
			days[c] = v.day
		}

		for r := l.index + 1; r < len(t.Rows); r++ {
			texts := make([]string, 0, len(dayCols))
			for _, c := range dayCols {
				texts = append(texts, t.Cell(r, c))
			}
			if skip != nil && skip(texts) {
				continue
			}

			header, headerCol := "", -1
			for c := range t.Rows[r] {
				if _, isDay := days[c]; isDay {
					continue
				}
				if h := strings.TrimSpace(t.Cell(r, c)); h != "" {
					header, headerCol = h, c
					break
				}
			}

			for i, c := range dayCols {
				if texts[i] == "" {
					continue
				}
				out = append(out, dutyCell{
					day: days[c], row: r, col: c, text: texts[i],
					header: header, headerRow: r, headerCol: headerCol,
				})
			}
		}
	}

	return out, nil
}
