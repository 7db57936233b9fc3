package roster

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/domain"
)

// PeriodSource 表示最终采用的月份来源
type PeriodSource string

const (
	SourceOverride PeriodSource = "override"
	SourceFileName PeriodSource = "file_name"
	SourceHeader   PeriodSource = "header"
	SourceCells    PeriodSource = "cells"
)

// PeriodHints 是推断月份的全部线索
type PeriodHints struct {
	FileName    string
	HeaderText  string
	CellSamples []string
	Override    *domain.Period
}

var fullDateRe = regexp.MustCompile(`\b(\d{1,2})\s*[./-]\s*(\d{1,2})\s*[./-]\s*(\d{4})\b`)

// InferPeriod 按优先级推断值班表的月份：手动指定 > 文件名 > 表头 > 单元格中日期的多数票
func InferPeriod(h PeriodHints) (domain.Period, error) {
	p, _, err := ResolvePeriod(h)
	return p, err
}

// ResolvePeriod 与 InferPeriod 相同，同时返回所采用的来源
func ResolvePeriod(h PeriodHints) (domain.Period, PeriodSource, error) {
	if h.Override != nil {
		if err := h.Override.Validate(); err != nil {
			return domain.Period{}, "", fmt.Errorf("手动指定的期间不合法：%w", err)
		}
		return *h.Override, SourceOverride, nil
	}

	if p, ok := periodFromFileName(h.FileName); ok {
		return p, SourceFileName, nil
	}
	if p, ok := periodFromHeader(h.HeaderText); ok {
		return p, SourceHeader, nil
	}
	if p, ok := periodFromCells(h.CellSamples); ok {
		return p, SourceCells, nil
	}

	return domain.Period{}, "", &domain.PeriodUndeterminedError{Reason: "文件名、表头和表格内容中都没有可靠的月份信息"}
}

func parseYear(word string) (int, bool) {
	if len(word) != 4 {
		return 0, false
	}
	y, err := strconv.Atoi(word)
	if err != nil || y < 1900 || y > 2100 {
		return 0, false
	}
	return y, true
}

// monthYearPairs 找出文本中紧邻的 "<月份名> <年份>"
func monthYearPairs(text string) []domain.Period {
	ws := words(text)
	out := make([]domain.Period, 0)
	for i := 0; i+1 < len(ws); i++ {
		m, ok := monthOf(ws[i])
		if !ok {
			continue
		}
		if y, ok := parseYear(ws[i+1]); ok {
			out = append(out, domain.Period{Month: m, Year: y})
		}
	}
	return out
}

func unique(periods []domain.Period) (domain.Period, bool) {
	if len(periods) == 0 {
		return domain.Period{}, false
	}
	for _, p := range periods[1:] {
		if p != periods[0] {
			return domain.Period{}, false
		}
	}
	return periods[0], true
}

// periodFromFileName 识别 "ΕΦΗΜΕΡΙΕΣ ΜΑΡΤΙΟΣ 2024.docx" 这类文件名，标签词可以省略
func periodFromFileName(name string) (domain.Period, bool) {
	if strings.TrimSpace(name) == "" {
		return domain.Period{}, false
	}
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return unique(monthYearPairs(base))
}

// periodFromHeader 表头中恰好出现一个月份名和一个年份时才采用
func periodFromHeader(text string) (domain.Period, bool) {
	months := make(map[int]struct{})
	years := make(map[int]struct{})
	for _, w := range words(text) {
		if m, ok := monthOf(w); ok {
			months[m] = struct{}{}
		}
		if y, ok := parseYear(w); ok {
			years[y] = struct{}{}
		}
	}
	if len(months) != 1 || len(years) != 1 {
		return domain.Period{}, false
	}

	var p domain.Period
	for m := range months {
		p.Month = m
	}
	for y := range years {
		p.Year = y
	}
	return p, true
}

// periodFromCells 统计单元格中完整日期和 "<月份名> <年份>" 的票数，得票过半才采用
func periodFromCells(samples []string) (domain.Period, bool) {
	votes := make(map[domain.Period]int)
	total := 0

	for _, s := range samples {
		for _, m := range fullDateRe.FindAllStringSubmatch(s, -1) {
			d, _ := strconv.Atoi(m[1])
			mo, _ := strconv.Atoi(m[2])
			y, ok := parseYear(m[3])
			if !ok || d < 1 || d > 31 || mo < 1 || mo > 12 {
				continue
			}
			votes[domain.Period{Month: mo, Year: y}]++
			total++
		}
		for _, p := range monthYearPairs(s) {
			votes[p]++
			total++
		}
	}

	var best domain.Period
	bestVotes := 0
	for p, n := range votes {
		if n > bestVotes {
			best, bestVotes = p, n
		}
	}
	if bestVotes == 0 || bestVotes*2 <= total {
		return domain.Period{}, false
	}
	return best, true
}
