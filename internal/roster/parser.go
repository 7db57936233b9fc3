package roster

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/domain"
)

type visitFunc func(loc domain.Location, day int, person domain.PersonnelRecord, tok dutyToken) error

// walk 检测表格布局，逐个解析值班单元格中的人员并回调 visit
func walk(t domain.Table, period domain.Period, resolver *NameResolver, visit visitFunc) error {
	lay, err := detectLayout(t)
	if err != nil {
		return err
	}

	cells, err := lay.cells(t, period, annotationLine(resolver))
	if err != nil {
		return err
	}

	for _, c := range cells {
		loc := domain.Location{Table: t.Name, Row: c.row + 1, Column: c.col + 1}

		for _, raw := range splitTokens(c.text) {
			tok, ok, err := classifyToken(raw)
			if err != nil {
				if isAnnotation(raw) {
					continue
				}
				return &domain.MalformedRosterError{Location: loc, Reason: err.Error()}
			}
			if !ok {
				continue
			}

			var person domain.PersonnelRecord
			if tok.name == "" {
				person, err = headerPerson(t.Name, c, raw, resolver)
				if err != nil {
					return err
				}
			} else {
				person, err = resolver.Resolve(tok.name)
				if err != nil {
					// 整条登记是星期、月份等注释时跳过
					if isAnnotation(raw) {
						continue
					}
					var unknown *domain.UnknownPersonnelError
					if errors.As(err, &unknown) {
						unknown.Location = loc
					}
					return err
				}
			}

			if err := visit(loc, c.day, person, tok); err != nil {
				return err
			}
		}
	}

	return nil
}

// headerPerson 解析只有标记的单元格：人员取自该单元格所在行（或列）的表头
func headerPerson(table string, c dutyCell, raw string, resolver *NameResolver) (domain.PersonnelRecord, error) {
	if c.header == "" || isAnnotation(c.header) {
		return domain.PersonnelRecord{}, &domain.MalformedRosterError{
			Location: domain.Location{Table: table, Row: c.row + 1, Column: c.col + 1},
			Reason:   fmt.Sprintf("无法识别的值班标记「%s」（缺少人员）", raw),
		}
	}

	person, err := resolver.Resolve(c.header)
	if err != nil {
		var unknown *domain.UnknownPersonnelError
		if errors.As(err, &unknown) {
			unknown.Location = domain.Location{Table: table, Row: c.headerRow + 1, Column: c.headerCol + 1}
		}
		return domain.PersonnelRecord{}, err
	}
	return person, nil
}

// annotationLine 跳过星期列这类整条都是注释的列（或行）。
// 只要其中有一个值不是名单中的人员，就认为整条是注释
func annotationLine(resolver *NameResolver) skipLineFunc {
	return func(texts []string) bool {
		nonEmpty, unresolved := 0, 0
		for _, text := range texts {
			if strings.TrimSpace(text) == "" {
				continue
			}
			nonEmpty++
			if !isAnnotation(text) {
				return false
			}
			if _, ok := resolver.Lookup(text); !ok {
				unresolved++
			}
		}
		return nonEmpty > 0 && unresolved > 0
	}
}

// Parse 解析主值班表，带星号的登记为 OnCall24h，其余为 Regular24h
func Parse(t domain.Table, period domain.Period, resolver *NameResolver) (*domain.DayRoster, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	roster := domain.NewDayRoster(period)
	err := walk(t, period, resolver, func(loc domain.Location, day int, person domain.PersonnelRecord, tok dutyToken) error {
		marker := domain.Regular24h
		if tok.onCall {
			marker = domain.OnCall24h
		}
		return roster.AddPrimary(loc, day, person, marker)
	})
	if err != nil {
		return nil, err
	}

	return roster, nil
}
