package roster

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Assemble 为 person 生成按日期升序排列的值班事件。只有主值班表中的登记会产生事件，
// 仅出现在专科值班表中的日子不产生事件。纯函数，不修改 roster
func Assemble(person domain.PersonnelRecord, roster *domain.DayRoster, period domain.Period) ([]domain.ShiftEvent, error) {
	if roster.Period() != period {
		return nil, fmt.Errorf("期间 %s 与值班表的期间 %s 不一致", period, roster.Period())
	}

	// Collator 有内部缓冲区，不能在多个 goroutine 之间共享
	col := collate.New(language.Greek)

	events := make([]domain.ShiftEvent, 0)
	for day := 1; day <= roster.Days(); day++ {
		marker, ok := roster.MarkerOf(day, person.ID)
		if !ok {
			continue
		}

		start := period.Date(day)
		events = append(events, domain.ShiftEvent{
			Person:    person,
			Day:       day,
			Start:     start,
			End:       start.AddDate(0, 0, 1),
			Marker:    marker,
			CoWorkers: coWorkers(col, roster.Entry(day), person.ID),
		})
	}

	return events, nil
}

// coWorkers 排序规则：主值班 Regular、主值班 OnCall，然后按专科类别分组，每组内按姓名排序
func coWorkers(col *collate.Collator, entry domain.DayEntry, self string) []domain.CoWorker {
	byName := func(a, b domain.CoWorker) int {
		if c := col.CompareString(a.Person.DisplayName, b.Person.DisplayName); c != 0 {
			return c
		}
		return strings.Compare(a.Person.ID, b.Person.ID)
	}

	out := make([]domain.CoWorker, 0, len(entry.Primary))

	for _, marker := range []domain.DutyMarker{domain.Regular24h, domain.OnCall24h} {
		group := make([]domain.CoWorker, 0)
		for _, a := range entry.Primary {
			if a.Person.ID != self && a.Marker == marker {
				group = append(group, domain.CoWorker{Person: a.Person, Marker: a.Marker})
			}
		}
		slices.SortFunc(group, byName)
		out = append(out, group...)
	}

	for _, category := range domain.SpecialistCategories {
		group := make([]domain.CoWorker, 0)
		for _, p := range entry.Specialists[category] {
			if p.ID != self {
				group = append(group, domain.CoWorker{Person: p, Category: category})
			}
		}
		slices.SortFunc(group, byName)
		out = append(out, group...)
	}

	return out
}
