package utils

import (
	"fmt"

	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/domain"
)

// ValidateCalendars 检查生成的日历与值班表是否一致：
// 每个事件当天本人确实在主值班表中，且同事列表恰好是当天除本人以外的全部主值班和专科值班人员
func ValidateCalendars(roster *domain.DayRoster, calendars map[string][]domain.ShiftEvent) error {
	for personID, events := range calendars {
		prevDay := 0
		for _, event := range events {
			if event.Person.ID != personID {
				return fmt.Errorf("人员 %s 的日历中混入了 %s 的事件", personID, event.Person.ID)
			}
			if event.Day <= prevDay {
				return fmt.Errorf("人员 %s 的事件没有按日期升序排列（第 %d 天）", event.Person.DisplayName, event.Day)
			}
			prevDay = event.Day

			marker, ok := roster.MarkerOf(event.Day, personID)
			if !ok {
				return fmt.Errorf("人员 %s 在第 %d 天没有主值班，却生成了事件", event.Person.DisplayName, event.Day)
			}
			if marker != event.Marker {
				return fmt.Errorf("人员 %s 在第 %d 天的班次应为 %s，事件中为 %s", event.Person.DisplayName, event.Day, marker, event.Marker)
			}

			if err := validateCoWorkers(roster.Entry(event.Day), event); err != nil {
				return err
			}
		}

		// 反过来，每个值班日都必须有事件
		if roster.DutyDays(personID) != len(events) {
			return fmt.Errorf("人员 %s 有 %d 个值班日，但只生成了 %d 个事件", personID, roster.DutyDays(personID), len(events))
		}
	}

	return nil
}

type coWorkerKey struct {
	id       string
	marker   domain.DutyMarker
	category domain.SpecialistCategory
}

func validateCoWorkers(entry domain.DayEntry, event domain.ShiftEvent) error {
	expected := make(map[coWorkerKey]struct{})
	for _, a := range entry.Primary {
		if a.Person.ID != event.Person.ID {
			expected[coWorkerKey{id: a.Person.ID, marker: a.Marker}] = struct{}{}
		}
	}
	for category, people := range entry.Specialists {
		for _, p := range people {
			if p.ID != event.Person.ID {
				expected[coWorkerKey{id: p.ID, category: category}] = struct{}{}
			}
		}
	}

	seen := make(map[coWorkerKey]struct{}, len(event.CoWorkers))
	for _, c := range event.CoWorkers {
		key := coWorkerKey{id: c.Person.ID, marker: c.Marker, category: c.Category}
		if _, ok := expected[key]; !ok {
			return fmt.Errorf("人员 %s 第 %d 天的同事列表中多出了 %s（%s）", event.Person.DisplayName, event.Day, c.Person.DisplayName, c.Label())
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("人员 %s 第 %d 天的同事列表中 %s 重复出现", event.Person.DisplayName, event.Day, c.Person.DisplayName)
		}
		seen[key] = struct{}{}
	}

	if len(seen) != len(expected) {
		return fmt.Errorf("人员 %s 第 %d 天的同事列表不完整：应有 %d 人，实际 %d 人", event.Person.DisplayName, event.Day, len(expected), len(seen))
	}
	return nil
}
