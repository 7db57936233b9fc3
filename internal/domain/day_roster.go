package domain

import "fmt"

// Assignment 是主值班表中某天的一条登记
type Assignment struct {
	Person PersonnelRecord `json:"person"`
	Marker DutyMarker      `json:"marker"`
}

// DayEntry 是某一天的完整值班情况
type DayEntry struct {
	Day         int                                     `json:"day"`
	Primary     []Assignment                            `json:"primary"`
	Specialists map[SpecialistCategory][]PersonnelRecord `json:"specialists"`
}

type dayState struct {
	primary     []Assignment
	specialists map[SpecialistCategory][]PersonnelRecord
}

// DayRoster 按天索引的值班表。解析和合并阶段写入，构建完成后只读，
// 此后多个 goroutine 同时读取是安全的
type DayRoster struct {
	period Period
	days   []*dayState // days[0] 对应 1 号
}

func NewDayRoster(period Period) *DayRoster {
	n := period.Days()
	r := &DayRoster{
		period: period,
		days:   make([]*dayState, n),
	}
	for i := range r.days {
		st := &dayState{
			primary:     make([]Assignment, 0),
			specialists: make(map[SpecialistCategory][]PersonnelRecord, len(SpecialistCategories)),
		}
		for _, c := range SpecialistCategories {
			st.specialists[c] = make([]PersonnelRecord, 0)
		}
		r.days[i] = st
	}
	return r
}

func (r *DayRoster) Period() Period {
	return r.period
}

// Days 返回该月天数，没有任何登记的日子同样计入
func (r *DayRoster) Days() int {
	return len(r.days)
}

func (r *DayRoster) day(loc Location, day int) (*dayState, error) {
	if day < 1 || day > len(r.days) {
		return nil, &MalformedRosterError{
			Location: loc,
			Reason:   fmt.Sprintf("日期 %d 超出 %s 的范围 1-%d", day, r.period, len(r.days)),
		}
	}
	return r.days[day-1], nil
}

// AddPrimary 登记一条主值班。同一人同一天重复登记相同班次视为同一条，班次冲突则报错
func (r *DayRoster) AddPrimary(loc Location, day int, person PersonnelRecord, marker DutyMarker) error {
	if !marker.Valid() {
		return &MalformedRosterError{Location: loc, Reason: fmt.Sprintf("无效的班次类型 %d", marker)}
	}

	st, err := r.day(loc, day)
	if err != nil {
		return err
	}

	for _, a := range st.primary {
		if a.Person.ID != person.ID {
			continue
		}
		if a.Marker == marker {
			return nil
		}
		return &DuplicateDutyError{
			Location: loc,
			Day:      day,
			Person:   person.DisplayName,
			Reason:   fmt.Sprintf("同时登记为 %s 和 %s", a.Marker, marker),
		}
	}

	st.primary = append(st.primary, Assignment{Person: person, Marker: marker})
	return nil
}

// AddSpecialist 登记一条专科值班。同一人同一天最多出现在一个专科类别中，且只能登记一次
func (r *DayRoster) AddSpecialist(loc Location, day int, category SpecialistCategory, person PersonnelRecord) error {
	if !category.Valid() {
		return &MalformedRosterError{Location: loc, Reason: fmt.Sprintf("无效的专科类别 %d", category)}
	}

	st, err := r.day(loc, day)
	if err != nil {
		return err
	}

	for _, c := range SpecialistCategories {
		for _, p := range st.specialists[c] {
			if p.ID == person.ID {
				return &DuplicateDutyError{
					Location: loc,
					Day:      day,
					Person:   person.DisplayName,
					Reason:   fmt.Sprintf("已登记在 %s 专科值班中，不能再登记到 %s", c, category),
				}
			}
		}
	}

	st.specialists[category] = append(st.specialists[category], person)
	return nil
}

// MarkerOf 返回某人在某天的主值班班次
func (r *DayRoster) MarkerOf(day int, personID string) (DutyMarker, bool) {
	if day < 1 || day > len(r.days) {
		return 0, false
	}
	for _, a := range r.days[day-1].primary {
		if a.Person.ID == personID {
			return a.Marker, true
		}
	}
	return 0, false
}

// Entry 返回某天登记情况的副本
func (r *DayRoster) Entry(day int) DayEntry {
	entry := DayEntry{
		Day:         day,
		Primary:     make([]Assignment, 0),
		Specialists: make(map[SpecialistCategory][]PersonnelRecord, len(SpecialistCategories)),
	}
	for _, c := range SpecialistCategories {
		entry.Specialists[c] = make([]PersonnelRecord, 0)
	}
	if day < 1 || day > len(r.days) {
		return entry
	}

	st := r.days[day-1]
	entry.Primary = append(entry.Primary, st.primary...)
	for _, c := range SpecialistCategories {
		entry.Specialists[c] = append(entry.Specialists[c], st.specialists[c]...)
	}
	return entry
}

// Entries 返回 1..N 每一天的登记情况
func (r *DayRoster) Entries() []DayEntry {
	entries := make([]DayEntry, 0, len(r.days))
	for day := 1; day <= len(r.days); day++ {
		entries = append(entries, r.Entry(day))
	}
	return entries
}

// DutyDays 统计某人在主值班表中的值班天数
func (r *DayRoster) DutyDays(personID string) int {
	n := 0
	for day := 1; day <= len(r.days); day++ {
		if _, ok := r.MarkerOf(day, personID); ok {
			n++
		}
	}
	return n
}

// PrimaryCount 返回主值班登记总数
func (r *DayRoster) PrimaryCount() int {
	n := 0
	for _, st := range r.days {
		n += len(st.primary)
	}
	return n
}

// SpecialistCount 返回某专科类别的登记总数
func (r *DayRoster) SpecialistCount(category SpecialistCategory) int {
	n := 0
	for _, st := range r.days {
		n += len(st.specialists[category])
	}
	return n
}
