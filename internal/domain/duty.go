package domain

// DutyMarker 表示主值班表中的班次类型
type DutyMarker int

const (
	Regular24h DutyMarker = iota + 1
	OnCall24h
)

func (m DutyMarker) Valid() bool {
	return m == Regular24h || m == OnCall24h
}

// Label 用于事件描述中的同事标注
func (m DutyMarker) Label() string {
	switch m {
	case Regular24h:
		return "Regular"
	case OnCall24h:
		return "On-call"
	default:
		return ""
	}
}

// Summary 用于日历事件的标题
func (m DutyMarker) Summary() string {
	switch m {
	case Regular24h:
		return "Regular 24h shift"
	case OnCall24h:
		return "On-call 24h shift"
	default:
		return ""
	}
}

func (m DutyMarker) String() string {
	switch m {
	case Regular24h:
		return "Regular24h"
	case OnCall24h:
		return "OnCall24h"
	default:
		return "Unknown"
	}
}

// SpecialistCategory 表示可选的专科值班表类别
type SpecialistCategory int

const (
	CathLab SpecialistCategory = iota + 1
	Electrophysiology
)

// SpecialistCategories 按描述中的分组顺序排列
var SpecialistCategories = []SpecialistCategory{CathLab, Electrophysiology}

func (c SpecialistCategory) Valid() bool {
	return c == CathLab || c == Electrophysiology
}

func (c SpecialistCategory) Label() string {
	switch c {
	case CathLab:
		return "Cath Lab"
	case Electrophysiology:
		return "Electrophysiology"
	default:
		return ""
	}
}

func (c SpecialistCategory) String() string {
	switch c {
	case CathLab:
		return "CathLab"
	case Electrophysiology:
		return "Electrophysiology"
	default:
		return "Unknown"
	}
}
