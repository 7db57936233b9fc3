package domain

import (
	"fmt"
	"strings"
	"time"
)

// CoWorker 是同一天值班的其他人员。主值班同事带有 Marker，专科值班同事带有 Category，二者只有一个非零
type CoWorker struct {
	Person   PersonnelRecord    `json:"person"`
	Marker   DutyMarker         `json:"marker,omitempty"`
	Category SpecialistCategory `json:"category,omitempty"`
}

func (c CoWorker) IsSpecialist() bool {
	return c.Category != 0
}

func (c CoWorker) Label() string {
	if c.IsSpecialist() {
		return c.Category.Label()
	}
	return c.Marker.Label()
}

// ShiftEvent 表示某人某天的一次 24 小时值班，创建后不再修改
type ShiftEvent struct {
	Person    PersonnelRecord `json:"person"`
	Day       int             `json:"day"`
	Start     time.Time       `json:"start"`
	End       time.Time       `json:"end"` // 次日零点，不包含
	Marker    DutyMarker      `json:"marker"`
	CoWorkers []CoWorker      `json:"coWorkers"`
}

func (e ShiftEvent) Summary() string {
	return fmt.Sprintf("%s - %s", e.Marker.Summary(), e.Start.Weekday())
}

func (e ShiftEvent) Description() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Your shift: %s\n", e.Marker.Summary())

	if len(e.CoWorkers) == 0 {
		sb.WriteString("\nNo other personnel on duty this day.")
		return sb.String()
	}

	sb.WriteString("\nCo-workers on this day:")
	for _, c := range e.CoWorkers {
		fmt.Fprintf(&sb, "\n- %s (%s)", c.Person.DisplayName, c.Label())
	}
	return sb.String()
}
