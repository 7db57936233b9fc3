package calendar

import (
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/domain"
)

const ContentType = "text/calendar; charset=utf-8"

// 事件 UID 的命名空间，同一人同一天的事件在多次运行之间 UID 不变
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("roster-calendar/shift-event"))

// Emitter 把值班事件序列化为 iCalendar。Stamp 作为所有事件的 DTSTAMP，
// 由调用方传入以保证相同输入得到完全相同的文件
type Emitter struct {
	ProductID string
	UIDDomain string
	Stamp     time.Time
}

func (e *Emitter) Calendar(person domain.PersonnelRecord, events []domain.ShiftEvent) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(e.ProductID)
	cal.SetCalscale("GREGORIAN")
	cal.SetXWRCalName(person.DisplayName + " shifts")

	for _, ev := range events {
		vevent := cal.AddEvent(e.UID(person, ev.Start))
		vevent.SetDtStampTime(e.Stamp.UTC())
		vevent.SetAllDayStartAt(ev.Start)
		vevent.SetAllDayEndAt(ev.End)
		vevent.SetSummary(ev.Summary())
		vevent.SetDescription(ev.Description())
	}
	return cal
}

// Encode 写出 person 的日历，没有事件时写出一个空日历
func (e *Emitter) Encode(w io.Writer, person domain.PersonnelRecord, events []domain.ShiftEvent) error {
	if err := e.Calendar(person, events).SerializeTo(w); err != nil {
		return fmt.Errorf("写出 %s 的日历失败：%w", person.DisplayName, err)
	}
	return nil
}

// UID 由人员 ID 和日期决定
func (e *Emitter) UID(person domain.PersonnelRecord, day time.Time) string {
	id := uuid.NewSHA1(uidNamespace, []byte(person.ID+"|"+day.Format("2006-01-02")))
	if e.UIDDomain == "" {
		return id.String()
	}
	return id.String() + "@" + e.UIDDomain
}

// FileName 生成 "<Display_Name>_shifts.ics"
func FileName(person domain.PersonnelRecord) string {
	name := strings.Join(strings.Fields(person.DisplayName), "_")
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
	return name + "_shifts.ics"
}
