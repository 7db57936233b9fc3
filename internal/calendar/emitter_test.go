package calendar

import (
	"bytes"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/domain"
)

var (
	giorgos = domain.PersonnelRecord{ID: "ΓΙΩΡΓΟΣ ΠΑΠΑΔΟΠΟΥΛΟΣ", DisplayName: "Γιώργος Παπαδόπουλος"}
	maria   = domain.PersonnelRecord{ID: "ΜΑΡΙΑ ΚΩΝΣΤΑΝΤΙΝΟΥ", DisplayName: "Μαρία Κωνσταντίνου"}
)

func testEmitter() *Emitter {
	return &Emitter{
		ProductID: "-//roster-calendar//shifts//EL",
		UIDDomain: "roster.example.org",
		Stamp:     time.Date(2024, time.February, 20, 8, 0, 0, 0, time.UTC),
	}
}

func sampleEvents() []domain.ShiftEvent {
	period := domain.Period{Month: 3, Year: 2024}
	start := period.Date(3)
	return []domain.ShiftEvent{{
		Person:    giorgos,
		Day:       3,
		Start:     start,
		End:       start.AddDate(0, 0, 1),
		Marker:    domain.OnCall24h,
		CoWorkers: []domain.CoWorker{{Person: maria, Marker: domain.Regular24h}},
	}}
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, testEmitter().Encode(&buf, giorgos, sampleEvents()))
	out := buf.String()

	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "METHOD:PUBLISH")
	assert.Contains(t, out, "PRODID:-//roster-calendar//shifts//EL")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20240303")
	assert.Contains(t, out, "DTEND;VALUE=DATE:20240304")
	assert.Contains(t, out, "SUMMARY:On-call 24h shift - Sunday")
	assert.Contains(t, out, "DTSTAMP:20240220T080000Z")
	assert.Contains(t, out, "@roster.example.org")

	cal, err := ics.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "On-call 24h shift - Sunday", events[0].GetProperty(ics.ComponentPropertySummary).Value)
	assert.Contains(t, events[0].GetProperty(ics.ComponentPropertyDescription).Value, "Co-workers on this day:")
}

func TestEncode_Deterministic(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, testEmitter().Encode(&a, giorgos, sampleEvents()))
	require.NoError(t, testEmitter().Encode(&b, giorgos, sampleEvents()))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestEncode_NoEvents(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, testEmitter().Encode(&buf, maria, nil))
	assert.Contains(t, buf.String(), "BEGIN:VCALENDAR")
	assert.NotContains(t, buf.String(), "BEGIN:VEVENT")
}

func TestUID(t *testing.T) {
	e := testEmitter()
	day := time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, e.UID(giorgos, day), e.UID(giorgos, day))
	assert.NotEqual(t, e.UID(giorgos, day), e.UID(maria, day))
	assert.NotEqual(t, e.UID(giorgos, day), e.UID(giorgos, day.AddDate(0, 0, 1)))
	assert.True(t, strings.HasSuffix(e.UID(giorgos, day), "@roster.example.org"))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "Γιώργος_Παπαδόπουλος_shifts.ics", FileName(giorgos))
	assert.Equal(t, "A_B_shifts.ics", FileName(domain.PersonnelRecord{DisplayName: " A/B "}))
}
