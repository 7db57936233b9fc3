package roster

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/domain"
	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/utils"
)

func greekScenario() Input {
	return Input{
		FileName: "ΕΦΗΜΕΡΙΕΣ Μάρτιος 2024.docx",
		Roster:   dayRows("roster", "", "", "ΓΠ*\nΜΚ"),
		Names: domain.Table{
			Name: "names",
			Rows: [][]string{
				{"Γιώργος Παπαδόπουλος", "ΓΠ"},
				{"Μαρία Κωνσταντίνου", "ΜΚ"},
			},
		},
	}
}

func TestBuild_GreekScenario(t *testing.T) {
	res, err := Build(greekScenario())
	require.NoError(t, err)
	assert.Equal(t, march2024, res.Period)
	assert.Equal(t, SourceFileName, res.PeriodSource)

	giorgos, events, err := res.Calendar("Γιώργος Παπαδόπουλος")
	require.NoError(t, err)
	assert.Equal(t, "Γιώργος Παπαδόπουλος", giorgos.DisplayName)
	require.Len(t, events, 1)
	assert.Equal(t, 3, events[0].Day)
	assert.Equal(t, domain.OnCall24h, events[0].Marker)
	assert.Contains(t, events[0].Description(), "Μαρία Κωνσταντίνου (Regular)")
	assert.Equal(t, "On-call 24h shift - Sunday", events[0].Summary())

	_, events, err = res.Calendar("ΜΚ")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 3, events[0].Day)
	assert.Equal(t, domain.Regular24h, events[0].Marker)
	assert.Contains(t, events[0].Description(), "Γιώργος Παπαδόπουλος (On-call)")
}

func TestBuild_OverrideBeatsFileName(t *testing.T) {
	in := greekScenario()
	in.Override = &domain.Period{Month: 4, Year: 2024}

	res, err := Build(in)
	require.NoError(t, err)
	assert.Equal(t, domain.Period{Month: 4, Year: 2024}, res.Period)
	assert.Equal(t, SourceOverride, res.PeriodSource)
	assert.Equal(t, 30, res.Roster.Days())
}

func TestBuild_NameTableValidatedFirst(t *testing.T) {
	in := greekScenario()
	in.Names.Rows = append(in.Names.Rows, []string{"Γεώργιος Πέτρου", "ΓΠ"})
	// 主值班表本身也有错误，但应先报告名单表的歧义
	in.Roster = dayRows("roster", "Ζήσης")

	_, err := Build(in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAmbiguousAlias))
}

func TestBuild_PeriodUndetermined(t *testing.T) {
	in := greekScenario()
	in.FileName = "upload.docx"

	_, err := Build(in)
	assert.True(t, errors.Is(err, domain.ErrPeriodUndetermined))
}

func TestResult_UnknownOrIdlePersonGetsEmptyCalendar(t *testing.T) {
	in := greekScenario()
	in.Names.Rows = append(in.Names.Rows, []string{"Ελένη Νικολάου", "ΕΝ"})

	res, err := Build(in)
	require.NoError(t, err)

	person, events, err := res.Calendar("Ζήσης Ζήσης")
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
	assert.Equal(t, "Ζήσης Ζήσης", person.DisplayName)

	_, events, err = res.Calendar("ΕΝ")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestBuild_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	f := utils.GenerateRandomRosterFixture(rng, march2024, 10)
	in := fixtureInput(f)

	first, err := Build(in)
	require.NoError(t, err)
	second, err := Build(in)
	require.NoError(t, err)

	a, err := first.Calendars(context.Background())
	require.NoError(t, err)
	b, err := second.Calendars(context.Background())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func fixtureInput(f *utils.RosterFixture) Input {
	return Input{
		FileName: f.FileName,
		Roster:   f.Roster,
		Names:    f.Names,
		Specialists: []SpecialistTable{
			{Category: domain.CathLab, Table: f.CathLab},
			{Category: domain.Electrophysiology, Table: f.EP},
		},
	}
}

// 对随机生成的值班表检查同事列表的对称性和完整性，两种表格方向各测一次
func TestBuild_RandomRostersAreCrossConsistent(t *testing.T) {
	rng := rand.New(rand.NewSource(20240303))

	for i := 0; i < 30; i++ {
		period := utils.GenerateRandomPeriod(rng)
		f := utils.GenerateRandomRosterFixture(rng, period, 2+rng.Intn(12))

		in := fixtureInput(f)
		if i%2 == 1 {
			in.Roster = utils.Transpose(f.Roster)
		}

		res, err := Build(in)
		require.NoError(t, err, "fixture %d", i)
		require.Equal(t, period, res.Period)

		calendars, err := res.Calendars(context.Background())
		require.NoError(t, err)
		require.Len(t, calendars, len(f.Personnel))
		require.NoError(t, utils.ValidateCalendars(res.Roster, calendars))

		byDay := func(id string, day int) (domain.ShiftEvent, bool) {
			for _, e := range calendars[id] {
				if e.Day == day {
					return e, true
				}
			}
			return domain.ShiftEvent{}, false
		}

		for day, onDuty := range f.Primary {
			for p, marker := range onDuty {
				person, ok := res.Resolver.Lookup(p)
				require.True(t, ok)
				event, ok := byDay(person.ID, day)
				require.True(t, ok, "%s day %d", p, day)
				assert.Equal(t, marker, event.Marker)

				for q, qMarker := range onDuty {
					if q == p {
						continue
					}
					assert.Contains(t, event.Description(), "- "+q+" ("+qMarker.Label()+")")
				}
				for q, category := range f.Specialists[day] {
					if q == p {
						continue
					}
					assert.Contains(t, event.Description(), "- "+q+" ("+category.Label()+")")
				}
			}
		}

		for _, person := range res.Resolver.Records() {
			assert.Equal(t, res.Roster.DutyDays(person.ID), len(calendars[person.ID]))
		}
	}
}
