package roster

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/domain"
)

func cathLabTable() domain.Table {
	return domain.Table{
		Name: "cathlab",
		Rows: [][]string{
			{"ΕΦΗΜΕΡΙΕΣ ΑΙΜΟΔΥΝΑΜΙΚΟΥ ΕΡΓΑΣΤΗΡΙΟΥ"},
			{"Ημερομηνία", "Ιατρός"},
			{"01-03-2024", "ΔΟ"},
			{"02-03-2024", ""},
			{"03-03-2024", "ΣΑ*"},
		},
	}
}

func TestMerge_AddsSpecialistEntries(t *testing.T) {
	r := sampleResolver(t)
	roster, err := Parse(dayRows("roster", "ΓΠ", "", "ΜΚ"), march2024, r)
	require.NoError(t, err)

	merged, err := Merge(cathLabTable(), domain.CathLab, march2024, r, roster)
	require.NoError(t, err)
	assert.Same(t, roster, merged)

	assert.Equal(t, 2, roster.SpecialistCount(domain.CathLab))
	assert.Equal(t, 0, roster.SpecialistCount(domain.Electrophysiology))
	// 专科登记不影响主值班
	assert.Equal(t, 2, roster.PrimaryCount())

	entry := roster.Entry(3)
	require.Len(t, entry.Specialists[domain.CathLab], 1)
	assert.Equal(t, "Σοφία Αθανασίου", entry.Specialists[domain.CathLab][0].DisplayName)
	assert.NotNil(t, entry.Specialists[domain.Electrophysiology])
	assert.Empty(t, entry.Specialists[domain.Electrophysiology])
}

func TestMerge_AbsentTablesLeaveEmptyCategories(t *testing.T) {
	roster, err := Parse(dayRows("roster", "ΓΠ"), march2024, sampleResolver(t))
	require.NoError(t, err)

	for _, entry := range roster.Entries() {
		for _, c := range domain.SpecialistCategories {
			people, ok := entry.Specialists[c]
			assert.True(t, ok)
			assert.NotNil(t, people)
			assert.Empty(t, people)
		}
	}
}

func TestMerge_SecondCategorySameDayIsDuplicate(t *testing.T) {
	r := sampleResolver(t)
	roster := domain.NewDayRoster(march2024)

	_, err := Merge(cathLabTable(), domain.CathLab, march2024, r, roster)
	require.NoError(t, err)

	ep := domain.Table{Name: "ep", Rows: [][]string{{"01/03/2024", "Δημήτρης Οικονόμου"}}}
	_, err = Merge(ep, domain.Electrophysiology, march2024, r, roster)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicateDuty))

	var dup *domain.DuplicateDutyError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, 1, dup.Day)
	assert.Equal(t, "ep", dup.Table)
}

func TestMerge_SameCategoryTwiceIsDuplicate(t *testing.T) {
	table := domain.Table{Rows: [][]string{{"5", "ΣΑ, Σοφία Αθανασίου"}}}

	_, err := Merge(table, domain.CathLab, march2024, sampleResolver(t), domain.NewDayRoster(march2024))
	assert.True(t, errors.Is(err, domain.ErrDuplicateDuty))
}

func TestMerge_RejectsMismatchedPeriod(t *testing.T) {
	roster := domain.NewDayRoster(domain.Period{Month: 4, Year: 2024})

	_, err := Merge(cathLabTable(), domain.CathLab, march2024, sampleResolver(t), roster)
	assert.Error(t, err)
}

func TestMerge_RejectsInvalidCategory(t *testing.T) {
	_, err := Merge(cathLabTable(), domain.SpecialistCategory(0), march2024, sampleResolver(t), domain.NewDayRoster(march2024))
	assert.Error(t, err)
}
