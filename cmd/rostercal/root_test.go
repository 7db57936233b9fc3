package main

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/domain"
	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/seed"
	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/utils"
)

func writeFixture(t *testing.T) (*utils.RosterFixture, string) {
	t.Helper()
	rng := rand.New(rand.NewSource(3))
	f := utils.GenerateRandomRosterFixture(rng, domain.Period{Month: 6, Year: 2025}, 6)
	path := filepath.Join(t.TempDir(), f.FileName)
	require.NoError(t, seed.WriteRosterWorkbook(f, path, true))
	return f, path
}

func execute(args ...string) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func dutyDays(f *utils.RosterFixture, name string) int {
	n := 0
	for _, people := range f.Primary {
		if _, ok := people[name]; ok {
			n++
		}
	}
	return n
}

func fileName(name string) string {
	return strings.ReplaceAll(name, " ", "_") + "_shifts.ics"
}

func TestRun_AllPersonnel(t *testing.T) {
	f, path := writeFixture(t)
	out := t.TempDir()

	require.NoError(t, execute(path, "--out", out))

	for _, p := range f.Personnel {
		content, err := os.ReadFile(filepath.Join(out, fileName(p.Name)))
		days := dutyDays(f, p.Name)
		if days == 0 {
			assert.True(t, os.IsNotExist(err), p.Name)
			continue
		}
		require.NoError(t, err, p.Name)
		assert.Equal(t, days, strings.Count(string(content), "BEGIN:VEVENT"), p.Name)
	}
}

func TestRun_SelectedPersonIsDeterministic(t *testing.T) {
	f, path := writeFixture(t)
	person := f.Personnel[0]

	first, second := t.TempDir(), t.TempDir()
	require.NoError(t, execute(path, "--person", person.Alias, "--out", first))
	require.NoError(t, execute(path, "-p", person.Name, "-o", second))

	a, err := os.ReadFile(filepath.Join(first, fileName(person.Name)))
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(second, fileName(person.Name)))
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))

	entries, err := os.ReadDir(first)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRun_UnknownPersonGetsEmptyCalendar(t *testing.T) {
	_, path := writeFixture(t)
	out := t.TempDir()

	require.NoError(t, execute(path, "--person", "Κανένας Άγνωστος", "--out", out))

	content, err := os.ReadFile(filepath.Join(out, "Κανένας_Άγνωστος_shifts.ics"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "BEGIN:VCALENDAR")
	assert.NotContains(t, string(content), "BEGIN:VEVENT")
}

func TestRun_Errors(t *testing.T) {
	_, path := writeFixture(t)

	assert.Error(t, execute(path, "--month", "6"))
	assert.Error(t, execute(filepath.Join(t.TempDir(), "missing.xlsx")))
	assert.Error(t, execute())
}
