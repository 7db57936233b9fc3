package roster

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/domain"
)

func TestNameResolver_Resolve(t *testing.T) {
	r := sampleResolver(t)
	require.Equal(t, 5, r.Len())

	giorgos := mustResolve(t, r, "ΓΠ")
	assert.Equal(t, "Γιώργος Παπαδόπουλος", giorgos.DisplayName)
	assert.Equal(t, "ΓΙΩΡΓΟΣ ΠΑΠΑΔΟΠΟΥΛΟΣ", giorgos.ID)
	assert.Equal(t, []string{"ΓΠ"}, giorgos.Aliases)

	// 全名、大小写、重音和多余空白都不影响解析
	for _, token := range []string{"Γιώργος Παπαδόπουλος", "ΓΙΩΡΓΟΣ  ΠΑΠΑΔΟΠΟΥΛΟΣ", "γιωργος παπαδοπουλος", " Γ.Π. "} {
		assert.Equal(t, giorgos, mustResolve(t, r, token), token)
	}

	// 拉丁字母键盘输入的简称
	assert.Equal(t, "Μαρία Κωνσταντίνου", mustResolve(t, r, "MK").DisplayName)

	// 同一单元格中的多个简称
	elena := mustResolve(t, r, "Λένα")
	assert.Equal(t, "Ελένη Νικολάου", elena.DisplayName)
	assert.Equal(t, elena, mustResolve(t, r, "ΕΝ"))
	assert.Equal(t, []string{"ΕΝ", "Λένα"}, elena.Aliases)
}

func TestNameResolver_Unknown(t *testing.T) {
	r := sampleResolver(t)

	_, err := r.Resolve("Ζήσης")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownPersonnel))

	var unknown *domain.UnknownPersonnelError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "Ζήσης", unknown.Token)

	_, ok := r.Lookup("")
	assert.False(t, ok)
}

func TestNameResolver_AmbiguousAliasAtLoad(t *testing.T) {
	names := domain.Table{
		Name: "names",
		Rows: [][]string{
			{"Γιώργος Παπαδόπουλος", "ΓΠ"},
			{"Γεώργιος Πέτρου", "ΓΠ"},
		},
	}

	_, err := NewNameResolver(names)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAmbiguousAlias))

	var ambiguous *domain.AmbiguousAliasError
	require.True(t, errors.As(err, &ambiguous))
	assert.Equal(t, "ΓΠ", ambiguous.Alias)
	assert.Equal(t, "Γιώργος Παπαδόπουλος", ambiguous.First)
	assert.Equal(t, "Γεώργιος Πέτρου", ambiguous.Second)
	assert.Equal(t, domain.Location{Table: "names", Row: 2, Column: 2}, ambiguous.Location)
}

func TestNameResolver_DuplicateDisplayName(t *testing.T) {
	names := domain.Table{Rows: [][]string{
		{"Μαρία Κωνσταντίνου", "ΜΚ"},
		{"ΜΑΡΙΑ ΚΩΝΣΤΑΝΤΙΝΟΥ", "ΜΚ2"},
	}}

	_, err := NewNameResolver(names)
	assert.True(t, errors.Is(err, domain.ErrAmbiguousAlias))
}

func TestNameResolver_OwnNameAsAlias(t *testing.T) {
	names := domain.Table{Rows: [][]string{{"Μαρία Κωνσταντίνου", "Μαρία Κωνσταντίνου", "ΜΚ"}}}

	r, err := NewNameResolver(names)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())
}

func TestNameResolver_RecordsKeepTableOrder(t *testing.T) {
	r := sampleResolver(t)

	names := make([]string, 0, r.Len())
	for _, p := range r.Records() {
		names = append(names, p.DisplayName)
	}
	assert.Equal(t, []string{
		"Γιώργος Παπαδόπουλος",
		"Μαρία Κωνσταντίνου",
		"Ελένη Νικολάου",
		"Δημήτρης Οικονόμου",
		"Σοφία Αθανασίου",
	}, names)
}
