package roster

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/domain"
)

var march2024 = domain.Period{Month: 3, Year: 2024}

func sampleNames() domain.Table {
	return domain.Table{
		Name: "names",
		Rows: [][]string{
			{"Α/Α", "Ονοματεπώνυμο", "Συντομογραφία"},
			{"1", "Γιώργος Παπαδόπουλος", "ΓΠ"},
			{"2", "Μαρία Κωνσταντίνου", "ΜΚ"},
			{"3", "Ελένη Νικολάου", "ΕΝ, Λένα"},
			{"4", "Δημήτρης Οικονόμου", "ΔΟ"},
			{"5", "Σοφία Αθανασίου", "ΣΑ"},
		},
	}
}

func sampleResolver(t *testing.T) *NameResolver {
	t.Helper()
	r, err := NewNameResolver(sampleNames())
	require.NoError(t, err)
	return r
}

func mustResolve(t *testing.T, r *NameResolver, token string) domain.PersonnelRecord {
	t.Helper()
	p, err := r.Resolve(token)
	require.NoError(t, err)
	return p
}

// dayRows 构造按行排列日期的表格，cells[i] 是第 i+1 天的值班单元格
func dayRows(name string, cells ...string) domain.Table {
	t := domain.Table{Name: name, Rows: [][]string{{"Ημέρα", "Εφημερεύοντες"}}}
	for i, c := range cells {
		t.Rows = append(t.Rows, []string{strconv.Itoa(i + 1), c})
	}
	return t
}
