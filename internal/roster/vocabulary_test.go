package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "ΓΙΩΡΓΟΣ ΠΑΠΑΔΟΠΟΥΛΟΣ", fold("  Γιώργος   Παπαδόπουλος "))
	assert.Equal(t, "ΜΑΡΤΙΟΣ", fold("Μάρτιος"))
	assert.Equal(t, "ΜΑΙΟΣ", fold("Μάιος"))
}

func TestAliasKey(t *testing.T) {
	// 拉丁字母 M、K 与希腊字母 Μ、Κ 视为相同
	assert.Equal(t, aliasKey("ΜΚ"), aliasKey("MK"))
	assert.Equal(t, "ΓΠ", aliasKey("Γ.Π."))
	assert.Equal(t, "", aliasKey(" - "))
}

func TestIsAnnotation(t *testing.T) {
	for _, text := range []string{"", "Κυρ", "Κυριακή", "3", "03/03/2024", "Μαρτίου", "Ημέρα", "ΕΦΗΜΕΡΙΕΣ ΜΑΡΤΙΟΣ 2024", "ΑΙΜΟΔΥΝΑΜΙΚΟ ΕΡΓΑΣΤΗΡΙΟ"} {
		assert.True(t, isAnnotation(text), text)
	}

	// 只有整条文本都是注释词时才算注释，单字母和表头缩写可能是人员简称
	for _, text := range []string{"ΓΠ", "Γιώργος Παπαδόπουλος", "ΓΠ#", "Κ. Νικολάου", "Π Ζήσης", "Κ", "ΑΑ", "ΗΜ", "ΤΕΠ", "ΤΕΠ Ζήσης", "Κυρ Ζήσης", "Μάρτιος Ζήσης"} {
		assert.False(t, isAnnotation(text), text)
	}
}

func TestIsHeaderLabel(t *testing.T) {
	for _, text := range []string{"Α/Α", "ΤΕΠ", "Ονοματεπώνυμο", "Ημέρα"} {
		assert.True(t, isHeaderLabel(text), text)
	}
	for _, text := range []string{"ΓΠ", "ΤΕΠ Ζήσης", "Κ. Νικολάου"} {
		assert.False(t, isHeaderLabel(text), text)
	}
}

func TestParseDayValue(t *testing.T) {
	v, ok := parseDayValue("3")
	assert.True(t, ok)
	assert.Equal(t, dayValue{day: 3}, v)

	v, ok = parseDayValue("03/03/2024")
	assert.True(t, ok)
	assert.Equal(t, dayValue{day: 3, month: 3, year: 2024}, v)

	v, ok = parseDayValue("3 Κυρ")
	assert.True(t, ok)
	assert.Equal(t, dayValue{day: 3}, v)

	v, ok = parseDayValue("3 Κ")
	assert.True(t, ok)
	assert.Equal(t, dayValue{day: 3}, v)

	_, ok = parseDayValue("Κυρ")
	assert.False(t, ok)
	_, ok = parseDayValue("32")
	assert.False(t, ok)
	_, ok = parseDayValue("ΓΠ")
	assert.False(t, ok)
}

func TestClassifyToken(t *testing.T) {
	tok, ok, err := classifyToken(" ΓΠ* ")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, dutyToken{name: "ΓΠ", onCall: true}, tok)

	tok, ok, err = classifyToken(">Μαρία Κωνσταντίνου")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, dutyToken{name: "Μαρία Κωνσταντίνου"}, tok)

	_, ok, err = classifyToken("—")
	assert.NoError(t, err)
	assert.False(t, ok)

	_, _, err = classifyToken("ΓΠ#")
	assert.Error(t, err)

	_, _, err = classifyToken(">")
	assert.Error(t, err)
}

func TestClassifyToken_MarkOnly(t *testing.T) {
	cases := map[string]dutyToken{
		"*":   {onCall: true},
		" * ": {onCall: true},
		"X":   {},
		"Χ":   {},
		"x":   {},
		"✓":   {},
		"Χ*":  {onCall: true},
	}
	for raw, want := range cases {
		tok, ok, err := classifyToken(raw)
		require.NoError(t, err, raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, tok, raw)
	}
}

func TestSplitTokens(t *testing.T) {
	assert.Equal(t, []string{"ΓΠ*", "ΜΚ", "ΕΝ"}, splitTokens("ΓΠ*\r\nΜΚ, ΕΝ;"))
	assert.Empty(t, splitTokens("  "))
}
