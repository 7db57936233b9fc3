package tables

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/domain"
)

const docxBody = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>ΕΦΗΜΕΡΙΕΣ ΜΑΡΤΙΟΣ 2024</w:t></w:r></w:p>
<w:tbl>
<w:tr>
<w:tc><w:p><w:r><w:t>Ημέρα</w:t></w:r></w:p></w:tc>
<w:tc><w:tcPr><w:gridSpan w:val="2"/></w:tcPr><w:p><w:r><w:t>Εφημερεύοντες</w:t></w:r></w:p></w:tc>
</w:tr>
<w:tr>
<w:tc><w:tcPr><w:vMerge w:val="restart"/></w:tcPr><w:p><w:r><w:t>1</w:t></w:r></w:p></w:tc>
<w:tc><w:p><w:r><w:t>ΓΠ</w:t><w:t>*</w:t></w:r></w:p><w:p><w:r><w:t>ΜΚ</w:t></w:r></w:p></w:tc>
<w:tc><w:p><w:r><w:t xml:space="preserve"> ΕΝ </w:t></w:r></w:p></w:tc>
</w:tr>
<w:tr>
<w:tc><w:tcPr><w:vMerge/></w:tcPr><w:p/></w:tc>
<w:tc><w:p><w:r><w:t>ΔΟ</w:t><w:br/><w:t>ΣΑ</w:t></w:r></w:p></w:tc>
<w:tc><w:p/></w:tc>
</w:tr>
<w:tr>
<w:tc><w:p/></w:tc>
<w:tc><w:p/></w:tc>
<w:tc><w:p/></w:tc>
</w:tr>
</w:tbl>
<w:p/>
<w:p><w:r><w:t>Ονόματα</w:t></w:r></w:p>
<w:tbl>
<w:tr>
<w:tc><w:p><w:r><w:t>Γιώργος Παπαδόπουλος</w:t></w:r></w:p></w:tc>
<w:tc>
<w:tbl><w:tr><w:tc><w:p><w:r><w:t>ΓΠ</w:t></w:r></w:p></w:tc></w:tr><w:tr><w:tc><w:p><w:r><w:t>Γιώργος</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
<w:p/>
</w:tc>
</w:tr>
</w:tbl>
</w:body>
</w:document>`

func buildDocx(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDecode_Docx(t *testing.T) {
	data := buildDocx(t, docxBody)

	doc, err := Decode("ΕΦΗΜΕΡΙΕΣ ΜΑΡΤΙΟΣ 2024.docx", bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, doc.Tables, 2)

	roster := doc.Tables[0]
	assert.Equal(t, "ΕΦΗΜΕΡΙΕΣ ΜΑΡΤΙΟΣ 2024.docx#1", roster.Name)
	assert.Equal(t, "ΕΦΗΜΕΡΙΕΣ ΜΑΡΤΙΟΣ 2024", roster.Title)
	// 全空的第 4 行被丢弃；横向合并重复内容；纵向合并沿用上方内容
	assert.Equal(t, [][]string{
		{"Ημέρα", "Εφημερεύοντες", "Εφημερεύοντες"},
		{"1", "ΓΠ*\nΜΚ", "ΕΝ"},
		{"1", "ΔΟ\nΣΑ", ""},
	}, roster.Rows)

	names := doc.Tables[1]
	assert.Equal(t, "Ονόματα", names.Title)
	assert.Equal(t, [][]string{{"Γιώργος Παπαδόπουλος", "ΓΠ\nΓιώργος"}}, names.Rows)
}

func TestDecode_DocxWithoutDocumentPart(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = Decode("empty.docx", bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	assert.Error(t, err)
}

func TestDecode_Xlsx(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", "Εφημερίες"))
	require.NoError(t, f.SetSheetRow("Εφημερίες", "A1", &[]interface{}{"Ημέρα", "Εφημερεύοντες"}))
	require.NoError(t, f.SetSheetRow("Εφημερίες", "A2", &[]interface{}{1, " ΓΠ* "}))
	require.NoError(t, f.SetSheetRow("Εφημερίες", "A4", &[]interface{}{2, "ΜΚ"}))
	_, err := f.NewSheet("Ονόματα")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Ονόματα", "A1", &[]interface{}{"Γιώργος Παπαδόπουλος", "ΓΠ"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	data := buf.Bytes()

	doc, err := Decode("roster.xlsx", bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, doc.Tables, 2)

	assert.Equal(t, "roster.xlsx#Εφημερίες", doc.Tables[0].Name)
	assert.Equal(t, "Εφημερίες", doc.Tables[0].Title)
	assert.Equal(t, [][]string{{"Ημέρα", "Εφημερεύοντες"}, {"1", "ΓΠ*"}, {"2", "ΜΚ"}}, doc.Tables[0].Rows)
	assert.Equal(t, [][]string{{"Γιώργος Παπαδόπουλος", "ΓΠ"}}, doc.Tables[1].Rows)
}

func TestDecode_CSV(t *testing.T) {
	data := []byte("Ημέρα,Εφημερεύοντες\n1,\"ΓΠ*\nΜΚ\"\n,\n2,ΕΝ,extra\n")

	doc, err := Decode("roster.CSV", bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, doc.Tables, 1)
	assert.Equal(t, [][]string{
		{"Ημέρα", "Εφημερεύοντες"},
		{"1", "ΓΠ*\nΜΚ"},
		{"2", "ΕΝ", "extra"},
	}, doc.Tables[0].Rows)
}

func TestDecode_Unsupported(t *testing.T) {
	data := []byte("hello")
	_, err := Decode("roster.pdf", bytes.NewReader(data), int64(len(data)))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func table(name, title string, rows ...[]string) domain.Table {
	return domain.Table{Name: name, Title: title, Rows: rows}
}

func TestSplit(t *testing.T) {
	doc := &domain.Document{
		Name: "main.docx",
		Tables: []domain.Table{
			table("t1", "", []string{"1", "ΓΠ"}),
			table("t2", "", []string{"Γιώργος Παπαδόπουλος", "ΓΠ"}),
			table("t3", "ΕΦΗΜΕΡΙΕΣ ΗΛΕΚΤΡΟΦΥΣΙΟΛΟΓΙΑΣ", []string{"01/03/2024", "ΓΠ"}),
			table("t4", "", []string{"Ημερομηνία", "Ιατρός"}, []string{"02/03/2024", "ΓΠ"}),
		},
	}

	parts, err := Split(doc)
	require.NoError(t, err)
	assert.Equal(t, "t1", parts.Roster.Name)
	assert.Equal(t, "t2", parts.Names.Name)
	require.Len(t, parts.Specialists, 2)
	assert.Equal(t, domain.Electrophysiology, parts.Specialists[0].Category)
	// 无法从标题识别时按位置：第 4 个表格为电生理
	assert.Equal(t, domain.Electrophysiology, parts.Specialists[1].Category)
}

func TestSplit_DetectsCathLabFromHeaderRow(t *testing.T) {
	doc := &domain.Document{Tables: []domain.Table{
		table("t1", "", []string{"1", "ΓΠ"}),
		table("t2", "", []string{"Γιώργος Παπαδόπουλος", "ΓΠ"}),
		table("t3", "", []string{"Αιμοδυναμικό Εργαστήριο"}, []string{"01/03/2024", "ΓΠ"}),
	}}

	parts, err := Split(doc)
	require.NoError(t, err)
	require.Len(t, parts.Specialists, 1)
	assert.Equal(t, domain.CathLab, parts.Specialists[0].Category)
}

func TestSplit_TableCount(t *testing.T) {
	one := &domain.Document{Name: "one.docx", Tables: []domain.Table{table("t1", "", []string{"1"})}}
	_, err := Split(one)
	assert.True(t, errors.Is(err, domain.ErrMalformedRoster))

	five := &domain.Document{Name: "five.docx"}
	for i := 0; i < 5; i++ {
		five.Tables = append(five.Tables, table("t", "", []string{"1"}))
	}
	_, err = Split(five)
	assert.True(t, errors.Is(err, domain.ErrMalformedRoster))
}

func TestInput_SeparateSpecialistDocuments(t *testing.T) {
	main := &domain.Document{Name: "ΕΦΗΜΕΡΙΕΣ ΜΑΡΤΙΟΣ 2024.docx", Tables: []domain.Table{
		table("t1", "", []string{"1", "ΓΠ"}),
		table("t2", "", []string{"Γιώργος Παπαδόπουλος", "ΓΠ"}),
	}}
	cathLab := &domain.Document{Name: "cath.docx", Tables: []domain.Table{
		table("c1", "", []string{"01/03/2024", "ΓΠ"}),
		table("c2", "", []string{"02/03/2024", "ΓΠ"}),
	}}

	in, err := Input(main, cathLab, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, main.Name, in.FileName)
	require.Len(t, in.Specialists, 2)
	for _, st := range in.Specialists {
		assert.Equal(t, domain.CathLab, st.Category)
		assert.True(t, strings.HasPrefix(st.Table.Name, "c"))
	}
}
