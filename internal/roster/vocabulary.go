package roster

import (
	"strings"
	"unicode"

	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// 唯一支持的词汇表是希腊语，所有比较都在 fold 之后进行（去重音、转大写）
var monthNames = map[string]int{
	"ΙΑΝΟΥΑΡΙΟΣ": 1, "ΙΑΝΟΥΑΡΙΟΥ": 1,
	"ΦΕΒΡΟΥΑΡΙΟΣ": 2, "ΦΕΒΡΟΥΑΡΙΟΥ": 2,
	"ΜΑΡΤΙΟΣ": 3, "ΜΑΡΤΙΟΥ": 3,
	"ΑΠΡΙΛΙΟΣ": 4, "ΑΠΡΙΛΙΟΥ": 4,
	"ΜΑΙΟΣ": 5, "ΜΑΙΟΥ": 5, "ΜΑΗΣ": 5,
	"ΙΟΥΝΙΟΣ": 6, "ΙΟΥΝΙΟΥ": 6,
	"ΙΟΥΛΙΟΣ": 7, "ΙΟΥΛΙΟΥ": 7,
	"ΑΥΓΟΥΣΤΟΣ": 8, "ΑΥΓΟΥΣΤΟΥ": 8,
	"ΣΕΠΤΕΜΒΡΙΟΣ": 9, "ΣΕΠΤΕΜΒΡΙΟΥ": 9,
	"ΟΚΤΩΒΡΙΟΣ": 10, "ΟΚΤΩΒΡΙΟΥ": 10,
	"ΝΟΕΜΒΡΙΟΣ": 11, "ΝΟΕΜΒΡΙΟΥ": 11,
	"ΔΕΚΕΜΒΡΙΟΣ": 12, "ΔΕΚΕΜΒΡΙΟΥ": 12,
}

var weekdayNames = map[string]struct{}{
	"ΔΕΥΤΕΡΑ": {}, "ΤΡΙΤΗ": {}, "ΤΕΤΑΡΤΗ": {}, "ΠΕΜΠΤΗ": {},
	"ΠΑΡΑΣΚΕΥΗ": {}, "ΣΑΒΒΑΤΟ": {}, "ΚΥΡΙΑΚΗ": {},
	"ΔΕΥ": {}, "ΤΡΙ": {}, "ΤΕΤ": {}, "ΠΕΜ": {}, "ΠΑΡ": {}, "ΣΑΒ": {}, "ΚΥΡ": {},
}

// 单字母的星期缩写只在日期单元格中（如 "3 Κ"）识别，在值班单元格中可能是姓名首字母
var weekdayLetters = map[string]struct{}{
	"Δ": {}, "Τ": {}, "Π": {}, "Σ": {}, "Κ": {},
}

// 表头、标题中常见的词，出现在单元格中时视为注释而非人员
var labelWords = map[string]struct{}{
	"ΕΦΗΜΕΡΙΕΣ": {}, "ΕΦΗΜΕΡΙΑ": {}, "ΕΦΗΜΕΡΙΩΝ": {}, "ΕΦΗΜΕΡΕΥΩΝ": {}, "ΕΦΗΜΕΡΕΥΟΝΤΕΣ": {},
	"ΒΑΡΔΙΕΣ": {}, "ΒΑΡΔΙΑ": {}, "ΠΡΟΓΡΑΜΜΑ": {},
	"ΗΜΕΡΑ": {}, "ΗΜΕΡΟΜΗΝΙΑ": {}, "ΜΗΝΑΣ": {}, "ΜΗΝΟΣ": {}, "ΕΤΟΣ": {}, "ΕΤΟΥΣ": {},
	"ΟΝΟΜΑ": {}, "ΟΝΟΜΑΤΕΠΩΝΥΜΟ": {}, "ΣΥΝΤΟΜΟΓΡΑΦΙΑ": {}, "ΣΥΝΤΜΗΣΗ": {}, "ΙΑΤΡΟΣ": {}, "ΙΑΤΡΟΙ": {},
	"ΜΕΓΑΛΗ": {}, "ΜΙΚΡΗ": {}, "ΕΝΕΡΓΟΣ": {}, "ΕΤΟΙΜΟΤΗΤΑ": {},
	"ΑΙΜΟΔΥΝΑΜΙΚΟ": {}, "ΑΙΜΟΔΥΝΑΜΙΚΟΥ": {}, "ΗΛΕΚΤΡΟΦΥΣΙΟΛΟΓΙΑ": {}, "ΗΛΕΚΤΡΟΦΥΣΙΟΛΟΓΙΑΣ": {},
	"ΕΡΓΑΣΤΗΡΙΟ": {}, "ΕΡΓΑΣΤΗΡΙΟΥ": {}, "ΚΛΙΝΙΚΗ": {}, "ΚΑΡΔΙΟΛΟΓΙΚΗ": {},
	"SHIFTS": {}, "DAY": {}, "DATE": {}, "NAME": {}, "FULL": {}, "ALIAS": {}, "ALIASES": {}, "ABBREVIATION": {},
}

// 表头中的缩写，和人员简称无法区分，只在名单表的表头行中识别
var headerAbbreviations = map[string]struct{}{
	"ΑΑ": {}, "ΗΜ": {}, "ΝΙΑ": {}, "ΤΕΠ": {},
}

// latinLookalikes 把外观相同的拉丁大写字母映射为希腊字母，排班表中经常混用两种键盘布局
var latinLookalikes = map[rune]rune{
	'A': 'Α', 'B': 'Β', 'E': 'Ε', 'Z': 'Ζ', 'H': 'Η', 'I': 'Ι', 'K': 'Κ',
	'M': 'Μ', 'N': 'Ν', 'O': 'Ο', 'P': 'Ρ', 'T': 'Τ', 'Y': 'Υ', 'X': 'Χ',
}

// fold 去掉重音符号并转为大写，同时压缩空白
func fold(s string) string {
	stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		stripped = s
	}
	upper := cases.Upper(language.Greek).String(stripped)
	return strings.Join(strings.Fields(upper), " ")
}

// aliasKey 生成名单查找用的键：只保留字母和数字，拉丁形近字母统一为希腊字母
func aliasKey(s string) string {
	var sb strings.Builder
	for _, r := range fold(s) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		if g, ok := latinLookalikes[r]; ok {
			r = g
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// words 把文本切成字母串和数字串
func words(s string) []string {
	return strings.FieldsFunc(fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func monthOf(word string) (int, bool) {
	m, ok := monthNames[word]
	return m, ok
}

// isAnnotation 判断整个单元格（或一条登记）是否为星期、月份、日期、表头标签等注释。
// 只要有一个词不是注释词，就按人员处理
func isAnnotation(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return true
	}
	if _, ok := parseDayValue(text); ok {
		return true
	}
	if dateRe.MatchString(text) || numberRe.MatchString(text) {
		return true
	}
	key := aliasKey(text)
	if _, ok := weekdayNames[key]; ok {
		return true
	}
	if _, ok := labelWords[key]; ok {
		return true
	}
	return allWords(text, labelWords)
}

// isHeaderLabel 在 isAnnotation 的基础上识别 "Α/Α"、"ΤΕΠ" 等表头缩写
func isHeaderLabel(text string) bool {
	if isAnnotation(text) {
		return true
	}
	_, ok := headerAbbreviations[aliasKey(text)]
	return ok || allWords(text, labelWords, headerAbbreviations)
}

// allWords 判断文本中的每个词都是月份、年份或给定词表中的词
func allWords(text string, vocab ...map[string]struct{}) bool {
	ws := words(text)
	if len(ws) == 0 {
		return false
	}
	for _, w := range ws {
		if _, ok := monthNames[w]; ok {
			continue
		}
		if numberRe.MatchString(w) {
			continue
		}
		found := false
		for _, v := range vocab {
			if _, ok := v[w]; ok {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// 专科值班表标题中的词干
var categoryStems = []struct {
	stem     string
	category domain.SpecialistCategory
}{
	{stem: "ΑΙΜΟΔΥΝΑΜ", category: domain.CathLab},
	{stem: "CATH", category: domain.CathLab},
	{stem: "ΗΛΕΚΤΡΟΦΥΣΙΟΛ", category: domain.Electrophysiology},
	{stem: "ELECTROPHYSIOL", category: domain.Electrophysiology},
}

// DetectCategory 根据表格标题和前两行判断专科值班表的类别
func DetectCategory(t domain.Table) (domain.SpecialistCategory, bool) {
	texts := []string{t.Title}
	for r := 0; r < len(t.Rows) && r < 2; r++ {
		texts = append(texts, t.Rows[r]...)
	}

	for _, text := range texts {
		folded := fold(text)
		for _, c := range categoryStems {
			if strings.Contains(folded, c.stem) {
				return c.category, true
			}
		}
	}
	return 0, false
}
