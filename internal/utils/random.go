package utils

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/domain"
)

var commonFirstNames = []string{
	"Γιώργος", "Μαρία", "Νίκος", "Ελένη", "Δημήτρης", "Κατερίνα",
	"Κώστας", "Σοφία", "Γιάννης", "Αναστασία", "Παναγιώτης", "Χριστίνα",
	"Βασίλης", "Ιωάννα", "Αλέξανδρος", "Δέσποινα",
}

// 以 -ου 结尾的姓氏不区分性别
var commonSurnames = []string{
	"Κωνσταντίνου", "Γεωργίου", "Νικολάου", "Δημητρίου", "Ιωάννου", "Αντωνίου",
	"Οικονόμου", "Βασιλείου", "Αθανασίου", "Παύλου", "Σταύρου", "Χριστοδούλου",
	"Αλεξίου", "Θεοδώρου", "Ζαχαρίου", "Πέτρου",
}

var monthDisplayNames = []string{
	"Ιανουάριος", "Φεβρουάριος", "Μάρτιος", "Απρίλιος", "Μάιος", "Ιούνιος",
	"Ιούλιος", "Αύγουστος", "Σεπτέμβριος", "Οκτώβριος", "Νοέμβριος", "Δεκέμβριος",
}

// 下标为 time.Weekday
var weekdayAbbreviations = []string{"Κυρ", "Δευ", "Τρι", "Τετ", "Πεμ", "Παρ", "Σαβ"}

// GreekMonthName 返回月份的希腊语名称（主格）
func GreekMonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthDisplayNames[month-1]
}

// FixturePerson 是随机生成的名单中的一个人
type FixturePerson struct {
	Name  string
	Alias string
}

// GenerateRandomPersonnel 生成 n 个姓名互不相同的人员，简称为姓名首字母加序号，保证不会产生歧义
func GenerateRandomPersonnel(rng *rand.Rand, n int) []FixturePerson {
	total := len(commonFirstNames) * len(commonSurnames)
	if n > total {
		n = total
	}

	people := make([]FixturePerson, 0, n)
	for k, i := range rng.Perm(total)[:n] {
		name := commonFirstNames[i/len(commonSurnames)] + " " + commonSurnames[i%len(commonSurnames)]
		people = append(people, FixturePerson{
			Name:  name,
			Alias: initials(name) + strconv.Itoa(k+1),
		})
	}
	return people
}

func initials(name string) string {
	var sb strings.Builder
	for _, f := range strings.Fields(name) {
		for _, r := range f {
			sb.WriteRune(r)
			break
		}
	}
	return strings.ToUpper(sb.String())
}

// RosterFixture 是一套随机生成的值班表输入，以及按显示名称记录的期望结果
type RosterFixture struct {
	Period      domain.Period
	FileName    string
	Personnel   []FixturePerson
	Names       domain.Table
	Roster      domain.Table
	CathLab     domain.Table
	EP          domain.Table
	Primary     map[int]map[string]domain.DutyMarker         // day -> 姓名 -> 班次
	Specialists map[int]map[string]domain.SpecialistCategory // day -> 姓名 -> 专科类别
}

// GenerateRandomRosterFixture 生成一个按行排列日期的主值班表（每天 0 到 3 人）、名单表和两张以完整日期为轴的专科值班表
func GenerateRandomRosterFixture(rng *rand.Rand, period domain.Period, personnel int) *RosterFixture {
	people := GenerateRandomPersonnel(rng, personnel)
	f := &RosterFixture{
		Period:      period,
		FileName:    fmt.Sprintf("ΕΦΗΜΕΡΙΕΣ %s %d.xlsx", GreekMonthName(period.Month), period.Year),
		Personnel:   people,
		Primary:     make(map[int]map[string]domain.DutyMarker),
		Specialists: make(map[int]map[string]domain.SpecialistCategory),
	}

	f.Names = domain.Table{Name: "names", Rows: [][]string{{"Α/Α", "Ονοματεπώνυμο", "Συντομογραφία"}}}
	for i, p := range people {
		f.Names.Rows = append(f.Names.Rows, []string{strconv.Itoa(i + 1), p.Name, p.Alias})
	}

	// 随机使用全名或简称，姓名转为大写以覆盖大小写和重音的差异
	token := func(p FixturePerson) string {
		switch rng.Intn(3) {
		case 0:
			return p.Alias
		case 1:
			return p.Name
		default:
			return strings.ToUpper(p.Name)
		}
	}

	f.Roster = domain.Table{Name: "roster", Rows: [][]string{{"Ημερομηνία", "Ημέρα", "Εφημερεύοντες"}}}
	f.CathLab = domain.Table{Name: "cathlab", Rows: [][]string{{"ΑΙΜΟΔΥΝΑΜΙΚΟ ΕΡΓΑΣΤΗΡΙΟ"}, {"Ημερομηνία", "Ιατρός"}}}
	f.EP = domain.Table{Name: "ep", Rows: [][]string{{"ΗΛΕΚΤΡΟΦΥΣΙΟΛΟΓΙΑ"}, {"Ημερομηνία", "Ιατρός"}}}

	for day := 1; day <= period.Days(); day++ {
		date := period.Date(day)
		f.Primary[day] = make(map[string]domain.DutyMarker)
		f.Specialists[day] = make(map[string]domain.SpecialistCategory)

		tokens := make([]string, 0, 3)
		if len(people) > 0 {
			for _, i := range rng.Perm(len(people))[:rng.Intn(min(3, len(people))+1)] {
				marker := domain.Regular24h
				tok := token(people[i])
				if rng.Intn(3) == 0 {
					marker = domain.OnCall24h
					tok += "*"
				}
				f.Primary[day][people[i].Name] = marker
				tokens = append(tokens, tok)
			}
		}
		f.Roster.Rows = append(f.Roster.Rows, []string{
			strconv.Itoa(day),
			weekdayAbbreviations[date.Weekday()],
			strings.Join(tokens, "\n"),
		})

		cathLab, ep := "", ""
		if len(people) >= 2 {
			perm := rng.Perm(len(people))
			if rng.Intn(2) == 0 {
				p := people[perm[0]]
				cathLab = token(p)
				f.Specialists[day][p.Name] = domain.CathLab
			}
			if rng.Intn(2) == 0 {
				p := people[perm[1]]
				ep = token(p)
				f.Specialists[day][p.Name] = domain.Electrophysiology
			}
		}
		dateText := date.Format("02/01/2006")
		f.CathLab.Rows = append(f.CathLab.Rows, []string{dateText, cathLab})
		f.EP.Rows = append(f.EP.Rows, []string{dateText, ep})
	}

	return f
}

// Transpose 交换表格的行和列，用于构造按列排列日期的表格
func Transpose(t domain.Table) domain.Table {
	out := domain.Table{Name: t.Name, Rows: make([][]string, t.Width())}
	for c := range out.Rows {
		out.Rows[c] = make([]string, len(t.Rows))
		for r := range t.Rows {
			out.Rows[c][r] = t.Cell(r, c)
		}
	}
	return out
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	randomPassword := make([]rune, length)
	for i := range randomPassword {
		randomPassword[i] = letters[rand.Intn(len(letters))]
	}
	return string(randomPassword)
}

// GenerateRandomPeriod 返回 2020 到 2030 年之间的随机月份
func GenerateRandomPeriod(rng *rand.Rand) domain.Period {
	return domain.Period{
		Month: int(time.January) + rng.Intn(12),
		Year:  2020 + rng.Intn(11),
	}
}
