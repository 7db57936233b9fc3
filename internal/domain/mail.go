package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

const MailTypeRosterCalendar = "roster_calendar"

// RosterCalendarMailData 投递给 mail worker 的日历邮件内容，日历以附件形式发送
type RosterCalendarMailData struct {
	FullName   string `json:"fullName"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
	EventCount int    `json:"eventCount"`
	FileName   string `json:"fileName"`
	Calendar   string `json:"calendar"`
}
