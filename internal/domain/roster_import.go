package domain

import "time"

// RosterImport 是一次值班表导入的归档记录，不参与日历生成
type RosterImport struct {
	ID             string    `json:"id"`
	FileName       string    `json:"fileName"`
	Month          int       `json:"month"`
	Year           int       `json:"year"`
	PeriodSource   string    `json:"periodSource"`
	PersonnelCount int       `json:"personnelCount"`
	PrimaryCount   int       `json:"primaryCount"`
	CathLabCount   int       `json:"cathLabCount"`
	EPCount        int       `json:"epCount"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CalendarExport 记录一次日历导出
type CalendarExport struct {
	ID          int64     `json:"id"`
	ImportID    string    `json:"importID"`
	PersonnelID string    `json:"personnelID"`
	EventCount  int       `json:"eventCount"`
	DeliveredTo string    `json:"deliveredTo"` // 为空表示直接下载
	CreatedAt   time.Time `json:"createdAt"`
}
