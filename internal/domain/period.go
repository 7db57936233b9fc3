package domain

import (
	"fmt"
	"time"
)

type Period struct {
	Month int `json:"month" validate:"min=1,max=12"`
	Year  int `json:"year" validate:"min=1900,max=2100"`
}

func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return fmt.Errorf("月份 %d 不合法", p.Month)
	}
	if p.Year < 1900 || p.Year > 2100 {
		return fmt.Errorf("年份 %d 不合法", p.Year)
	}
	return nil
}

// Days 返回该月的天数
func (p Period) Days() int {
	// 下个月第 0 天即本月最后一天
	return time.Date(p.Year, time.Month(p.Month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Date 返回该月第 day 天的零点。时间按浮动的本地时间处理，不做任何时区换算，
// 这里用 UTC 仅作为承载
func (p Period) Date(day int) time.Time {
	return time.Date(p.Year, time.Month(p.Month), day, 0, 0, 0, 0, time.UTC)
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}
