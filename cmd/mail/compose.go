package main

import (
	"encoding/json"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"

	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/domain"
	"github.com/wneessen/go-mail"
)

const calendarContentType = mail.ContentType("text/calendar; charset=utf-8; method=PUBLISH")

// envelope 与 domain.MailMessage 相同，Data 延迟到确定类型之后再解析
type envelope struct {
	Type string          `json:"type"`
	To   string          `json:"to"`
	Data json.RawMessage `json:"data"`
}

type composer struct {
	from        string
	templateDir string
}

// compose 根据队列中的消息构建邮件，返回的错误都是消息本身的问题，重试也不会成功
func (c *composer) compose(body []byte) (*mail.Msg, error) {
	env := envelope{}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("邮件信息反序列化失败：%w", err)
	}

	m := mail.NewMsg()
	if err := m.From(c.from); err != nil {
		return nil, fmt.Errorf("无法设置邮件发件人：%w", err)
	}
	if err := m.To(env.To); err != nil {
		return nil, fmt.Errorf("无法设置邮件收件人：%w", err)
	}

	// 根据邮件类型解析数据
	switch env.Type {
	case domain.MailTypeRosterCalendar:
		data := domain.RosterCalendarMailData{}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, fmt.Errorf("日历邮件数据反序列化失败：%w", err)
		}

		tmpl, err := template.ParseFiles(filepath.Join(c.templateDir, "roster_calendar_email.html"))
		if err != nil {
			return nil, fmt.Errorf("无法解析邮件模板：%w", err)
		}
		if err := m.SetBodyHTMLTemplate(tmpl, data); err != nil {
			return nil, fmt.Errorf("无法设置邮件正文：%w", err)
		}
		if err := m.AttachReader(data.FileName, strings.NewReader(data.Calendar), mail.WithFileContentType(calendarContentType)); err != nil {
			return nil, fmt.Errorf("无法添加日历附件：%w", err)
		}
		m.Subject(fmt.Sprintf("值班日历 - %s %04d-%02d", data.FullName, data.Year, data.Month))
	default:
		return nil, fmt.Errorf("不支持的邮件类型 %q", env.Type)
	}

	return m, nil
}
