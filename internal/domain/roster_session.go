package domain

import "time"

// RosterSession 保存一次上传解码后的表格，之后的请求都从这里重新构建值班表
type RosterSession struct {
	ID        string    `json:"id"`
	Main      Document  `json:"main"`
	CathLab   *Document `json:"cathLab,omitempty"`
	EP        *Document `json:"ep,omitempty"`
	Override  *Period   `json:"override,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
