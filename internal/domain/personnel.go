package domain

// PersonnelRecord 表示名单表中的一名人员，加载后不可修改
type PersonnelRecord struct {
	ID          string   `json:"id"`   // 规范化后的唯一标识
	DisplayName string   `json:"name"` // 名单表中的原始全名
	Aliases     []string `json:"aliases"`
}

func (p PersonnelRecord) String() string {
	return p.DisplayName
}
