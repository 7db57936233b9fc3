package tables

import (
	"fmt"

	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/domain"
	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/roster"
)

// Parts 是主文档按角色拆分后的表格
type Parts struct {
	Roster      domain.Table
	Names       domain.Table
	Specialists []roster.SpecialistTable
}

// 主文档中第 3、4 个表格在标题无法识别时的默认类别
var positionalCategories = []domain.SpecialistCategory{domain.CathLab, domain.Electrophysiology}

// Split 第 1 个表格是主值班表，第 2 个是名单表，其余为专科值班表，类别优先按标题识别
func Split(doc *domain.Document) (*Parts, error) {
	if len(doc.Tables) < 2 {
		return nil, &domain.MalformedRosterError{
			Location: domain.Location{Table: doc.Name},
			Reason:   fmt.Sprintf("文档中只有 %d 个表格，至少需要值班表和名单表", len(doc.Tables)),
		}
	}
	if len(doc.Tables) > 2+len(positionalCategories) {
		return nil, &domain.MalformedRosterError{
			Location: domain.Location{Table: doc.Name},
			Reason:   fmt.Sprintf("文档中有 %d 个表格，最多支持 %d 个", len(doc.Tables), 2+len(positionalCategories)),
		}
	}

	parts := &Parts{
		Roster:      doc.Tables[0],
		Names:       doc.Tables[1],
		Specialists: make([]roster.SpecialistTable, 0),
	}
	for i, t := range doc.Tables[2:] {
		category, ok := roster.DetectCategory(t)
		if !ok {
			category = positionalCategories[i]
		}
		parts.Specialists = append(parts.Specialists, roster.SpecialistTable{Category: category, Table: t})
	}
	return parts, nil
}

// SpecialistTables 单独上传的专科值班文档，其中每个表格都属于 category
func SpecialistTables(doc *domain.Document, category domain.SpecialistCategory) []roster.SpecialistTable {
	out := make([]roster.SpecialistTable, 0, len(doc.Tables))
	for _, t := range doc.Tables {
		out = append(out, roster.SpecialistTable{Category: category, Table: t})
	}
	return out
}

// Input 组装一次运行的输入。cathLab 和 ep 是单独上传的专科值班文档，可以为 nil
func Input(main, cathLab, ep *domain.Document, override *domain.Period) (roster.Input, error) {
	parts, err := Split(main)
	if err != nil {
		return roster.Input{}, err
	}

	specialists := parts.Specialists
	if cathLab != nil {
		specialists = append(specialists, SpecialistTables(cathLab, domain.CathLab)...)
	}
	if ep != nil {
		specialists = append(specialists, SpecialistTables(ep, domain.Electrophysiology)...)
	}

	return roster.Input{
		FileName:    main.Name,
		Roster:      parts.Roster,
		Names:       parts.Names,
		Specialists: specialists,
		Override:    override,
	}, nil
}
