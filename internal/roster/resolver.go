package roster

import (
	"regexp"
	"strings"

	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/domain"
)

var aliasSep = regexp.MustCompile(`[,;/\n]+`)

// NameResolver 由名单表构建的只读查找表，构建时即校验简称是否存在歧义
type NameResolver struct {
	records []domain.PersonnelRecord
	aliases map[string]int // aliasKey -> records 下标
}

// NewNameResolver 从名单表构建查找表。每行第一列是全名，其余列是简称，
// 可选的首列序号和表头行会被跳过
func NewNameResolver(t domain.Table) (*NameResolver, error) {
	r := &NameResolver{
		records: make([]domain.PersonnelRecord, 0, len(t.Rows)),
		aliases: make(map[string]int),
	}

	for i, row := range t.Rows {
		cells, offset := stripSerial(row)
		if len(cells) == 0 || cells[0] == "" || isHeaderRow(cells) {
			continue
		}

		displayName := strings.Join(strings.Fields(cells[0]), " ")
		record := domain.PersonnelRecord{
			ID:          fold(displayName),
			DisplayName: displayName,
			Aliases:     make([]string, 0),
		}
		idx := len(r.records)

		if err := r.register(aliasKey(displayName), idx, displayName, record, domain.Location{Table: t.Name, Row: i + 1, Column: offset + 1}); err != nil {
			return nil, err
		}

		for j, cell := range cells[1:] {
			for _, alias := range aliasSep.Split(cell, -1) {
				alias = strings.TrimSpace(alias)
				key := aliasKey(alias)
				if key == "" {
					continue
				}
				loc := domain.Location{Table: t.Name, Row: i + 1, Column: offset + j + 2}
				if err := r.register(key, idx, alias, record, loc); err != nil {
					return nil, err
				}
				record.Aliases = appendUnique(record.Aliases, alias)
			}
		}

		r.records = append(r.records, record)
	}

	return r, nil
}

func (r *NameResolver) register(key string, idx int, alias string, record domain.PersonnelRecord, loc domain.Location) error {
	if key == "" {
		return nil
	}
	existing, ok := r.aliases[key]
	if !ok {
		r.aliases[key] = idx
		return nil
	}
	if existing == idx {
		return nil
	}
	return &domain.AmbiguousAliasError{
		Location: loc,
		Alias:    alias,
		First:    r.records[existing].DisplayName,
		Second:   record.DisplayName,
	}
}

// Resolve 把单元格中的人员标记解析为名单中的人员
func (r *NameResolver) Resolve(token string) (domain.PersonnelRecord, error) {
	if p, ok := r.Lookup(token); ok {
		return p, nil
	}
	return domain.PersonnelRecord{}, &domain.UnknownPersonnelError{Token: strings.TrimSpace(token)}
}

// Lookup 与 Resolve 相同，但用布尔值表示是否找到
func (r *NameResolver) Lookup(token string) (domain.PersonnelRecord, bool) {
	key := aliasKey(token)
	if key == "" {
		return domain.PersonnelRecord{}, false
	}
	idx, ok := r.aliases[key]
	if !ok {
		return domain.PersonnelRecord{}, false
	}
	return r.records[idx], true
}

// Records 按名单表顺序返回全部人员
func (r *NameResolver) Records() []domain.PersonnelRecord {
	return append([]domain.PersonnelRecord{}, r.records...)
}

func (r *NameResolver) Len() int {
	return len(r.records)
}

// stripSerial 去掉行首的序号列（如 "1"、"12."）
func stripSerial(row []string) ([]string, int) {
	if len(row) > 1 && numberRe.MatchString(strings.TrimSuffix(strings.TrimSpace(row[0]), ".")) {
		return row[1:], 1
	}
	return row, 0
}

func isHeaderRow(cells []string) bool {
	nonEmpty := 0
	for _, c := range cells {
		if strings.TrimSpace(c) == "" {
			continue
		}
		nonEmpty++
		if !isHeaderLabel(c) {
			return false
		}
	}
	return nonEmpty > 0
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
