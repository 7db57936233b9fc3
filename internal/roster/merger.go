package roster

import (
	"fmt"

	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/domain"
)

// Merge 把专科值班表合并到 into 中（原地修改并返回同一个实例）。
// 专科登记不区分 Regular/OnCall，单元格中的星号会被忽略
func Merge(t domain.Table, category domain.SpecialistCategory, period domain.Period, resolver *NameResolver, into *domain.DayRoster) (*domain.DayRoster, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("无效的专科类别 %d", category)
	}
	if into.Period() != period {
		return nil, fmt.Errorf("专科值班表的期间 %s 与主值班表的期间 %s 不一致", period, into.Period())
	}

	err := walk(t, period, resolver, func(loc domain.Location, day int, person domain.PersonnelRecord, _ dutyToken) error {
		return into.AddSpecialist(loc, day, category, person)
	})
	if err != nil {
		return nil, err
	}

	return into, nil
}
