package roster

import (
	"context"
	"log/slog"
	"runtime"
	"strings"

	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/domain"
	"golang.org/x/sync/errgroup"
)

type SpecialistTable struct {
	Category domain.SpecialistCategory
	Table    domain.Table
}

// Input 是一次运行的全部输入，表格已由外部解码
type Input struct {
	FileName    string
	Roster      domain.Table
	Names       domain.Table
	Specialists []SpecialistTable
	Override    *domain.Period
}

// Result 中的 Roster 构建完成后只读，所有人员的事件都由它投影得到
type Result struct {
	Period       domain.Period
	PeriodSource PeriodSource
	Resolver     *NameResolver
	Roster       *domain.DayRoster
}

// Build 依次构建名单、推断月份、解析主值班表并合并专科值班表，任何错误都会中止本次运行
func Build(in Input) (*Result, error) {
	// 名单表必须在解析任何值班行之前校验
	resolver, err := NewNameResolver(in.Names)
	if err != nil {
		return nil, err
	}

	hints := PeriodHints{
		FileName:    in.FileName,
		CellSamples: in.Roster.Cells(),
		Override:    in.Override,
	}
	if len(in.Roster.Rows) > 0 {
		hints.HeaderText = strings.Join(in.Roster.Rows[0], " ")
	}
	for _, st := range in.Specialists {
		hints.CellSamples = append(hints.CellSamples, st.Table.Cells()...)
	}

	period, source, err := ResolvePeriod(hints)
	if err != nil {
		return nil, err
	}

	dayRoster, err := Parse(in.Roster, period, resolver)
	if err != nil {
		return nil, err
	}

	for _, st := range in.Specialists {
		if _, err := Merge(st.Table, st.Category, period, resolver, dayRoster); err != nil {
			return nil, err
		}
	}

	slog.Info("值班表解析完成",
		"file", in.FileName,
		"period", period.String(),
		"source", string(source),
		"personnel", resolver.Len(),
		"primary", dayRoster.PrimaryCount(),
		"cathLab", dayRoster.SpecialistCount(domain.CathLab),
		"electrophysiology", dayRoster.SpecialistCount(domain.Electrophysiology),
	)

	return &Result{
		Period:       period,
		PeriodSource: source,
		Resolver:     resolver,
		Roster:       dayRoster,
	}, nil
}

// Events 为名单中的某人生成事件
func (r *Result) Events(person domain.PersonnelRecord) ([]domain.ShiftEvent, error) {
	events, err := Assemble(person, r.Roster, r.Period)
	if err != nil {
		return nil, err
	}
	slog.Debug("已生成日历事件", "person", person.DisplayName, "period", r.Period.String(), "events", len(events))
	return events, nil
}

// Calendar 按姓名或简称查找人员并生成事件，名单中不存在的人员得到空列表而不是错误
func (r *Result) Calendar(token string) (domain.PersonnelRecord, []domain.ShiftEvent, error) {
	person, ok := r.Resolver.Lookup(token)
	if !ok {
		return domain.PersonnelRecord{DisplayName: strings.TrimSpace(token)}, make([]domain.ShiftEvent, 0), nil
	}
	events, err := r.Events(person)
	if err != nil {
		return person, nil, err
	}
	return person, events, nil
}

// Calendars 为名单中的每个人生成事件，键为人员 ID。各人之间没有共享的可变状态，因此并行执行
func (r *Result) Calendars(ctx context.Context) (map[string][]domain.ShiftEvent, error) {
	records := r.Resolver.Records()
	results := make([][]domain.ShiftEvent, len(records))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, person := range records {
		i, person := i, person
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			events, err := r.Events(person)
			if err != nil {
				return err
			}
			results[i] = events
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string][]domain.ShiftEvent, len(records))
	for i, person := range records {
		out[person.ID] = results[i]
	}
	return out, nil
}
