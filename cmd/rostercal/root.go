package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/calendar"
	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/config"
	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/domain"
	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/logging"
	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/roster"
	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/tables"
	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/utils"
)

type options struct {
	cathLab string
	ep      string
	month   int
	year    int
	persons []string
	all     bool
	out     string
}

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed, color.Bold)
)

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "rostercal <document>",
		Short: "把值班表转换为每个人的 iCalendar 日历",
		Long: `rostercal 读取 docx/xlsx/csv 格式的值班表，文档中依次为主值班表、名单表和可选的专科值班表，
为指定人员（或所有有值班的人员）生成 <姓名>_shifts.ics。`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := run(cmd.Context(), args[0], opts); err != nil {
				errColor.Fprintln(os.Stderr, "错误:", err)
				return err
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.cathLab, "cathlab", "", "单独的心导管室值班文档")
	flags.StringVar(&opts.ep, "ep", "", "单独的电生理值班文档")
	flags.IntVar(&opts.month, "month", 0, "手动指定月份（需要同时指定 --year）")
	flags.IntVar(&opts.year, "year", 0, "手动指定年份（需要同时指定 --month）")
	flags.StringArrayVarP(&opts.persons, "person", "p", nil, "要生成日历的人员姓名或简称，可重复")
	flags.BoolVar(&opts.all, "all", false, "为所有有值班的人员生成日历")
	flags.StringVarP(&opts.out, "out", "o", ".", "输出目录")
	cmd.MarkFlagsRequiredTogether("month", "year")

	return cmd
}

func loadOptional(path string) (*domain.Document, error) {
	if path == "" {
		return nil, nil
	}
	return tables.Load(path)
}

func run(ctx context.Context, path string, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadCLIConfig()
	if err != nil {
		return fmt.Errorf("无法加载配置：%w", err)
	}
	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()
	slog.SetDefault(logger)

	var override *domain.Period
	if opts.month != 0 || opts.year != 0 {
		override = &domain.Period{Month: opts.month, Year: opts.year}
	}

	mainDoc, err := tables.Load(path)
	if err != nil {
		return err
	}
	cathLab, err := loadOptional(opts.cathLab)
	if err != nil {
		return err
	}
	ep, err := loadOptional(opts.ep)
	if err != nil {
		return err
	}

	in, err := tables.Input(mainDoc, cathLab, ep, override)
	if err != nil {
		return err
	}
	res, err := roster.Build(in)
	if err != nil {
		return err
	}

	calendars, err := res.Calendars(ctx)
	if err != nil {
		return err
	}
	if err := utils.ValidateCalendars(res.Roster, calendars); err != nil {
		return fmt.Errorf("生成的日历与值班表不一致：%w", err)
	}

	// 以文档的修改时间作为 DTSTAMP，同一份文档重复运行得到相同的文件
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	emitter := &calendar.Emitter{
		ProductID: cfg.Calendar.ProductID,
		UIDDomain: cfg.Calendar.UIDDomain,
		Stamp:     info.ModTime().UTC().Truncate(time.Second),
	}

	if err := os.MkdirAll(opts.out, 0o755); err != nil {
		return err
	}

	fmt.Printf("%s 期间 %s（来源：%s），名单 %d 人\n", mainDoc.Name, res.Period, res.PeriodSource, res.Resolver.Len())

	targets, err := selectTargets(res, calendars, opts)
	if err != nil {
		return err
	}
	for _, t := range targets {
		if !t.known {
			warnColor.Printf("! 名单中没有「%s」，生成空日历\n", t.person.DisplayName)
		}
		target := filepath.Join(opts.out, calendar.FileName(t.person))
		if err := writeCalendar(emitter, target, t.person, t.events); err != nil {
			return err
		}
		okColor.Printf("✓ %s：%d 个值班日 -> %s\n", t.person.DisplayName, len(t.events), target)
	}
	return nil
}

type target struct {
	person domain.PersonnelRecord
	events []domain.ShiftEvent
	known  bool
}

// selectTargets 没有指定 --person 时等同于 --all，--all 跳过没有值班的人员
func selectTargets(res *roster.Result, calendars map[string][]domain.ShiftEvent, opts *options) ([]target, error) {
	targets := make([]target, 0)
	seen := make(map[string]bool)

	for _, token := range opts.persons {
		person, events, err := res.Calendar(token)
		if err != nil {
			return nil, err
		}
		known := person.ID != ""
		if known {
			if seen[person.ID] {
				continue
			}
			seen[person.ID] = true
		}
		targets = append(targets, target{person: person, events: events, known: known})
	}

	if opts.all || len(opts.persons) == 0 {
		for _, person := range res.Resolver.Records() {
			events := calendars[person.ID]
			if seen[person.ID] || len(events) == 0 {
				continue
			}
			seen[person.ID] = true
			targets = append(targets, target{person: person, events: events, known: true})
		}
	}

	if len(targets) == 0 {
		return nil, errors.New("没有需要生成日历的人员")
	}
	return targets, nil
}

func writeCalendar(emitter *calendar.Emitter, path string, person domain.PersonnelRecord, events []domain.ShiftEvent) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := emitter.Encode(file, person, events); err != nil {
		return err
	}
	return file.Close()
}
