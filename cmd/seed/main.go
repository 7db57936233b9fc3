package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/config"
	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/domain"
	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/repository"
	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/roster"
	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/seed"
	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/tables"
	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var month, year int
	var seedValue int64
	var out string
	var epCSV bool
	var password string
	var file string

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 生成随机值班表, 2: 生成管理员密码哈希, 3: 归档值班表导入记录)")
	flag.IntVar(&n, "n", 12, "随机值班表中的人数")
	flag.IntVar(&month, "month", 0, "随机值班表的月份，为 0 时随机选择")
	flag.IntVar(&year, "year", 0, "随机值班表的年份，为 0 时随机选择")
	flag.Int64Var(&seedValue, "seed", 0, "随机数种子，为 0 时使用当前时间")
	flag.StringVar(&out, "out", ".", "随机值班表的输出目录")
	flag.BoolVar(&epCSV, "ep-csv", false, "把电生理值班表单独导出为 csv")
	flag.StringVar(&password, "password", "", "管理员密码，为空时随机生成")
	flag.StringVar(&file, "file", "", "要归档的值班表文件")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的人数")
			return
		}
		if seedValue == 0 {
			seedValue = time.Now().UnixNano()
		}
		rng := rand.New(rand.NewSource(seedValue))

		period := utils.GenerateRandomPeriod(rng)
		if month != 0 || year != 0 {
			period = domain.Period{Month: month, Year: year}
		}
		if err := period.Validate(); err != nil {
			slog.Error("月份或年份不合法", slog.String("error", err.Error()))
			return
		}

		f := utils.GenerateRandomRosterFixture(rng, period, n)
		path := filepath.Join(out, f.FileName)
		if err := seed.WriteRosterWorkbook(f, path, !epCSV); err != nil {
			slog.Error("无法写出值班表", slog.String("error", err.Error()))
			return
		}
		if epCSV {
			epPath := filepath.Join(out, fmt.Sprintf("ep_%s.csv", period))
			if err := seed.WriteTableCSV(f.EP, epPath); err != nil {
				slog.Error("无法写出电生理值班表", slog.String("error", err.Error()))
				return
			}
			slog.Info("已写出电生理值班表", slog.String("path", epPath))
		}

		slog.Info("生成随机值班表成功", slog.String("path", path), slog.String("period", period.String()), slog.Int("personnel", len(f.Personnel)), slog.Int64("seed", seedValue))
	case 2:
		if password == "" {
			password = utils.GenerateRandomPassword(16)
			fmt.Printf("密码: %s\n", password)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			slog.Error("无法生成密码哈希", slog.String("error", err.Error()))
			return
		}
		fmt.Printf("ADMIN_PASSWORD_HASH=%s\n", hash)
	case 3:
		if file == "" {
			slog.Error("请指定要归档的值班表文件")
			return
		}
		archiveRoster(file)
	default:
		slog.Error("指定的操作非法")
	}
}

// archiveRoster 解析值班表并写入一条导入记录，用于在没有前端的情况下准备数据
func archiveRoster(path string) {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("无法读取配置文件", slog.String("error", err.Error()))
		return
	}

	doc, err := tables.Load(path)
	if err != nil {
		slog.Error("无法读取值班表", slog.String("error", err.Error()))
		return
	}
	in, err := tables.Input(doc, nil, nil, nil)
	if err != nil {
		slog.Error("值班表格式错误", slog.String("error", err.Error()))
		return
	}
	res, err := roster.Build(in)
	if err != nil {
		slog.Error("无法解析值班表", slog.String("error", err.Error()))
		return
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		slog.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		slog.Error("无法连接到数据库", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	ri := &domain.RosterImport{
		ID:             uuid.NewString(),
		FileName:       doc.Name,
		Month:          res.Period.Month,
		Year:           res.Period.Year,
		PeriodSource:   string(res.PeriodSource),
		PersonnelCount: res.Resolver.Len(),
		PrimaryCount:   res.Roster.PrimaryCount(),
		CathLabCount:   res.Roster.SpecialistCount(domain.CathLab),
		EPCount:        res.Roster.SpecialistCount(domain.Electrophysiology),
	}
	if err := repo.InsertRosterImport(ri); err != nil {
		slog.Error("无法插入导入记录", slog.String("error", err.Error()))
		return
	}

	slog.Info("归档值班表成功", slog.String("id", ri.ID), slog.String("period", res.Period.String()))
}
