package repository

import (
	"database/sql"

	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/config"
)

// Repository 是导入记录和日历导出记录的归档，写入失败不影响日历的生成
type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}
