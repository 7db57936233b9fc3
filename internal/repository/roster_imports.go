package repository

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/domain"
)

func (r *Repository) InsertRosterImport(ri *domain.RosterImport) error {
	query := `
		INSERT INTO roster_imports (id, file_name, month, year, period_source, personnel_count, primary_count, cath_lab_count, ep_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{ri.ID, ri.FileName, ri.Month, ri.Year, ri.PeriodSource, ri.PersonnelCount, ri.PrimaryCount, ri.CathLabCount, ri.EPCount}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&ri.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetRosterImport(id string) (*domain.RosterImport, error) {
	query := `
		SELECT file_name, month, year, period_source, personnel_count, primary_count, cath_lab_count, ep_count, created_at
		FROM roster_imports WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	ri := &domain.RosterImport{
		ID: id,
	}

	dst := []any{&ri.FileName, &ri.Month, &ri.Year, &ri.PeriodSource, &ri.PersonnelCount, &ri.PrimaryCount, &ri.CathLabCount, &ri.EPCount, &ri.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return ri, nil
}
