package repository

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/domain"
)

func (r *Repository) InsertCalendarExport(ce *domain.CalendarExport) error {
	query := `
		INSERT INTO calendar_exports (import_id, personnel_id, event_count, delivered_to)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{ce.ImportID, ce.PersonnelID, ce.EventCount, ce.DeliveredTo}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&ce.ID, &ce.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetCalendarExports(importID string) ([]*domain.CalendarExport, error) {
	query := `
		SELECT id, personnel_id, event_count, delivered_to, created_at
		FROM calendar_exports WHERE import_id = $1
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, importID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exports := make([]*domain.CalendarExport, 0)
	for rows.Next() {
		ce := &domain.CalendarExport{ImportID: importID}
		dst := []any{&ce.ID, &ce.PersonnelID, &ce.EventCount, &ce.DeliveredTo, &ce.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		exports = append(exports, ce)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return exports, nil
}
