package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/domain"
)

// GetRosterImport 返回归档的导入记录和它的导出历史，上传的表格过期后仍然可以查询
func (h *Handler) GetRosterImport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		h.errorResponse(w, r, "导入记录ID无效")
		return
	}

	ri, err := h.archive.GetRosterImport(id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "导入记录不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	exports, err := h.archive.GetCalendarExports(id)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取导入记录成功", struct {
		Import  *domain.RosterImport     `json:"import"`
		Exports []*domain.CalendarExport `json:"exports"`
	}{
		Import:  ri,
		Exports: exports,
	})
}
