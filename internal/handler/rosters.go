package handler

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/calendar"
	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/domain"
	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/roster"
	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/tables"
	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/utils"
)

type PersonnelSummary struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Aliases  []string `json:"aliases"`
	DutyDays int      `json:"dutyDays"`
}

type RosterSummary struct {
	ID        string             `json:"id"`
	Period    domain.Period      `json:"period"`
	Source    string             `json:"source"`
	Personnel []PersonnelSummary `json:"personnel"`
}

func buildRoster(session *domain.RosterSession) (*roster.Result, error) {
	in, err := tables.Input(&session.Main, session.CathLab, session.EP, session.Override)
	if err != nil {
		return nil, err
	}
	return roster.Build(in)
}

func summarize(id string, result *roster.Result) RosterSummary {
	summary := RosterSummary{
		ID:        id,
		Period:    result.Period,
		Source:    string(result.PeriodSource),
		Personnel: make([]PersonnelSummary, 0, result.Resolver.Len()),
	}
	for _, p := range result.Resolver.Records() {
		summary.Personnel = append(summary.Personnel, PersonnelSummary{
			ID:       p.ID,
			Name:     p.DisplayName,
			Aliases:  p.Aliases,
			DutyDays: result.Roster.DutyDays(p.ID),
		})
	}
	return summary
}

// 同一次上传的所有导出共用上传时间作为 DTSTAMP，重复下载得到相同的文件
func (h *Handler) emitter(session *domain.RosterSession) *calendar.Emitter {
	return &calendar.Emitter{
		ProductID: h.config.Calendar.ProductID,
		UIDDomain: h.config.Calendar.UIDDomain,
		Stamp:     session.CreatedAt,
	}
}

// readDocument 读取上传的文件，字段不存在时返回 nil
func readDocument(r *http.Request, field string) (*domain.Document, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	doc, err := tables.Decode(header.Filename, file, header.Size)
	if err != nil {
		return nil, fmt.Errorf("无法读取文件「%s」：%w", header.Filename, err)
	}
	return doc, nil
}

// readOverride 月份和年份必须同时指定，都为空时返回 nil
func (h *Handler) readOverride(form *multipart.Form) (*domain.Period, error) {
	var req struct {
		Month string `validate:"required_with=Year,omitempty,number"`
		Year  string `validate:"required_with=Month,omitempty,number"`
	}
	if v := form.Value["month"]; len(v) > 0 {
		req.Month = v[0]
	}
	if v := form.Value["year"]; len(v) > 0 {
		req.Year = v[0]
	}
	if err := h.validate.Struct(req); err != nil {
		return nil, err
	}
	if req.Month == "" {
		return nil, nil
	}

	month, _ := strconv.Atoi(req.Month)
	year, _ := strconv.Atoi(req.Year)
	period := &domain.Period{Month: month, Year: year}
	if err := h.validate.Struct(period); err != nil {
		return nil, err
	}
	return period, nil
}

func (h *Handler) CreateRoster(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.config.Session.MaxUploadSize)
	if err := r.ParseMultipartForm(h.config.Session.MaxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			h.errorResponse(w, r, fmt.Sprintf("上传的文件不能超过 %d 字节", maxBytesErr.Limit))
		default:
			h.errorResponse(w, r, "请使用 multipart/form-data 上传值班表")
		}
		return
	}
	defer r.MultipartForm.RemoveAll()

	override, err := h.readOverride(r.MultipartForm)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	session := &domain.RosterSession{
		ID:        uuid.NewString(),
		Override:  override,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	mainDoc, err := readDocument(r, "document")
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}
	if mainDoc == nil {
		h.errorResponse(w, r, "请上传值班表文件")
		return
	}
	session.Main = *mainDoc

	if session.CathLab, err = readDocument(r, "cathlab"); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}
	if session.EP, err = readDocument(r, "ep"); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	// 构建失败都是输入的问题，错误信息中带有表格和单元格的位置
	result, err := buildRoster(session)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	if err := h.sessions.SaveRosterSession(session); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ri := &domain.RosterImport{
		ID:             session.ID,
		FileName:       session.Main.Name,
		Month:          result.Period.Month,
		Year:           result.Period.Year,
		PeriodSource:   string(result.PeriodSource),
		PersonnelCount: result.Resolver.Len(),
		PrimaryCount:   result.Roster.PrimaryCount(),
		CathLabCount:   result.Roster.SpecialistCount(domain.CathLab),
		EPCount:        result.Roster.SpecialistCount(domain.Electrophysiology),
	}
	if err := h.archive.InsertRosterImport(ri); err != nil {
		slog.Error("归档值班表导入记录失败", "id", session.ID, "error", err)
	}

	h.successResponse(w, r, "值班表导入成功", summarize(session.ID, result))
}

func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(RosterSessionCtx).(*domain.RosterSession)
	result := r.Context().Value(RosterResultCtx).(*roster.Result)

	h.successResponse(w, r, "获取值班表成功", summarize(session.ID, result))
}

// personParam 返回路径中的人员姓名或简称
func personParam(r *http.Request) string {
	raw := chi.URLParam(r, "person")
	if s, err := url.PathUnescape(raw); err == nil {
		return s
	}
	return raw
}

// renderCalendar 生成某人的日历，生成前检查事件与值班表一致
func (h *Handler) renderCalendar(session *domain.RosterSession, result *roster.Result, person domain.PersonnelRecord, events []domain.ShiftEvent) ([]byte, error) {
	if person.ID != "" {
		if err := utils.ValidateCalendars(result.Roster, map[string][]domain.ShiftEvent{person.ID: events}); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := h.emitter(session).Encode(&buf, person, events); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (h *Handler) archiveExport(session *domain.RosterSession, person domain.PersonnelRecord, events []domain.ShiftEvent, deliveredTo string) {
	if person.ID == "" {
		return
	}
	ce := &domain.CalendarExport{
		ImportID:    session.ID,
		PersonnelID: person.ID,
		EventCount:  len(events),
		DeliveredTo: deliveredTo,
	}
	if err := h.archive.InsertCalendarExport(ce); err != nil {
		slog.Error("归档日历导出记录失败", "id", session.ID, "person", person.ID, "error", err)
	}
}

// DownloadCalendar 名单中不存在的人员得到一个空日历
func (h *Handler) DownloadCalendar(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(RosterSessionCtx).(*domain.RosterSession)
	result := r.Context().Value(RosterResultCtx).(*roster.Result)

	person, events, err := result.Calendar(personParam(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	body, err := h.renderCalendar(session, result, person, events)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.archiveExport(session, person, events, "")
	h.writeAttachment(w, r, calendar.ContentType, calendar.FileName(person), body)
}

func (h *Handler) EmailCalendar(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(RosterSessionCtx).(*domain.RosterSession)
	result := r.Context().Value(RosterResultCtx).(*roster.Result)

	var req struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	person, ok := result.Resolver.Lookup(personParam(r))
	if !ok {
		h.errorResponse(w, r, "名单中没有该人员")
		return
	}

	events, err := result.Events(person)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	body, err := h.renderCalendar(session, result, person, events)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 准备邮件
	mailMessage := &domain.MailMessage{
		Type: domain.MailTypeRosterCalendar,
		To:   req.Email,
		Data: domain.RosterCalendarMailData{
			FullName:   person.DisplayName,
			Month:      result.Period.Month,
			Year:       result.Period.Year,
			EventCount: len(events),
			FileName:   calendar.FileName(person),
			Calendar:   string(body),
		},
	}

	// 发送邮件到消息队列中
	if err := h.mailQueue.PublishMail(mailMessage); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.archiveExport(session, person, events, req.Email)
	h.successResponse(w, r, "日历已通过邮件发送", nil)
}
