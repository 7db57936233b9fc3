package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/config"
	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/domain"
)

// Archive 记录导入和导出，写入失败只记录日志
type Archive interface {
	InsertRosterImport(ri *domain.RosterImport) error
	InsertCalendarExport(ce *domain.CalendarExport) error
	GetRosterImport(id string) (*domain.RosterImport, error)
	GetCalendarExports(importID string) ([]*domain.CalendarExport, error)
}

type SessionStore interface {
	SaveRosterSession(session *domain.RosterSession) error
	GetRosterSession(id string) (*domain.RosterSession, error)
}

type MailQueue interface {
	PublishMail(msg *domain.MailMessage) error
}

type Handler struct {
	validate   *validator.Validate
	config     *config.Config
	archive    Archive
	sessions   SessionStore
	mailQueue  MailQueue
	translator ut.Translator

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, archive Archive, sessions SessionStore, mailQueue MailQueue) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:   validate,
		config:     cfg,
		archive:    archive,
		sessions:   sessions,
		mailQueue:  mailQueue,
		translator: trans,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/imports/{id}", h.GetRosterImport)
		r.Route("/rosters", func(r chi.Router) {
			r.Post("/", h.CreateRoster)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.rosterSession)
				r.Get("/", h.GetRoster)
				r.Route("/calendars/{person}", func(r chi.Router) {
					r.Get("/", h.DownloadCalendar)
					r.Post("/email", h.EmailCalendar)
				})
			})
		})
	})
}
