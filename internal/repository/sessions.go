package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/config"
	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/domain"
)

var ErrSessionNotFound = errors.New("值班表不存在或已过期")

// SessionStore 把上传的值班表保存在 redis 中，过期时间为 SESSION_EXPIRATION
type SessionStore struct {
	cfg *config.Config
	rdb *redis.Client
}

func NewSessionStore(cfg *config.Config, rdb *redis.Client) *SessionStore {
	return &SessionStore{
		cfg: cfg,
		rdb: rdb,
	}
}

func sessionKey(id string) string {
	return "roster_session_" + id
}

func (s *SessionStore) SaveRosterSession(session *domain.RosterSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(s.cfg.Redis.OperationExpiration)*time.Second)
	defer cancel()

	return s.rdb.Set(ctx, sessionKey(session.ID), data, time.Duration(s.cfg.Session.Expiration)*time.Second).Err()
}

func (s *SessionStore) GetRosterSession(id string) (*domain.RosterSession, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(s.cfg.Redis.OperationExpiration)*time.Second)
	defer cancel()

	data, err := s.rdb.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	session := &domain.RosterSession{}
	if err := json.Unmarshal(data, session); err != nil {
		return nil, err
	}
	return session, nil
}
