package service

import (
	"context"
	"errors"
	"time"

	"github.com/citywatch/complaints-backend/internal/config"
)

// ErrSessionInvalid возвращается, когда cookie не соответствует
// действующей сессии.
var ErrSessionInvalid = errors.New("session invalid")

// Имена cookie для двух режимов. "name" сохранено из первых ревизий
// приложения, где cookie несла имя пользователя открытым текстом.
const (
	SessionCookieName = "cw_session"
	LegacyCookieName  = "name"
)

// SessionManager выдаёт и проверяет идентификационные cookie.
// В режиме session значение cookie — подписанный токен, чей jti должен
// быть жив в SessionStore; в устаревшем режиме cookie — голый username.
type SessionManager struct {
	mode   string
	tokens *TokenManager
	store  SessionStore
}

// NewSessionManager создаёт менеджер сессий.
func NewSessionManager(mode string, tokens *TokenManager, store SessionStore) *SessionManager {
	return &SessionManager{mode: mode, tokens: tokens, store: store}
}

// CookieName возвращает имя идентификационной cookie для текущего режима.
func (m *SessionManager) CookieName() string {
	if m.mode == config.AuthModeCookie {
		return LegacyCookieName
	}
	return SessionCookieName
}

// Issue выпускает значение идентификационной cookie для пользователя.
func (m *SessionManager) Issue(ctx context.Context, username string) (string, error) {
	if m.mode == config.AuthModeCookie {
		return username, nil
	}

	token, sessionID, exp, err := m.tokens.Issue(username)
	if err != nil {
		return "", err
	}

	if err := m.store.Put(ctx, sessionID, username, time.Until(exp)); err != nil {
		return "", err
	}

	return token, nil
}

// Resolve возвращает username действующей сессии по значению cookie.
func (m *SessionManager) Resolve(ctx context.Context, cookieValue string) (string, error) {
	if cookieValue == "" {
		return "", ErrSessionInvalid
	}

	if m.mode == config.AuthModeCookie {
		return cookieValue, nil
	}

	username, sessionID, err := m.tokens.Parse(cookieValue)
	if err != nil {
		return "", ErrSessionInvalid
	}

	stored, ok, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if !ok || stored != username {
		return "", ErrSessionInvalid
	}

	return username, nil
}

// Revoke отзывает сессию по значению cookie. В устаревшем режиме
// серверного состояния нет и отзывать нечего.
func (m *SessionManager) Revoke(ctx context.Context, cookieValue string) error {
	if m.mode == config.AuthModeCookie || cookieValue == "" {
		return nil
	}

	_, sessionID, err := m.tokens.Parse(cookieValue)
	if err != nil {
		return nil
	}

	return m.store.Delete(ctx, sessionID)
}
