package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenManager отвечает за выпуск и проверку токенов сессии.
// Токен — подписанный JWT, jti которого служит серверным
// идентификатором сессии (его можно отозвать через SessionStore).
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager создаёт менеджер токенов.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue выпускает токен сессии для пользователя.
// Возвращает токен, идентификатор сессии и срок действия.
func (m *TokenManager) Issue(username string) (string, string, time.Time, error) {
	now := time.Now()
	exp := now.Add(m.ttl)
	sessionID := uuid.NewString()

	claims := jwt.RegisteredClaims{
		Subject:   username,
		ID:        sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("token manager: не удалось подписать токен: %w", err)
	}

	return token, sessionID, exp, nil
}

// Parse проверяет подпись и срок токена, возвращает username и
// идентификатор сессии.
func (m *TokenManager) Parse(token string) (string, string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return "", "", err
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return "", "", jwt.ErrTokenInvalidClaims
	}

	return claims.Subject, claims.ID, nil
}
