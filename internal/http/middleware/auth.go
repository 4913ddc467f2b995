package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/citywatch/complaints-backend/internal/models"
	"github.com/citywatch/complaints-backend/internal/service"
)

// ContextUserKey — ключ gin.Context, под которым лежит разрешённый
// пользователь запроса.
const ContextUserKey = "currentUser"

// UserResolver разрешает username действующей сессии в запись пользователя.
type UserResolver interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// RequireSession проверяет идентификационную cookie и привязывает
// пользователя к контексту. Обе неудачи — отсутствие cookie и cookie
// с несуществующим username (протухшая или подделанная) — мягкие:
// клиент уводится на /login без статуса ошибки.
func RequireSession(sessions *service.SessionManager, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(sessions.CookieName())
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		username, err := sessions.Resolve(c.Request.Context(), cookie)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		user, err := users.GetByUsername(c.Request.Context(), username)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// RequireAdmin пропускает только жёстко зашитого супер-пользователя
// "admin". Выполняется строго после RequireSession.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, exists := c.Get(ContextUserKey)
		user, ok := raw.(*models.User)
		if !exists || !ok || !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
			return
		}

		c.Next()
	}
}
