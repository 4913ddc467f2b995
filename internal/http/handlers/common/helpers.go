package common

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/citywatch/complaints-backend/internal/http/middleware"
	"github.com/citywatch/complaints-backend/internal/models"
)

// ErrUserNotInContext is returned when the resolved user is missing
// from the request context (the handler ran without RequireSession).
var ErrUserNotInContext = errors.New("пользователь не найден в контексте")

// CurrentUser extracts the resolved user from the Gin context.
func CurrentUser(c *gin.Context) (*models.User, error) {
	raw, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil, ErrUserNotInContext
	}

	user, ok := raw.(*models.User)
	if !ok {
		return nil, ErrUserNotInContext
	}

	return user, nil
}
