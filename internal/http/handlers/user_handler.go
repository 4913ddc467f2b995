package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/citywatch/complaints-backend/internal/logger"
	"github.com/citywatch/complaints-backend/internal/models"
)

// UserLister описывает зависимость хэндлера от слоя хранилища.
type UserLister interface {
	List(ctx context.Context) ([]models.User, error)
}

// UserHandler отдаёт административный список пользователей.
type UserHandler struct {
	users UserLister
}

// NewUserHandler создаёт хэндлер.
func NewUserHandler(users UserLister) *UserHandler {
	return &UserHandler{users: users}
}

// List обрабатывает GET /users. Хэши паролей не сериализуются.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		if logger.Log != nil {
			logger.Log.WithField("error", err.Error()).Error("user handler: ошибка чтения пользователей")
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not load users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}
