package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/citywatch/complaints-backend/internal/http/handlers/common"
	"github.com/citywatch/complaints-backend/internal/logger"
	"github.com/citywatch/complaints-backend/internal/repository"
	"github.com/citywatch/complaints-backend/internal/service"
)

// ComplaintHandler предоставляет HTTP слой подачи, просмотра и
// одобрения жалоб.
type ComplaintHandler struct {
	complaints *service.ComplaintService
}

// NewComplaintHandler создаёт хэндлер.
func NewComplaintHandler(complaints *service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaints: complaints}
}

// Submit обрабатывает POST /report.
func (h *ComplaintHandler) Submit(c *gin.Context) {
	user, err := common.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	_, err = h.complaints.Submit(c.Request.Context(), user, service.SubmitInput{
		Firstname:   c.PostForm("firstname"),
		Lastname:    c.PostForm("lastname"),
		Email:       c.PostForm("email"),
		DateTime:    c.PostForm("date_time"),
		Type:        c.PostForm("type"),
		Location:    c.PostForm("location"),
		Description: c.PostForm("description"),
		URL:         c.PostForm("url"),
	})
	if err != nil {
		// Исходное приложение здесь молча не отвечало вовсе; отказ
		// хранилища теперь виден клиенту.
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not save complaint"})
		return
	}

	c.Redirect(http.StatusFound, "/home")
}

// ListMine обрабатывает GET /my-complaints/.
func (h *ComplaintHandler) ListMine(c *gin.Context) {
	user, err := common.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	complaints, err := h.complaints.ListMine(c.Request.Context(), user.Username)
	if err != nil {
		if logger.Log != nil {
			logger.Log.WithField("error", err.Error()).Error("complaint handler: ошибка чтения жалоб")
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not load complaints"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"complaints": complaints})
}

// ListAll обрабатывает GET /complaints и GET /report-approval:
// полный обогащённый список для администратора.
func (h *ComplaintHandler) ListAll(c *gin.Context) {
	complaints, err := h.complaints.ListAll(c.Request.Context())
	if err != nil {
		if logger.Log != nil {
			logger.Log.WithField("error", err.Error()).Error("complaint handler: ошибка чтения жалоб")
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not load complaints"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"complaints": complaints})
}

// Approve обрабатывает PATCH /approve/:id.
func (h *ComplaintHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid complaint id"})
		return
	}

	if err := h.complaints.Approve(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrComplaintNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Complaint not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not approve complaint"})
		return
	}

	c.Redirect(http.StatusFound, "/report-approval")
}
