package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/citywatch/complaints-backend/internal/logger"
	"github.com/citywatch/complaints-backend/internal/models"
)

// ComplaintRepository описывает зависимости ComplaintService от слоя хранилища.
type ComplaintRepository interface {
	Create(ctx context.Context, c *models.Complaint) error
	List(ctx context.Context) ([]models.Complaint, error)
	ListByUsername(ctx context.Context, username string) ([]models.Complaint, error)
	Approve(ctx context.Context, id uuid.UUID) error
}

// ComplaintService инкапсулирует подачу, просмотр и одобрение жалоб.
type ComplaintService struct {
	repo     ComplaintRepository
	enricher *Enricher
}

// SubmitInput содержит поля формы подачи жалобы.
type SubmitInput struct {
	Firstname   string
	Lastname    string
	Email       string
	DateTime    string
	Type        string
	Location    string
	Description string
	URL         string
}

// NewComplaintService создаёт сервис жалоб.
func NewComplaintService(repo ComplaintRepository, enricher *Enricher) *ComplaintService {
	return &ComplaintService{repo: repo, enricher: enricher}
}

// Submit сохраняет жалобу от имени аутентифицированного пользователя.
// Автор фиксируется по username: поля имени из формы — только для
// отображения и не участвуют в привязке.
func (s *ComplaintService) Submit(ctx context.Context, user *models.User, in SubmitInput) (*models.Complaint, error) {
	c := &models.Complaint{
		Username:    user.Username,
		Firstname:   in.Firstname,
		Lastname:    in.Lastname,
		Email:       in.Email,
		DateTime:    in.DateTime,
		Type:        in.Type,
		Location:    in.Location,
		Description: in.Description,
	}
	if in.URL != "" {
		c.URL = &in.URL
	}

	if err := s.repo.Create(ctx, c); err != nil {
		if logger.Log != nil {
			logger.Log.WithFields(map[string]interface{}{
				"username": user.Username,
				"error":    err.Error(),
			}).Error("complaint service: ошибка сохранения жалобы")
		}
		return nil, err
	}

	return c, nil
}

// ListMine возвращает обогащённые жалобы пользователя.
func (s *ComplaintService) ListMine(ctx context.Context, username string) ([]models.EnrichedComplaint, error) {
	complaints, err := s.repo.ListByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	return s.enricher.EnrichAll(ctx, complaints), nil
}

// ListAll возвращает все обогащённые жалобы (админский обзор).
func (s *ComplaintService) ListAll(ctx context.Context) ([]models.EnrichedComplaint, error) {
	complaints, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return s.enricher.EnrichAll(ctx, complaints), nil
}

// Approve выставляет флаг одобрения. Одобрение монотонно: повторный
// вызов для уже одобренной жалобы ничего не меняет.
func (s *ComplaintService) Approve(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Approve(ctx, id); err != nil {
		if logger.Log != nil {
			logger.Log.WithFields(map[string]interface{}{
				"complaint_id": id.String(),
				"error":        err.Error(),
			}).Error("complaint service: ошибка одобрения жалобы")
		}
		return err
	}

	return nil
}
