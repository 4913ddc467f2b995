package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/citywatch/complaints-backend/internal/models"
)

// ErrComplaintNotFound возвращается, когда жалоба не найдена.
var ErrComplaintNotFound = errors.New("complaint not found")

// ComplaintRepository отвечает за работу с таблицей complaints.
type ComplaintRepository struct {
	db *sqlx.DB
}

// NewComplaintRepository создаёт экземпляр репозитория.
func NewComplaintRepository(db *sqlx.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

const complaintColumns = `id, username, firstname, lastname, email, date_time, type, location, description, url, approved, created_at`

// Create сохраняет новую жалобу.
func (r *ComplaintRepository) Create(ctx context.Context, c *models.Complaint) error {
	query := `
		INSERT INTO complaints (username, firstname, lastname, email, date_time, type, location, description, url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, approved, created_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		c.Username, c.Firstname, c.Lastname, c.Email, c.DateTime, c.Type, c.Location, c.Description, c.URL,
	).Scan(&c.ID, &c.Approved, &c.CreatedAt); err != nil {
		return fmt.Errorf("complaint repository: create %w", err)
	}

	return nil
}

// GetByID возвращает жалобу по идентификатору.
func (r *ComplaintRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Complaint, error) {
	var c models.Complaint
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE id = $1`
	if err := r.db.GetContext(ctx, &c, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrComplaintNotFound
		}
		return nil, fmt.Errorf("complaint repository: get by id %w", err)
	}

	return &c, nil
}

// List возвращает все жалобы (админский обзор).
func (r *ComplaintRepository) List(ctx context.Context) ([]models.Complaint, error) {
	var complaints []models.Complaint
	query := `SELECT ` + complaintColumns + ` FROM complaints ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &complaints, query); err != nil {
		return nil, fmt.Errorf("complaint repository: list %w", err)
	}

	return complaints, nil
}

// ListByUsername возвращает жалобы конкретного пользователя.
// Привязка по username, а не по паре имя/фамилия: имена с пробелами
// ломали старую схему.
func (r *ComplaintRepository) ListByUsername(ctx context.Context, username string) ([]models.Complaint, error) {
	var complaints []models.Complaint
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE username = $1 ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &complaints, query, username); err != nil {
		return nil, fmt.Errorf("complaint repository: list by username %w", err)
	}

	return complaints, nil
}

// Approve выставляет approved = TRUE. Безусловная запись без
// compare-and-swap: повторное одобрение — no-op.
func (r *ComplaintRepository) Approve(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `UPDATE complaints SET approved = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("complaint repository: approve %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("complaint repository: approve %w", err)
	}
	if affected == 0 {
		return ErrComplaintNotFound
	}

	return nil
}
