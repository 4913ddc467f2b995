package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citywatch/complaints-backend/internal/models"
	"github.com/citywatch/complaints-backend/internal/repository"
)

// mockComplaintRepository реализует ComplaintRepository для тестов.
type mockComplaintRepository struct {
	complaints []models.Complaint
	createErr  error
}

func (m *mockComplaintRepository) Create(ctx context.Context, c *models.Complaint) error {
	if m.createErr != nil {
		return m.createErr
	}
	c.ID = uuid.New()
	m.complaints = append(m.complaints, *c)
	return nil
}

func (m *mockComplaintRepository) List(ctx context.Context) ([]models.Complaint, error) {
	return m.complaints, nil
}

func (m *mockComplaintRepository) ListByUsername(ctx context.Context, username string) ([]models.Complaint, error) {
	var out []models.Complaint
	for _, c := range m.complaints {
		if c.Username == username {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockComplaintRepository) Approve(ctx context.Context, id uuid.UUID) error {
	for i := range m.complaints {
		if m.complaints[i].ID == id {
			m.complaints[i].Approved = true
			return nil
		}
	}
	return repository.ErrComplaintNotFound
}

func newTestEnricher() *Enricher {
	// Плейсхолдер указывает в никуда: обогащение деградирует до фолбэка.
	return NewEnricher(nil, "http://127.0.0.1:0/placeholder.png")
}

func TestComplaintService_SubmitStampsReporter(t *testing.T) {
	repo := &mockComplaintRepository{}
	svc := NewComplaintService(repo, newTestEnricher())

	user := &models.User{Username: "alice", Firstname: "A", Lastname: "L"}

	c, err := svc.Submit(context.Background(), user, SubmitInput{
		Firstname:   "Mallory", // подменённое имя из формы не влияет на привязку
		Lastname:    "M",
		Type:        "theft",
		Location:    "Main St",
		Description: "bike stolen",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", c.Username)
	assert.False(t, c.Approved)
	assert.Nil(t, c.URL)
}

func TestComplaintService_SubmitSurfacesStorageFailure(t *testing.T) {
	repo := &mockComplaintRepository{createErr: errors.New("insert failed")}
	svc := NewComplaintService(repo, newTestEnricher())

	_, err := svc.Submit(context.Background(), &models.User{Username: "alice"}, SubmitInput{})
	assert.Error(t, err)
}

func TestComplaintService_ListMineIsScoped(t *testing.T) {
	repo := &mockComplaintRepository{}
	svc := NewComplaintService(repo, newTestEnricher())

	_, err := svc.Submit(context.Background(), &models.User{Username: "alice"}, SubmitInput{Type: "theft"})
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), &models.User{Username: "bob"}, SubmitInput{Type: "noise"})
	require.NoError(t, err)

	mine, err := svc.ListMine(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "theft", mine[0].Type)
	assert.Equal(t, FallbackImageName, mine[0].ImageName)

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestComplaintService_ApproveIsMonotonic(t *testing.T) {
	repo := &mockComplaintRepository{}
	svc := NewComplaintService(repo, newTestEnricher())

	c, err := svc.Submit(context.Background(), &models.User{Username: "alice"}, SubmitInput{})
	require.NoError(t, err)

	require.NoError(t, svc.Approve(context.Background(), c.ID))
	assert.True(t, repo.complaints[0].Approved)

	// Повторное одобрение — no-op: approved остаётся true.
	require.NoError(t, svc.Approve(context.Background(), c.ID))
	assert.True(t, repo.complaints[0].Approved)

	err = svc.Approve(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrComplaintNotFound)
}
