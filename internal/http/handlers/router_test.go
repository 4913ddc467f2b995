package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/citywatch/complaints-backend/internal/config"
	"github.com/citywatch/complaints-backend/internal/http/middleware"
	"github.com/citywatch/complaints-backend/internal/models"
	"github.com/citywatch/complaints-backend/internal/repository"
	"github.com/citywatch/complaints-backend/internal/service"
)

// mockUserStore реализует service.AuthRepository, middleware.UserResolver
// и UserLister поверх map.
type mockUserStore struct {
	users map[string]*models.User
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[string]*models.User)}
}

func (m *mockUserStore) Create(ctx context.Context, user *models.User) error {
	user.ID = uuid.New()
	m.users[user.Username] = user
	return nil
}

func (m *mockUserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if user, ok := m.users[username]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserStore) List(ctx context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

// mockComplaintStore реализует service.ComplaintRepository поверх слайса.
type mockComplaintStore struct {
	complaints []models.Complaint
	createErr  error
}

func (m *mockComplaintStore) Create(ctx context.Context, c *models.Complaint) error {
	if m.createErr != nil {
		return m.createErr
	}
	c.ID = uuid.New()
	m.complaints = append(m.complaints, *c)
	return nil
}

func (m *mockComplaintStore) List(ctx context.Context) ([]models.Complaint, error) {
	return m.complaints, nil
}

func (m *mockComplaintStore) ListByUsername(ctx context.Context, username string) ([]models.Complaint, error) {
	var out []models.Complaint
	for _, c := range m.complaints {
		if c.Username == username {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockComplaintStore) Approve(ctx context.Context, id uuid.UUID) error {
	for i := range m.complaints {
		if m.complaints[i].ID == id {
			m.complaints[i].Approved = true
			return nil
		}
	}
	return repository.ErrComplaintNotFound
}

// testApp собирает приложение на мок-хранилищах с маршрутами как в
// боевом роутере.
type testApp struct {
	engine     *gin.Engine
	users      *mockUserStore
	complaints *mockComplaintStore
	sessions   *service.SessionManager
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := newMockUserStore()
	complaints := &mockComplaintStore{}

	tokens := service.NewTokenManager("test-secret", time.Hour)
	sessions := service.NewSessionManager(config.AuthModeSession, tokens, service.NewMemorySessionStore())
	authService := service.NewAuthService(users, config.PasswordSchemeBcrypt)
	enricher := service.NewEnricher(nil, "http://127.0.0.1:0/placeholder.png")
	complaintService := service.NewComplaintService(complaints, enricher)

	pageHandler := NewPageHandler()
	authHandler := NewAuthHandler(authService, sessions)
	complaintHandler := NewComplaintHandler(complaintService)
	userHandler := NewUserHandler(users)

	r := gin.New()
	r.GET("/", pageHandler.Root)
	r.GET("/signup", pageHandler.Signup)
	r.POST("/signup", authHandler.Signup)
	r.GET("/login", pageHandler.Login)
	r.POST("/login", authHandler.Login)

	authed := r.Group("/")
	authed.Use(middleware.RequireSession(sessions, users))
	{
		authed.GET("/home", pageHandler.Home)
		authed.GET("/logout", authHandler.Logout)
		authed.GET("/my-complaints/", complaintHandler.ListMine)
		authed.POST("/report", complaintHandler.Submit)
	}

	admin := r.Group("/")
	admin.Use(middleware.RequireSession(sessions, users), middleware.RequireAdmin())
	{
		admin.GET("/users", userHandler.List)
		admin.GET("/complaints", complaintHandler.ListAll)
		admin.GET("/report-approval", complaintHandler.ListAll)
		admin.PATCH("/approve/:id", complaintHandler.Approve)
	}

	return &testApp{engine: r, users: users, complaints: complaints, sessions: sessions}
}

// postForm отправляет form-urlencoded запрос.
func (a *testApp) postForm(path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testApp) request(method, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

// loginAs регистрирует пользователя (если нужно) и возвращает его
// идентификационную cookie.
func (a *testApp) loginAs(t *testing.T, username string) *http.Cookie {
	t.Helper()

	if _, ok := a.users.users[username]; !ok {
		w := a.postForm("/signup", url.Values{
			"username": {username},
			"password": {"p1"},
		}, nil)
		if w.Code != http.StatusFound {
			t.Fatalf("signup %s: ожидали редирект, получили %d", username, w.Code)
		}
	}

	w := a.postForm("/login", url.Values{
		"username": {username},
		"password": {"p1"},
	}, nil)
	if w.Code != http.StatusFound {
		t.Fatalf("login %s: ожидали редирект, получили %d", username, w.Code)
	}

	res := w.Result()
	for _, c := range res.Cookies() {
		if c.Name == service.SessionCookieName {
			return c
		}
	}
	t.Fatalf("login %s: cookie сессии не установлена", username)
	return nil
}
