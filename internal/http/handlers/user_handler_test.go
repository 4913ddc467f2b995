package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citywatch/complaints-backend/internal/models"
)

func TestUserHandler_ListAsAdmin(t *testing.T) {
	app := newTestApp(t)
	app.loginAs(t, "alice")
	adminCookie := app.loginAs(t, "admin")

	w := app.request(http.MethodGet, "/users", adminCookie)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Users []models.User `json:"users"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Users, 2)

	// Хэш пароля не попадает в сериализованный ответ.
	assert.NotContains(t, w.Body.String(), "password_hash")
	assert.NotContains(t, w.Body.String(), "$2a$")
}
