package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/citywatch/complaints-backend/internal/logger"
	"github.com/citywatch/complaints-backend/internal/service"
)

// AuthHandler предоставляет HTTP слой для регистрации, входа и выхода.
type AuthHandler struct {
	auth     *service.AuthService
	sessions *service.SessionManager
}

// NewAuthHandler создаёт хэндлер.
func NewAuthHandler(auth *service.AuthService, sessions *service.SessionManager) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions}
}

// Signup обрабатывает POST /signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	phone, _ := strconv.ParseInt(c.PostForm("phone"), 10, 64)

	user, err := h.auth.Signup(c.Request.Context(), service.SignupInput{
		Username:  c.PostForm("username"),
		Password:  c.PostForm("password"),
		Firstname: c.PostForm("firstname"),
		Lastname:  c.PostForm("lastname"),
		Email:     c.PostForm("email"),
		Phone:     phone,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			// Статус 401 унаследован от исходного приложения и
			// зафиксирован его клиентами, хотя по смыслу это 409.
			c.JSON(http.StatusUnauthorized, gin.H{"message": "User already exists!"})
			return
		}
		if logger.Log != nil {
			logger.Log.WithField("error", err.Error()).Error("auth handler: ошибка регистрации")
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not create user"})
		return
	}

	h.setIdentityCookie(c, user.Username)
	c.Redirect(http.StatusFound, "/home")
}

// Login обрабатывает POST /login.
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.auth.Login(c.Request.Context(), username, password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Incorrect username or password"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "No user found!"})
		case errors.Is(err, service.ErrWrongPassword):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Incorrect password"})
		default:
			if logger.Log != nil {
				logger.Log.WithField("error", err.Error()).Error("auth handler: ошибка входа")
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed"})
		}
		return
	}

	h.setIdentityCookie(c, user.Username)
	c.Redirect(http.StatusFound, "/home")
}

// Logout обрабатывает GET /logout: отзывает сессию и гасит cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if cookie, err := c.Cookie(h.sessions.CookieName()); err == nil {
		if err := h.sessions.Revoke(c.Request.Context(), cookie); err != nil {
			if logger.Log != nil {
				logger.Log.WithField("error", err.Error()).Warn("auth handler: не удалось отозвать сессию")
			}
		}
	}

	c.SetCookie(h.sessions.CookieName(), "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
}

// setIdentityCookie выпускает и устанавливает идентификационную cookie.
func (h *AuthHandler) setIdentityCookie(c *gin.Context, username string) {
	value, err := h.sessions.Issue(c.Request.Context(), username)
	if err != nil {
		if logger.Log != nil {
			logger.Log.WithFields(map[string]interface{}{
				"username": username,
				"error":    err.Error(),
			}).Error("auth handler: не удалось выпустить сессию")
		}
		return
	}

	c.SetCookie(h.sessions.CookieName(), value, 0, "/", "", false, true)
}
