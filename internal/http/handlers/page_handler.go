package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/citywatch/complaints-backend/internal/http/handlers/common"
)

// PageHandler отдаёт минимальные HTML страницы. Полноценного
// шаблонизатора нет намеренно: фронтенд вне рамок сервиса, страницы
// нужны только чтобы формы было куда отправить.
type PageHandler struct{}

// NewPageHandler создаёт хэндлер страниц.
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

const signupPage = `<!DOCTYPE html>
<html>
<head><title>Sign up</title></head>
<body>
<h1>Sign up</h1>
<form method="post" action="/signup">
  <input name="username" placeholder="Username" required>
  <input name="password" type="password" placeholder="Password" required>
  <input name="firstname" placeholder="First name">
  <input name="lastname" placeholder="Last name">
  <input name="email" type="email" placeholder="Email">
  <input name="phone" placeholder="Phone">
  <button type="submit">Sign up</button>
</form>
<a href="/login">Log in</a>
</body>
</html>`

const loginPage = `<!DOCTYPE html>
<html>
<head><title>Log in</title></head>
<body>
<h1>Log in</h1>
<form method="post" action="/login">
  <input name="username" placeholder="Username" required>
  <input name="password" type="password" placeholder="Password" required>
  <button type="submit">Log in</button>
</form>
<a href="/signup">Sign up</a>
</body>
</html>`

const homePage = `<!DOCTYPE html>
<html>
<head><title>Home</title></head>
<body>
<h1>Report a crime</h1>
<form method="post" action="/report">
  <input name="firstname" placeholder="First name">
  <input name="lastname" placeholder="Last name">
  <input name="email" type="email" placeholder="Email">
  <input name="date_time" placeholder="Date and time">
  <input name="type" placeholder="Type of crime">
  <input name="location" placeholder="Location">
  <textarea name="description" placeholder="Description"></textarea>
  <input name="url" placeholder="Image URL (optional)">
  <button type="submit">Submit report</button>
</form>
<a href="/my-complaints/">My complaints</a>
<a href="/logout">Log out</a>
</body>
</html>`

// Root обрабатывает GET /: безусловный редирект на /home.
func (h *PageHandler) Root(c *gin.Context) {
	c.Redirect(http.StatusFound, "/home")
}

// Signup обрабатывает GET /signup.
func (h *PageHandler) Signup(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(signupPage))
}

// Login обрабатывает GET /login.
func (h *PageHandler) Login(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(loginPage))
}

// Home обрабатывает GET /home для аутентифицированного пользователя.
func (h *PageHandler) Home(c *gin.Context) {
	if _, err := common.CurrentUser(c); err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(homePage))
}
