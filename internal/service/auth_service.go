package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/citywatch/complaints-backend/internal/config"
	"github.com/citywatch/complaints-backend/internal/logger"
	"github.com/citywatch/complaints-backend/internal/models"
	"github.com/citywatch/complaints-backend/internal/repository"
)

// Ошибки аутентификации. Хэндлер переводит их в статусы и сообщения,
// зафиксированные исходным приложением.
var (
	ErrUserExists         = errors.New("user already exists")
	ErrMissingCredentials = errors.New("username or password missing")
	ErrUserNotFound       = errors.New("no user found")
	ErrWrongPassword      = errors.New("incorrect password")
)

// AuthRepository описывает зависимости AuthService от слоя хранилища.
type AuthRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthService инкапсулирует регистрацию и проверку учётных данных.
type AuthService struct {
	repo   AuthRepository
	scheme string
}

// SignupInput содержит данные пользователя при регистрации.
type SignupInput struct {
	Username  string
	Password  string
	Firstname string
	Lastname  string
	Email     string
	Phone     int64
}

// NewAuthService создаёт сервис аутентификации с заданной схемой
// хранения пароля (bcrypt либо устаревший plaintext).
func NewAuthService(repo AuthRepository, scheme string) *AuthService {
	return &AuthService{repo: repo, scheme: scheme}
}

// Signup создаёт нового пользователя. Повторная регистрация того же
// username отклоняется: ровно один созданный пользователь на имя.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if _, err := s.repo.GetByUsername(ctx, in.Username); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("auth service: не удалось захешировать пароль: %w", err)
	}

	user := &models.User{
		Username:     in.Username,
		PasswordHash: hash,
		Firstname:    in.Firstname,
		Lastname:     in.Lastname,
		Email:        in.Email,
		Phone:        in.Phone,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	if logger.Log != nil {
		logger.Log.WithField("username", user.Username).Info("auth service: пользователь зарегистрирован")
	}

	return user, nil
}

// Login проверяет учётные данные и возвращает пользователя.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			if logger.Log != nil {
				logger.Log.WithField("username", username).Warn("auth service: вход с неизвестным username")
			}
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !s.verifyPassword(user.PasswordHash, password) {
		if logger.Log != nil {
			logger.Log.WithField("username", username).Warn("auth service: неверный пароль")
		}
		return nil, ErrWrongPassword
	}

	if logger.Log != nil {
		logger.Log.WithField("username", username).Info("auth service: успешный вход")
	}

	return user, nil
}

// hashPassword хэширует пароль по сконфигурированной схеме.
func (s *AuthService) hashPassword(password string) (string, error) {
	if s.scheme == config.PasswordSchemePlaintext {
		// Устаревшая схема: пароль хранится как есть.
		return password, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// verifyPassword сравнивает пароль со хранимым значением. Оба пути
// устойчивы к сравнению по времени.
func (s *AuthService) verifyPassword(stored, password string) bool {
	if s.scheme == config.PasswordSchemePlaintext {
		return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
	}

	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}
