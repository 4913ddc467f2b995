package models

import (
	"time"

	"github.com/google/uuid"
)

// User описывает зарегистрированного горожанина.
// Пароль хранится только в виде хэша и никогда не сериализуется.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Firstname    string    `db:"firstname" json:"firstname"`
	Lastname     string    `db:"lastname" json:"lastname"`
	Email        string    `db:"email" json:"email"`
	Phone        int64     `db:"phone" json:"phone"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// IsAdmin сообщает, является ли пользователь администратором.
// Это единственная "роль" в системе: жёстко зашитый супер-пользователь.
func (u *User) IsAdmin() bool {
	return u.Username == "admin"
}
