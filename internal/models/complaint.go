package models

import (
	"time"

	"github.com/google/uuid"
)

// Complaint описывает жалобу (сообщение о происшествии), поданную
// пользователем. Username — стабильная привязка к автору жалобы,
// имя и фамилия дублируются для отображения.
type Complaint struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Username    string    `db:"username" json:"username"`
	Firstname   string    `db:"firstname" json:"firstname"`
	Lastname    string    `db:"lastname" json:"lastname"`
	Email       string    `db:"email" json:"email"`
	DateTime    string    `db:"date_time" json:"date_time"`
	Type        string    `db:"type" json:"type"`
	Location    string    `db:"location" json:"location"`
	Description string    `db:"description" json:"description"`
	URL         *string   `db:"url" json:"url,omitempty"`
	Approved    bool      `db:"approved" json:"approved"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// EnrichedComplaint — жалоба, дополненная человекочитаемой подписью
// изображения. ImageURL всегда заполнен: при отсутствии url жалобы
// подставляется плейсхолдер.
type EnrichedComplaint struct {
	Complaint
	ImageURL  string `json:"image_url"`
	ImageName string `json:"image_name"`
}
