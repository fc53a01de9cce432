package model

import (
	"time"

	"feedbackhub/internal/auth"
)

// User represents a registered account. The username is the primary key.
type User struct {
	Username  string    `json:"username" gorm:"primaryKey;size:20"`
	Password  string    `json:"-" gorm:"type:text;not null"` // bcrypt hash, never exposed
	Email     string    `json:"email" gorm:"uniqueIndex;size:50;not null"`
	FirstName string    `json:"first_name" gorm:"size:30;not null"`
	LastName  string    `json:"last_name" gorm:"size:30;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Feedback []Feedback `json:"feedback,omitempty" gorm:"foreignKey:Username;references:Username;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName overrides the default table name.
func (User) TableName() string {
	return "users"
}

// RegisterUser builds a User whose password is stored as a salted hash.
// The user is not persisted.
func RegisterUser(username, password, email, firstName, lastName string) (*User, error) {
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &User{
		Username:  username,
		Password:  hashed,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
	}, nil
}

// Authenticate reports whether password matches the stored hash.
func (u *User) Authenticate(password string) bool {
	return auth.VerifyPassword(password, u.Password)
}

// FullName joins first and last name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
