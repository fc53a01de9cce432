package model

import "time"

// Feedback is a post owned by exactly one User.
type Feedback struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Title     string    `json:"title" gorm:"size:100;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Username  string    `json:"username" gorm:"size:20;not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the default table name.
func (Feedback) TableName() string {
	return "feedback"
}

// NewFeedback builds a post for owner. The id is assigned by the store.
func NewFeedback(title, content, owner string) *Feedback {
	return &Feedback{
		Title:    title,
		Content:  content,
		Username: owner,
	}
}

// Edit replaces title and content. Id and owner never change.
func (f *Feedback) Edit(title, content string) {
	f.Title = title
	f.Content = content
}

// OwnerUsername returns the username of the owning user.
func (f *Feedback) OwnerUsername() string {
	return f.Username
}
