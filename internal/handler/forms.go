package handler

import "feedbackhub/internal/model"

// RegisterRequest represents a user registration form.
type RegisterRequest struct {
	Username  string `json:"username" form:"username" validate:"required,max=20"`
	Password  string `json:"password" form:"password" validate:"required,max=72"`
	Email     string `json:"email" form:"email" validate:"required,email,max=50"`
	FirstName string `json:"first_name" form:"first_name" validate:"required,max=30"`
	LastName  string `json:"last_name" form:"last_name" validate:"required,max=30"`
}

// ValidationMessages maps field.tag pairs to user-facing messages.
func (RegisterRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"username.required":   "Please enter a unique username.",
		"username.max":        "Username can't be longer than 20 characters.",
		"password.required":   "Please enter a password.",
		"password.max":        "Password can't be longer than 72 characters.",
		"email.required":      "Please enter a valid email.",
		"email.email":         "Please enter a valid email.",
		"email.max":           "Email can't be longer than 50 characters.",
		"first_name.required": "Please enter your first name",
		"first_name.max":      "Name can't be longer than 30 characters.",
		"last_name.required":  "Please enter your last name",
		"last_name.max":       "Name can't be longer than 30 characters.",
	}
}

// LoginRequest represents a login form.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

func (LoginRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"username.required": "Enter a username.",
		"password.required": "Enter a password.",
	}
}

// FeedbackRequest represents the add and edit feedback form.
type FeedbackRequest struct {
	Title   string `json:"title" form:"title" validate:"required,max=100"`
	Content string `json:"content" form:"content" validate:"required"`
}

func (FeedbackRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"title.required":   "Please enter a title.",
		"title.max":        "Title can't be longer than 100 characters.",
		"content.required": "Please enter some feedback.",
	}
}

// FeedbackFormFromModel returns the edit form pre-filled from an existing post.
func FeedbackFormFromModel(post *model.Feedback) FeedbackRequest {
	if post == nil {
		return FeedbackRequest{}
	}
	return FeedbackRequest{
		Title:   post.Title,
		Content: post.Content,
	}
}
