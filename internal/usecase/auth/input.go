package auth

// RegisterInput is the raw registration payload.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=6,max=255"`
	Email    string `json:"email" validate:"required,email,min=6,max=255"`
	Password string `json:"password" validate:"required,min=6,max=20"`
}

// LoginInput is the raw login payload.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email,min=6,max=255"`
	Password string `json:"password" validate:"required,min=6,max=20"`
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	AccountID string `json:"accountId"`
	Token     string `json:"token"`
}
