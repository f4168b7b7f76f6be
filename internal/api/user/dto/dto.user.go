package userdto

import "strings"

// RegisterInput is the multipart form of POST /auth; avatar and coverImage are files.
type RegisterInput struct {
	Username string `form:"username" json:"username" validate:"required,username"`
	Fullname string `form:"fullname" json:"fullname" validate:"required,max=100,no_xss"`
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required,min=6,max=72"`

	AvatarPath     string `form:"-" json:"-"`
	CoverImagePath string `form:"-" json:"-"`
}

// Normalize lowercases and trims the username and email.
func (in *RegisterInput) Normalize() {
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
}

// LoginInput accepts either email or username.
type LoginInput struct {
	Email    string `json:"email" validate:"required_without=Username,omitempty,email"`
	Username string `json:"username" validate:"required_without=Email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenInput is used when the refreshToken cookie is absent.
type RefreshTokenInput struct {
	RefreshToken string `json:"refreshToken"`
}

type ResetPasswordInput struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=72"`
}

// UpdateAccountInput needs at least one of its fields.
type UpdateAccountInput struct {
	Fullname string `json:"fullname" validate:"required_without=Email,max=100,no_xss"`
	Email    string `json:"email" validate:"required_without=Fullname,omitempty,email"`
}

// TokenPair is returned by login and refresh alongside the cookies.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
