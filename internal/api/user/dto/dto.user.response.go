package userdto

import (
	models "github.com/Aniket1026/yoto/internal/api/user/models"
)

// LoginResult is the login response body.
type LoginResult struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}
