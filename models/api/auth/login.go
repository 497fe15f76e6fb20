package authapimodels

import (
	"github.com/pkg/errors"
)

type LoginRequest struct {
	UserName string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if r.UserName == "" {
		return errors.New("не указан логин")
	}
	if r.Password == "" {
		return errors.New("не указан пароль")
	}
	return nil
}

type JWTResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

type JWTRefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r JWTRefreshRequest) Validate() error {
	if r.RefreshToken == "" {
		return errors.New("не указан refresh токен")
	}
	return nil
}

type ProfileView struct {
	ID       string `json:"id"`
	UserName string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
}
