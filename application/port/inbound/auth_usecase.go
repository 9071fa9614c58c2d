package inbound

import (
	"context"

	"github.com/verdemed/verdemed/domain/valueobject"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`

	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

type AuthUseCase interface {
	Login(ctx context.Context, req LoginRequest) (*valueobject.Session, error)
}
