package ports

import (
	"context"

	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/domain"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.Account, error)
}
