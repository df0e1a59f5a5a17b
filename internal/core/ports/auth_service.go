package ports

import (
	"context"

	"github.com/pulsehr/feedback-flow/internal/core/domain"
)

// AuthService covers registration, login, and stateless session verification.
type AuthService interface {
	Register(ctx context.Context, name, email, role, password string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Verify(ctx context.Context, token string) (*domain.User, error)
}
