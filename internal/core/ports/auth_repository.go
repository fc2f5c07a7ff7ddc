package ports

import (
	"context"

	"github.com/rentease/rentease/internal/core/domain"
)

// UserRepository defines persistence for registered accounts.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, email, hash string) error
}
