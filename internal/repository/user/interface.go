// File: internal/repository/user/interface.go
package user

import (
	"context"

	"github.com/niksalehi/go-visionchat/internal/domain"
)

// UserRepository persists user records keyed by email and by identifier.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
}
