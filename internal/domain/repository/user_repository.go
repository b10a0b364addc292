package repository

import (
	"context"

	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
)

// UserRepository persistencia de usuarios del portal.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
}
