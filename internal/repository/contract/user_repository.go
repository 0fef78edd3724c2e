package contract

import (
	"context"

	"notevault-be/internal/entity"
	"notevault-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindOneUnscoped(ctx context.Context, specs ...specification.Specification) (*entity.User, error) // includes soft-deleted
	Restore(ctx context.Context, id uuid.UUID) error                                                 // reactivate soft-deleted user
	UpdateAvatar(ctx context.Context, userId uuid.UUID, avatarURL string) error

	SaveUserProvider(ctx context.Context, provider *entity.UserProvider) error
}
