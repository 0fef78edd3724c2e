package service

import (
	"context"
	"errors"
	"testing"

	"notevault-be/internal/entity"
	"notevault-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOAuthFixture() (*oauthService, unitofwork.UnitOfWork, *fakeUserRepo) {
	users := newFakeUserRepo()
	uow := &fakeUnitOfWork{users: users}
	svc := &oauthService{uowFactory: &fakeFactory{uow: uow}}
	return svc, uow, users
}

func TestResolveAccount(t *testing.T) {
	ctx := context.Background()
	identity := entity.GoogleIdentity{Name: "Ada", Mail: "ada@example.com"}

	t.Run("provisions a user on first login", func(t *testing.T) {
		svc, uow, users := newOAuthFixture()

		user, err := svc.resolveAccount(ctx, uow, identity)
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", user.Email)
		assert.Equal(t, "Ada", user.FullName)
		assert.Nil(t, user.PasswordHash)
		assert.Equal(t, 1, users.created)
	})

	t.Run("returns the live account untouched", func(t *testing.T) {
		svc, uow, users := newOAuthFixture()
		existing := &entity.User{Id: uuid.New(), Email: "ada@example.com", FullName: "Ada L."}
		users.live[existing.Email] = existing

		user, err := svc.resolveAccount(ctx, uow, identity)
		require.NoError(t, err)
		assert.Equal(t, existing.Id, user.Id)
		assert.Equal(t, "Ada L.", user.FullName)
		assert.Zero(t, users.created)
	})

	t.Run("reactivates a soft-deleted account", func(t *testing.T) {
		svc, uow, users := newOAuthFixture()
		ghost := &entity.User{Id: uuid.New(), Email: "ada@example.com", FullName: "Ada"}
		users.deleted[ghost.Email] = ghost

		user, err := svc.resolveAccount(ctx, uow, identity)
		require.NoError(t, err)
		assert.Equal(t, ghost.Id, user.Id)
		assert.Zero(t, users.created, "reactivation must not create a second row")
		assert.Empty(t, users.deleted)
	})

	t.Run("a failing refetch surfaces instead of creating a duplicate", func(t *testing.T) {
		svc, uow, users := newOAuthFixture()
		ghost := &entity.User{Id: uuid.New(), Email: "ada@example.com", FullName: "Ada"}
		users.deleted[ghost.Email] = ghost
		users.failFindAfterRestore = errors.New("connection reset")

		_, err := svc.resolveAccount(ctx, uow, identity)
		require.Error(t, err)
		assert.ErrorContains(t, err, "connection reset")
		assert.Zero(t, users.created, "must not fall through to the create branch")
	})
}
