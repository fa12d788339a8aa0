package memory

import (
	"context"
	"testing"
	"time"

	"nexus/internal/domain/entity"
	"nexus/internal/domain/repository"
	"nexus/internal/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionManager_Commit(t *testing.T) {
	store := NewStore()
	tm := NewTransactionManager(store)
	user := newUser("Ann", "a@x.com")

	err := tm.Execute(t.Context(), func(f repository.RepositoryFactory) error {
		if err := f.UserRepo().Save(t.Context(), user); err != nil {
			return err
		}

		return f.SessionRepo().Create(t.Context(), &entity.Session{ID: uuid.New(), UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour)})
	})
	require.NoError(t, err)

	exists, err := NewUserRepository(store).ExistsByID(t.Context(), user.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestTransactionManager_RollbackOnError(t *testing.T) {
	store := NewStore()
	tm := NewTransactionManager(store)
	existing := seedUser(t, store, "keep@x.com")
	boom := errors.New("boom")

	err := tm.Execute(t.Context(), func(f repository.RepositoryFactory) error {
		if err := f.UserRepo().DeleteByID(t.Context(), existing.ID); err != nil {
			return err
		}
		if err := f.UserRepo().Save(t.Context(), newUser("New", "new@x.com")); err != nil {
			return err
		}

		return boom
	})
	assert.ErrorIs(t, err, boom)

	users, err := NewUserRepository(store).FindAll(t.Context())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, existing.ID, users[0].ID)
}

func TestTransactionManager_RollbackOnPanic(t *testing.T) {
	store := NewStore()
	tm := NewTransactionManager(store)

	assert.Panics(t, func() {
		_ = tm.Execute(t.Context(), func(f repository.RepositoryFactory) error {
			_ = f.UserRepo().Save(t.Context(), newUser("New", "new@x.com"))
			panic("boom")
		})
	})

	users, err := NewUserRepository(store).FindAll(t.Context())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestTransactionManager_CancelledContext(t *testing.T) {
	tm := NewTransactionManager(NewStore())
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	called := false
	err := tm.Execute(ctx, func(repository.RepositoryFactory) error {
		called = true

		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
