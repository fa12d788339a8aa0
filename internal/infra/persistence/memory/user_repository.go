package memory

import (
	"context"
	"sort"

	"nexus/internal/domain/entity"
	domainerrors "nexus/internal/domain/errors"
	"nexus/internal/domain/repository"
	"nexus/internal/errors"

	"github.com/google/uuid"
)

type userRepository struct {
	store  *Store
	locked bool
}

// NewUserRepository returns a UserRepository backed by the given store.
func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store}
}

func (repo *userRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	var found *entity.User
	err := repo.store.access(repo.locked, false, func(t *tables) error {
		user, ok := t.users[id]
		if !ok {
			return repository.ErrUserNotFound
		}
		found = copyUser(user)

		return nil
	})

	return found, err
}

func (repo *userRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	var found *entity.User
	err := repo.store.access(repo.locked, false, func(t *tables) error {
		id, ok := t.emailIndex[email]
		if !ok {
			return repository.ErrUserNotFound
		}
		found = copyUser(t.users[id])

		return nil
	})

	return found, err
}

func (repo *userRepository) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := repo.store.access(repo.locked, false, func(t *tables) error {
		_, exists = t.users[id]

		return nil
	})

	return exists, err
}

func (repo *userRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	var exists bool
	err := repo.store.access(repo.locked, false, func(t *tables) error {
		_, exists = t.emailIndex[email]

		return nil
	})

	return exists, err
}

// FindAll returns users in insertion order.
func (repo *userRepository) FindAll(_ context.Context) ([]*entity.User, error) {
	var users []*entity.User
	err := repo.store.access(repo.locked, false, func(t *tables) error {
		users = make([]*entity.User, 0, len(t.users))
		for _, user := range t.users {
			users = append(users, copyUser(user))
		}
		sort.Slice(users, func(i, j int) bool {
			return t.insertOrder[users[i].ID] < t.insertOrder[users[j].ID]
		})

		return nil
	})

	return users, err
}

func (repo *userRepository) Save(_ context.Context, user *entity.User) error {
	return repo.store.access(repo.locked, true, func(t *tables) error {
		now := repo.store.now()

		if user.IsNew() {
			if _, taken := t.emailIndex[user.Email]; taken {
				return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
			}

			id, err := uuid.NewV7()
			if err != nil {
				return errors.Wrap(err, "failed to generate user id")
			}

			user.ID = id
			user.CreatedAt = now
			user.UpdatedAt = now

			t.seq++
			t.insertOrder[id] = t.seq
			t.users[id] = copyUser(user)
			t.emailIndex[user.Email] = id

			return nil
		}

		existing, ok := t.users[user.ID]
		if !ok {
			return repository.ErrUserNotFound
		}
		if owner, taken := t.emailIndex[user.Email]; taken && owner != user.ID {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}

		delete(t.emailIndex, existing.Email)
		user.CreatedAt = existing.CreatedAt
		user.UpdatedAt = now
		t.users[user.ID] = copyUser(user)
		t.emailIndex[user.Email] = user.ID

		return nil
	})
}

func (repo *userRepository) DeleteByID(_ context.Context, id uuid.UUID) error {
	return repo.store.access(repo.locked, true, func(t *tables) error {
		user, ok := t.users[id]
		if !ok {
			return nil
		}

		delete(t.emailIndex, user.Email)
		delete(t.insertOrder, id)
		delete(t.users, id)

		// Mirror the ON DELETE CASCADE of the sessions table.
		for sessionID, session := range t.sessions {
			if session.UserID == id {
				delete(t.sessions, sessionID)
			}
		}

		return nil
	})
}
