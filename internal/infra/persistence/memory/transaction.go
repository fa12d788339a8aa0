package memory

import (
	"context"

	"nexus/internal/domain/repository"
)

type transactionManager struct {
	store *Store
}

// repositoryFactory hands out repositories that run under the lock already held by Execute.
type repositoryFactory struct {
	store *Store
}

func (f *repositoryFactory) UserRepo() repository.UserRepository {
	return &userRepository{store: f.store, locked: true}
}

func (f *repositoryFactory) SessionRepo() repository.SessionRepository {
	return &sessionRepository{store: f.store, locked: true}
}

// NewTransactionManager returns a TransactionManager over the in-memory store.
// Transactions are serialized and roll back to a snapshot when fn fails.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &transactionManager{store: store}
}

func (tm *transactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tm.store.mu.Lock()
	defer tm.store.mu.Unlock()

	snapshot := tm.store.data.clone()
	committed := false
	defer func() {
		if !committed {
			tm.store.data = snapshot
		}
	}()

	if err := fn(&repositoryFactory{store: tm.store}); err != nil {
		return err
	}
	committed = true

	return nil
}
