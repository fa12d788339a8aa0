// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "nexus/internal/delivery/context"
	"nexus/internal/domain/entity"
	domainerrors "nexus/internal/domain/errors"
	"nexus/internal/domain/repository"
	"nexus/internal/domain/service"
	"nexus/internal/errors"
	"nexus/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	hasher    service.PasswordHasher
	events    *accountEventEmitter
	logger    *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	UserRepo       repository.UserRepository
	Hasher         service.PasswordHasher
	EventPublisher service.EventPublisher
	Logger         *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		hasher:    params.Hasher,
		events:    newAccountEventEmitter(params.EventPublisher, params.Logger),
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// validateCredentials checks the fields every credential write needs.
func validateCredentials(email, password string) error {
	if email == "" || password == "" {
		return domainerrors.ErrValidationFailed
	}
	if len(password) > entity.MaxPasswordBytes {
		return domainerrors.ErrPasswordTooLong
	}

	return nil
}

func (srv *userService) hashPassword(ctx context.Context, password string) (string, error) {
	passwordHash, err := srv.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, service.ErrPasswordTooLong) {
			return "", domainerrors.ErrPasswordTooLong
		}
		srv.log(ctx).Error("Failed to hash password", slog.Any("error", err))

		return "", errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	return passwordHash, nil
}

// RegisterUser orchestrates the complete user registration process.
// The existence check is a fast path; the store's unique index decides races.
func (srv *userService) RegisterUser(ctx context.Context, input *usecase.RegisterUserInput) (*entity.User, error) {
	if input == nil {
		return nil, domainerrors.ErrValidationFailed
	}
	if err := validateCredentials(input.Email, input.Password); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	exists, err := srv.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check email availability")
	}
	if exists {
		return nil, domainerrors.ErrUserAlreadyExists.WrapMessage("user registration failed")
	}

	passwordHash, err := srv.hashPassword(ctx, input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: passwordHash,
	}
	if err := srv.userRepo.Save(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrUserAlreadyExists) {
			srv.log(ctx).Info("Registration lost race on email", slog.String("email", input.Email))

			return nil, err
		}
		srv.log(ctx).Error("Failed to store new user", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to store new user")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", user.ID))
	srv.events.emit(ctx, entity.AccountEventRegistered, user)

	return user, nil
}

// Authenticate verifies an email/password pair without revealing which half was wrong.
func (srv *userService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Debug("Authentication failed: unknown email")

			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !srv.hasher.Check(password, user.PasswordHash) {
		srv.log(ctx).Debug("Authentication failed: password mismatch", slog.Any("userID", user.ID))

		return nil, domainerrors.ErrInvalidCredentials
	}

	return user, nil
}

func (srv *userService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

// UpdateUser replaces name, email and password. The password is hashed like on registration.
func (srv *userService) UpdateUser(ctx context.Context, id uuid.UUID, input *usecase.UpdateUserInput) (*entity.User, error) {
	if input == nil {
		return nil, domainerrors.ErrValidationFailed
	}
	if err := validateCredentials(input.Email, input.Password); err != nil {
		return nil, err
	}

	user, err := srv.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	passwordHash, err := srv.hashPassword(ctx, input.Password)
	if err != nil {
		return nil, err
	}

	user.Name = input.Name
	user.Email = input.Email
	user.PasswordHash = passwordHash

	if err := srv.userRepo.Save(ctx, user); err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrUserAlreadyExists):
			return nil, err
		case errors.Is(err, repository.ErrUserNotFound):
			// Deleted between the lookup and the write.
			return nil, domainerrors.ErrUserNotFound
		default:
			srv.log(ctx).Error("Failed to update user", slog.Any("userID", id), slog.Any("error", err))

			return nil, errors.Wrap(err, "failed to update user")
		}
	}

	srv.log(ctx).Info("User updated", slog.Any("userID", id))
	srv.events.emit(ctx, entity.AccountEventUpdated, user)

	return user, nil
}

// DeleteUser removes the user and every session they hold in one transaction.
func (srv *userService) DeleteUser(ctx context.Context, id uuid.UUID) (usecase.DeleteOutcome, error) {
	deleted := false

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		exists, err := userRepo.ExistsByID(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to check user existence")
		}
		if !exists {
			return nil
		}

		if err := repoFactory.SessionRepo().DeleteByUserID(ctx, id); err != nil {
			return errors.Wrap(err, "failed to invalidate user sessions")
		}
		if err := userRepo.DeleteByID(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete user")
		}
		deleted = true

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute user deletion transaction", slog.Any("userID", id), slog.Any("error", err))

		return 0, errors.Wrap(err, "failed to execute user deletion transaction")
	}

	if !deleted {
		srv.log(ctx).Debug("Delete requested for unknown user", slog.Any("userID", id))

		return usecase.DeleteOutcomeNotFound, nil
	}

	srv.log(ctx).Info("User deleted", slog.Any("userID", id))
	srv.events.emit(ctx, entity.AccountEventDeleted, &entity.User{ID: id})

	return usecase.DeleteOutcomeDeleted, nil
}

func (srv *userService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.userRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return users, nil
}
