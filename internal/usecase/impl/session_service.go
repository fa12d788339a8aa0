package impl

import (
	"context"
	"log/slog"
	"time"

	"nexus/config"
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

const defaultSessionTTL = 24 * time.Hour

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	users        usecase.UserUsecase
	sessionRepo  repository.SessionRepository
	tokenService service.SessionTokenService
	ttl          time.Duration
	now          func() time.Time
	logger       *slog.Logger
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	UserUsecase  usecase.UserUsecase
	SessionRepo  repository.SessionRepository
	TokenService service.SessionTokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	ttl := defaultSessionTTL
	if params.Config != nil && params.Config.Session != nil && params.Config.Session.TTL > 0 {
		ttl = params.Config.Session.TTL
	}

	return &sessionService{
		users:        params.UserUsecase,
		sessionRepo:  params.SessionRepo,
		tokenService: params.TokenService,
		ttl:          ttl,
		now:          time.Now,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login authenticates the user and binds a new server-side session to them.
func (srv *sessionService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	if input == nil {
		return nil, domainerrors.ErrInvalidCredentials
	}

	user, err := srv.users.Authenticate(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	now := srv.now()
	session := &entity.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		Username:  displayName(user),
		ExpiresAt: now.Add(srv.ttl),
	}

	if err := srv.sessionRepo.Create(ctx, session); err != nil {
		srv.log(ctx).Error("Failed to create session", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrSessionCreationFailed, err.Error())
	}

	token, err := srv.tokenService.Issue(session.ID, user.ID, session.ExpiresAt)
	if err != nil {
		srv.log(ctx).Error("Failed to sign session token", slog.Any("sessionID", session.ID), slog.Any("error", err))
		if delErr := srv.sessionRepo.DeleteByID(ctx, session.ID); delErr != nil {
			srv.log(ctx).Warn("Failed to discard unsigned session", slog.Any("sessionID", session.ID), slog.Any("error", delErr))
		}

		return nil, errors.Wrap(domainerrors.ErrSessionCreationFailed, err.Error())
	}

	srv.log(ctx).Info("Session started", slog.Any("userID", user.ID), slog.Any("sessionID", session.ID))

	return &usecase.LoginOutput{
		Token:   token,
		Session: session,
		User:    user,
	}, nil
}

// CurrentSession resolves the token to a stored, unexpired session.
func (srv *sessionService) CurrentSession(ctx context.Context, token string) (*entity.Session, error) {
	if token == "" {
		return nil, domainerrors.ErrNotLoggedIn
	}

	claims, err := srv.tokenService.Parse(token)
	if err != nil {
		srv.log(ctx).Debug("Rejected session token", slog.Any("error", err))

		return nil, domainerrors.ErrNotLoggedIn
	}

	session, err := srv.sessionRepo.FindByID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, domainerrors.ErrNotLoggedIn
		}

		return nil, errors.Wrap(err, "failed to load session")
	}

	if session.UserID != claims.UserID || session.IsExpired(srv.now()) {
		return nil, domainerrors.ErrNotLoggedIn
	}

	return session, nil
}

// Logout deletes the session referenced by token, if any.
func (srv *sessionService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	claims, err := srv.tokenService.Parse(token)
	if err != nil {
		// Nothing to invalidate; an expired token still maps to a row the cleanup worker removes.
		return nil
	}

	if err := srv.sessionRepo.DeleteByID(ctx, claims.SessionID); err != nil {
		srv.log(ctx).Error("Failed to delete session", slog.Any("sessionID", claims.SessionID), slog.Any("error", err))

		return errors.Wrap(err, "failed to delete session")
	}

	srv.log(ctx).Info("Session ended", slog.Any("sessionID", claims.SessionID))

	return nil
}

// CleanupExpiredSessions removes all expired sessions from the store.
func (srv *sessionService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	deleted, err := srv.sessionRepo.DeleteExpired(ctx, srv.now())
	if err != nil {
		srv.log(ctx).Error("Failed to cleanup expired sessions", slog.Any("error", err))

		return 0, errors.Wrap(err, "failed to cleanup expired sessions")
	}

	if deleted > 0 {
		srv.log(ctx).Info("Cleaned up expired sessions", slog.Int64("deleted_count", deleted))
	}

	return deleted, nil
}

// displayName is the name greeted on /me; users who signed up without a name are greeted by email.
func displayName(user *entity.User) string {
	if user.Name != "" {
		return user.Name
	}

	return user.Email
}
