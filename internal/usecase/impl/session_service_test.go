package impl

import (
	"context"
	"testing"
	"time"

	"nexus/internal/domain/entity"
	domainerrors "nexus/internal/domain/errors"
	"nexus/internal/domain/repository"
	"nexus/internal/domain/service"
	"nexus/internal/errors"
	mockRepo "nexus/internal/mocks/repository"
	mockSvc "nexus/internal/mocks/service"
	mockUsecase "nexus/internal/mocks/usecase"
	"nexus/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type sessionServiceFixtures struct {
	service      *sessionService
	users        *mockUsecase.MockUserUsecase
	sessionRepo  *mockRepo.MockSessionRepository
	tokenService *mockSvc.MockSessionTokenService
}

func createTestSessionService(t *testing.T) sessionServiceFixtures {
	users := mockUsecase.NewMockUserUsecase(t)
	sessionRepo := mockRepo.NewMockSessionRepository(t)
	tokenService := mockSvc.NewMockSessionTokenService(t)

	svc := NewSessionService(SessionServiceParams{
		UserUsecase:  users,
		SessionRepo:  sessionRepo,
		TokenService: tokenService,
		Config:       newTestConfig(time.Hour),
		Logger:       newDiscardLogger(),
	}).(*sessionService)
	svc.now = func() time.Time { return fixedNow }

	return sessionServiceFixtures{
		service:      svc,
		users:        users,
		sessionRepo:  sessionRepo,
		tokenService: tokenService,
	}
}

func TestSessionService_Login_Success(t *testing.T) {
	fx := createTestSessionService(t)

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Name: "Alice", Email: "a@x.com"}
	var created *entity.Session

	fx.users.EXPECT().Authenticate(ctx, "a@x.com", "secret").Return(user, nil)
	fx.sessionRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Session")).
		Run(func(_ context.Context, session *entity.Session) {
			created = session
		}).
		Return(nil)
	fx.tokenService.EXPECT().
		Issue(mock.AnythingOfType("uuid.UUID"), user.ID, fixedNow.Add(time.Hour)).
		Return("signed-token", nil)

	out, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "a@x.com", Password: "secret"})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "signed-token", out.Token)
	assert.Equal(t, user, out.User)
	assert.Equal(t, created, out.Session)
	assert.Equal(t, user.ID, created.UserID)
	assert.Equal(t, "Alice", created.Username)
	assert.Equal(t, fixedNow.Add(time.Hour), created.ExpiresAt)
	assert.NotEqual(t, uuid.Nil, created.ID)
}

func TestSessionService_Login_UsernameFallsBackToEmail(t *testing.T) {
	fx := createTestSessionService(t)

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "a@x.com"}

	fx.users.EXPECT().Authenticate(ctx, "a@x.com", "secret").Return(user, nil)
	fx.sessionRepo.EXPECT().
		Create(ctx, mock.MatchedBy(func(session *entity.Session) bool {
			return session.Username == "a@x.com"
		})).
		Return(nil)
	fx.tokenService.EXPECT().Issue(mock.Anything, user.ID, mock.Anything).Return("token", nil)

	_, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "a@x.com", Password: "secret"})

	require.NoError(t, err)
}

func TestSessionService_Login_InvalidCredentials(t *testing.T) {
	fx := createTestSessionService(t)

	ctx := context.Background()
	fx.users.EXPECT().Authenticate(ctx, "a@x.com", "wrong").Return(nil, domainerrors.ErrInvalidCredentials)

	out, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "a@x.com", Password: "wrong"})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	assert.Nil(t, out)
	fx.sessionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSessionService_Login_NilInput(t *testing.T) {
	fx := createTestSessionService(t)

	out, err := fx.service.Login(context.Background(), nil)

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	assert.Nil(t, out)
}

func TestSessionService_Login_StoreFailure(t *testing.T) {
	fx := createTestSessionService(t)

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "a@x.com"}

	fx.users.EXPECT().Authenticate(ctx, "a@x.com", "secret").Return(user, nil)
	fx.sessionRepo.EXPECT().Create(ctx, mock.Anything).Return(errors.New("disk full"))

	out, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "a@x.com", Password: "secret"})

	assert.ErrorIs(t, err, domainerrors.ErrSessionCreationFailed)
	assert.Nil(t, out)
}

func TestSessionService_Login_SigningFailureDiscardsSession(t *testing.T) {
	fx := createTestSessionService(t)

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "a@x.com"}
	var created *entity.Session

	fx.users.EXPECT().Authenticate(ctx, "a@x.com", "secret").Return(user, nil)
	fx.sessionRepo.EXPECT().
		Create(ctx, mock.Anything).
		Run(func(_ context.Context, session *entity.Session) { created = session }).
		Return(nil)
	fx.tokenService.EXPECT().Issue(mock.Anything, user.ID, mock.Anything).Return("", errors.New("bad key"))
	fx.sessionRepo.EXPECT().
		DeleteByID(ctx, mock.AnythingOfType("uuid.UUID")).
		Run(func(_ context.Context, id uuid.UUID) {
			assert.Equal(t, created.ID, id)
		}).
		Return(nil)

	out, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "a@x.com", Password: "secret"})

	assert.ErrorIs(t, err, domainerrors.ErrSessionCreationFailed)
	assert.Nil(t, out)
}

func TestSessionService_CurrentSession_Valid(t *testing.T) {
	fx := createTestSessionService(t)

	ctx := context.Background()
	session := &entity.Session{ID: uuid.New(), UserID: uuid.New(), Username: "Alice", ExpiresAt: fixedNow.Add(time.Minute)}

	fx.tokenService.EXPECT().Parse("token").Return(&service.SessionClaims{SessionID: session.ID, UserID: session.UserID}, nil)
	fx.sessionRepo.EXPECT().FindByID(ctx, session.ID).Return(session, nil)

	current, err := fx.service.CurrentSession(ctx, "token")

	require.NoError(t, err)
	assert.Equal(t, session, current)
}

func TestSessionService_CurrentSession_NotLoggedIn(t *testing.T) {
	ctx := context.Background()
	sessionID := uuid.New()
	userID := uuid.New()

	tests := []struct {
		name  string
		token string
		setup func(fx sessionServiceFixtures)
	}{
		{
			name:  "no token",
			token: "",
			setup: func(fx sessionServiceFixtures) {},
		},
		{
			name:  "token does not verify",
			token: "forged",
			setup: func(fx sessionServiceFixtures) {
				fx.tokenService.EXPECT().Parse("forged").Return(nil, errors.New("signature is invalid"))
			},
		},
		{
			name:  "session was deleted",
			token: "token",
			setup: func(fx sessionServiceFixtures) {
				fx.tokenService.EXPECT().Parse("token").Return(&service.SessionClaims{SessionID: sessionID, UserID: userID}, nil)
				fx.sessionRepo.EXPECT().FindByID(ctx, sessionID).Return(nil, repository.ErrSessionNotFound)
			},
		},
		{
			name:  "session expired",
			token: "token",
			setup: func(fx sessionServiceFixtures) {
				fx.tokenService.EXPECT().Parse("token").Return(&service.SessionClaims{SessionID: sessionID, UserID: userID}, nil)
				fx.sessionRepo.EXPECT().FindByID(ctx, sessionID).Return(&entity.Session{
					ID: sessionID, UserID: userID, ExpiresAt: fixedNow,
				}, nil)
			},
		},
		{
			name:  "session belongs to another user",
			token: "token",
			setup: func(fx sessionServiceFixtures) {
				fx.tokenService.EXPECT().Parse("token").Return(&service.SessionClaims{SessionID: sessionID, UserID: userID}, nil)
				fx.sessionRepo.EXPECT().FindByID(ctx, sessionID).Return(&entity.Session{
					ID: sessionID, UserID: uuid.New(), ExpiresAt: fixedNow.Add(time.Hour),
				}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestSessionService(t)
			tt.setup(fx)

			current, err := fx.service.CurrentSession(ctx, tt.token)

			assert.ErrorIs(t, err, domainerrors.ErrNotLoggedIn)
			assert.Nil(t, current)
		})
	}
}

func TestSessionService_CurrentSession_StoreFailure(t *testing.T) {
	fx := createTestSessionService(t)

	ctx := context.Background()
	sessionID := uuid.New()

	fx.tokenService.EXPECT().Parse("token").Return(&service.SessionClaims{SessionID: sessionID}, nil)
	fx.sessionRepo.EXPECT().FindByID(ctx, sessionID).Return(nil, errors.New("connection refused"))

	_, err := fx.service.CurrentSession(ctx, "token")

	require.Error(t, err)
	assert.NotErrorIs(t, err, domainerrors.ErrNotLoggedIn)
}

func TestSessionService_Logout(t *testing.T) {
	fx := createTestSessionService(t)

	ctx := context.Background()
	sessionID := uuid.New()

	fx.tokenService.EXPECT().Parse("token").Return(&service.SessionClaims{SessionID: sessionID}, nil)
	fx.sessionRepo.EXPECT().DeleteByID(ctx, sessionID).Return(nil)

	require.NoError(t, fx.service.Logout(ctx, "token"))
}

func TestSessionService_Logout_WithoutSessionSucceeds(t *testing.T) {
	fx := createTestSessionService(t)

	ctx := context.Background()
	fx.tokenService.EXPECT().Parse("garbage").Return(nil, errors.New("token is malformed"))

	assert.NoError(t, fx.service.Logout(ctx, ""))
	assert.NoError(t, fx.service.Logout(ctx, "garbage"))
	fx.sessionRepo.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
}

func TestSessionService_CleanupExpiredSessions(t *testing.T) {
	fx := createTestSessionService(t)

	ctx := context.Background()
	fx.sessionRepo.EXPECT().DeleteExpired(ctx, fixedNow).Return(int64(3), nil)

	deleted, err := fx.service.CleanupExpiredSessions(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
}

func TestSessionService_CleanupExpiredSessions_StoreFailure(t *testing.T) {
	fx := createTestSessionService(t)

	ctx := context.Background()
	fx.sessionRepo.EXPECT().DeleteExpired(ctx, fixedNow).Return(int64(0), errors.New("timeout"))

	deleted, err := fx.service.CleanupExpiredSessions(ctx)

	require.Error(t, err)
	assert.Zero(t, deleted)
}

func TestNewSessionService_DefaultTTL(t *testing.T) {
	svc := NewSessionService(SessionServiceParams{Logger: newDiscardLogger()}).(*sessionService)

	assert.Equal(t, defaultSessionTTL, svc.ttl)
}
