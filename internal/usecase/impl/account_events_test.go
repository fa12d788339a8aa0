package impl

import (
	"context"
	"testing"
	"time"

	deliverycontext "nexus/internal/delivery/context"
	"nexus/internal/domain/entity"
	"nexus/internal/domain/service"
	"nexus/internal/errors"
	mockSvc "nexus/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAccountEventEmitter_Emit(t *testing.T) {
	publisher := mockSvc.NewMockEventPublisher(t)
	emitter := newAccountEventEmitter(publisher, newDiscardLogger())
	emitter.now = func() time.Time { return time.Date(2025, 6, 1, 14, 0, 0, 0, time.FixedZone("UTC+2", 2*60*60)) }

	ctx := deliverycontext.WithRequestID(context.Background(), "req-123")
	user := &entity.User{ID: uuid.New(), Email: "a@x.com"}

	var published *service.AccountEvent
	publisher.EXPECT().
		PublishAccountEvent(ctx, mock.AnythingOfType("*service.AccountEvent")).
		Run(func(_ context.Context, event *service.AccountEvent) { published = event }).
		Return(nil)

	emitter.emit(ctx, entity.AccountEventRegistered, user)

	require.NotNil(t, published)
	assert.Equal(t, "req-123", published.RequestID)
	assert.Equal(t, "user.registered", published.Type)
	assert.Equal(t, user.ID.String(), published.UserID)
	assert.Equal(t, "a@x.com", published.Email)
	assert.Equal(t, time.UTC, published.OccurredAt.Location())
	assert.Equal(t, 12, published.OccurredAt.Hour())
	_, err := uuid.Parse(published.EventID)
	assert.NoError(t, err)
}

func TestAccountEventEmitter_PublishFailureIsSwallowed(t *testing.T) {
	publisher := mockSvc.NewMockEventPublisher(t)
	emitter := newAccountEventEmitter(publisher, newDiscardLogger())

	publisher.EXPECT().PublishAccountEvent(mock.Anything, mock.Anything).Return(errors.New("unavailable"))

	assert.NotPanics(t, func() {
		emitter.emit(context.Background(), entity.AccountEventDeleted, &entity.User{ID: uuid.New()})
	})
}

func TestAccountEventEmitter_WithoutPublisher(t *testing.T) {
	emitter := newAccountEventEmitter(nil, newDiscardLogger())

	assert.NotPanics(t, func() {
		emitter.emit(context.Background(), entity.AccountEventUpdated, &entity.User{ID: uuid.New()})
	})
}
