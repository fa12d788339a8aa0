package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "nexus/internal/delivery/context"
	"nexus/internal/domain/entity"
	"nexus/internal/domain/service"

	"github.com/google/uuid"
)

// accountEventEmitter publishes account events on a best-effort basis.
// A failed publish is logged and never fails the operation that caused it.
type accountEventEmitter struct {
	publisher service.EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

func newAccountEventEmitter(publisher service.EventPublisher, logger *slog.Logger) *accountEventEmitter {
	return &accountEventEmitter{
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

func (e *accountEventEmitter) emit(ctx context.Context, eventType entity.AccountEventType, user *entity.User) {
	if e == nil || e.publisher == nil || user == nil {
		return
	}

	event := &service.AccountEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		EventID:    uuid.NewString(),
		Type:       eventType.String(),
		UserID:     user.ID.String(),
		Email:      user.Email,
		OccurredAt: e.now().UTC(),
	}

	if err := e.publisher.PublishAccountEvent(ctx, event); err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, e.logger).Warn("Failed to publish account event",
			slog.String("event_type", event.Type),
			slog.String("user_id", event.UserID),
			slog.Any("error", err),
		)
	}
}
