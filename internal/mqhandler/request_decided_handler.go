package mqhandler

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"yummiz/internal/model"
	"yummiz/internal/mq"
	"yummiz/pkg/metrics"
)

const notifyQueueName = "recipe_request.decided.notify.q"

// NotificationInserter is the slice of the notification repository the
// handler needs.
type NotificationInserter interface {
	Insert(ctx context.Context, n *model.Notification) error
}

// Acquirer suppresses duplicate deliveries of the same event.
type Acquirer interface {
	AcquireOnce(ctx context.Context, handler, eventID string) bool
}

type RequestDecidedHandler struct {
	repo    NotificationInserter
	deduper Acquirer
	logger  *zap.Logger
}

func NewRequestDecidedHandler(repo NotificationInserter, deduper Acquirer, logger *zap.Logger) *RequestDecidedHandler {
	return &RequestDecidedHandler{
		repo:    repo,
		deduper: deduper,
		logger:  logger,
	}
}

// HandleRequestDecided writes the in-app notification for one decision
// event. Exactly one notification per event: broker redeliveries are
// dropped on the event ID, while a fresh decision on the same request
// carries a fresh ID and goes through.
func (h *RequestDecidedHandler) HandleRequestDecided(ctx context.Context, raw json.RawMessage) error {
	start := time.Now()

	var p mq.RecipeRequestDecidedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.logger.Error("Failed to unmarshal decision payload", zap.Error(err))
		return fmt.Errorf("%w: %v", mq.ErrBadMessage, err)
	}

	if !h.deduper.AcquireOnce(ctx, "request_decided_notification", p.EventID) {
		h.logger.Info("Duplicate decision event skipped",
			zap.String("event_id", p.EventID),
			zap.Int("request_id", p.RequestID),
		)
		return nil
	}

	notif := &model.Notification{
		UserID:  p.RequestedBy,
		Message: ComposeNotificationMessage(p.Status, p.AdminMessage),
		Type:    model.NotificationTypeRecipeRequest,
		Status:  p.Status,
	}

	if err := h.repo.Insert(ctx, notif); err != nil {
		h.logger.Error("Failed to insert notification",
			zap.Int("request_id", p.RequestID),
			zap.String("user_id", p.RequestedBy),
			zap.Error(err),
		)
		return err
	}

	metrics.IncrementNotificationCreated(p.Status)
	metrics.RecordMQConsumeLatency(mq.RoutingKeyRequestDecided, notifyQueueName, time.Since(start))

	h.logger.Info("Notification created",
		zap.Int("request_id", p.RequestID),
		zap.String("user_id", p.RequestedBy),
		zap.String("status", p.Status),
	)

	return nil
}

// ComposeNotificationMessage builds the inbox message shown to the
// requesting user.
func ComposeNotificationMessage(status, adminMessage string) string {
	return fmt.Sprintf("From Yummiz Admin\nStatus: %s\n%s", strings.ToUpper(status), adminMessage)
}
