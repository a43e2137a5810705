package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"yummiz/internal/model"
	"yummiz/internal/mq"
	"yummiz/pkg/metrics"
)

// RequestRepository is the persistence surface of the request workflow.
type RequestRepository interface {
	CreateRequest(ctx context.Context, req *model.RecipeRequest) error
	GetRequestByID(ctx context.Context, id int) (*model.RecipeRequest, error)
	UpdateDecision(ctx context.Context, id int, status, adminMessage string) error
	ListRequests(ctx context.Context) ([]model.RecipeRequest, error)
	CountRequests(ctx context.Context) (*model.RequestCounts, error)
}

// EventPublisher publishes domain events to the broker.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

type RequestService struct {
	repo      RequestRepository
	publisher EventPublisher
	logger    *zap.Logger
}

func NewRequestService(repo RequestRepository, publisher EventPublisher, logger *zap.Logger) *RequestService {
	return &RequestService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Submit creates a pending recipe request.
func (s *RequestService) Submit(ctx context.Context, title, description, requestedBy string) (*model.RecipeRequest, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	requestedBy = strings.TrimSpace(requestedBy)

	if title == "" || description == "" || requestedBy == "" {
		return nil, NewValidationError("Title (or recipeName), description, and requestedBy are required")
	}

	req := &model.RecipeRequest{
		Title:        title,
		Description:  description,
		RequestedBy:  requestedBy,
		Status:       model.RequestStatusPending,
		AdminMessage: model.DefaultAdminMessage,
	}

	if err := s.repo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}

	s.logger.Info("Recipe request submitted",
		zap.Int("request_id", req.ID),
		zap.String("requested_by", req.RequestedBy),
	)

	return req, nil
}

// Decide sets a request's status to approved or rejected, stores the
// composed admin message, and publishes the decision event the worker
// turns into a notification. The two writes are not transactional: a
// publish failure leaves a decided request with no notification.
func (s *RequestService) Decide(ctx context.Context, requestID int, status, adminText string) (*model.RecipeRequest, error) {
	if status != model.RequestStatusApproved && status != model.RequestStatusRejected {
		return nil, NewValidationError(`Invalid status. Status must be either "approved" or "rejected".`)
	}

	req, err := s.repo.GetRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	adminMessage := ComposeAdminMessage(req.Title, status, adminText)

	if err := s.repo.UpdateDecision(ctx, requestID, status, adminMessage); err != nil {
		return nil, err
	}

	req.Status = status
	req.AdminMessage = adminMessage

	payload := mq.RecipeRequestDecidedPayload{
		EventID:      uuid.NewString(),
		RequestID:    req.ID,
		RequestedBy:  req.RequestedBy,
		Title:        req.Title,
		Status:       status,
		AdminMessage: adminMessage,
		DecidedAt:    time.Now(),
	}

	if err := s.publisher.Publish(mq.RoutingKeyRequestDecided, payload); err != nil {
		s.logger.Error("Failed to publish decision event",
			zap.Int("request_id", req.ID),
			zap.String("status", status),
			zap.Error(err),
		)
		return nil, err
	}

	metrics.IncrementRequestDecision(status)

	s.logger.Info("Recipe request decided",
		zap.Int("request_id", req.ID),
		zap.String("status", status),
	)

	return req, nil
}

// List returns all requests, newest first.
func (s *RequestService) List(ctx context.Context) ([]model.RecipeRequest, error) {
	return s.repo.ListRequests(ctx)
}

// Counts returns per-status request totals.
func (s *RequestService) Counts(ctx context.Context) (*model.RequestCounts, error) {
	return s.repo.CountRequests(ctx)
}

// ComposeAdminMessage builds the message stored on the request and shown
// to the requesting user, optionally appending the admin's free text.
func ComposeAdminMessage(title, status, adminText string) string {
	var msg string
	if status == model.RequestStatusApproved {
		msg = fmt.Sprintf("Your recipe request for %q has been approved! You can now find it on Yummiz.", title)
	} else {
		msg = fmt.Sprintf("Your recipe request for %q has been rejected.", title)
	}

	if adminText != "" {
		msg = msg + "\n\nAdmin Message:\n" + adminText
	}
	return msg
}
