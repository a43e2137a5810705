package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"yummiz/internal/model"
	"yummiz/internal/mq"
)

type mockRequestRepository struct {
	createRequestFunc  func(ctx context.Context, req *model.RecipeRequest) error
	getRequestByIDFunc func(ctx context.Context, id int) (*model.RecipeRequest, error)
	updateDecisionFunc func(ctx context.Context, id int, status, adminMessage string) error
	listRequestsFunc   func(ctx context.Context) ([]model.RecipeRequest, error)
	countRequestsFunc  func(ctx context.Context) (*model.RequestCounts, error)
}

func (m *mockRequestRepository) CreateRequest(ctx context.Context, req *model.RecipeRequest) error {
	if m.createRequestFunc != nil {
		return m.createRequestFunc(ctx, req)
	}
	return errors.New("not implemented")
}

func (m *mockRequestRepository) GetRequestByID(ctx context.Context, id int) (*model.RecipeRequest, error) {
	if m.getRequestByIDFunc != nil {
		return m.getRequestByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRequestRepository) UpdateDecision(ctx context.Context, id int, status, adminMessage string) error {
	if m.updateDecisionFunc != nil {
		return m.updateDecisionFunc(ctx, id, status, adminMessage)
	}
	return errors.New("not implemented")
}

func (m *mockRequestRepository) ListRequests(ctx context.Context) ([]model.RecipeRequest, error) {
	if m.listRequestsFunc != nil {
		return m.listRequestsFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRequestRepository) CountRequests(ctx context.Context) (*model.RequestCounts, error) {
	if m.countRequestsFunc != nil {
		return m.countRequestsFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

type mockPublisher struct {
	publishFunc func(routingKey string, payload any) error
	published   []any
}

func (m *mockPublisher) Publish(routingKey string, payload any) error {
	m.published = append(m.published, payload)
	if m.publishFunc != nil {
		return m.publishFunc(routingKey, payload)
	}
	return nil
}

func TestRequestService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := &mockRequestRepository{
			createRequestFunc: func(ctx context.Context, req *model.RecipeRequest) error {
				req.ID = 7
				return nil
			},
		}
		svc := NewRequestService(repo, &mockPublisher{}, zap.NewNop())

		req, err := svc.Submit(ctx, "Mango Cake", "A cake made of mangoes", "alice")
		require.NoError(t, err)
		assert.Equal(t, 7, req.ID)
		assert.Equal(t, model.RequestStatusPending, req.Status)
		assert.Equal(t, model.DefaultAdminMessage, req.AdminMessage)
		assert.Equal(t, "alice", req.RequestedBy)
	})

	t.Run("MissingFields", func(t *testing.T) {
		svc := NewRequestService(&mockRequestRepository{}, &mockPublisher{}, zap.NewNop())

		for _, args := range [][3]string{
			{"", "desc", "alice"},
			{"Mango Cake", "", "alice"},
			{"Mango Cake", "desc", ""},
			{"  ", "desc", "alice"},
		} {
			_, err := svc.Submit(ctx, args[0], args[1], args[2])
			assert.True(t, IsValidation(err), "expected validation error for %v", args)
		}
	})
}

func TestRequestService_Decide(t *testing.T) {
	ctx := context.Background()

	pendingRequest := func() *model.RecipeRequest {
		return &model.RecipeRequest{
			ID:           3,
			Title:        "Mango Cake",
			Description:  "A cake made of mangoes",
			RequestedBy:  "alice",
			Status:       model.RequestStatusPending,
			AdminMessage: model.DefaultAdminMessage,
		}
	}

	t.Run("Approved", func(t *testing.T) {
		var gotStatus, gotMessage string
		repo := &mockRequestRepository{
			getRequestByIDFunc: func(ctx context.Context, id int) (*model.RecipeRequest, error) {
				return pendingRequest(), nil
			},
			updateDecisionFunc: func(ctx context.Context, id int, status, adminMessage string) error {
				gotStatus, gotMessage = status, adminMessage
				return nil
			},
		}
		pub := &mockPublisher{}
		svc := NewRequestService(repo, pub, zap.NewNop())

		req, err := svc.Decide(ctx, 3, model.RequestStatusApproved, "")
		require.NoError(t, err)
		assert.Equal(t, model.RequestStatusApproved, req.Status)
		assert.Equal(t, model.RequestStatusApproved, gotStatus)
		assert.Contains(t, gotMessage, `"Mango Cake"`)
		assert.Contains(t, gotMessage, "approved")

		require.Len(t, pub.published, 1)
		payload, ok := pub.published[0].(mq.RecipeRequestDecidedPayload)
		require.True(t, ok)
		assert.Equal(t, 3, payload.RequestID)
		assert.Equal(t, "alice", payload.RequestedBy)
		assert.Equal(t, model.RequestStatusApproved, payload.Status)
		assert.NotEmpty(t, payload.EventID)
	})

	t.Run("RejectedWithAdminText", func(t *testing.T) {
		var gotMessage string
		repo := &mockRequestRepository{
			getRequestByIDFunc: func(ctx context.Context, id int) (*model.RecipeRequest, error) {
				return pendingRequest(), nil
			},
			updateDecisionFunc: func(ctx context.Context, id int, status, adminMessage string) error {
				gotMessage = adminMessage
				return nil
			},
		}
		pub := &mockPublisher{}
		svc := NewRequestService(repo, pub, zap.NewNop())

		req, err := svc.Decide(ctx, 3, model.RequestStatusRejected, "Needs more detail")
		require.NoError(t, err)
		assert.Equal(t, model.RequestStatusRejected, req.Status)
		assert.Contains(t, gotMessage, "has been rejected")
		assert.Contains(t, gotMessage, "Admin Message:\nNeeds more detail")
		assert.Contains(t, req.AdminMessage, "Needs more detail")
		require.Len(t, pub.published, 1)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := &mockRequestRepository{
			getRequestByIDFunc: func(ctx context.Context, id int) (*model.RecipeRequest, error) {
				return nil, pgx.ErrNoRows
			},
		}
		svc := NewRequestService(repo, &mockPublisher{}, zap.NewNop())

		_, err := svc.Decide(ctx, 99, model.RequestStatusApproved, "")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		svc := NewRequestService(&mockRequestRepository{}, &mockPublisher{}, zap.NewNop())

		_, err := svc.Decide(ctx, 3, "pending", "")
		assert.True(t, IsValidation(err))

		_, err = svc.Decide(ctx, 3, "banana", "")
		assert.True(t, IsValidation(err))
	})

	t.Run("PublishFailureAfterUpdate", func(t *testing.T) {
		updated := false
		repo := &mockRequestRepository{
			getRequestByIDFunc: func(ctx context.Context, id int) (*model.RecipeRequest, error) {
				return pendingRequest(), nil
			},
			updateDecisionFunc: func(ctx context.Context, id int, status, adminMessage string) error {
				updated = true
				return nil
			},
		}
		pub := &mockPublisher{
			publishFunc: func(routingKey string, payload any) error {
				return errors.New("broker down")
			},
		}
		svc := NewRequestService(repo, pub, zap.NewNop())

		_, err := svc.Decide(ctx, 3, model.RequestStatusApproved, "")
		require.Error(t, err)
		// the status update is already committed: the known
		// non-transactional gap
		assert.True(t, updated)
	})
}

func TestRequestService_Counts(t *testing.T) {
	repo := &mockRequestRepository{
		countRequestsFunc: func(ctx context.Context) (*model.RequestCounts, error) {
			return &model.RequestCounts{Total: 5, Approved: 2, Pending: 2, Rejected: 1}, nil
		},
	}
	svc := NewRequestService(repo, &mockPublisher{}, zap.NewNop())

	counts, err := svc.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, counts.Total)
	assert.Equal(t, 2, counts.Pending)
}

func TestComposeAdminMessage(t *testing.T) {
	msg := ComposeAdminMessage("Mango Cake", model.RequestStatusApproved, "")
	assert.Equal(t, `Your recipe request for "Mango Cake" has been approved! You can now find it on Yummiz.`, msg)

	msg = ComposeAdminMessage("Mango Cake", model.RequestStatusRejected, "Needs more detail")
	assert.Equal(t, "Your recipe request for \"Mango Cake\" has been rejected.\n\nAdmin Message:\nNeeds more detail", msg)
}
