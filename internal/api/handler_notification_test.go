package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yummiz/internal/model"
)

type mockNotificationStore struct {
	listForUserFunc func(ctx context.Context, userID string) ([]model.Notification, error)
	markReadFunc    func(ctx context.Context, id int) (bool, error)
	deleteFunc      func(ctx context.Context, id int) (bool, error)
}

func (m *mockNotificationStore) ListForUser(ctx context.Context, userID string) ([]model.Notification, error) {
	if m.listForUserFunc != nil {
		return m.listForUserFunc(ctx, userID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockNotificationStore) MarkRead(ctx context.Context, id int) (bool, error) {
	if m.markReadFunc != nil {
		return m.markReadFunc(ctx, id)
	}
	return false, errors.New("not implemented")
}

func (m *mockNotificationStore) Delete(ctx context.Context, id int) (bool, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return false, errors.New("not implemented")
}

func newNotificationTestRouter(store NotificationStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewNotificationHandler(store)

	r := gin.New()
	group := r.Group("/api/notifications")
	group.GET("/:userId", h.ListForUser)
	group.PUT("/:id/read", h.MarkRead)
	group.DELETE("/:id", h.Delete)
	return r
}

func TestNotificationHandler_ListForUser(t *testing.T) {
	store := &mockNotificationStore{
		listForUserFunc: func(ctx context.Context, userID string) ([]model.Notification, error) {
			require.Equal(t, "alice", userID)
			return []model.Notification{
				{ID: 2, UserID: "alice", Message: "newer", Type: model.NotificationTypeRecipeRequest},
				{ID: 1, UserID: "alice", Message: "older", Type: model.NotificationTypeRecipeRequest},
			}, nil
		},
	}
	r := newNotificationTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/api/notifications/alice", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["notifications"], 2)
}

func TestNotificationHandler_MarkRead(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store := &mockNotificationStore{
			markReadFunc: func(ctx context.Context, id int) (bool, error) {
				assert.Equal(t, 7, id)
				return true, nil
			},
		}
		r := newNotificationTestRouter(store)

		req := httptest.NewRequest(http.MethodPut, "/api/notifications/7/read", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		store := &mockNotificationStore{
			markReadFunc: func(ctx context.Context, id int) (bool, error) {
				return false, nil
			},
		}
		r := newNotificationTestRouter(store)

		req := httptest.NewRequest(http.MethodPut, "/api/notifications/99/read", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("BadID", func(t *testing.T) {
		r := newNotificationTestRouter(&mockNotificationStore{})

		req := httptest.NewRequest(http.MethodPut, "/api/notifications/abc/read", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestNotificationHandler_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store := &mockNotificationStore{
			deleteFunc: func(ctx context.Context, id int) (bool, error) {
				return true, nil
			},
		}
		r := newNotificationTestRouter(store)

		req := httptest.NewRequest(http.MethodDelete, "/api/notifications/7", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		store := &mockNotificationStore{
			deleteFunc: func(ctx context.Context, id int) (bool, error) {
				return false, nil
			},
		}
		r := newNotificationTestRouter(store)

		req := httptest.NewRequest(http.MethodDelete, "/api/notifications/99", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
