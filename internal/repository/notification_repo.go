package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"yummiz/internal/model"
)

type NotificationRepository struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Insert stores one notification.
func (r *NotificationRepository) Insert(ctx context.Context, n *model.Notification) error {
	query := `
        INSERT INTO notifications (user_id, message, type, status, read, created_at)
        VALUES ($1, $2, $3, $4, FALSE, NOW())
        RETURNING id, created_at
    `
	return r.db.QueryRow(ctx, query, n.UserID, n.Message, n.Type, n.Status).Scan(&n.ID, &n.CreatedAt)
}

// ListForUser returns a user's notifications, newest first.
func (r *NotificationRepository) ListForUser(ctx context.Context, userID string) ([]model.Notification, error) {
	query := `
        SELECT id, user_id, message, type, status, read, created_at
        FROM notifications
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Type, &n.Status, &n.Read, &n.CreatedAt)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkRead flips the read flag; reports whether the row existed.
func (r *NotificationRepository) MarkRead(ctx context.Context, id int) (bool, error) {
	result, err := r.db.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

// Delete removes one notification; reports whether the row existed.
func (r *NotificationRepository) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() == 1, nil
}
