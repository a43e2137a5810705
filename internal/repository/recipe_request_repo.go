package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"yummiz/internal/model"
)

type RecipeRequestRepository struct {
	db *pgxpool.Pool
}

func NewRecipeRequestRepository(db *pgxpool.Pool) *RecipeRequestRepository {
	return &RecipeRequestRepository{db: db}
}

// CreateRequest inserts a pending recipe request.
func (r *RecipeRequestRepository) CreateRequest(ctx context.Context, req *model.RecipeRequest) error {
	query := `
        INSERT INTO recipe_requests (title, description, requested_by, status, admin_message, created_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
        RETURNING id, created_at
    `
	return r.db.QueryRow(ctx, query,
		req.Title,
		req.Description,
		req.RequestedBy,
		req.Status,
		req.AdminMessage,
	).Scan(&req.ID, &req.CreatedAt)
}

// GetRequestByID returns one request; pgx.ErrNoRows when absent.
func (r *RecipeRequestRepository) GetRequestByID(ctx context.Context, id int) (*model.RecipeRequest, error) {
	query := `
        SELECT id, title, description, requested_by, status, admin_message, created_at
        FROM recipe_requests
        WHERE id = $1
    `
	var req model.RecipeRequest
	err := r.db.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.Title, &req.Description, &req.RequestedBy,
		&req.Status, &req.AdminMessage, &req.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// UpdateDecision sets the status and admin message of a request.
func (r *RecipeRequestRepository) UpdateDecision(ctx context.Context, id int, status, adminMessage string) error {
	query := `
        UPDATE recipe_requests SET status = $1, admin_message = $2 WHERE id = $3
    `
	_, err := r.db.Exec(ctx, query, status, adminMessage, id)
	return err
}

// ListRequests returns all requests, newest first.
func (r *RecipeRequestRepository) ListRequests(ctx context.Context) ([]model.RecipeRequest, error) {
	query := `
        SELECT id, title, description, requested_by, status, admin_message, created_at
        FROM recipe_requests
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []model.RecipeRequest
	for rows.Next() {
		var req model.RecipeRequest
		err := rows.Scan(
			&req.ID, &req.Title, &req.Description, &req.RequestedBy,
			&req.Status, &req.AdminMessage, &req.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// CountRequests aggregates request totals per status in one query.
func (r *RecipeRequestRepository) CountRequests(ctx context.Context) (*model.RequestCounts, error) {
	query := `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status = 'approved'),
               COUNT(*) FILTER (WHERE status = 'pending'),
               COUNT(*) FILTER (WHERE status = 'rejected')
        FROM recipe_requests
    `
	var counts model.RequestCounts
	err := r.db.QueryRow(ctx, query).Scan(
		&counts.Total, &counts.Approved, &counts.Pending, &counts.Rejected,
	)
	if err != nil {
		return nil, err
	}
	return &counts, nil
}
