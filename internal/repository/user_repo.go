package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"yummiz/internal/model"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new user.
func (r *UserRepository) CreateUser(ctx context.Context, u *model.User) error {
	query := `
        INSERT INTO users (name, email, password_hash, mobile, created_at)
        VALUES ($1, NULLIF($2, ''), $3, NULLIF($4, ''), NOW())
        RETURNING id
    `
	return r.db.QueryRow(ctx, query, u.Name, u.Email, u.PasswordHash, u.Mobile).Scan(&u.ID)
}

// FindByEmail returns the user with the given email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, `WHERE email = $1`, email)
}

// FindByMobile returns the user with the given mobile number.
func (r *UserRepository) FindByMobile(ctx context.Context, mobile string) (*model.User, error) {
	return r.findOne(ctx, `WHERE mobile = $1`, mobile)
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg any) (*model.User, error) {
	query := `
        SELECT id, name, COALESCE(email, ''), password_hash, COALESCE(mobile, ''),
               otp, COALESCE(otp_expiry, 'epoch'::timestamptz), created_at
        FROM users ` + where

	var u model.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Mobile,
		&u.OTP, &u.OTPExpiry, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpsertOTP stores a fresh OTP for a mobile number, creating a bare user
// row when none exists yet (mirrors the pre-registration OTP flow).
func (r *UserRepository) UpsertOTP(ctx context.Context, mobile, otp string, expiry time.Time) error {
	query := `
        INSERT INTO users (mobile, otp, otp_expiry, created_at)
        VALUES ($1, $2, $3, NOW())
        ON CONFLICT (mobile) DO UPDATE SET otp = EXCLUDED.otp, otp_expiry = EXCLUDED.otp_expiry
    `
	_, err := r.db.Exec(ctx, query, mobile, otp, expiry)
	return err
}

// ClearOTP wipes the transient OTP fields after a successful verification.
func (r *UserRepository) ClearOTP(ctx context.Context, userID int) error {
	query := `
        UPDATE users SET otp = '', otp_expiry = NULL WHERE id = $1
    `
	_, err := r.db.Exec(ctx, query, userID)
	return err
}

// CountUsers returns the total number of user accounts.
func (r *UserRepository) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}
