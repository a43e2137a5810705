package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"yummiz/internal/model"
	"yummiz/internal/sms"
	"yummiz/internal/util"
)

const (
	otpTTL = 5 * time.Minute
	// mobileCountryPrefix is prepended before handing numbers to the SMS
	// gateway; stored numbers stay 10-digit.
	mobileCountryPrefix = "+91"
)

var validate = validator.New()

// UserRepository is the persistence surface of authentication.
type UserRepository interface {
	CreateUser(ctx context.Context, u *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByMobile(ctx context.Context, mobile string) (*model.User, error)
	UpsertOTP(ctx context.Context, mobile, otp string, expiry time.Time) error
	ClearOTP(ctx context.Context, userID int) error
	CountUsers(ctx context.Context) (int, error)
}

type AuthService struct {
	userRepo  UserRepository
	smsSender sms.Sender
	jwtSecret string
	logger    *zap.Logger
	now       func() time.Time
}

func NewAuthService(userRepo UserRepository, smsSender sms.Sender, jwtSecret string, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		smsSender: smsSender,
		jwtSecret: jwtSecret,
		logger:    logger,
		now:       time.Now,
	}
}

// Register creates a new user and returns it with a session token.
func (s *AuthService) Register(ctx context.Context, name, email, password, mobile string) (*model.User, string, error) {
	if name == "" || email == "" || password == "" {
		return nil, "", NewValidationError("Please provide all required fields")
	}

	// the duplicate check comes before format checks so a taken email is
	// always reported as taken
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	if err := validate.Var(email, "email"); err != nil {
		return nil, "", NewValidationError("Invalid email format")
	}

	if len(password) < 8 {
		return nil, "", NewValidationError("Password must be at least 8 characters")
	}

	if mobile != "" {
		existing, err = s.userRepo.FindByMobile(ctx, mobile)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, "", err
		}
		if existing != nil {
			return nil, "", ErrMobileTaken
		}
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	u := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Mobile:       mobile,
	}

	if err := s.userRepo.CreateUser(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := util.GenerateJWT(u.ID, s.jwtSecret)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("User registered", zap.Int("user_id", u.ID))

	return u, token, nil
}

// LoginWithPassword checks credentials against the user found by email or
// mobile and returns a session token.
func (s *AuthService) LoginWithPassword(ctx context.Context, email, mobile, password string) (*model.User, string, error) {
	u, err := s.findByEmailOrMobile(ctx, email, mobile)
	if err != nil {
		return nil, "", err
	}

	if !util.CheckPassword(password, u.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(u.ID, s.jwtSecret)
	if err != nil {
		return nil, "", err
	}

	return u, token, nil
}

// RequestLoginOTP starts the OTP login path for an existing user: a fresh
// code is stored with a 5-minute expiry and delivered over SMS.
func (s *AuthService) RequestLoginOTP(ctx context.Context, mobile string) error {
	u, err := s.findByEmailOrMobile(ctx, "", mobile)
	if err != nil {
		return err
	}

	otp, err := util.GenerateOTP()
	if err != nil {
		return err
	}

	if err := s.userRepo.UpsertOTP(ctx, u.Mobile, otp, s.now().Add(otpTTL)); err != nil {
		return err
	}

	body := fmt.Sprintf("Your Yummiz login verification code is: %s", otp)
	return s.smsSender.Send(ctx, mobileCountryPrefix+u.Mobile, body)
}

// SendOTP generates and delivers a verification code for a mobile number,
// creating a bare user row when the number is new.
func (s *AuthService) SendOTP(ctx context.Context, mobile string) error {
	if len(mobile) != 10 {
		return NewValidationError("Please provide a valid 10-digit mobile number")
	}

	otp, err := util.GenerateOTP()
	if err != nil {
		return err
	}

	body := fmt.Sprintf("Your Yummiz verification code is: %s", otp)
	if err := s.smsSender.Send(ctx, mobileCountryPrefix+mobile, body); err != nil {
		return err
	}

	return s.userRepo.UpsertOTP(ctx, mobile, otp, s.now().Add(otpTTL))
}

// VerifyOTP checks a code against the stored one and its expiry, clears
// the transient OTP fields, and returns a session token.
func (s *AuthService) VerifyOTP(ctx context.Context, mobile, otp string) (*model.User, string, error) {
	if mobile == "" || otp == "" {
		return nil, "", NewValidationError("Mobile number and OTP are required")
	}

	u, err := s.userRepo.FindByMobile(ctx, mobile)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", ErrInvalidOTP
		}
		return nil, "", err
	}

	if u.OTP != otp || !u.HasValidOTP(s.now()) {
		return nil, "", ErrInvalidOTP
	}

	if err := s.userRepo.ClearOTP(ctx, u.ID); err != nil {
		return nil, "", err
	}

	token, err := util.GenerateJWT(u.ID, s.jwtSecret)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("OTP verified", zap.Int("user_id", u.ID))

	return u, token, nil
}

// CountUsers returns the total number of accounts.
func (s *AuthService) CountUsers(ctx context.Context) (int, error) {
	return s.userRepo.CountUsers(ctx)
}

func (s *AuthService) findByEmailOrMobile(ctx context.Context, email, mobile string) (*model.User, error) {
	var (
		u   *model.User
		err error
	)
	if email != "" {
		u, err = s.userRepo.FindByEmail(ctx, email)
	} else if mobile != "" {
		u, err = s.userRepo.FindByMobile(ctx, mobile)
	} else {
		return nil, NewValidationError("Email or mobile number is required")
	}

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
