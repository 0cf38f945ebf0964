package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"notable/internal/server/storage"
	"notable/pkg/models"
	"notable/pkg/utils"

	"github.com/google/uuid"
)

var (
	ErrInvalidEmail        = errors.New("valid email required")
	ErrOtpNotFound         = errors.New("otp not found")
	ErrOtpExpired          = errors.New("otp expired")
	ErrOtpMismatch         = errors.New("invalid otp")
	ErrGoogleNotConfigured = errors.New("google login not configured")
	ErrGoogleTokenInvalid  = errors.New("google authentication failed")
	ErrUserNotFound        = errors.New("user not found")
)

const otpTTL = 5 * time.Minute

type AuthService struct {
	userRepo      *storage.UserRepository
	otpRepo       *storage.OtpRepository
	emailService  *EmailService
	googleService *GoogleService
}

// NewAuthService wires the auth flows. emailService and googleService may be
// nil when the corresponding provider is not configured.
func NewAuthService(
	userRepo *storage.UserRepository,
	otpRepo *storage.OtpRepository,
	emailService *EmailService,
	googleService *GoogleService,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		otpRepo:       otpRepo,
		emailService:  emailService,
		googleService: googleService,
	}
}

// RequestOtp issues a fresh 6-digit code for the email, replacing any prior
// pending code. The plaintext code is returned so the handler can decide
// whether to reveal it (non-production only).
func (s *AuthService) RequestOtp(ctx context.Context, email string) (string, error) {
	if !utils.IsValidEmail(email) {
		return "", ErrInvalidEmail
	}

	code, err := utils.GenerateOtpCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}

	hashed, err := utils.HashOtpCode(code)
	if err != nil {
		return "", fmt.Errorf("failed to hash otp: %w", err)
	}

	record := &models.OtpRecord{
		Email:      email,
		HashedCode: hashed,
		ExpiresAt:  time.Now().UTC().Add(otpTTL),
	}
	if err := s.otpRepo.Put(ctx, record); err != nil {
		return "", fmt.Errorf("failed to save otp: %w", err)
	}

	if s.emailService != nil {
		if err := s.emailService.SendOtpCode(email, code); err != nil {
			return "", fmt.Errorf("failed to send email: %w", err)
		}
	}

	return code, nil
}

// VerifyOtp checks the code against the stored record. The record is deleted
// on success (single use) and kept on mismatch so the correct code can still
// be presented before expiry.
func (s *AuthService) VerifyOtp(ctx context.Context, email, code, name string) (*models.User, string, error) {
	if !utils.IsValidEmail(email) {
		return nil, "", ErrInvalidEmail
	}

	record, err := s.otpRepo.Get(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load otp: %w", err)
	}
	if record == nil {
		return nil, "", ErrOtpNotFound
	}
	if time.Now().UTC().After(record.ExpiresAt) {
		return nil, "", ErrOtpExpired
	}
	if !utils.CheckOtpCode(record.HashedCode, code) {
		return nil, "", ErrOtpMismatch
	}

	if err := s.otpRepo.Delete(ctx, email); err != nil {
		return nil, "", fmt.Errorf("failed to delete otp: %w", err)
	}

	user, err := s.upsertEmailUser(ctx, email, name)
	if err != nil {
		return nil, "", err
	}

	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// LoginWithGoogle verifies an ID token issued by Google and resolves it to a
// local user, creating one on first sign-in.
func (s *AuthService) LoginWithGoogle(ctx context.Context, idToken string) (*models.User, string, error) {
	if s.googleService == nil {
		return nil, "", ErrGoogleNotConfigured
	}

	profile, err := s.googleService.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrGoogleTokenInvalid, err)
	}

	user, err := s.upsertGoogleUser(ctx, profile)
	if err != nil {
		return nil, "", err
	}

	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GetUserByID retrieves a user by their ID
func (s *AuthService) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GenerateToken signs a bearer token for the user, valid for 7 days unless
// JWT_EXPIRATION overrides it.
func (s *AuthService) GenerateToken(userID uuid.UUID) (string, error) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return "", fmt.Errorf("JWT_SECRET not configured")
	}

	expiration := 7 * 24 * time.Hour
	if expirationStr := os.Getenv("JWT_EXPIRATION"); expirationStr != "" {
		if parsed, err := time.ParseDuration(expirationStr); err == nil {
			expiration = parsed
		}
	}

	token, err := utils.GenerateJWT(userID, jwtSecret, expiration)
	if err != nil {
		return "", fmt.Errorf("failed to generate JWT: %w", err)
	}
	return token, nil
}

// CleanupExpiredOtps drops stale codes. Called once at startup.
func (s *AuthService) CleanupExpiredOtps(ctx context.Context) error {
	return s.otpRepo.DeleteExpired(ctx)
}

func (s *AuthService) upsertEmailUser(ctx context.Context, email, name string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		if name == "" {
			name = strings.SplitN(email, "@", 2)[0]
		}
		user = &models.User{
			Email:    email,
			Name:     name,
			Provider: models.ProviderEmail,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return user, nil
	}

	if name != "" && user.Name == "" {
		user.Name = name
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}
	return user, nil
}

func (s *AuthService) upsertGoogleUser(ctx context.Context, profile *GoogleProfile) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, profile.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		user = &models.User{
			Email:     profile.Email,
			Name:      profile.Name,
			Provider:  models.ProviderGoogle,
			GoogleSub: profile.Sub,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return user, nil
	}

	// An email first seen via OTP resolves to the same account here.
	changed := false
	if profile.Name != "" && user.Name != profile.Name {
		user.Name = profile.Name
		changed = true
	}
	if user.Provider == "" {
		user.Provider = models.ProviderGoogle
		changed = true
	}
	if changed {
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}
	return user, nil
}
