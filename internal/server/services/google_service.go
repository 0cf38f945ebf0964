package services

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/api/idtoken"
)

// GoogleProfile is the validated identity extracted from a Google ID token.
type GoogleProfile struct {
	Email string
	Name  string
	Sub   string
}

type validateFunc func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// GoogleService verifies Google ID tokens against the configured client id.
type GoogleService struct {
	clientID string
	validate validateFunc
}

func NewGoogleService() (*GoogleService, error) {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	if clientID == "" {
		return nil, fmt.Errorf("GOOGLE_CLIENT_ID not set")
	}

	return &GoogleService{
		clientID: clientID,
		validate: idtoken.Validate,
	}, nil
}

// VerifyIDToken checks signature, expiry and audience and returns the profile.
func (s *GoogleService) VerifyIDToken(ctx context.Context, token string) (*GoogleProfile, error) {
	payload, err := s.validate(ctx, token, s.clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify Google ID token: %w", err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("Google ID token has no email claim")
	}
	name, _ := payload.Claims["name"].(string)

	return &GoogleProfile{
		Email: email,
		Name:  name,
		Sub:   payload.Subject,
	}, nil
}
