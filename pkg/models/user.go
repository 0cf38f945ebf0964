package models

import (
	"time"

	"github.com/google/uuid"
)

// Providers a user account can originate from.
const (
	ProviderEmail  = "email"
	ProviderGoogle = "google"
)

type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Provider  string    `json:"provider"`
	GoogleSub string    `json:"googleSub,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// PublicUser is the user shape returned to clients. GoogleSub stays server-side.
type PublicUser struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Provider:  u.Provider,
		CreatedAt: u.CreatedAt,
	}
}

// OtpRecord holds a pending login code. At most one live record exists per
// email; a new request replaces the previous one.
type OtpRecord struct {
	Email      string    `json:"email"`
	HashedCode string    `json:"hashedCode"`
	ExpiresAt  time.Time `json:"expiresAt"`
}
