package testutil

import (
	"context"
	"fmt"

	"notable/pkg/models"

	"github.com/google/uuid"
)

// GenerateTestEmail returns a unique email for test isolation.
func GenerateTestEmail() string {
	return fmt.Sprintf("test-%s@example.com", uuid.New().String()[:8])
}

// CreateTestUser creates an email-provider user in the test store.
func (ts *TestStore) CreateTestUser(ctx context.Context, email string) *models.User {
	ts.t.Helper()

	user := &models.User{
		Email:    email,
		Name:     "Test User",
		Provider: models.ProviderEmail,
	}
	if err := ts.Repositories().Users.Create(ctx, user); err != nil {
		ts.t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// CreateTestNote creates a note owned by the given user.
func (ts *TestStore) CreateTestNote(ctx context.Context, userID uuid.UUID, title, content string) *models.Note {
	ts.t.Helper()

	note := &models.Note{
		UserID:  userID,
		Title:   title,
		Content: content,
	}
	if err := ts.Repositories().Notes.Create(ctx, note); err != nil {
		ts.t.Fatalf("Failed to create test note: %v", err)
	}
	return note
}
