package testutil

import (
	"testing"

	"notable/internal/server/storage"
)

// TestStore wraps a Store rooted in a per-test temp directory.
type TestStore struct {
	Store *storage.Store
	t     *testing.T
}

func NewTestStore(t *testing.T) *TestStore {
	t.Helper()

	store, err := storage.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create test store: %v", err)
	}
	return &TestStore{Store: store, t: t}
}

// Repos bundles the repositories most tests need.
type Repos struct {
	Users *storage.UserRepository
	Otps  *storage.OtpRepository
	Notes *storage.NoteRepository
}

func (ts *TestStore) Repositories() Repos {
	return Repos{
		Users: storage.NewUserRepository(ts.Store),
		Otps:  storage.NewOtpRepository(ts.Store),
		Notes: storage.NewNoteRepository(ts.Store),
	}
}
