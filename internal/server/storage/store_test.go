package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"notable/pkg/models"

	"github.com/google/uuid"
)

func TestNewStore_CreatesCollectionFiles(t *testing.T) {
	dir := t.TempDir()
	if _, err := NewStore(dir); err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	for _, name := range []string{"users.json", "otps.json", "notes.json"} {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("Missing %s: %v", name, err)
		}
		if string(raw) != "[]" {
			t.Errorf("%s should start as an empty array, got %q", name, raw)
		}
	}
}

func TestStore_WritesPrettyPrintedJSON(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	users := NewUserRepository(store)
	if err := users.Create(context.Background(), &models.User{Email: "a@b.com", Provider: models.ProviderEmail}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "users.json"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(raw), "\n  ") {
		t.Errorf("File should be pretty-printed, got %q", raw)
	}
}

func TestUserRepository_PersistsAcrossStores(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	user := &models.User{Email: "a@b.com", Provider: models.ProviderEmail}
	if err := NewUserRepository(store).Create(ctx, user); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// A fresh store over the same directory sees the record.
	reopened, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	got, err := NewUserRepository(reopened).GetByEmail(ctx, "a@b.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got == nil || got.ID != user.ID {
		t.Errorf("Expected persisted user %s, got %v", user.ID, got)
	}
}

func TestUserRepository_GetByEmail_AbsentIsNil(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	got, err := NewUserRepository(store).GetByEmail(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for absent user, got %v", got)
	}
}

func TestUserRepository_Update_NotFound(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	user := &models.User{ID: uuid.New(), Email: "a@b.com"}
	if err := NewUserRepository(store).Update(context.Background(), user); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}

func TestOtpRepository_PutReplacesPerEmail(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	repo := NewOtpRepository(store)
	ctx := context.Background()

	expires := time.Now().UTC().Add(5 * time.Minute)
	if err := repo.Put(ctx, &models.OtpRecord{Email: "a@b.com", HashedCode: "old", ExpiresAt: expires}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := repo.Put(ctx, &models.OtpRecord{Email: "a@b.com", HashedCode: "new", ExpiresAt: expires}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	rec, err := repo.Get(ctx, "a@b.com")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if rec == nil || rec.HashedCode != "new" {
		t.Errorf("Expected replaced record, got %v", rec)
	}

	otps, err := store.loadOtps()
	if err != nil {
		t.Fatalf("loadOtps failed: %v", err)
	}
	if len(otps) != 1 {
		t.Errorf("At most one record per email, got %d", len(otps))
	}
}

func TestOtpRepository_DeleteExpired(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	repo := NewOtpRepository(store)
	ctx := context.Background()

	now := time.Now().UTC()
	if err := repo.Put(ctx, &models.OtpRecord{Email: "stale@b.com", HashedCode: "x", ExpiresAt: now.Add(-time.Minute)}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := repo.Put(ctx, &models.OtpRecord{Email: "live@b.com", HashedCode: "y", ExpiresAt: now.Add(time.Minute)}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if err := repo.DeleteExpired(ctx); err != nil {
		t.Fatalf("DeleteExpired failed: %v", err)
	}

	if rec, _ := repo.Get(ctx, "stale@b.com"); rec != nil {
		t.Error("Expired record should be gone")
	}
	if rec, _ := repo.Get(ctx, "live@b.com"); rec == nil {
		t.Error("Live record should survive")
	}
}

func TestNoteRepository_Delete_NotFound(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if err := NewNoteRepository(store).Delete(context.Background(), uuid.New()); !errors.Is(err, ErrNoteNotFound) {
		t.Errorf("Expected ErrNoteNotFound, got %v", err)
	}
}

func TestNoteRepository_ListByUser_FiltersOwner(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	repo := NewNoteRepository(store)
	ctx := context.Background()

	owner := uuid.New()
	other := uuid.New()
	for _, n := range []*models.Note{
		{UserID: owner, Title: "mine", Content: "a"},
		{UserID: other, Title: "theirs", Content: "b"},
		{UserID: owner, Title: "also mine", Content: "c"},
	} {
		if err := repo.Create(ctx, n); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	mine, err := repo.ListByUser(ctx, owner)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("Expected 2 notes, got %d", len(mine))
	}
	if mine[0].Title != "mine" || mine[1].Title != "also mine" {
		t.Errorf("Storage order not preserved: %v", mine)
	}
}
