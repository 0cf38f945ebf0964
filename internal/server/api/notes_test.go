package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"notable/internal/server/services"
	"notable/internal/testutil"
	"notable/pkg/models"

	"github.com/google/uuid"
)

// loginUser creates a user directly and returns a bearer token for it.
func loginUser(t *testing.T, repos testutil.Repos, email string) (*models.User, string) {
	t.Helper()

	user := &models.User{Email: email, Name: "Test User", Provider: models.ProviderEmail}
	if err := repos.Users.Create(context.Background(), user); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	authService := services.NewAuthService(repos.Users, repos.Otps, nil, nil)
	token, err := authService.GenerateToken(user.ID)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	return user, token
}

func TestNotes_RequireToken(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, call := range []struct{ method, path string }{
		{http.MethodGet, "/notes"},
		{http.MethodPost, "/notes"},
		{http.MethodDelete, "/notes/" + uuid.New().String()},
	} {
		rec := doJSON(t, router, call.method, call.path, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", call.method, call.path, rec.Code)
		}
	}
}

func TestCreateNote_Validation(t *testing.T) {
	router, repos := newTestRouter(t)
	_, token := loginUser(t, repos, testutil.GenerateTestEmail())

	for _, body := range []map[string]string{
		{},
		{"title": "only title"},
		{"content": "only content"},
		{"title": "", "content": ""},
	} {
		rec := doJSON(t, router, http.MethodPost, "/notes", token, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %v: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestNotes_CreateListDelete(t *testing.T) {
	router, repos := newTestRouter(t)
	user, token := loginUser(t, repos, testutil.GenerateTestEmail())

	rec := doJSON(t, router, http.MethodPost, "/notes", token, map[string]string{"title": "groceries", "content": "milk"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body)
	}
	var created models.NoteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if created.Note.UserID != user.ID {
		t.Errorf("note owner mismatch: expected %s, got %s", user.ID, created.Note.UserID)
	}
	if created.Note.CreatedAt.IsZero() {
		t.Error("note should carry a timestamp")
	}

	rec = doJSON(t, router, http.MethodGet, "/notes", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}
	var listed models.ListNotesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(listed.Notes) != 1 || listed.Notes[0].ID != created.Note.ID {
		t.Fatalf("expected the created note, got %v", listed.Notes)
	}

	rec = doJSON(t, router, http.MethodDelete, "/notes/"+created.Note.ID.String(), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d: %s", rec.Code, rec.Body)
	}
	var deleted models.DeleteNoteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &deleted); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !deleted.Success {
		t.Error("expected success:true")
	}

	rec = doJSON(t, router, http.MethodGet, "/notes", token, nil)
	var after models.ListNotesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &after); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(after.Notes) != 0 {
		t.Errorf("expected empty list after delete, got %v", after.Notes)
	}
}

func TestDeleteNote_NotOwner(t *testing.T) {
	router, repos := newTestRouter(t)
	_, aliceToken := loginUser(t, repos, testutil.GenerateTestEmail())
	_, bobToken := loginUser(t, repos, testutil.GenerateTestEmail())

	rec := doJSON(t, router, http.MethodPost, "/notes", aliceToken, map[string]string{"title": "secret", "content": "keep out"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", rec.Code)
	}
	var created models.NoteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	// Bob cannot see or delete Alice's note.
	rec = doJSON(t, router, http.MethodGet, "/notes", bobToken, nil)
	var bobNotes models.ListNotesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &bobNotes); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(bobNotes.Notes) != 0 {
		t.Errorf("Bob should not see Alice's notes, got %v", bobNotes.Notes)
	}

	rec = doJSON(t, router, http.MethodDelete, "/notes/"+created.Note.ID.String(), bobToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body)
	}

	// Still deletable by its owner.
	rec = doJSON(t, router, http.MethodDelete, "/notes/"+created.Note.ID.String(), aliceToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
}

func TestDeleteNote_NotFound(t *testing.T) {
	router, repos := newTestRouter(t)
	_, token := loginUser(t, repos, testutil.GenerateTestEmail())

	rec := doJSON(t, router, http.MethodDelete, "/notes/"+uuid.New().String(), token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body)
	}

	// Malformed ids also read as absent.
	rec = doJSON(t, router, http.MethodDelete, "/notes/not-a-uuid", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body)
	}
}
