package storage

import (
	"context"
	"errors"
	"time"

	"notable/pkg/models"

	"github.com/google/uuid"
)

var ErrNoteNotFound = errors.New("note not found")

type NoteRepository struct {
	store *Store
}

func NewNoteRepository(store *Store) *NoteRepository {
	return &NoteRepository{store: store}
}

// ListByUser returns the user's notes in storage (insertion) order.
func (r *NoteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Note, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	notes, err := r.store.loadNotes()
	if err != nil {
		return nil, err
	}
	mine := []models.Note{}
	for _, n := range notes {
		if n.UserID == userID {
			mine = append(mine, n)
		}
	}
	return mine, nil
}

// GetByID returns nil without error when no note matches.
func (r *NoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Note, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	notes, err := r.store.loadNotes()
	if err != nil {
		return nil, err
	}
	for i := range notes {
		if notes[i].ID == id {
			n := notes[i]
			return &n, nil
		}
	}
	return nil, nil
}

func (r *NoteRepository) Create(ctx context.Context, note *models.Note) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}

	notes, err := r.store.loadNotes()
	if err != nil {
		return err
	}
	notes = append(notes, *note)
	return r.store.saveNotes(notes)
}

func (r *NoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	notes, err := r.store.loadNotes()
	if err != nil {
		return err
	}
	kept := notes[:0]
	found := false
	for _, n := range notes {
		if n.ID == id {
			found = true
			continue
		}
		kept = append(kept, n)
	}
	if !found {
		return ErrNoteNotFound
	}
	return r.store.saveNotes(kept)
}
