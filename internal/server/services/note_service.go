package services

import (
	"context"
	"errors"
	"fmt"

	"notable/internal/server/storage"
	"notable/pkg/models"

	"github.com/google/uuid"
)

var (
	ErrNoteNotFound = errors.New("note not found")
	ErrNotOwner     = errors.New("not allowed")
)

type NoteService struct {
	noteRepo *storage.NoteRepository
	userRepo *storage.UserRepository
}

func NewNoteService(noteRepo *storage.NoteRepository, userRepo *storage.UserRepository) *NoteService {
	return &NoteService{
		noteRepo: noteRepo,
		userRepo: userRepo,
	}
}

// List returns the caller's notes in insertion order, never nil.
func (s *NoteService) List(ctx context.Context, userID uuid.UUID) ([]models.Note, error) {
	notes, err := s.noteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

// Create stores a new note for the caller. The owner must exist.
func (s *NoteService) Create(ctx context.Context, userID uuid.UUID, title, content string) (*models.Note, error) {
	owner, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if owner == nil {
		return nil, ErrUserNotFound
	}

	note := &models.Note{
		UserID:  userID,
		Title:   title,
		Content: content,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return note, nil
}

// Delete removes a note if it exists and belongs to the caller.
func (s *NoteService) Delete(ctx context.Context, userID, noteID uuid.UUID) error {
	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return fmt.Errorf("failed to get note: %w", err)
	}
	if note == nil {
		return ErrNoteNotFound
	}
	if note.UserID != userID {
		return ErrNotOwner
	}
	return s.noteRepo.Delete(ctx, noteID)
}
