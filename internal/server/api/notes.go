package api

import (
	"errors"
	"net/http"

	"notable/internal/server/services"
	"notable/pkg/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type NotesHandler struct {
	noteService *services.NoteService
}

func NewNotesHandler(noteService *services.NoteService) *NotesHandler {
	return &NotesHandler{
		noteService: noteService,
	}
}

func (h *NotesHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r)
	if !ok {
		respondErrorJSON(w, http.StatusUnauthorized, "missing token")
		return
	}

	notes, err := h.noteService.List(r.Context(), userID)
	if err != nil {
		respondErrorJSON(w, http.StatusInternalServerError, "failed to list notes")
		return
	}

	respondJSON(w, http.StatusOK, models.ListNotesResponse{Notes: notes})
}

func (h *NotesHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r)
	if !ok {
		respondErrorJSON(w, http.StatusUnauthorized, "missing token")
		return
	}

	var req models.CreateNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Title == "" {
		respondErrorJSON(w, http.StatusBadRequest, "title required")
		return
	}
	if req.Content == "" {
		respondErrorJSON(w, http.StatusBadRequest, "content required")
		return
	}

	note, err := h.noteService.Create(r.Context(), userID, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			respondErrorJSON(w, http.StatusUnauthorized, "unknown user")
			return
		}
		respondErrorJSON(w, http.StatusInternalServerError, "failed to create note")
		return
	}

	respondJSON(w, http.StatusCreated, models.NoteResponse{Note: *note})
}

func (h *NotesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r)
	if !ok {
		respondErrorJSON(w, http.StatusUnauthorized, "missing token")
		return
	}

	noteID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondErrorJSON(w, http.StatusNotFound, "note not found")
		return
	}

	if err := h.noteService.Delete(r.Context(), userID, noteID); err != nil {
		switch {
		case errors.Is(err, services.ErrNoteNotFound):
			respondErrorJSON(w, http.StatusNotFound, "note not found")
		case errors.Is(err, services.ErrNotOwner):
			respondErrorJSON(w, http.StatusForbidden, "not allowed")
		default:
			respondErrorJSON(w, http.StatusInternalServerError, "failed to delete note")
		}
		return
	}

	respondJSON(w, http.StatusOK, models.DeleteNoteResponse{Success: true})
}
