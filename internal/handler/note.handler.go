package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"notes-service/internal/usecase"
	"notes-service/pkg/response"
	"notes-service/pkg/xerrors"
)

type NoteHandler struct {
	uc *usecase.NoteUsecase
}

func NewNoteHandler(uc *usecase.NoteUsecase) *NoteHandler {
	return &NoteHandler{uc: uc}
}

func writeNoteError(w http.ResponseWriter, err error) {
	if errors.Is(err, xerrors.ErrNoteNotFound) {
		response.Error(w, http.StatusNotFound, err.Error())
		return
	}
	response.Error(w, http.StatusInternalServerError, "internal server error")
}

// Create handles POST /api/notes.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := getUserFromContext(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Title == "" || req.Content == "" {
		response.Error(w, http.StatusBadRequest, "Title and content required")
		return
	}

	note, err := h.uc.CreateNote(r.Context(), userID, req.Title, req.Content)
	if err != nil {
		writeNoteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Note created",
		"note":    note,
	})
}

// List handles GET /api/notes.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := getUserFromContext(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	notes, err := h.uc.ListNotes(r.Context(), userID)
	if err != nil {
		writeNoteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"notes": notes,
	})
}

// Get handles GET /api/notes/{id}.
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := getUserFromContext(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	note, err := h.uc.GetNote(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		writeNoteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"note": note,
	})
}

// Update handles PUT /api/notes/{id}.
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := getUserFromContext(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request")
		return
	}

	note, err := h.uc.UpdateNote(r.Context(), chi.URLParam(r, "id"), userID, req.Title, req.Content)
	if err != nil {
		writeNoteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Note updated",
		"note":    note,
	})
}

// Delete handles DELETE /api/notes/{id}.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := getUserFromContext(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.uc.DeleteNote(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		writeNoteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Note deleted",
	})
}
