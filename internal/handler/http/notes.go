package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

// createNote handles POST /api/notes.
func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		respondMessage(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	var payload models.NotePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Err(err).Str("func", "*Handler.createNote").Msg("Invalid JSON was passed")
		respondMessage(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	note, err := h.services.NoteService.CreateNote(ctx, userID, payload.Title, payload.Content)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDataProvided) {
			respondMessage(w, "Title and content are required", http.StatusBadRequest)
			return
		}

		log.Err(err).Str("func", "*Handler.createNote").Msg("note creation failed")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, models.NoteResponse{
		Message: "Note created successfully",
		Note:    note,
	}, http.StatusCreated)
}

// getNotes handles GET /api/notes.
func (h *Handler) getNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		respondMessage(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	notes, err := h.services.NoteService.GetNotes(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getNotes").Msg("notes listing failed")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, models.NotesResponse{Notes: notes}, http.StatusOK)
}

// getNote handles GET /api/notes/{id}.
func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		respondMessage(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	note, err := h.services.NoteService.GetNote(ctx, chi.URLParam(r, "id"), userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getNote").Msg("note lookup failed")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, models.NoteResponse{Note: note}, http.StatusOK)
}

// updateNote handles PUT /api/notes/{id}.
func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		respondMessage(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	var payload models.NotePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Err(err).Str("func", "*Handler.updateNote").Msg("Invalid JSON was passed")
		respondMessage(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	note, err := h.services.NoteService.UpdateNote(ctx, chi.URLParam(r, "id"), userID, payload.Title, payload.Content)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDataProvided) {
			respondMessage(w, "Title and content are required", http.StatusBadRequest)
			return
		}

		log.Err(err).Str("func", "*Handler.updateNote").Msg("note update failed")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, models.NoteResponse{
		Message: "Note updated successfully",
		Note:    note,
	}, http.StatusOK)
}

// deleteNote handles DELETE /api/notes/{id}.
func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		respondMessage(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	if err := h.services.NoteService.DeleteNote(ctx, chi.URLParam(r, "id"), userID); err != nil {
		log.Err(err).Str("func", "*Handler.deleteNote").Msg("note deletion failed")
		respondError(w, err)
		return
	}

	respondMessage(w, "Note deleted successfully", http.StatusOK)
}
