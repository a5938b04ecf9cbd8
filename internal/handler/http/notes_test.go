package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

// mockNoteService implements service.NoteService for unit tests.
type mockNoteService struct {
	createNoteFn func(ctx context.Context, userID, title, content string) (models.Note, error)
	getNotesFn   func(ctx context.Context, userID string) ([]models.Note, error)
	getNoteFn    func(ctx context.Context, id, userID string) (models.Note, error)
	updateNoteFn func(ctx context.Context, id, userID, title, content string) (models.Note, error)
	deleteNoteFn func(ctx context.Context, id, userID string) error
}

func (m *mockNoteService) CreateNote(ctx context.Context, userID, title, content string) (models.Note, error) {
	return m.createNoteFn(ctx, userID, title, content)
}

func (m *mockNoteService) GetNotes(ctx context.Context, userID string) ([]models.Note, error) {
	return m.getNotesFn(ctx, userID)
}

func (m *mockNoteService) GetNote(ctx context.Context, id, userID string) (models.Note, error) {
	return m.getNoteFn(ctx, id, userID)
}

func (m *mockNoteService) UpdateNote(ctx context.Context, id, userID, title, content string) (models.Note, error) {
	return m.updateNoteFn(ctx, id, userID, title, content)
}

func (m *mockNoteService) DeleteNote(ctx context.Context, id, userID string) error {
	return m.deleteNoteFn(ctx, id, userID)
}

// authedRequest builds a request whose context carries the given user id,
// as the auth middleware would have left it. URL params are attached via a
// chi route context when id is non-empty.
func authedRequest(t *testing.T, method, target, body, userID, noteID string) *http.Request {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	ctx := context.WithValue(req.Context(), utils.UserIDCtxKey, userID)

	if noteID != "" {
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("id", noteID)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
	}

	return req.WithContext(ctx)
}

func sampleNote() models.Note {
	now := time.Now().UTC()
	return models.Note{
		ID:        "n-1",
		UserID:    "u-1",
		Title:     "groceries",
		Content:   "milk, eggs",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreateNote_Success(t *testing.T) {
	notes := &mockNoteService{
		createNoteFn: func(_ context.Context, userID, title, content string) (models.Note, error) {
			assert.Equal(t, "u-1", userID)
			assert.Equal(t, "groceries", title)
			return sampleNote(), nil
		},
	}

	h := newTestHandler(t, nil, notes, config.EnvProduction)
	req := authedRequest(t, http.MethodPost, "/api/notes", `{"title":"groceries","content":"milk, eggs"}`, "u-1", "")
	rec := httptest.NewRecorder()

	h.createNote(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var body models.NoteResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Note created successfully", body.Message)
	assert.Equal(t, "n-1", body.Note.ID)
}

func TestCreateNote_MissingFields(t *testing.T) {
	notes := &mockNoteService{
		createNoteFn: func(_ context.Context, _, _, _ string) (models.Note, error) {
			return models.Note{}, service.ErrInvalidDataProvided
		},
	}

	h := newTestHandler(t, nil, notes, config.EnvProduction)
	req := authedRequest(t, http.MethodPost, "/api/notes", `{"title":"only a title"}`, "u-1", "")
	rec := httptest.NewRecorder()

	h.createNote(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Title and content are required", decodeMessage(t, rec))
}

func TestGetNotes_ReturnsOwnedList(t *testing.T) {
	notes := &mockNoteService{
		getNotesFn: func(_ context.Context, userID string) ([]models.Note, error) {
			assert.Equal(t, "u-1", userID)
			return []models.Note{sampleNote()}, nil
		},
	}

	h := newTestHandler(t, nil, notes, config.EnvProduction)
	req := authedRequest(t, http.MethodGet, "/api/notes", "", "u-1", "")
	rec := httptest.NewRecorder()

	h.getNotes(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body models.NotesResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Notes, 1)
	assert.Equal(t, "n-1", body.Notes[0].ID)
}

func TestGetNotes_EmptyList(t *testing.T) {
	notes := &mockNoteService{
		getNotesFn: func(_ context.Context, _ string) ([]models.Note, error) {
			return []models.Note{}, nil
		},
	}

	h := newTestHandler(t, nil, notes, config.EnvProduction)
	req := authedRequest(t, http.MethodGet, "/api/notes", "", "u-1", "")
	rec := httptest.NewRecorder()

	h.getNotes(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"notes":[]}`, rec.Body.String())
}

func TestGetNote_NotFound(t *testing.T) {
	notes := &mockNoteService{
		getNoteFn: func(_ context.Context, id, userID string) (models.Note, error) {
			assert.Equal(t, "n-1", id)
			assert.Equal(t, "u-other", userID)
			return models.Note{}, store.ErrNoteNotFound
		},
	}

	h := newTestHandler(t, nil, notes, config.EnvProduction)
	req := authedRequest(t, http.MethodGet, "/api/notes/n-1", "", "u-other", "n-1")
	rec := httptest.NewRecorder()

	h.getNote(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Note not found", decodeMessage(t, rec))
}

func TestUpdateNote_Success(t *testing.T) {
	notes := &mockNoteService{
		updateNoteFn: func(_ context.Context, id, userID, title, content string) (models.Note, error) {
			assert.Equal(t, "n-1", id)
			note := sampleNote()
			note.Title = title
			note.Content = content
			return note, nil
		},
	}

	h := newTestHandler(t, nil, notes, config.EnvProduction)
	req := authedRequest(t, http.MethodPut, "/api/notes/n-1", `{"title":"edited","content":"new body"}`, "u-1", "n-1")
	rec := httptest.NewRecorder()

	h.updateNote(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body models.NoteResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Note updated successfully", body.Message)
	assert.Equal(t, "edited", body.Note.Title)
}

func TestDeleteNote_Success(t *testing.T) {
	notes := &mockNoteService{
		deleteNoteFn: func(_ context.Context, id, userID string) error {
			assert.Equal(t, "n-1", id)
			assert.Equal(t, "u-1", userID)
			return nil
		},
	}

	h := newTestHandler(t, nil, notes, config.EnvProduction)
	req := authedRequest(t, http.MethodDelete, "/api/notes/n-1", "", "u-1", "n-1")
	rec := httptest.NewRecorder()

	h.deleteNote(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Note deleted successfully", decodeMessage(t, rec))
}

func TestDeleteNote_NotFound(t *testing.T) {
	notes := &mockNoteService{
		deleteNoteFn: func(_ context.Context, _, _ string) error {
			return store.ErrNoteNotFound
		},
	}

	h := newTestHandler(t, nil, notes, config.EnvProduction)
	req := authedRequest(t, http.MethodDelete, "/api/notes/n-1", "", "u-other", "n-1")
	rec := httptest.NewRecorder()

	h.deleteNote(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Note not found", decodeMessage(t, rec))
}
