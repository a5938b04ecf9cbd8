package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

// noteService is the concrete implementation of NoteService. Ownership
// enforcement lives in the repository: every statement it issues is scoped
// by owner id, so this layer only validates input and stamps timestamps.
type noteService struct {
	noteRepository store.NoteRepository
	uuid           *utils.UUIDGenerator
	logger         *logger.Logger
}

// NewNoteService constructs a NoteService wired to the given NoteRepository.
func NewNoteService(noteRepository store.NoteRepository, logger *logger.Logger) NoteService {
	return &noteService{
		noteRepository: noteRepository,
		uuid:           utils.NewUUIDGenerator(),
		logger:         logger,
	}
}

// CreateNote persists a new note owned by the given user.
//
// Returns ErrInvalidDataProvided when title or content is empty.
func (n *noteService) CreateNote(ctx context.Context, userID string, title string, content string) (models.Note, error) {
	log := logger.FromContext(ctx)

	if userID == "" || title == "" || content == "" {
		log.Error().Str("userID", userID).Msg("invalid note data provided")
		return models.Note{}, ErrInvalidDataProvided
	}

	now := time.Now().UTC()
	created, err := n.noteRepository.CreateNote(ctx, models.Note{
		ID:        n.uuid.Generate(),
		UserID:    userID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		log.Err(err).Str("userID", userID).Msg("note creation ended with error")
		return models.Note{}, fmt.Errorf("note creation ended with error: %w", err)
	}

	return created, nil
}

// GetNotes returns all notes owned by the given user, newest first.
func (n *noteService) GetNotes(ctx context.Context, userID string) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		return nil, ErrInvalidDataProvided
	}

	notes, err := n.noteRepository.GetNotes(ctx, userID)
	if err != nil {
		log.Err(err).Str("userID", userID).Msg("notes listing ended with error")
		return nil, fmt.Errorf("notes listing ended with error: %w", err)
	}

	return notes, nil
}

// GetNote returns a single note owned by the given user. Another user's
// note surfaces store.ErrNoteNotFound exactly like a missing one.
func (n *noteService) GetNote(ctx context.Context, id string, userID string) (models.Note, error) {
	log := logger.FromContext(ctx)

	if id == "" || userID == "" {
		return models.Note{}, ErrInvalidDataProvided
	}

	note, err := n.noteRepository.GetNote(ctx, id, userID)
	if err != nil {
		log.Err(err).Str("noteID", id).Str("userID", userID).Msg("note lookup ended with error")
		return models.Note{}, fmt.Errorf("note lookup ended with error: %w", err)
	}

	return note, nil
}

// UpdateNote replaces the title and content of a note owned by the given
// user and refreshes its updated-at timestamp.
func (n *noteService) UpdateNote(ctx context.Context, id string, userID string, title string, content string) (models.Note, error) {
	log := logger.FromContext(ctx)

	if id == "" || userID == "" || title == "" || content == "" {
		log.Error().Str("noteID", id).Str("userID", userID).Msg("invalid note data provided")
		return models.Note{}, ErrInvalidDataProvided
	}

	updated, err := n.noteRepository.UpdateNote(ctx, models.Note{
		ID:        id,
		UserID:    userID,
		Title:     title,
		Content:   content,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		log.Err(err).Str("noteID", id).Str("userID", userID).Msg("note update ended with error")
		return models.Note{}, fmt.Errorf("note update ended with error: %w", err)
	}

	return updated, nil
}

// DeleteNote removes a note owned by the given user.
func (n *noteService) DeleteNote(ctx context.Context, id string, userID string) error {
	log := logger.FromContext(ctx)

	if id == "" || userID == "" {
		return ErrInvalidDataProvided
	}

	if err := n.noteRepository.DeleteNote(ctx, id, userID); err != nil {
		log.Err(err).Str("noteID", id).Str("userID", userID).Msg("note deletion ended with error")
		return fmt.Errorf("note deletion ended with error: %w", err)
	}

	return nil
}
