package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
)

var noteColumns = []string{"id", "user_id", "title", "content", "created_at", "updated_at"}

// noteRepository is the SQL-backed implementation of [NoteRepository]. All
// statements are built with squirrel using dollar placeholders, which both
// supported drivers understand, and every statement is scoped by owner id so
// a user can never read or touch another user's notes.
type noteRepository struct {
	logger  *logger.Logger
	db      *DB
	builder sq.StatementBuilderType
}

// NewNoteRepository constructs a [NoteRepository] backed by the provided
// database connection and logger.
func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	logger.Debug().Msg("creating note repository")
	return &noteRepository{
		db:      db,
		logger:  logger,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// scanNote reads one notes row into a [models.Note].
func scanNote(row rowScanner) (models.Note, error) {
	var note models.Note
	err := row.Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return models.Note{}, err
	}
	return note, nil
}

// CreateNote persists a new note and returns the canonical database
// representation produced by the RETURNING clause.
func (r *noteRepository) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Insert(note.TableName()).
		Columns(noteColumns...).
		Values(note.ID, note.UserID, note.Title, note.Content, note.CreatedAt, note.UpdatedAt).
		Suffix("RETURNING " + joinColumns(noteColumns)).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.CreateNote").Msg("error: building insert query")
		return models.Note{}, errors.Join(ErrBuildingSQLQuery, err)
	}

	created, err := scanNote(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.CreateNote").Msg("error: creating note")
		return models.Note{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// GetNotes returns every note owned by the given user ordered newest first.
// An owner with no notes gets an empty slice.
func (r *noteRepository) GetNotes(ctx context.Context, userID string) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select(noteColumns...).
		From(models.Note{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.GetNotes").Msg("error: building select query")
		return nil, errors.Join(ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.GetNotes").Msg("error: querying notes")
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer func() { _ = rows.Close() }()

	notes := make([]models.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			log.Err(err).Str("func", "*noteRepository.GetNotes").Msg("error: scanning note row")
			return nil, errors.Join(ErrScanningRows, err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*noteRepository.GetNotes").Msg("error: iterating note rows")
		return nil, errors.Join(ErrScanningRows, err)
	}

	return notes, nil
}

// GetNote returns the note with the given id owned by the given user.
//
// Error handling:
//   - [sql.ErrNoRows] → [ErrNoteNotFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *noteRepository) GetNote(ctx context.Context, id string, userID string) (models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select(noteColumns...).
		From(models.Note{}.TableName()).
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.GetNote").Msg("error: building select query")
		return models.Note{}, errors.Join(ErrBuildingSQLQuery, err)
	}

	note, err := scanNote(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}

		log.Err(err).Str("func", "*noteRepository.GetNote").Msg("error: getting note")
		return models.Note{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return note, nil
}

// UpdateNote replaces the title and content of the note with the given id
// owned by the given user and returns the updated record.
//
// Error handling mirrors [noteRepository.GetNote].
func (r *noteRepository) UpdateNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Update(note.TableName()).
		Set("title", note.Title).
		Set("content", note.Content).
		Set("updated_at", note.UpdatedAt).
		Where(sq.Eq{"id": note.ID, "user_id": note.UserID}).
		Suffix("RETURNING " + joinColumns(noteColumns)).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.UpdateNote").Msg("error: building update query")
		return models.Note{}, errors.Join(ErrBuildingSQLQuery, err)
	}

	updated, err := scanNote(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}

		log.Err(err).Str("func", "*noteRepository.UpdateNote").Msg("error: updating note")
		return models.Note{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return updated, nil
}

// DeleteNote removes the note with the given id owned by the given user.
// Returns [ErrNoteNotFound] when nothing matched.
func (r *noteRepository) DeleteNote(ctx context.Context, id string, userID string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Delete(models.Note{}.TableName()).
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.DeleteNote").Msg("error: building delete query")
		return errors.Join(ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.DeleteNote").Msg("error: deleting note")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.DeleteNote").Msg("error: reading affected rows")
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrNoteNotFound
	}

	return nil
}
