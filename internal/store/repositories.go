package store

import "github.com/MKhiriev/go-note-keeper/internal/logger"

// Repositories bundles every repository the service layer depends on.
type Repositories struct {
	UserRepository UserRepository
	NoteRepository NoteRepository
}

// NewRepositories constructs all repositories over a shared database
// connection.
func NewRepositories(db *DB, logger *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository: NewUserRepository(db, logger),
		NoteRepository: NewNoteRepository(db, logger),
	}
}
