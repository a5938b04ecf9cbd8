package service

import (
	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/identity"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/mail"
	"github.com/MKhiriev/go-note-keeper/internal/password"
	"github.com/MKhiriev/go-note-keeper/internal/store"
)

type Services struct {
	AuthService AuthService
	NoteService NoteService
}

func NewServices(repositories *store.Repositories, mailer mail.Mailer, verifier identity.TokenVerifier, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	authService, err := NewAuthService(repositories.UserRepository, mailer, verifier, password.NewArgon2(), cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService: authService,
		NoteService: NewNoteService(repositories.NoteRepository, logger),
	}, nil
}
