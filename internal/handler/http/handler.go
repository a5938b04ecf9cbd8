package http

import (
	"net/http"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

type Handler struct {
	services *service.Services

	// environment gates the OTP-disclosure test route: it is registered
	// only when this equals config.EnvDevelopment.
	environment string

	// frontendOrigin is the single browser origin allowed by CORS.
	frontendOrigin string

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		environment:    cfg.App.Environment,
		frontendOrigin: cfg.Server.FrontendOrigin,
		logger:         logger,
	}
}

// respondMessage writes a JSON body of the form {"message": ...} with the
// given status. All error responses of the API share this shape.
func respondMessage(w http.ResponseWriter, message string, statusCode int) {
	_, _ = utils.WriteJSON(w, models.MessageResponse{Message: message}, statusCode)
}
