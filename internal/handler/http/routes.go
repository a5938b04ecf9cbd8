package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withRecover)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withCORS)
	router.Use(withGZip)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondMessage(w, "Route not found", http.StatusNotFound)
	})

	router.Get("/", h.health)

	// routes without authorization
	router.Route("/api/auth", func(r chi.Router) {
		r.Post("/send-otp", h.sendOTP)
		r.Post("/verify-otp", h.verifyOTP)
		r.Post("/login", h.login)
		r.Post("/google", h.googleAuth)

		// the code-disclosure route exists only in an explicitly
		// requested development environment
		if h.environment == config.EnvDevelopment {
			r.Post("/test-otp", h.testOTP)
		}

		r.Group(func(protected chi.Router) {
			protected.Use(h.auth)
			protected.Get("/me", h.me)
		})
	})

	router.Route("/api/notes", func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/", h.createNote)
		r.Get("/", h.getNotes)
		r.Get("/{id}", h.getNote)
		r.Put("/{id}", h.updateNote)
		r.Delete("/{id}", h.deleteNote)
	})

	return router
}

// health answers GET / so deployments can probe liveness without
// authentication.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.MessageResponse{Message: "NoteTaking API is running!"}, http.StatusOK)
}
