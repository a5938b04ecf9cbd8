package http

import (
	"net/http"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
)

// withRecover converts a handler panic into a plain 500 response so no stack
// trace or internal detail reaches the client.
func (h *Handler) withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.FromRequest(r).Error().
					Str("func", "withRecover").
					Any("panic", rec).
					Msg("recovered from handler panic")

				respondMessage(w, "Something went wrong!", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
