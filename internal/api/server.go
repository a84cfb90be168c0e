package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/nestfolio/holdings/internal/session"
	"github.com/nestfolio/holdings/internal/snapshot"
)

// NewServer creates an HTTP server with all routes configured.
func NewServer(port string, sessions *session.Manager, directory AccountDirectory, snapshots *snapshot.Service, slug, adminAPIKey string) *http.Server {
	handler := NewSessionHandler(sessions, directory)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/sessions", handler.CreateSession)
	mux.HandleFunc("DELETE /api/v1/sessions/{id}", handler.CloseSession)
	mux.HandleFunc("GET /api/v1/sessions/{id}/state", handler.GetState)
	mux.HandleFunc("POST /api/v1/sessions/{id}/toggle/{accountId}", handler.ToggleAccount)
	mux.HandleFunc("POST /api/v1/sessions/{id}/refresh", handler.RefreshPrices)
	mux.HandleFunc("PUT /api/v1/sessions/{id}/owner-filter", handler.SetOwnerFilter)

	if snapshots != nil {
		valHandler := NewValuationHandler(snapshots, slug)
		mux.HandleFunc("GET /api/v1/valuations/latest", valHandler.GetLatest)
		mux.HandleFunc("GET /api/v1/valuations/{date}", valHandler.GetByDate)
		mux.HandleFunc("GET /api/v1/valuations", valHandler.List)

		generateHandler := http.HandlerFunc(valHandler.Generate)
		if adminAPIKey != "" {
			mux.Handle("POST /api/v1/valuations/generate", requireAuth(adminAPIKey, generateHandler))
		} else {
			mux.Handle("POST /api/v1/valuations/generate", generateHandler)
		}
	}

	return &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func requireAuth(apiKey string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token := strings.TrimPrefix(auth, "Bearer ")
		if !strings.HasPrefix(auth, "Bearer ") || subtle.ConstantTimeCompare([]byte(token), []byte(apiKey)) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
