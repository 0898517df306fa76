// Package server exposes the wordbook over a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/at-ishikawa/wordbook/internal/dictionary"
	"github.com/at-ishikawa/wordbook/internal/learning"
	"github.com/at-ishikawa/wordbook/internal/repository"
)

//go:generate mockgen -source=server.go -destination=../mocks/server/mock_dictionary.go -package=mock_server Dictionary

// Dictionary looks up words for the lookup endpoint. dictionary.Client
// implements it.
type Dictionary interface {
	Lookup(ctx context.Context, word string) ([]dictionary.WordEntry, error)
}

// Handler serves the API from repository snapshots. Mutations go through the
// repositories.
type Handler struct {
	words      *repository.WordRepository
	idioms     *repository.IdiomRepository
	dictionary Dictionary
	learning   *learning.DBLearningRepository

	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewHandler(words *repository.WordRepository, idioms *repository.IdiomRepository, dict Dictionary, learningLogs *learning.DBLearningRepository) *Handler {
	seed := uint64(time.Now().UnixNano())
	return &Handler{
		words:      words,
		idioms:     idioms,
		dictionary: dict,
		learning:   learningLogs,
		rng:        rand.New(rand.NewPCG(seed, seed>>1)),
	}
}

// NewRouter wires the API routes and middleware.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(Recoverer)
	r.Use(Logger)
	r.Use(CORS(allowedOrigins))

	r.Get("/health", h.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(JSONContentType)

		r.Route("/words", func(r chi.Router) {
			r.Get("/", listRecords(h.words.Repository))
			r.Post("/", h.CreateWord)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", getRecord(h.words.Repository))
				r.Put("/", h.UpdateWord)
				r.Delete("/", deleteRecord(h.words.Repository))
				r.Post("/favorite", toggleFavorite(h.words.Repository))
			})
		})

		r.Route("/idioms", func(r chi.Router) {
			r.Get("/", listRecords(h.idioms.Repository))
			r.Post("/", h.CreateIdiom)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", getRecord(h.idioms.Repository))
				r.Put("/", h.UpdateIdiom)
				r.Delete("/", deleteRecord(h.idioms.Repository))
				r.Post("/favorite", toggleFavorite(h.idioms.Repository))
			})
		})

		r.Get("/lookup/{word}", h.Lookup)
		r.Post("/lookup/{word}", h.SaveLookup)
		r.Get("/quiz/choice", h.ChoiceQuiz)
		r.Post("/quiz/answers", h.RecordAnswer)
		r.Get("/quiz/history", h.QuizHistory)
		r.Get("/stats", h.Statistics)
	})

	return r
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Default().Warn("failed to encode a response", slog.Any("error", err))
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
