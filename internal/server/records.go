package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/at-ishikawa/wordbook/internal/repository"
	"github.com/at-ishikawa/wordbook/internal/store"
	"github.com/at-ishikawa/wordbook/internal/view"
	"github.com/at-ishikawa/wordbook/internal/vocabulary"
)

var validate = newRequestValidator()

func newRequestValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// WordRequest is the body of POST and PUT on /words.
type WordRequest struct {
	Text         string   `json:"text" validate:"required"`
	Definition   string   `json:"definition" validate:"required"`
	PartOfSpeech string   `json:"part_of_speech" validate:"omitempty,oneof=noun verb adjective adverb exclamation conjunction pronoun number unknown"`
	Phonetic     string   `json:"phonetic"`
	Examples     []string `json:"examples"`
}

// IdiomRequest is the body of POST and PUT on /idioms.
type IdiomRequest struct {
	Text       string   `json:"text" validate:"required"`
	Definition string   `json:"definition" validate:"required"`
	Examples   []string `json:"examples"`
}

// ListResponse is a derived view of a repository snapshot.
type ListResponse[T vocabulary.Record] struct {
	Records     []T    `json:"records"`
	Total       int    `json:"total"`
	Filter      string `json:"filter"`
	Query       string `json:"query,omitempty"`
	OfferCreate bool   `json:"offer_create"`
}

// decodeRequest reads the JSON body into req, trims its text fields and
// validates it. The returned message is safe to show to clients.
func decodeRequest(r *http.Request, req any) (string, bool) {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return "invalid request body", false
	}
	switch v := req.(type) {
	case *WordRequest:
		v.Text = strings.TrimSpace(v.Text)
		v.Definition = strings.TrimSpace(v.Definition)
		v.PartOfSpeech = strings.ToLower(strings.TrimSpace(v.PartOfSpeech))
	case *IdiomRequest:
		v.Text = strings.TrimSpace(v.Text)
		v.Definition = strings.TrimSpace(v.Definition)
	}
	if err := validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return err.Error(), false
		}
		messages := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			messages = append(messages, fmt.Sprintf("%s failed on %s", e.Field(), e.Tag()))
		}
		return strings.Join(messages, ", "), false
	}
	return "", true
}

func parseViewOptions(r *http.Request) (view.Options, error) {
	query := r.URL.Query()

	var opts view.Options
	if s := query.Get("sort"); s != "" {
		if err := opts.Sort.Set(s); err != nil {
			return opts, err
		}
	}
	switch f := query.Get("filter"); f {
	case "", "none":
	case "favorite":
		opts.Filter.SelectFavorite()
	default:
		return opts, fmt.Errorf("invalid filter %q, valid values are [none favorite]", f)
	}
	opts.Filter.SetSearch(query.Get("search"))
	return opts, nil
}

func parseID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

func writeMutationError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "record not found")
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

// listRecords handles GET on a collection with optional sort, filter and
// search query parameters.
func listRecords[T vocabulary.Record](repo *repository.Repository[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := parseViewOptions(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		result := view.Apply(repo.Records(), opts)
		if result.Records == nil {
			result.Records = []T{}
		}
		writeJSON(w, http.StatusOK, ListResponse[T]{
			Records:     result.Records,
			Total:       len(result.Records),
			Filter:      result.State.String(),
			Query:       result.Query,
			OfferCreate: result.OfferCreate,
		})
	}
}

func findRecord[T vocabulary.Record](w http.ResponseWriter, r *http.Request, repo *repository.Repository[T]) (T, bool) {
	var zero T
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid record ID")
		return zero, false
	}
	record, ok := repo.Find(id)
	if !ok {
		writeError(w, http.StatusNotFound, "record not found")
		return zero, false
	}
	return record, true
}

func getRecord[T vocabulary.Record](repo *repository.Repository[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, ok := findRecord(w, r, repo)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, record)
	}
}

func deleteRecord[T vocabulary.Record](repo *repository.Repository[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, ok := findRecord(w, r, repo)
		if !ok {
			return
		}
		if err := repo.Delete(r.Context(), record); err != nil {
			writeMutationError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toggleFavorite[T vocabulary.Record](repo *repository.Repository[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, ok := findRecord(w, r, repo)
		if !ok {
			return
		}
		updated, err := repo.ToggleFavorite(r.Context(), record)
		if err != nil {
			writeMutationError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

// CreateWord handles POST /api/v1/words
func (h *Handler) CreateWord(w http.ResponseWriter, r *http.Request) {
	var req WordRequest
	if msg, ok := decodeRequest(r, &req); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	word, err := h.words.Add(r.Context(), repository.WordInput{
		Text:         req.Text,
		Definition:   req.Definition,
		PartOfSpeech: vocabulary.ParsePartOfSpeech(req.PartOfSpeech),
		Phonetic:     req.Phonetic,
		Examples:     req.Examples,
	})
	if err != nil {
		writeMutationError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, word)
}

// UpdateWord handles PUT /api/v1/words/{id}
func (h *Handler) UpdateWord(w http.ResponseWriter, r *http.Request) {
	existing, ok := findRecord(w, r, h.words.Repository)
	if !ok {
		return
	}
	var req WordRequest
	if msg, ok := decodeRequest(r, &req); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	updated := vocabulary.NewWord(req.Text, req.Definition, vocabulary.ParsePartOfSpeech(req.PartOfSpeech), req.Phonetic, existing.CreatedAt)
	updated.ID = existing.ID
	updated.Favorite = existing.Favorite
	if req.Examples != nil {
		updated.Examples = vocabulary.Examples(req.Examples)
	}
	if err := h.words.Update(r.Context(), updated); err != nil {
		writeMutationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// CreateIdiom handles POST /api/v1/idioms
func (h *Handler) CreateIdiom(w http.ResponseWriter, r *http.Request) {
	var req IdiomRequest
	if msg, ok := decodeRequest(r, &req); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	idiom, err := h.idioms.Add(r.Context(), repository.IdiomInput{
		Text:       req.Text,
		Definition: req.Definition,
		Examples:   req.Examples,
	})
	if err != nil {
		writeMutationError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, idiom)
}

// UpdateIdiom handles PUT /api/v1/idioms/{id}
func (h *Handler) UpdateIdiom(w http.ResponseWriter, r *http.Request) {
	existing, ok := findRecord(w, r, h.idioms.Repository)
	if !ok {
		return
	}
	var req IdiomRequest
	if msg, ok := decodeRequest(r, &req); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	updated := vocabulary.NewIdiom(req.Text, req.Definition, existing.CreatedAt)
	updated.ID = existing.ID
	updated.Favorite = existing.Favorite
	if req.Examples != nil {
		updated.Examples = vocabulary.Examples(req.Examples)
	}
	if err := h.idioms.Update(r.Context(), updated); err != nil {
		writeMutationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
