package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/at-ishikawa/wordbook/internal/dictionary"
)

// LookupResponse holds the dictionary entries found for a word. Entries is
// empty when the dictionary does not know the word.
type LookupResponse struct {
	Word    string                 `json:"word"`
	Entries []dictionary.WordEntry `json:"entries"`
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) ([]dictionary.WordEntry, bool) {
	entries, err := h.dictionary.Lookup(r.Context(), chi.URLParam(r, "word"))
	if err == nil {
		return entries, true
	}

	var lookupErr *dictionary.LookupError
	switch {
	case errors.Is(err, dictionary.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &lookupErr):
		writeError(w, http.StatusBadGateway, lookupErr.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
	return nil, false
}

// Lookup handles GET /api/v1/lookup/{word}
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	entries, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if entries == nil {
		entries = []dictionary.WordEntry{}
	}
	writeJSON(w, http.StatusOK, LookupResponse{
		Word:    chi.URLParam(r, "word"),
		Entries: entries,
	})
}

// SaveLookup handles POST /api/v1/lookup/{word}. The first entry found is
// saved as a new word.
func (h *Handler) SaveLookup(w http.ResponseWriter, r *http.Request) {
	entries, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if len(entries) == 0 {
		writeError(w, http.StatusNotFound, "no dictionary entry found")
		return
	}

	in := dictionary.ToWordInput(entries[0])
	if in.Definition == "" {
		writeError(w, http.StatusUnprocessableEntity, "dictionary entry has no definition")
		return
	}
	word, err := h.words.Add(r.Context(), in)
	if err != nil {
		writeMutationError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, word)
}
