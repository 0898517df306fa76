package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/at-ishikawa/wordbook/internal/learning"
	"github.com/at-ishikawa/wordbook/internal/quiz"
)

const defaultQuizSize = 10

// ChoiceQuestion is one multiple-choice question. Answer indexes Options.
type ChoiceQuestion struct {
	WordID  uuid.UUID `json:"word_id"`
	Text    string    `json:"text"`
	Options []string  `json:"options"`
	Answer  int       `json:"answer"`
}

// ChoiceQuiz handles GET /api/v1/quiz/choice. The optional limit query
// parameter caps the number of questions.
func (h *Handler) ChoiceQuiz(w http.ResponseWriter, r *http.Request) {
	limit := defaultQuizSize
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive number")
			return
		}
		limit = n
	}

	h.rngMu.Lock()
	questions, err := quiz.NewMultipleChoice(h.words.Records(), h.rng)
	h.rngMu.Unlock()
	if err != nil {
		if errors.Is(err, quiz.ErrNotEnoughWords) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if len(questions) > limit {
		questions = questions[:limit]
	}
	response := make([]ChoiceQuestion, 0, len(questions))
	for _, q := range questions {
		response = append(response, ChoiceQuestion{
			WordID:  q.Word.ID,
			Text:    q.Word.Text,
			Options: q.Options,
			Answer:  q.Answer,
		})
	}
	writeJSON(w, http.StatusOK, response)
}

// AnswerRequest is the body of POST /quiz/answers.
type AnswerRequest struct {
	WordID   uuid.UUID `json:"word_id" validate:"required"`
	QuizType string    `json:"quiz_type" validate:"required,oneof=spelling choice"`
	Correct  *bool     `json:"correct" validate:"required"`
}

// RecordAnswer handles POST /api/v1/quiz/answers
func (h *Handler) RecordAnswer(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if message, ok := decodeRequest(r, &req); !ok {
		writeError(w, http.StatusBadRequest, message)
		return
	}
	if _, ok := h.words.Find(req.WordID); !ok {
		writeError(w, http.StatusNotFound, "word not found")
		return
	}

	log, err := h.learning.Record(r.Context(), req.WordID, req.QuizType, *req.Correct)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, log)
}

// HistoryEntry is the quiz summary of one saved word.
type HistoryEntry struct {
	learning.Summary
	Text     string  `json:"text"`
	Accuracy float64 `json:"accuracy"`
}

// QuizHistory handles GET /api/v1/quiz/history. Words are ordered by
// accuracy, lowest first. Answers for deleted words are left out.
func (h *Handler) QuizHistory(w http.ResponseWriter, r *http.Request) {
	logs, err := h.learning.FindAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response := make([]HistoryEntry, 0)
	for _, s := range learning.Summarize(logs) {
		word, ok := h.words.Find(s.WordID)
		if !ok {
			continue
		}
		response = append(response, HistoryEntry{
			Summary:  s,
			Text:     word.Text,
			Accuracy: s.Accuracy(),
		})
	}
	writeJSON(w, http.StatusOK, response)
}
