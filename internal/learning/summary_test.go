package learning

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	otherID := uuid.MustParse("6f1c3c1e-5b0a-4a55-9c0e-8c5d1b1e2a03")

	type want struct {
		wordID         uuid.UUID
		answers        int
		correct        int
		lastAnsweredAt time.Time
		lastCorrect    bool
	}
	tests := []struct {
		name string
		logs []LearningLog
		want []want
	}{
		{
			name: "no logs",
		},
		{
			name: "weakest word first",
			logs: []LearningLog{
				{WordID: runID, QuizType: "spelling", Correct: true, LearnedAt: now},
				{WordID: appleID, QuizType: "spelling", Correct: false, LearnedAt: now},
				{WordID: runID, QuizType: "choice", Correct: false, LearnedAt: now.Add(time.Hour)},
				{WordID: appleID, QuizType: "choice", Correct: false, LearnedAt: now.Add(-time.Hour)},
			},
			want: []want{
				{wordID: appleID, answers: 2, correct: 0, lastAnsweredAt: now},
				{wordID: runID, answers: 2, correct: 1, lastAnsweredAt: now.Add(time.Hour)},
			},
		},
		{
			name: "same accuracy orders by most recent answer",
			logs: []LearningLog{
				{WordID: runID, Correct: true, LearnedAt: now},
				{WordID: otherID, Correct: true, LearnedAt: now.Add(time.Hour)},
			},
			want: []want{
				{wordID: otherID, answers: 1, correct: 1, lastAnsweredAt: now.Add(time.Hour), lastCorrect: true},
				{wordID: runID, answers: 1, correct: 1, lastAnsweredAt: now, lastCorrect: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.logs)
			require.Len(t, got, len(tt.want))
			for i, w := range tt.want {
				assert.Equal(t, w.wordID, got[i].WordID)
				assert.Equal(t, w.answers, got[i].Answers)
				assert.Equal(t, w.correct, got[i].Correct)
				assert.Equal(t, w.lastAnsweredAt, got[i].LastAnsweredAt)
				assert.Equal(t, w.lastCorrect, got[i].LastCorrect)
			}
		})
	}
}

func TestSummarizeByWord_ReplaysAnswersInTimeOrder(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	// stored out of order, the wrong answer came first
	logs := []LearningLog{
		{WordID: runID, Correct: true, LearnedAt: start.AddDate(0, 0, 1)},
		{WordID: runID, Correct: false, LearnedAt: start},
	}

	got := SummarizeByWord(logs)[runID]
	assert.True(t, got.LastCorrect)
	assert.Equal(t, 1, got.Review.CorrectStreak)
	assert.Equal(t, start.AddDate(0, 0, 2), got.Review.DueAt)
}

func TestSummary_Accuracy(t *testing.T) {
	assert.Equal(t, 0.0, Summary{}.Accuracy())
	assert.Equal(t, 0.75, Summary{Answers: 4, Correct: 3}.Accuracy())
}
