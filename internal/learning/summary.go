package learning

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Summary aggregates the answers for one word across quiz types.
type Summary struct {
	WordID         uuid.UUID `json:"word_id"`
	Answers        int       `json:"answers"`
	Correct        int       `json:"correct"`
	LastAnsweredAt time.Time `json:"last_answered_at"`
	LastCorrect    bool      `json:"last_correct"`
	Review         Review    `json:"review"`
}

// Accuracy is the share of correct answers, 0 when there are none.
func (s Summary) Accuracy() float64 {
	if s.Answers == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Answers)
}

// SummarizeByWord groups logs per word.
func SummarizeByWord(logs []LearningLog) map[uuid.UUID]Summary {
	byWord := make(map[uuid.UUID][]LearningLog)
	for _, log := range logs {
		byWord[log.WordID] = append(byWord[log.WordID], log)
	}

	summaries := make(map[uuid.UUID]Summary, len(byWord))
	for wordID, wordLogs := range byWord {
		slices.SortStableFunc(wordLogs, func(a, b LearningLog) int {
			return a.LearnedAt.Compare(b.LearnedAt)
		})

		s := Summary{
			WordID:  wordID,
			Answers: len(wordLogs),
			Review:  ScheduleReview(wordLogs),
		}
		for _, log := range wordLogs {
			if log.Correct {
				s.Correct++
			}
		}
		last := wordLogs[len(wordLogs)-1]
		s.LastAnsweredAt = last.LearnedAt
		s.LastCorrect = last.Correct
		summaries[wordID] = s
	}
	return summaries
}

// Summarize returns one summary per word, ordered by accuracy, lowest first,
// then by the most recent answer.
func Summarize(logs []LearningLog) []Summary {
	byWord := SummarizeByWord(logs)
	summaries := make([]Summary, 0, len(byWord))
	for _, s := range byWord {
		summaries = append(summaries, s)
	}
	slices.SortFunc(summaries, func(a, b Summary) int {
		// compare Correct/Answers without floating point
		left, right := a.Correct*b.Answers, b.Correct*a.Answers
		if left != right {
			if left < right {
				return -1
			}
			return 1
		}
		if c := b.LastAnsweredAt.Compare(a.LastAnsweredAt); c != 0 {
			return c
		}
		return slices.Compare(a.WordID[:], b.WordID[:])
	})
	return summaries
}
