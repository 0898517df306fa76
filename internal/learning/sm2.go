package learning

import (
	"math"
	"time"
)

const (
	DefaultEasinessFactor = 2.5
	MinEasinessFactor     = 1.3

	// answers are pass/fail, so they map to fixed SM-2 grades
	correctQuality = 4
	wrongQuality   = 1
)

// Review is the SM-2 state of a word after replaying its answers.
type Review struct {
	EasinessFactor float64   `json:"easiness_factor"`
	IntervalDays   int       `json:"interval_days"`
	CorrectStreak  int       `json:"correct_streak"`
	DueAt          time.Time `json:"due_at"`
}

// IsDue reports whether the word should be practiced at now. A word that was
// never answered is always due.
func (r Review) IsDue(now time.Time) bool {
	return !r.DueAt.After(now)
}

// ScheduleReview replays logs, oldest first, and returns when the word is due
// next.
func ScheduleReview(logs []LearningLog) Review {
	review := Review{EasinessFactor: DefaultEasinessFactor}
	for _, log := range logs {
		quality := wrongQuality
		if log.Correct {
			quality = correctQuality
		}

		previousStreak := review.CorrectStreak
		if log.Correct {
			review.CorrectStreak++
		} else {
			review.CorrectStreak = 0
		}

		review.EasinessFactor = updateEasinessFactor(review.EasinessFactor, quality, previousStreak)
		if log.Correct {
			review.IntervalDays = nextInterval(review.IntervalDays, review.EasinessFactor, review.CorrectStreak)
		} else {
			review.IntervalDays = lapseInterval(review.IntervalDays, previousStreak)
		}
		review.DueAt = log.LearnedAt.AddDate(0, 0, review.IntervalDays)
	}
	return review
}

// updateEasinessFactor applies the SM-2 delta for quality. Wrong answers on
// well-learned words are penalized less.
func updateEasinessFactor(ef float64, quality int, previousCorrectStreak int) float64 {
	q := float64(quality)
	delta := 0.1 - (5-q)*(0.08+(5-q)*0.02)

	if quality < 3 {
		switch {
		case previousCorrectStreak >= 10:
			delta *= 0.37
		case previousCorrectStreak >= 6:
			delta *= 0.56
		case previousCorrectStreak >= 3:
			delta *= 0.74
		}
	}
	return math.Max(ef+delta, MinEasinessFactor)
}

func nextInterval(lastInterval int, ef float64, correctStreak int) int {
	switch correctStreak {
	case 1:
		return 1
	case 2:
		return 6
	default:
		return int(math.Ceil(float64(lastInterval) * ef))
	}
}

// lapseInterval shrinks the interval after a wrong answer in proportion to
// the progress made so far.
func lapseInterval(lastInterval int, previousCorrectStreak int) int {
	if previousCorrectStreak <= 2 {
		return 1
	}

	multiplier := 0.5
	switch {
	case previousCorrectStreak >= 10:
		multiplier = 0.7
	case previousCorrectStreak >= 6:
		multiplier = 0.6
	}
	return max(int(math.Ceil(float64(lastInterval)*multiplier)), 1)
}
