package statistics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/at-ishikawa/wordbook/internal/testutil"
	"github.com/at-ishikawa/wordbook/internal/vocabulary"
)

func TestCalculateStatistics(t *testing.T) {
	jan := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)
	lastYear := time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)

	words := []vocabulary.Word{
		testutil.NewWord("run", "to move fast", vocabulary.PartOfSpeechVerb, testutil.WithCreatedAt(jan), testutil.WithFavorite()),
		testutil.NewWord("walk", "to move slowly", vocabulary.PartOfSpeechVerb, testutil.WithCreatedAt(feb)),
		testutil.NewWord("apple", "a fruit", vocabulary.PartOfSpeechNoun, testutil.WithCreatedAt(lastYear)),
		testutil.NewWord("ghost", "no creation time", vocabulary.PartOfSpeechNoun, testutil.WithCreatedAt(time.Time{})),
	}
	idiom := vocabulary.NewIdiom("break the ice", "to start a conversation", feb)
	idiom.Favorite = true
	idioms := []vocabulary.Idiom{idiom}

	tests := []struct {
		name  string
		year  int
		month int
		want  StatisticsResult
	}{
		{
			name: "no filter",
			want: StatisticsResult{
				Periods: []PeriodStatistics{
					{Period: "2025-02", Words: 1, Idioms: 1, Favorites: 1},
					{Period: "2025-01", Words: 1, Favorites: 1},
					{Period: "2024-12", Words: 1},
				},
				Aggregate: AggregateStatistics{
					Words:     3,
					Idioms:    1,
					Favorites: 2,
					PartsOfSpeech: map[vocabulary.PartOfSpeech]int{
						vocabulary.PartOfSpeechVerb: 2,
						vocabulary.PartOfSpeechNoun: 1,
					},
				},
			},
		},
		{
			name: "year filter",
			year: 2025,
			want: StatisticsResult{
				Periods: []PeriodStatistics{
					{Period: "2025-02", Words: 1, Idioms: 1, Favorites: 1},
					{Period: "2025-01", Words: 1, Favorites: 1},
				},
				Aggregate: AggregateStatistics{
					Words:         2,
					Idioms:        1,
					Favorites:     2,
					PartsOfSpeech: map[vocabulary.PartOfSpeech]int{vocabulary.PartOfSpeechVerb: 2},
				},
			},
		},
		{
			name:  "year and month filter",
			year:  2025,
			month: 1,
			want: StatisticsResult{
				Periods: []PeriodStatistics{
					{Period: "2025-01", Words: 1, Favorites: 1},
				},
				Aggregate: AggregateStatistics{
					Words:         1,
					Favorites:     1,
					PartsOfSpeech: map[vocabulary.PartOfSpeech]int{vocabulary.PartOfSpeechVerb: 1},
				},
			},
		},
		{
			name: "nothing matches",
			year: 2030,
			want: StatisticsResult{
				Periods:   []PeriodStatistics{},
				Aggregate: AggregateStatistics{PartsOfSpeech: map[vocabulary.PartOfSpeech]int{}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateStatistics(words, idioms, tt.year, tt.month)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchesFilter(t *testing.T) {
	tests := []struct {
		name                    string
		recordYear, recordMonth int
		filterYear, filterMonth int
		want                    bool
	}{
		{name: "no filter", recordYear: 2025, recordMonth: 3, want: true},
		{name: "month without year is ignored", recordYear: 2025, recordMonth: 3, filterMonth: 4, want: true},
		{name: "same year", recordYear: 2025, recordMonth: 3, filterYear: 2025, want: true},
		{name: "other year", recordYear: 2024, recordMonth: 3, filterYear: 2025, want: false},
		{name: "other month", recordYear: 2025, recordMonth: 3, filterYear: 2025, filterMonth: 4, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchesFilter(tt.recordYear, tt.recordMonth, tt.filterYear, tt.filterMonth))
		})
	}
}
