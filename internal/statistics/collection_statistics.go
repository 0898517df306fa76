// Package statistics summarizes how the collection grew over time.
package statistics

import (
	"fmt"
	"sort"

	"github.com/at-ishikawa/wordbook/internal/vocabulary"
)

// PeriodStatistics holds the records added in one month.
type PeriodStatistics struct {
	Period    string `json:"period"` // "2025-01"
	Words     int    `json:"words"`
	Idioms    int    `json:"idioms"`
	Favorites int    `json:"favorites"` // favorites among the records added in the period
}

// AggregateStatistics holds totals across every matching period.
type AggregateStatistics struct {
	Words         int                             `json:"words"`
	Idioms        int                             `json:"idioms"`
	Favorites     int                             `json:"favorites"`
	PartsOfSpeech map[vocabulary.PartOfSpeech]int `json:"parts_of_speech"`
}

// StatisticsResult holds both per-period and aggregate statistics
type StatisticsResult struct {
	Periods   []PeriodStatistics  `json:"periods"`
	Aggregate AggregateStatistics `json:"aggregate"`
}

// CalculateStatistics buckets words and idioms by the month they were added.
// It accepts optional year and month filters (0 means no filter). A month
// filter without a year is ignored.
func CalculateStatistics(words []vocabulary.Word, idioms []vocabulary.Idiom, year, month int) StatisticsResult {
	stats := make(map[string]*PeriodStatistics)
	aggregate := AggregateStatistics{
		PartsOfSpeech: make(map[vocabulary.PartOfSpeech]int),
	}

	for _, w := range words {
		period, ok := periodOf(w, year, month, stats)
		if !ok {
			continue
		}
		period.Words++
		aggregate.Words++
		aggregate.PartsOfSpeech[w.PartOfSpeech]++
		if w.Favorite {
			period.Favorites++
			aggregate.Favorites++
		}
	}
	for _, i := range idioms {
		period, ok := periodOf(i, year, month, stats)
		if !ok {
			continue
		}
		period.Idioms++
		aggregate.Idioms++
		if i.Favorite {
			period.Favorites++
			aggregate.Favorites++
		}
	}

	return buildResult(stats, aggregate)
}

// periodOf returns the bucket of entry, creating it on first use. Entries
// outside the filter or without a creation time have no bucket.
func periodOf(entry vocabulary.Entry, year, month int, stats map[string]*PeriodStatistics) (*PeriodStatistics, bool) {
	createdAt := entry.CreationTime()
	if createdAt.IsZero() {
		return nil, false
	}
	if !matchesFilter(createdAt.Year(), int(createdAt.Month()), year, month) {
		return nil, false
	}

	period := fmt.Sprintf("%d-%02d", createdAt.Year(), int(createdAt.Month()))
	if stats[period] == nil {
		stats[period] = &PeriodStatistics{Period: period}
	}
	return stats[period], true
}

func matchesFilter(recordYear, recordMonth, filterYear, filterMonth int) bool {
	if filterYear == 0 {
		return true
	}
	if recordYear != filterYear {
		return false
	}
	if filterMonth == 0 {
		return true
	}
	return recordMonth == filterMonth
}

func buildResult(stats map[string]*PeriodStatistics, aggregate AggregateStatistics) StatisticsResult {
	periods := make([]PeriodStatistics, 0, len(stats))
	for _, data := range stats {
		periods = append(periods, *data)
	}

	// Sort by period descending (newest first)
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Period > periods[j].Period
	})

	return StatisticsResult{
		Periods:   periods,
		Aggregate: aggregate,
	}
}
