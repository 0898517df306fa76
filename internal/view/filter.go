package view

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/search"

	"github.com/at-ishikawa/wordbook/internal/vocabulary"
)

// CreateSuggestionThreshold is the match count under which a search offers
// to create a record from the search text.
const CreateSuggestionThreshold = 10

type FilterState int

const (
	FilterNone FilterState = iota
	FilterFavorite
	FilterSearch
)

func (s FilterState) String() string {
	switch s {
	case FilterFavorite:
		return "favorite"
	case FilterSearch:
		return "search"
	}
	return "none"
}

// Filter tracks the menu selection and the search text. Non-empty search
// text always wins over the menu selection, and clearing an active search
// returns to FilterNone. Blank text while no search is active keeps the
// selection.
type Filter struct {
	selected FilterState
	query    string
}

func (f *Filter) SetSearch(text string) {
	if strings.TrimSpace(text) == "" {
		f.ClearSearch()
		return
	}
	f.query = text
}

func (f *Filter) ClearSearch() {
	if f.Query() != "" {
		f.selected = FilterNone
	}
	f.query = ""
}

func (f *Filter) SelectFavorite() {
	f.selected = FilterFavorite
}

func (f *Filter) SelectNone() {
	f.selected = FilterNone
}

// Query returns the trimmed search text.
func (f Filter) Query() string {
	return strings.TrimSpace(f.query)
}

func (f Filter) State() FilterState {
	if f.Query() != "" {
		return FilterSearch
	}
	return f.selected
}

// Matcher does case-insensitive, locale-aware substring matching on the
// primary text of records.
type Matcher struct {
	matcher *search.Matcher
}

func NewMatcher(tag language.Tag) *Matcher {
	return &Matcher{matcher: search.New(tag, search.IgnoreCase)}
}

// Match reports whether text contains query. An empty query matches
// everything.
func (m *Matcher) Match(text, query string) bool {
	if query == "" {
		return true
	}
	start, _ := m.matcher.IndexString(text, query)
	return start >= 0
}

// Options selects how Apply derives a view.
type Options struct {
	Sort   SortKey
	Filter Filter
	// Language defaults to English.
	Language language.Tag
}

// Result is a derived view of a snapshot.
type Result[T vocabulary.Record] struct {
	Records     []T
	State       FilterState
	Query       string
	OfferCreate bool
}

// Apply sorts records and then filters them, so filtered views keep the sort
// order.
func Apply[T vocabulary.Record](records []T, opts Options) Result[T] {
	sorted := Sort(records, opts.Sort)
	result := Result[T]{
		State: opts.Filter.State(),
		Query: opts.Filter.Query(),
	}

	switch result.State {
	case FilterFavorite:
		result.Records = make([]T, 0, len(sorted))
		for _, r := range sorted {
			if r.IsFavorite() {
				result.Records = append(result.Records, r)
			}
		}
	case FilterSearch:
		tag := opts.Language
		if tag == language.Und {
			tag = language.English
		}
		m := NewMatcher(tag)
		result.Records = make([]T, 0, len(sorted))
		for _, r := range sorted {
			if m.Match(r.PrimaryText(), result.Query) {
				result.Records = append(result.Records, r)
			}
		}
		result.OfferCreate = len(result.Records) < CreateSuggestionThreshold
	default:
		result.Records = sorted
	}
	return result
}
