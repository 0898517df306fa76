// Package datasync provides import/export orchestration between YAML files and the store.
package datasync

import (
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/at-ishikawa/wordbook/internal/store"
	"github.com/at-ishikawa/wordbook/internal/vocabulary"
)

// Document is the YAML layout of an export.
type Document struct {
	Words         []vocabulary.Word  `yaml:"words"`
	Idioms        []vocabulary.Idiom `yaml:"idioms"`
	DeletedWords  []uuid.UUID        `yaml:"deleted_words,omitempty"`
	DeletedIdioms []uuid.UUID        `yaml:"deleted_idioms,omitempty"`
}

// Fetcher reads every committed record of one kind.
type Fetcher[T vocabulary.Record] interface {
	FetchAll(ctx context.Context) ([]T, error)
}

// Merger applies externally sourced records to the store.
type Merger interface {
	Merge(ctx context.Context, set store.MergeSet) (store.MergeResult, error)
}

// ImportResult tracks counts for each import operation.
type ImportResult struct {
	WordsNew      int
	WordsUpdated  int
	WordsSkipped  int
	IdiomsNew     int
	IdiomsUpdated int
	IdiomsSkipped int
	Deleted       int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun         bool
	UpdateExisting bool
}

// Importer merges YAML documents into the store.
type Importer struct {
	merger Merger
	words  Fetcher[vocabulary.Word]
	idioms Fetcher[vocabulary.Idiom]
	writer io.Writer
	now    func() time.Time
}

// NewImporter creates a new Importer.
func NewImporter(merger Merger, words Fetcher[vocabulary.Word], idioms Fetcher[vocabulary.Idiom], writer io.Writer) *Importer {
	return &Importer{
		merger: merger,
		words:  words,
		idioms: idioms,
		writer: writer,
		now:    time.Now,
	}
}

// Import compares doc with the stored records and merges what changed in a
// single store merge. Records with an id that is already stored are skipped
// unless UpdateExisting is set; identical records are always skipped.
func (imp *Importer) Import(ctx context.Context, doc *Document, opts ImportOptions) (*ImportResult, error) {
	var result ImportResult
	var set store.MergeSet

	existingWords, err := imp.words.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("words.FetchAll() > %w", err)
	}
	existingIdioms, err := imp.idioms.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("idioms.FetchAll() > %w", err)
	}

	wordsByID := indexByID(existingWords)
	for _, w := range doc.Words {
		w = imp.normalizeWord(w)
		status := classify(wordsByID, w, sameWord, opts)
		imp.report(status, w.Text, vocabulary.KindWord)
		switch status {
		case statusNew:
			result.WordsNew++
		case statusUpdate:
			result.WordsUpdated++
		default:
			result.WordsSkipped++
			continue
		}
		set.Words = append(set.Words, w)
	}

	idiomsByID := indexByID(existingIdioms)
	for _, i := range doc.Idioms {
		i = imp.normalizeIdiom(i)
		status := classify(idiomsByID, i, sameIdiom, opts)
		imp.report(status, i.Text, vocabulary.KindIdiom)
		switch status {
		case statusNew:
			result.IdiomsNew++
		case statusUpdate:
			result.IdiomsUpdated++
		default:
			result.IdiomsSkipped++
			continue
		}
		set.Idioms = append(set.Idioms, i)
	}

	set.DeletedWords = existingIDs(wordsByID, doc.DeletedWords)
	set.DeletedIdioms = existingIDs(idiomsByID, doc.DeletedIdioms)
	result.Deleted = len(set.DeletedWords) + len(set.DeletedIdioms)
	for _, id := range set.DeletedWords {
		_, _ = fmt.Fprintf(imp.writer, "  [DELETE]  %q (word)\n", wordsByID[id].Text)
	}
	for _, id := range set.DeletedIdioms {
		_, _ = fmt.Fprintf(imp.writer, "  [DELETE]  %q (idiom)\n", idiomsByID[id].Text)
	}

	if opts.DryRun {
		return &result, nil
	}
	if _, err := imp.merger.Merge(ctx, set); err != nil {
		return nil, fmt.Errorf("merger.Merge() > %w", err)
	}
	return &result, nil
}

type importStatus int

const (
	statusSkip importStatus = iota
	statusNew
	statusUpdate
)

func classify[T vocabulary.Record](existing map[uuid.UUID]T, record T, same func(a, b T) bool, opts ImportOptions) importStatus {
	current, ok := existing[record.RecordID()]
	switch {
	case !ok:
		return statusNew
	case same(current, record) || !opts.UpdateExisting:
		return statusSkip
	}
	return statusUpdate
}

func (imp *Importer) report(status importStatus, text string, kind vocabulary.Kind) {
	label := "SKIP"
	switch status {
	case statusNew:
		label = "NEW"
	case statusUpdate:
		label = "UPDATE"
	}
	_, _ = fmt.Fprintf(imp.writer, "  [%s]  %q (%s)\n", label, text, kind)
}

func indexByID[T vocabulary.Record](records []T) map[uuid.UUID]T {
	index := make(map[uuid.UUID]T, len(records))
	for _, r := range records {
		index[r.RecordID()] = r
	}
	return index
}

func existingIDs[T vocabulary.Record](existing map[uuid.UUID]T, ids []uuid.UUID) []uuid.UUID {
	var result []uuid.UUID
	for _, id := range ids {
		if _, ok := existing[id]; ok && !slices.Contains(result, id) {
			result = append(result, id)
		}
	}
	return result
}

// normalizeWord fills what a hand-written file may leave out.
func (imp *Importer) normalizeWord(w vocabulary.Word) vocabulary.Word {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = imp.now()
	}
	w.PartOfSpeech = vocabulary.ParsePartOfSpeech(string(w.PartOfSpeech))
	if w.Examples == nil {
		w.Examples = vocabulary.Examples{}
	}
	return w
}

func (imp *Importer) normalizeIdiom(i vocabulary.Idiom) vocabulary.Idiom {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.CreatedAt.IsZero() {
		i.CreatedAt = imp.now()
	}
	if i.Examples == nil {
		i.Examples = vocabulary.Examples{}
	}
	return i
}

func sameWord(a, b vocabulary.Word) bool {
	return a.Text == b.Text &&
		a.Definition == b.Definition &&
		a.PartOfSpeech == b.PartOfSpeech &&
		a.Phonetic == b.Phonetic &&
		a.Favorite == b.Favorite &&
		slices.Equal(a.Examples, b.Examples)
}

func sameIdiom(a, b vocabulary.Idiom) bool {
	return a.Text == b.Text &&
		a.Definition == b.Definition &&
		a.Favorite == b.Favorite &&
		slices.Equal(a.Examples, b.Examples)
}

// Exporter reads the store and returns a document.
type Exporter struct {
	words  Fetcher[vocabulary.Word]
	idioms Fetcher[vocabulary.Idiom]
}

// NewExporter creates a new Exporter.
func NewExporter(words Fetcher[vocabulary.Word], idioms Fetcher[vocabulary.Idiom]) *Exporter {
	return &Exporter{
		words:  words,
		idioms: idioms,
	}
}

// Export reads all records from the store.
func (e *Exporter) Export(ctx context.Context) (*Document, error) {
	words, err := e.words.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("words.FetchAll() > %w", err)
	}
	idioms, err := e.idioms.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("idioms.FetchAll() > %w", err)
	}
	return &Document{
		Words:  words,
		Idioms: idioms,
	}, nil
}
