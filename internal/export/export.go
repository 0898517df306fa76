package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mandolyte/mdtopdf"

	"github.com/at-ishikawa/wordbook/internal/vocabulary"
	"github.com/at-ishikawa/wordbook/internal/view"
)

// Fetcher reads every committed record of one kind.
type Fetcher[T vocabulary.Record] interface {
	FetchAll(ctx context.Context) ([]T, error)
}

type Options struct {
	OutputDirectory string
	TemplatePath    string
	Sort            view.SortKey
	FavoritesOnly   bool
	PDF             bool
}

// Exporter writes the word list of the store to the output directory.
type Exporter struct {
	words  Fetcher[vocabulary.Word]
	idioms Fetcher[vocabulary.Idiom]
	now    func() time.Time
}

func NewExporter(words Fetcher[vocabulary.Word], idioms Fetcher[vocabulary.Idiom]) *Exporter {
	return &Exporter{
		words:  words,
		idioms: idioms,
		now:    time.Now,
	}
}

// Export writes wordbook.md and, when requested, wordbook.pdf next to it.
// It returns the paths of the written files.
func (e *Exporter) Export(ctx context.Context, opts Options) ([]string, error) {
	words, err := e.words.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("words.FetchAll() > %w", err)
	}
	idioms, err := e.idioms.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("idioms.FetchAll() > %w", err)
	}

	var filter view.Filter
	if opts.FavoritesOnly {
		filter.SelectFavorite()
	}
	viewOptions := view.Options{Sort: opts.Sort, Filter: filter}
	data := WordList{
		Title:       "Wordbook",
		GeneratedAt: e.now(),
		Words:       view.Apply(words, viewOptions).Records,
		Idioms:      view.Apply(idioms, viewOptions).Records,
	}

	if err := os.MkdirAll(opts.OutputDirectory, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll(%s) > %w", opts.OutputDirectory, err)
	}
	markdownPath := filepath.Join(opts.OutputDirectory, "wordbook.md")
	file, err := os.Create(markdownPath)
	if err != nil {
		return nil, fmt.Errorf("os.Create(%s) > %w", markdownPath, err)
	}
	defer func() {
		_ = file.Close()
	}()
	if err := WriteWordList(file, opts.TemplatePath, data); err != nil {
		return nil, fmt.Errorf("WriteWordList() > %w", err)
	}
	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("file.Close() > %w", err)
	}

	paths := []string{markdownPath}
	if opts.PDF {
		pdfPath, err := ConvertMarkdownToPDF(markdownPath)
		if err != nil {
			return paths, fmt.Errorf("ConvertMarkdownToPDF() > %w", err)
		}
		paths = append(paths, pdfPath)
	}
	return paths, nil
}

// ConvertMarkdownToPDF converts a markdown file into a PDF in the same
// directory and returns its absolute path.
func ConvertMarkdownToPDF(markdownPath string) (string, error) {
	if !strings.HasSuffix(markdownPath, ".md") {
		return "", fmt.Errorf("input file must have .md extension: %s", markdownPath)
	}

	content, err := os.ReadFile(markdownPath)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", markdownPath, err)
	}

	pdfPath := strings.TrimSuffix(markdownPath, ".md") + ".pdf"
	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process(content); err != nil {
		return "", fmt.Errorf("renderer.Process() > %w", err)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return pdfPath, nil
	}
	return absPath, nil
}
