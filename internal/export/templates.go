// Package export renders saved words and idioms into printable markdown and PDF files.
package export

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/at-ishikawa/wordbook/internal/vocabulary"
)

const fallbackTemplateName = "word-list.md.go.tmpl"

//go:embed templates/word-list.md.go.tmpl
var fallbackWordListTemplate string

// WordList is the data passed to the word list template.
type WordList struct {
	Title       string
	GeneratedAt time.Time
	Words       []vocabulary.Word
	Idioms      []vocabulary.Idiom
}

// ParseWordListTemplate parses templatePath, falling back to the embedded
// template when the path is empty, missing or invalid.
func ParseWordListTemplate(templatePath string) (*template.Template, error) {
	return parseTemplateWithFallback(templatePath, fallbackWordListTemplate)
}

func parseTemplateWithFallback(templatePath string, fallbackTemplate string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"join":  strings.Join,
		"lower": strings.ToLower,
	}

	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			fileName := filepath.Base(templatePath)
			tmpl, err := template.New(fileName).
				Funcs(funcMap).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a templatePath",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(fallbackTemplateName).
		Funcs(funcMap).
		Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}

// WriteWordList renders data as markdown into output.
func WriteWordList(output io.Writer, templatePath string, data WordList) error {
	tmpl, err := ParseWordListTemplate(templatePath)
	if err != nil {
		return fmt.Errorf("ParseWordListTemplate() > %w", err)
	}
	if err := tmpl.Execute(output, data); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}
