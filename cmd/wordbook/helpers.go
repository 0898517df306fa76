package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/wordbook/internal/app"
	"github.com/at-ishikawa/wordbook/internal/vocabulary"
)

func openApp(ctx context.Context) (*app.App, error) {
	cfg, err := app.LoadConfig(configFile)
	if err != nil {
		return nil, err
	}
	a, err := app.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("app.Open() > %w", err)
	}
	return a, nil
}

// minIDPrefix is the shortest id prefix accepted in place of a full id.
const minIDPrefix = 4

// findRecord resolves a full id or a unique id prefix against records.
func findRecord[T vocabulary.Record](records []T, arg string) (T, error) {
	var zero T
	arg = strings.ToLower(strings.TrimSpace(arg))
	if id, err := uuid.Parse(arg); err == nil {
		for _, r := range records {
			if r.RecordID() == id {
				return r, nil
			}
		}
		return zero, fmt.Errorf("no %s with id %s", vocabulary.KindOf[T](), arg)
	}
	if len(arg) < minIDPrefix {
		return zero, fmt.Errorf("id prefix %q must have at least %d characters", arg, minIDPrefix)
	}

	var matches []T
	for _, r := range records {
		if strings.HasPrefix(r.RecordID().String(), arg) {
			matches = append(matches, r)
		}
	}
	switch len(matches) {
	case 0:
		return zero, fmt.Errorf("no %s with id %s", vocabulary.KindOf[T](), arg)
	case 1:
		return matches[0], nil
	}
	return zero, fmt.Errorf("id prefix %q matches %d %ss", arg, len(matches), vocabulary.KindOf[T]())
}

// partOfSpeechFlag restricts a flag to the closed set of parts of speech.
type partOfSpeechFlag vocabulary.PartOfSpeech

var _ pflag.Value = (*partOfSpeechFlag)(nil)

func (p *partOfSpeechFlag) Set(val string) error {
	for _, pos := range vocabulary.AllPartsOfSpeech {
		if strings.EqualFold(val, string(pos)) {
			*p = partOfSpeechFlag(pos)
			return nil
		}
	}
	return fmt.Errorf("invalid part of speech: %s. Possible values are %v", val, vocabulary.AllPartsOfSpeech)
}

func (p partOfSpeechFlag) String() string {
	return string(p)
}

func (p *partOfSpeechFlag) Type() string {
	return "PartOfSpeech"
}
