// Package view derives the sorted, filtered and searched projections shown to
// users from a repository snapshot.
package view

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/at-ishikawa/wordbook/internal/vocabulary"
)

type SortKey string

const (
	SortCreated      SortKey = "created"
	SortName         SortKey = "name"
	SortPartOfSpeech SortKey = "part_of_speech"
)

var (
	_ pflag.Value = (*SortKey)(nil)

	AllSortKeys = []SortKey{SortCreated, SortName, SortPartOfSpeech}
)

// Set implements pflag.Value.
func (k *SortKey) Set(v string) error {
	for _, key := range AllSortKeys {
		if v == string(key) {
			*k = key
			return nil
		}
	}
	return fmt.Errorf("invalid sort key %q, valid values are %v", v, AllSortKeys)
}

// String implements pflag.Value.
func (k *SortKey) String() string {
	if k == nil || *k == "" {
		return string(SortCreated)
	}
	return string(*k)
}

// Type implements pflag.Value.
func (k *SortKey) Type() string {
	return "SortKey"
}

// tagged is implemented by records that carry a part of speech.
type tagged interface {
	Tag() vocabulary.PartOfSpeech
}

// Sort returns a sorted copy of records. Every key falls back to creation
// time and then id, so the order is total and does not depend on the input
// order. Records without a part of speech keep creation order under
// SortPartOfSpeech.
func Sort[T vocabulary.Record](records []T, key SortKey) []T {
	sorted := slices.Clone(records)
	byCreation := func(a, b T) int {
		if c := a.CreationTime().Compare(b.CreationTime()); c != 0 {
			return c
		}
		return strings.Compare(a.RecordID().String(), b.RecordID().String())
	}

	switch key {
	case SortName:
		collator := collate.New(language.English, collate.IgnoreCase)
		slices.SortStableFunc(sorted, func(a, b T) int {
			if c := collator.CompareString(a.PrimaryText(), b.PrimaryText()); c != 0 {
				return c
			}
			return byCreation(a, b)
		})
	case SortPartOfSpeech:
		slices.SortStableFunc(sorted, func(a, b T) int {
			at, aok := any(a).(tagged)
			bt, bok := any(b).(tagged)
			if aok && bok {
				if c := cmp.Compare(at.Tag(), bt.Tag()); c != 0 {
					return c
				}
			}
			return byCreation(a, b)
		})
	default:
		slices.SortStableFunc(sorted, byCreation)
	}
	return sorted
}
