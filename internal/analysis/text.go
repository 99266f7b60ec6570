package analysis

import (
	"context"
	"strings"
	"unicode/utf8"
)

// TextResult holds the computed fields for a plain text input.
type TextResult struct {
	CharCount int    `json:"char_count"`
	WordCount int    `json:"word_count"`
	Upper     string `json:"upper"`
}

// AnalyzeText computes simple statistics over the input text.
// Characters are counted as runes, not bytes, so non-ASCII input is
// measured the way a reader would expect.
func AnalyzeText(ctx context.Context, input string) (any, error) {
	return &TextResult{
		CharCount: utf8.RuneCountInString(input),
		WordCount: len(strings.Fields(input)),
		Upper:     strings.ToUpper(input),
	}, nil
}
