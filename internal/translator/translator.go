// Package translator defines the translation capability invoked by the
// worker. The state machine only depends on the interface, so a real
// translation backend can be swapped in without touching job processing.
package translator

import (
	"context"
	"fmt"
)

// Translator produces a translation of text into the target language.
type Translator interface {
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}

// Reverse is the placeholder backend: it reverses the input and appends the
// target language code, e.g. ("hello", "fr") -> "olleh (fr)".
type Reverse struct{}

// NewReverse creates the placeholder translator.
func NewReverse() *Reverse {
	return &Reverse{}
}

// Translate implements Translator.
func (r *Reverse) Translate(_ context.Context, text, targetLanguage string) (string, error) {
	runes := []rune(text)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return fmt.Sprintf("%s (%s)", string(runes), targetLanguage), nil
}
