// Package entities contains domain entities used across the application.
package entities

import (
	"errors"
	"fmt"
)

var ErrUnknownModule = errors.New("unknown module")

// ModuleKey identifies a learning context with its own learned set.
type ModuleKey string

const (
	ModuleLettersNumbers ModuleKey = "letters_numbers"
	ModuleBasicWords     ModuleKey = "basic_words"
	ModuleFlashcards     ModuleKey = "flashcards"
)

// Modules lists every module in display order.
var Modules = []ModuleKey{ModuleLettersNumbers, ModuleBasicWords, ModuleFlashcards}

// storageKeys are fixed and versioned; bump the suffix when the member format changes.
var storageKeys = map[ModuleKey]string{
	ModuleLettersNumbers: "learned_letters_numbers_v1",
	ModuleBasicWords:     "learned_basic_words_v1",
	ModuleFlashcards:     "learned_flashcards_v1",
}

var moduleTitles = map[ModuleKey]string{
	ModuleLettersNumbers: "Letters & Numbers",
	ModuleBasicWords:     "Basic Words",
	ModuleFlashcards:     "Flashcards",
}

// ParseModule validates a raw module key.
func ParseModule(s string) (ModuleKey, error) {
	m := ModuleKey(s)
	if _, ok := storageKeys[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownModule, s)
	}
	return m, nil
}

// Title returns a human readable module name.
func (m ModuleKey) Title() string {
	if t, ok := moduleTitles[m]; ok {
		return t
	}
	return string(m)
}

// StorageKey returns the durable key of the learned set owned by userID.
func (m ModuleKey) StorageKey(userID int64) string {
	return fmt.Sprintf("user:%d:%s", userID, storageKeys[m])
}

// CatalogModule returns the module whose catalog backs m.
// Flashcards reuse the basic words catalog but keep a separate learned set.
func (m ModuleKey) CatalogModule() ModuleKey {
	if m == ModuleFlashcards {
		return ModuleBasicWords
	}
	return m
}
