package service

import (
	"strings"
	"unicode"

	"github.com/aliskhannn/auslan-bot/internal/domain/entities"
)

// Category labels.
const (
	CategoryLetters   = "Letters"
	CategoryNumbers   = "Numbers"
	CategoryGreetings = "Greetings"
	CategoryFamily    = "Family"
	CategoryFood      = "Food & Drink"
	CategoryColours   = "Colours"
	CategoryAnimals   = "Animals"
	CategoryFeelings  = "Feelings"
	CategoryPlaces    = "Places"
	CategoryPeople    = "People"
)

// Classifier assigns a category to an item. The quiz generator groups
// distractors with it, so the same generator serves every module.
type Classifier func(item entities.Item) string

// ByCategory uses the category stored on the item.
func ByCategory(item entities.Item) string {
	if item.Category == "" {
		return entities.CategoryOther
	}
	return item.Category
}

// LettersNumbersClassifier splits fingerspelled letters from digits.
func LettersNumbersClassifier(item entities.Item) string {
	t := strings.TrimSpace(item.Title)
	if t == "" {
		return entities.CategoryOther
	}

	allDigits, allLetters := true, true
	for _, r := range t {
		if !unicode.IsDigit(r) {
			allDigits = false
		}
		if !unicode.IsLetter(r) {
			allLetters = false
		}
	}

	switch {
	case allDigits:
		return CategoryNumbers
	case allLetters && len([]rune(t)) == 1:
		return CategoryLetters
	default:
		return entities.CategoryOther
	}
}

// wordCategories is the static title to category lookup for basic words.
var wordCategories = map[string]string{
	"hello":     CategoryGreetings,
	"hi":        CategoryGreetings,
	"goodbye":   CategoryGreetings,
	"please":    CategoryGreetings,
	"thank you": CategoryGreetings,
	"thanks":    CategoryGreetings,
	"sorry":     CategoryGreetings,
	"yes":       CategoryGreetings,
	"no":        CategoryGreetings,
	"mother":    CategoryFamily,
	"mum":       CategoryFamily,
	"father":    CategoryFamily,
	"dad":       CategoryFamily,
	"sister":    CategoryFamily,
	"brother":   CategoryFamily,
	"baby":      CategoryFamily,
	"family":    CategoryFamily,
	"apple":     CategoryFood,
	"bread":     CategoryFood,
	"water":     CategoryFood,
	"milk":      CategoryFood,
	"eat":       CategoryFood,
	"drink":     CategoryFood,
	"red":       CategoryColours,
	"blue":      CategoryColours,
	"green":     CategoryColours,
	"yellow":    CategoryColours,
	"dog":       CategoryAnimals,
	"cat":       CategoryAnimals,
	"bird":      CategoryAnimals,
	"kangaroo":  CategoryAnimals,
	"happy":     CategoryFeelings,
	"sad":       CategoryFeelings,
	"angry":     CategoryFeelings,
	"home":      CategoryPlaces,
	"school":    CategoryPlaces,
	"toilet":    CategoryPlaces,
	"friend":    CategoryPeople,
}

// WordClassifier looks the title up in the basic words table.
func WordClassifier(item entities.Item) string {
	if c, ok := wordCategories[strings.ToLower(strings.TrimSpace(item.Title))]; ok {
		return c
	}
	return entities.CategoryOther
}

// ClassifierFor returns the catalog classifier of a module.
func ClassifierFor(module entities.ModuleKey) Classifier {
	if module.CatalogModule() == entities.ModuleLettersNumbers {
		return LettersNumbersClassifier
	}
	return WordClassifier
}
