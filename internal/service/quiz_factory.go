package service

import (
	"math/rand"
	"sync"
	"time"

	"github.com/aliskhannn/auslan-bot/internal/domain/entities"
)

var quizPrompts = map[entities.ModuleKey]string{
	entities.ModuleLettersNumbers: "Which letter or number is being signed?",
	entities.ModuleBasicWords:     "Which word is being signed?",
	entities.ModuleFlashcards:     "Which word is being signed?",
}

// QuizFactory creates quiz sessions wired with the module's classifier.
// Each session gets its own random source, so sessions can run concurrently.
type QuizFactory struct {
	mu   sync.Mutex
	seed *rand.Rand
}

// NewQuizFactory creates a factory. A nil seed source uses the clock.
func NewQuizFactory(seed *rand.Rand) *QuizFactory {
	if seed == nil {
		seed = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &QuizFactory{seed: seed}
}

// NewSession returns an idle session for module.
func (f *QuizFactory) NewSession(module entities.ModuleKey) *QuizSession {
	f.mu.Lock()
	rng := rand.New(rand.NewSource(f.seed.Int63()))
	f.mu.Unlock()

	gen := NewQuestionGenerator(ClassifierFor(module), quizPrompts[module.CatalogModule()], rng)
	return NewQuizSession(module, gen)
}
