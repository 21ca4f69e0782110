package storage

import (
	"sync"

	"github.com/aliskhannn/auslan-bot/internal/service"
)

// QuizStorage keeps each user's running quiz session in memory. Sessions are
// never persisted; a restart discards them.
type QuizStorage struct {
	mu       sync.RWMutex
	sessions map[int64]*service.QuizSession
}

// NewQuizStorage creates a new QuizStorage.
func NewQuizStorage() *QuizStorage {
	return &QuizStorage{
		sessions: make(map[int64]*service.QuizSession),
	}
}

// Store saves the session of userID, replacing any previous one.
func (s *QuizStorage) Store(userID int64, session *service.QuizSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = session
}

// Get returns the session of userID.
func (s *QuizStorage) Get(userID int64) (*service.QuizSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[userID]
	return session, ok
}

// Delete removes the session of userID.
func (s *QuizStorage) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// DeckStorage keeps each user's flashcard deck in memory.
type DeckStorage struct {
	mu    sync.RWMutex
	decks map[int64]*service.FlashcardDeck
}

func NewDeckStorage() *DeckStorage {
	return &DeckStorage{decks: make(map[int64]*service.FlashcardDeck)}
}

func (s *DeckStorage) Store(userID int64, deck *service.FlashcardDeck) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decks[userID] = deck
}

func (s *DeckStorage) Get(userID int64) (*service.FlashcardDeck, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	deck, ok := s.decks[userID]
	return deck, ok
}

func (s *DeckStorage) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.decks, userID)
}
