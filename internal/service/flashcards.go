package service

import (
	"errors"
	"math/rand"

	"github.com/aliskhannn/auslan-bot/internal/domain/entities"
)

var ErrDeckFinished = errors.New("flashcard deck finished")

// FlashcardDeck walks a shuffled pool one card at a time. Marks go to the
// flashcards learned set through the caller; the deck only keeps counts.
type FlashcardDeck struct {
	ID       string
	cards    []entities.Item
	pos      int
	revealed bool
	known    int
	unknown  int
}

// NewFlashcardDeck shuffles pool into a deck. An empty pool gives ErrEmptyPool.
func NewFlashcardDeck(id string, pool []entities.Item, rng *rand.Rand) (*FlashcardDeck, error) {
	cards := uniqueKeepOrder(pool)
	if len(cards) == 0 {
		return nil, ErrEmptyPool
	}
	rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })

	return &FlashcardDeck{ID: id, cards: cards}, nil
}

// Current returns the card on top of the deck.
func (d *FlashcardDeck) Current() (entities.Item, bool) {
	if d.Done() {
		return entities.Item{}, false
	}
	return d.cards[d.pos], true
}

func (d *FlashcardDeck) Position() int { return d.pos }

func (d *FlashcardDeck) Len() int { return len(d.cards) }

func (d *FlashcardDeck) Revealed() bool { return d.revealed }

func (d *FlashcardDeck) Done() bool { return d.pos >= len(d.cards) }

// Reveal shows the answer of the current card.
func (d *FlashcardDeck) Reveal() {
	if !d.Done() {
		d.revealed = true
	}
}

// Mark records whether the learner knew the current card and moves on.
func (d *FlashcardDeck) Mark(known bool) (entities.Item, error) {
	card, ok := d.Current()
	if !ok {
		return entities.Item{}, ErrDeckFinished
	}
	if known {
		d.known++
	} else {
		d.unknown++
	}
	d.pos++
	d.revealed = false
	return card, nil
}

// Tally returns how many cards were marked known and not yet.
func (d *FlashcardDeck) Tally() (known, unknown int) {
	return d.known, d.unknown
}
