package service

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlashcardDeck_Walk(t *testing.T) {
	pool := letterItems("A", "B", "C")
	deck, err := NewFlashcardDeck("deck", pool, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, 3, deck.Len())

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		card, ok := deck.Current()
		require.True(t, ok)
		assert.False(t, deck.Revealed())

		deck.Reveal()
		assert.True(t, deck.Revealed())

		marked, err := deck.Mark(i == 0)
		require.NoError(t, err)
		assert.Equal(t, card, marked)
		seen[card.Key()] = true
	}

	assert.True(t, deck.Done())
	assert.Len(t, seen, 3)

	known, unknown := deck.Tally()
	assert.Equal(t, 1, known)
	assert.Equal(t, 2, unknown)

	_, err = deck.Mark(true)
	assert.ErrorIs(t, err, ErrDeckFinished)
	deck.Reveal()
	assert.False(t, deck.Revealed())
}

func TestFlashcardDeck_EmptyPool(t *testing.T) {
	_, err := NewFlashcardDeck("deck", nil, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrEmptyPool)
}

func TestFlashcardDeck_DoesNotMutatePool(t *testing.T) {
	pool := letterItems("A", "B", "C", "D")
	_, err := NewFlashcardDeck("deck", pool, rand.New(rand.NewSource(9)))
	require.NoError(t, err)

	assert.Equal(t, letterItems("A", "B", "C", "D"), pool)
}
