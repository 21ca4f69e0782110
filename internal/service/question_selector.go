package service

import (
	"math/rand"

	"github.com/aliskhannn/auslan-bot/internal/domain/entities"
)

// QuestionSelector picks the items a quiz asks about.
type QuestionSelector struct {
	rng *rand.Rand
}

func NewQuestionSelector(rng *rand.Rand) *QuestionSelector {
	return &QuestionSelector{rng: rng}
}

// Select returns min(total, distinct items) items from pool without
// replacement, in random order.
func (s *QuestionSelector) Select(pool []entities.Item, total int) []entities.Item {
	if total <= 0 {
		return nil
	}

	distinct := uniqueKeepOrder(pool)
	out := s.shuffled(distinct)
	return takeFirst(out, total)
}

// shuffled returns a shuffled copy of the input slice.
func (s *QuestionSelector) shuffled(in []entities.Item) []entities.Item {
	out := append([]entities.Item(nil), in...)
	s.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// uniqueKeepOrder removes items with repeated keys while preserving the original order.
func uniqueKeepOrder(items []entities.Item) []entities.Item {
	seen := make(map[string]struct{}, len(items))
	out := make([]entities.Item, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.Key()]; ok {
			continue
		}
		seen[it.Key()] = struct{}{}
		out = append(out, it)
	}
	return out
}

// distinctTitleCount counts the different answers a pool can produce.
func distinctTitleCount(items []entities.Item) int {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		seen[it.Title] = struct{}{}
	}
	return len(seen)
}

// takeFirst returns the first n elements of items, or the whole slice if it is shorter.
func takeFirst(items []entities.Item, n int) []entities.Item {
	if n <= 0 {
		return nil
	}
	if len(items) <= n {
		return items
	}
	return items[:n]
}
