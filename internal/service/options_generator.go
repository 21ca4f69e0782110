package service

import (
	"math/rand"

	"github.com/aliskhannn/auslan-bot/internal/domain/entities"
)

// OptionsPerQuestion is the number of choices shown when the pool allows it.
const OptionsPerQuestion = 4

// OptionGenerator builds multiple choice options for quiz questions.
// It is not safe for concurrent use.
type OptionGenerator struct {
	classify Classifier
	rng      *rand.Rand
}

// NewOptionGenerator creates an option generator grouping distractors with classify.
func NewOptionGenerator(classify Classifier, rng *rand.Rand) *OptionGenerator {
	if classify == nil {
		classify = ByCategory
	}
	return &OptionGenerator{
		classify: classify,
		rng:      rng,
	}
}

// GenerateOptions returns the shuffled options for correct, drawn from pool.
// Three same-category distractors are used when the pool has them; otherwise
// distractors come from the whole pool. Options never repeat a title, so a pool
// with fewer than four distinct titles yields fewer options.
func (g *OptionGenerator) GenerateOptions(correct entities.Item, pool []entities.Item) []string {
	want := OptionsPerQuestion - 1

	peers := g.distinctTitles(pool, correct, func(it entities.Item) bool {
		return g.classify(it) == g.classify(correct)
	})

	var wrong []string
	if len(peers) >= want {
		wrong = g.sample(peers, want)
	} else {
		all := g.distinctTitles(pool, correct, func(entities.Item) bool { return true })
		wrong = g.sample(all, want)
	}

	options := append([]string{correct.Title}, wrong...)
	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return options
}

// distinctTitles collects titles from pool that differ from correct's title
// and satisfy keep, without duplicates.
func (g *OptionGenerator) distinctTitles(pool []entities.Item, correct entities.Item, keep func(entities.Item) bool) []string {
	seen := map[string]bool{correct.Title: true}
	out := make([]string, 0, len(pool))
	for _, it := range pool {
		if it.Key() == correct.Key() || seen[it.Title] || !keep(it) {
			continue
		}
		seen[it.Title] = true
		out = append(out, it.Title)
	}
	return out
}

// sample picks up to n values without replacement.
func (g *OptionGenerator) sample(values []string, n int) []string {
	if n > len(values) {
		n = len(values)
	}
	idx := g.rng.Perm(len(values))[:n]
	out := make([]string, n)
	for i, j := range idx {
		out[i] = values[j]
	}
	return out
}
