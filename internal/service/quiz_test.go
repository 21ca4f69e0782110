package service

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/auslan-bot/internal/domain/entities"
)

func newTestSession(seed int64) *QuizSession {
	gen := NewQuestionGenerator(LettersNumbersClassifier, "Which letter?", rand.New(rand.NewSource(seed)))
	return NewQuizSession(entities.ModuleLettersNumbers, gen)
}

func wrongOption(q entities.Question) string {
	for _, o := range q.Options {
		if o != q.CorrectAnswer {
			return o
		}
	}
	return ""
}

func TestQuizSession_StartDrawsDistinctQuestions(t *testing.T) {
	s := newTestSession(1)
	pool := letterItems("A", "B", "C", "D", "E")

	require.NoError(t, s.Start(pool, 3))

	assert.Equal(t, QuizActive, s.State())
	assert.Equal(t, 3, s.Total())
	assert.Equal(t, 0, s.CurrentIndex())
	assert.Equal(t, 0, s.Score())
	assert.Empty(t, s.AnswerLog())

	seen := map[string]bool{}
	for _, q := range s.questions {
		assert.False(t, seen[q.ItemID])
		seen[q.ItemID] = true
		assert.Len(t, q.Options, OptionsPerQuestion)
		assert.Contains(t, q.Options, q.CorrectAnswer)
		assert.Equal(t, "Which letter?", q.Prompt)
	}
}

func TestQuizSession_StartCapsAtPoolSize(t *testing.T) {
	s := newTestSession(2)

	require.NoError(t, s.Start(letterItems("A", "B", "C", "D", "E"), 20))

	assert.Equal(t, 5, s.Total())
}

func TestQuizSession_StartRejectsBadConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		pool    []entities.Item
		count   int
		wantErr error
	}{
		{"empty pool", nil, 5, ErrEmptyPool},
		{"single answer", letterItems("A"), 5, ErrPoolTooSmall},
		{"repeated title", []entities.Item{{ID: "a1", Title: "A"}, {ID: "a2", Title: "A"}}, 5, ErrPoolTooSmall},
		{"zero length", letterItems("A", "B"), 0, ErrInvalidCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(1)

			err := s.Start(tt.pool, tt.count)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, QuizConfiguring, s.State())
			assert.Equal(t, 0, s.Total())
			_, ok := s.Current()
			assert.False(t, ok)
		})
	}
}

func TestQuizSession_TwoAnswerPool(t *testing.T) {
	s := newTestSession(4)

	require.NoError(t, s.Start(letterItems("A", "B"), 5))

	q, ok := s.Current()
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"A", "B"}, q.Options)
}

func TestQuizSession_SecondAnswerIsNoop(t *testing.T) {
	s := newTestSession(3)
	require.NoError(t, s.Start(letterItems("A", "B", "C", "D", "E"), 3))

	q, _ := s.Current()
	rec, recorded, err := s.Answer(q.CorrectAnswer)
	require.NoError(t, err)
	assert.True(t, recorded)
	assert.True(t, rec.IsCorrect)

	_, recorded, err = s.Answer(wrongOption(q))
	require.NoError(t, err)
	assert.False(t, recorded)

	assert.Equal(t, 1, s.Score())
	assert.Len(t, s.AnswerLog(), 1)
	assert.Equal(t, 0, s.CurrentIndex())

	selected, answered := s.Selected()
	assert.True(t, answered)
	assert.Equal(t, q.CorrectAnswer, selected)
}

func TestQuizSession_CaseVariantTitlesAreDifferentAnswers(t *testing.T) {
	s := newTestSession(5)
	require.NoError(t, s.Start(letterItems("Hello", "hello", "Dog", "Cat"), 4))

	variant := map[string]string{"Hello": "hello", "hello": "Hello"}
	for s.State() == QuizActive {
		q, ok := s.Current()
		require.True(t, ok)

		choice, isVariant := variant[q.CorrectAnswer]
		if !isVariant {
			choice = q.CorrectAnswer
		}
		require.Contains(t, q.Options, choice)

		rec, recorded, err := s.Answer(choice)
		require.NoError(t, err)
		require.True(t, recorded)
		assert.Equal(t, !isVariant, rec.IsCorrect, "correct=%q chose=%q", q.CorrectAnswer, choice)

		require.NoError(t, s.Advance())
	}

	assert.Equal(t, 2, s.Score())
}

func TestQuizSession_AnswerValidatesOption(t *testing.T) {
	s := newTestSession(3)
	require.NoError(t, s.Start(letterItems("A", "B", "C", "D", "E"), 3))

	_, _, err := s.Answer("Z")
	assert.ErrorIs(t, err, ErrUnknownOption)

	_, _, err = s.AnswerIndex(9)
	assert.ErrorIs(t, err, ErrUnknownOption)

	_, ok := s.Selected()
	assert.False(t, ok)
}

func TestQuizSession_FullRun(t *testing.T) {
	s := newTestSession(5)
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	clock := start
	s.now = func() time.Time { return clock }

	require.NoError(t, s.Start(letterItems("A", "B", "C", "D", "E", "F"), 4))

	for i := 0; i < 4; i++ {
		q, ok := s.Current()
		require.True(t, ok)
		assert.Equal(t, i, s.CurrentIndex())

		choice := wrongOption(q)
		if i%2 == 0 {
			choice = q.CorrectAnswer
		}
		_, _, err := s.Answer(choice)
		require.NoError(t, err)
		assert.LessOrEqual(t, s.Score(), s.CurrentIndex()+1)

		clock = clock.Add(10 * time.Second)
		require.NoError(t, s.Advance())
	}

	assert.Equal(t, QuizComplete, s.State())
	_, ok := s.Current()
	assert.False(t, ok)
	assert.ErrorIs(t, s.Advance(), ErrInvalidTransition)

	summary, err := s.Summary()
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 2, summary.Score)
	assert.Equal(t, 50, summary.Percent)
	assert.Equal(t, start, summary.StartedAt)
	assert.Equal(t, 40*time.Second, summary.Duration)

	correct := 0
	for _, a := range summary.Answers {
		if a.IsCorrect {
			correct++
		}
	}
	assert.Equal(t, summary.Score, correct)
	assert.Len(t, summary.Mistakes(), 2)
}

func TestQuizSession_SummaryRequiresCompletion(t *testing.T) {
	s := newTestSession(1)
	_, err := s.Summary()
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, s.Start(letterItems("A", "B", "C"), 2))
	_, err = s.Summary()
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestQuizSession_RestartKeepsPoolAndClearsRun(t *testing.T) {
	s := newTestSession(6)
	pool := letterItems("A", "B", "C", "D", "E")
	require.NoError(t, s.Start(pool, 2))

	for s.State() == QuizActive {
		q, _ := s.Current()
		_, _, err := s.Answer(q.CorrectAnswer)
		require.NoError(t, err)
		require.NoError(t, s.Advance())
	}
	firstID := s.ID

	require.NoError(t, s.Restart())
	assert.Equal(t, QuizConfiguring, s.State())
	assert.Equal(t, 0, s.Score())
	assert.Empty(t, s.AnswerLog())
	assert.Equal(t, 0, s.Total())
	assert.Equal(t, pool, s.Pool())
	assert.Equal(t, 2, s.RequestedCount())

	require.NoError(t, s.Start(s.Pool(), s.RequestedCount()))
	assert.Equal(t, QuizActive, s.State())
	assert.Equal(t, 2, s.Total())
	assert.Equal(t, 0, s.CurrentIndex())
	assert.Empty(t, s.AnswerLog())
	assert.NotEqual(t, firstID, s.ID)
}

func TestQuizSession_InvalidTransitions(t *testing.T) {
	s := newTestSession(1)

	assert.ErrorIs(t, s.Restart(), ErrInvalidTransition)
	assert.ErrorIs(t, s.Advance(), ErrInvalidTransition)
	_, _, err := s.Answer("A")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, s.Start(letterItems("A", "B", "C"), 2))
	assert.ErrorIs(t, s.Start(letterItems("A", "B", "C"), 2), ErrInvalidTransition)
}

func TestQuizSession_ExitFromAnyState(t *testing.T) {
	s := newTestSession(1)
	require.NoError(t, s.Start(letterItems("A", "B", "C"), 2))
	_, _, err := s.AnswerIndex(0)
	require.NoError(t, err)

	s.Exit()

	assert.Equal(t, QuizIdle, s.State())
	assert.Nil(t, s.Pool())
	assert.Equal(t, 0, s.Total())
	assert.Equal(t, 0, s.Score())
	assert.Empty(t, s.AnswerLog())
}

func TestQuizFactory_UsesModulePrompt(t *testing.T) {
	f := NewQuizFactory(rand.New(rand.NewSource(1)))
	s := f.NewSession(entities.ModuleFlashcards)

	pool := []entities.Item{wordItem("dog", "Dog"), wordItem("cat", "Cat"), wordItem("bird", "Bird")}
	require.NoError(t, s.Start(pool, 1))

	q, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "Which word is being signed?", q.Prompt)
	assert.Equal(t, entities.ModuleFlashcards, s.Module)
	assert.NotEmpty(t, s.ID)
}
