package service

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/aliskhannn/auslan-bot/internal/domain/entities"
)

var (
	ErrEmptyPool         = errors.New("quiz pool is empty")
	ErrPoolTooSmall      = errors.New("quiz pool has too few distinct answers")
	ErrInvalidCount      = errors.New("quiz length must be positive")
	ErrInvalidTransition = errors.New("invalid quiz state transition")
	ErrUnknownOption     = errors.New("option is not offered for this question")
)

// MinDistinctAnswers is the smallest pool, counted in distinct titles, a quiz can start with.
const MinDistinctAnswers = 2

// QuizState is the lifecycle position of a quiz session.
type QuizState int

const (
	QuizIdle QuizState = iota
	QuizConfiguring
	QuizActive
	QuizComplete
)

func (s QuizState) String() string {
	switch s {
	case QuizIdle:
		return "idle"
	case QuizConfiguring:
		return "configuring"
	case QuizActive:
		return "active"
	case QuizComplete:
		return "complete"
	default:
		return fmt.Sprintf("QuizState(%d)", int(s))
	}
}

// QuestionGenerator turns a pool into questions. One generator serves every
// module; the classifier decides which items count as same-category distractors.
type QuestionGenerator struct {
	selector *QuestionSelector
	options  *OptionGenerator
	prompt   string
}

// NewQuestionGenerator builds a generator. prompt is the text shown with each question's media.
func NewQuestionGenerator(classify Classifier, prompt string, rng *rand.Rand) *QuestionGenerator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &QuestionGenerator{
		selector: NewQuestionSelector(rng),
		options:  NewOptionGenerator(classify, rng),
		prompt:   prompt,
	}
}

// Generate validates pool and returns up to count questions.
func (g *QuestionGenerator) Generate(pool []entities.Item, count int) ([]entities.Question, error) {
	if count <= 0 {
		return nil, ErrInvalidCount
	}
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}
	if distinctTitleCount(pool) < MinDistinctAnswers {
		return nil, fmt.Errorf("%w: need at least %d", ErrPoolTooSmall, MinDistinctAnswers)
	}

	picked := g.selector.Select(pool, count)
	questions := make([]entities.Question, 0, len(picked))
	for _, it := range picked {
		questions = append(questions, entities.Question{
			ItemID:        it.Key(),
			Prompt:        g.prompt,
			CorrectAnswer: it.Title,
			Options:       g.options.GenerateOptions(it, pool),
			MediaURL:      it.MediaURL,
		})
	}

	return questions, nil
}

// QuizSession drives one quiz run: Idle -> Configuring -> Active -> Complete.
// Results stay in the session; they never touch learned sets.
type QuizSession struct {
	ID     string
	Module entities.ModuleKey

	generator *QuestionGenerator
	now       func() time.Time

	state     QuizState
	pool      []entities.Item
	requested int

	questions   []entities.Question
	current     int
	selected    string
	answered    bool
	score       int
	answerLog   []entities.AnswerRecord
	startedAt   time.Time
	completedAt time.Time
}

// NewQuizSession returns an idle session.
func NewQuizSession(module entities.ModuleKey, generator *QuestionGenerator) *QuizSession {
	return &QuizSession{
		ID:        uuid.NewString(),
		Module:    module,
		generator: generator,
		now:       time.Now,
		state:     QuizIdle,
	}
}

func (s *QuizSession) State() QuizState { return s.state }

// Pool returns the pool chosen while configuring.
func (s *QuizSession) Pool() []entities.Item { return s.pool }

func (s *QuizSession) RequestedCount() int { return s.requested }

// Configure records the pool and length without starting.
func (s *QuizSession) Configure(pool []entities.Item, requested int) error {
	if s.state != QuizIdle && s.state != QuizConfiguring {
		return fmt.Errorf("%w: configure from %s", ErrInvalidTransition, s.state)
	}
	s.pool = append([]entities.Item(nil), pool...)
	s.requested = requested
	s.state = QuizConfiguring
	return nil
}

// Start generates the questions and enters Active. On failure the session
// stays in Configuring with no question data.
func (s *QuizSession) Start(pool []entities.Item, requested int) error {
	if err := s.Configure(pool, requested); err != nil {
		return err
	}

	questions, err := s.generator.Generate(s.pool, s.requested)
	if err != nil {
		return err
	}

	s.clearRun()
	s.ID = uuid.NewString()
	s.questions = questions
	s.startedAt = s.now()
	s.state = QuizActive
	return nil
}

// Current returns the question being asked.
func (s *QuizSession) Current() (entities.Question, bool) {
	if s.state != QuizActive {
		return entities.Question{}, false
	}
	return s.questions[s.current], true
}

func (s *QuizSession) CurrentIndex() int { return s.current }

func (s *QuizSession) Total() int { return len(s.questions) }

func (s *QuizSession) Score() int { return s.score }

// Selected returns the answer recorded for the current question.
func (s *QuizSession) Selected() (string, bool) { return s.selected, s.answered }

// AnswerLog returns a copy of the answers recorded so far.
func (s *QuizSession) AnswerLog() []entities.AnswerRecord {
	return append([]entities.AnswerRecord(nil), s.answerLog...)
}

// Answer records option for the current question. It reports false without
// changing anything when the question already has an answer. It never advances.
func (s *QuizSession) Answer(option string) (entities.AnswerRecord, bool, error) {
	q, ok := s.Current()
	if !ok {
		return entities.AnswerRecord{}, false, fmt.Errorf("%w: answer in %s", ErrInvalidTransition, s.state)
	}
	if s.answered {
		return entities.AnswerRecord{}, false, nil
	}
	if q.OptionIndex(option) < 0 {
		return entities.AnswerRecord{}, false, ErrUnknownOption
	}

	rec := entities.NewAnswerRecord(q, option)
	s.selected = option
	s.answered = true
	s.answerLog = append(s.answerLog, rec)
	if rec.IsCorrect {
		s.score++
	}

	return rec, true, nil
}

// AnswerIndex answers with the option at index i of the current question.
func (s *QuizSession) AnswerIndex(i int) (entities.AnswerRecord, bool, error) {
	q, ok := s.Current()
	if !ok {
		return entities.AnswerRecord{}, false, fmt.Errorf("%w: answer in %s", ErrInvalidTransition, s.state)
	}
	if i < 0 || i >= len(q.Options) {
		return entities.AnswerRecord{}, false, ErrUnknownOption
	}
	return s.Answer(q.Options[i])
}

// Advance moves to the next question, or to Complete after the last one.
func (s *QuizSession) Advance() error {
	if s.state != QuizActive {
		return fmt.Errorf("%w: advance in %s", ErrInvalidTransition, s.state)
	}

	s.selected = ""
	s.answered = false

	if s.current+1 < len(s.questions) {
		s.current++
		return nil
	}

	s.completedAt = s.now()
	s.state = QuizComplete
	return nil
}

// Summary describes a completed session.
func (s *QuizSession) Summary() (entities.QuizSummary, error) {
	if s.state != QuizComplete {
		return entities.QuizSummary{}, fmt.Errorf("%w: summary in %s", ErrInvalidTransition, s.state)
	}

	return entities.QuizSummary{
		Total:     len(s.questions),
		Score:     s.score,
		Percent:   entities.NewProgress(s.score, len(s.questions)).Percent,
		Answers:   s.AnswerLog(),
		StartedAt: s.startedAt,
		Duration:  s.completedAt.Sub(s.startedAt),
	}, nil
}

// Restart discards the run and returns to Configuring with the same pool.
func (s *QuizSession) Restart() error {
	if s.state != QuizActive && s.state != QuizComplete {
		return fmt.Errorf("%w: restart from %s", ErrInvalidTransition, s.state)
	}
	s.clearRun()
	s.state = QuizConfiguring
	return nil
}

// Exit discards everything and returns to Idle.
func (s *QuizSession) Exit() {
	s.clearRun()
	s.pool = nil
	s.requested = 0
	s.state = QuizIdle
}

func (s *QuizSession) clearRun() {
	s.questions = nil
	s.current = 0
	s.selected = ""
	s.answered = false
	s.score = 0
	s.answerLog = nil
	s.startedAt = time.Time{}
	s.completedAt = time.Time{}
}
