package entities

import "time"

// Question is one multiple choice prompt.
type Question struct {
	ItemID        string
	Prompt        string
	CorrectAnswer string
	Options       []string
	MediaURL      string
}

// OptionIndex returns the index of option, or -1.
func (q Question) OptionIndex(option string) int {
	for i, o := range q.Options {
		if o == option {
			return i
		}
	}
	return -1
}

// AnswerRecord is one entry of a session's answer log.
type AnswerRecord struct {
	Prompt    string
	Chosen    string
	Correct   string
	IsCorrect bool
}

// NewAnswerRecord scores chosen against the correct answer. Options are exact
// button values, so titles differing only in case are different answers.
func NewAnswerRecord(q Question, chosen string) AnswerRecord {
	return AnswerRecord{
		Prompt:    q.Prompt,
		Chosen:    chosen,
		Correct:   q.CorrectAnswer,
		IsCorrect: chosen == q.CorrectAnswer,
	}
}

// QuizSummary describes a finished session.
type QuizSummary struct {
	Total     int
	Score     int
	Percent   int
	Answers   []AnswerRecord
	StartedAt time.Time
	Duration  time.Duration
}

// Mistakes returns the incorrect answers in order.
func (s QuizSummary) Mistakes() []AnswerRecord {
	var out []AnswerRecord
	for _, a := range s.Answers {
		if !a.IsCorrect {
			out = append(out, a)
		}
	}
	return out
}
