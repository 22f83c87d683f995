package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidQuestion is returned when a question record breaks the bank invariants.
var ErrInvalidQuestion = errors.New("invalid question")

// Difficulty represents question difficulty level.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	// DifficultyMixed selects from every level. It is never stored on a question.
	DifficultyMixed Difficulty = "mixed"
)

// Difficulties lists the levels a question can carry, easiest first.
var Difficulties = []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}

// ParseDifficulty accepts one of the ranked levels or "mixed". Empty input means mixed.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if d == "" {
		return DifficultyMixed, nil
	}
	if d == DifficultyMixed || d.IsRank() {
		return d, nil
	}
	return "", fmt.Errorf("unknown difficulty %q (want beginner, intermediate, advanced or mixed)", s)
}

// IsRank reports whether d is a level a question can carry.
func (d Difficulty) IsRank() bool {
	return slices.Contains(Difficulties, d)
}

// Question is a single multiple-choice question from the bank.
type Question struct {
	ID          int64      `json:"id,omitempty" yaml:"-"`
	Text        string     `json:"text" yaml:"text"`
	Options     []string   `json:"options" yaml:"options"`
	Answer      string     `json:"answer" yaml:"answer"`
	Difficulty  Difficulty `json:"difficulty" yaml:"difficulty"`
	Topic       string     `json:"topic" yaml:"topic"`
	Explanation string     `json:"explanation" yaml:"explanation"`
}

// Validate checks that the question can be asked: it needs text, at least two
// options, a known difficulty, a topic, and an answer that matches one option verbatim.
func (q Question) Validate() error {
	switch {
	case strings.TrimSpace(q.Text) == "":
		return fmt.Errorf("%w: empty text", ErrInvalidQuestion)
	case len(q.Options) < 2:
		return fmt.Errorf("%w: %q has %d options, need at least 2", ErrInvalidQuestion, q.Text, len(q.Options))
	case !q.Difficulty.IsRank():
		return fmt.Errorf("%w: %q has difficulty %q", ErrInvalidQuestion, q.Text, q.Difficulty)
	case q.Topic == "":
		return fmt.Errorf("%w: %q has no topic", ErrInvalidQuestion, q.Text)
	case !slices.Contains(q.Options, q.Answer):
		return fmt.Errorf("%w: %q answer %q is not one of its options", ErrInvalidQuestion, q.Text, q.Answer)
	}
	return nil
}

// Config holds the parameters of one quiz session.
type Config struct {
	Difficulty   Difficulty
	NumQuestions int
	TimeLimit    int // seconds per question, 0 means untimed
}

// Timed reports whether answers are collected under a time limit.
func (c Config) Timed() bool {
	return c.TimeLimit > 0
}

// Outcome is how an answer collection ended.
type Outcome int

const (
	// OutcomeNone is the zero value: no collection finished.
	OutcomeNone Outcome = iota
	// OutcomeAnswered means a valid choice was captured.
	OutcomeAnswered
	// OutcomeTimedOut means the time limit expired before input arrived.
	OutcomeTimedOut
	// OutcomeInvalid means a timed read completed with unusable input.
	OutcomeInvalid
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeAnswered:
		return "answered"
	case OutcomeTimedOut:
		return "timed_out"
	case OutcomeInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Answer is the result of collecting one response. Choice is 1-based and only
// meaningful when Outcome is OutcomeAnswered.
type Answer struct {
	Outcome Outcome
	Choice  int
}

// Verdict is how a presented question was scored.
type Verdict string

const (
	VerdictCorrect  Verdict = "correct"
	VerdictWrong    Verdict = "wrong"
	VerdictNoAnswer Verdict = "no_answer"
)

// QuestionResult records how one presented question was resolved.
type QuestionResult struct {
	Question Question
	Options  []string // in the order they were shown
	Chosen   string   // empty when nothing valid was chosen
	Verdict  Verdict
}

// Tier is a named performance bracket. Rank 0 is the best.
type Tier struct {
	Rank    int
	Name    string
	Message string
}

// Report summarizes a finished session.
type Report struct {
	SessionID   string
	Score       int
	Total       int
	Percentage  float64
	Tier        Tier
	Unanswered  int
	WrongTopics []string // one entry per wrong answer, in order, duplicates kept
	StudyTips   []string // deduplicated by topic
	Results     []QuestionResult
}
