// Package quiz runs one quiz session: it picks questions, shuffles their
// options, scores the answers and builds the final report.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/google/uuid"

	"github.com/pavelanni/mushroomquiz/internal/model"
)

// ErrNoQuestions is returned when selection finds nothing to ask.
var ErrNoQuestions = errors.New("no questions available")

// State is where a session is in its lifecycle.
type State int

const (
	StateConfiguring State = iota
	StateSelecting
	StateAwaitingAnswer
	StateScoring
	StateReporting
	StateDone
)

func (s State) String() string {
	switch s {
	case StateConfiguring:
		return "configuring"
	case StateSelecting:
		return "selecting"
	case StateAwaitingAnswer:
		return "awaiting_answer"
	case StateScoring:
		return "scoring"
	case StateReporting:
		return "reporting"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Source is where sessions draw questions from.
type Source interface {
	QuestionsByDifficulty(d model.Difficulty) ([]model.Question, error)
	AllQuestions() ([]model.Question, error)
}

// Collector obtains one answer in [1, n], under a limit of seconds when positive.
type Collector interface {
	Collect(ctx context.Context, prompt string, n, seconds int) (model.Answer, error)
}

// Presenter shows the session as it runs.
type Presenter interface {
	Start(total int)
	Question(num, total int, p Presented)
	AnswerPrompt(n int) string
	Result(r model.QuestionResult)
	// Pause waits between questions. It is not called after the last one.
	Pause(ctx context.Context) error
}

// Presented is a question with its options in the order they are shown.
type Presented struct {
	Question model.Question
	Options  []string
}

// Option returns the text of a 1-based choice.
func (p Presented) Option(choice int) (string, bool) {
	if choice < 1 || choice > len(p.Options) {
		return "", false
	}
	return p.Options[choice-1], true
}

// Session holds the state of one quiz run. It is not safe for concurrent use.
type Session struct {
	id    string
	cfg   model.Config
	rng   *rand.Rand
	state State

	questions   []model.Question
	index       int
	score       int
	unanswered  int
	wrongTopics []string
	results     []model.QuestionResult
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithRand makes selection and shuffling use r.
func WithRand(r *rand.Rand) SessionOption {
	return func(s *Session) { s.rng = r }
}

// New creates a session for cfg.
func New(cfg model.Config, opts ...SessionOption) *Session {
	s := &Session{
		id:    uuid.NewString(),
		cfg:   cfg,
		state: StateConfiguring,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return s
}

func (s *Session) ID() string           { return s.id }
func (s *Session) Config() model.Config { return s.cfg }
func (s *Session) State() State         { return s.state }
func (s *Session) Score() int           { return s.score }

// WrongTopics returns the topic of every wrong answer so far, duplicates included.
func (s *Session) WrongTopics() []string { return slices.Clone(s.wrongTopics) }

// Questions returns the selected questions in the order they are asked.
func (s *Session) Questions() []model.Question { return slices.Clone(s.questions) }

// Select draws the session's questions from src without replacement. When the
// difficulty pool is smaller than the requested count the whole store is used
// instead; when even that is too small, every question is asked.
func (s *Session) Select(src Source) ([]model.Question, error) {
	s.state = StateSelecting
	if s.cfg.NumQuestions <= 0 {
		return nil, fmt.Errorf("question count must be positive, got %d", s.cfg.NumQuestions)
	}

	pool, err := src.QuestionsByDifficulty(s.cfg.Difficulty)
	if err != nil {
		return nil, fmt.Errorf("list %s questions: %w", s.cfg.Difficulty, err)
	}
	if len(pool) < s.cfg.NumQuestions {
		slog.Info("not enough questions for difficulty, drawing from whole bank",
			"session", s.id, "difficulty", s.cfg.Difficulty,
			"available", len(pool), "requested", s.cfg.NumQuestions)
		pool, err = src.AllQuestions()
		if err != nil {
			return nil, fmt.Errorf("list all questions: %w", err)
		}
	}

	n := min(s.cfg.NumQuestions, len(pool))
	if n == 0 {
		return nil, ErrNoQuestions
	}

	picked := slices.Clone(pool)
	s.rng.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	s.questions = picked[:n]
	s.index = 0
	s.state = StateAwaitingAnswer

	slog.Debug("selected questions", "session", s.id, "count", n, "pool", len(pool))
	return s.Questions(), nil
}

// Present returns q with a freshly shuffled copy of its options. The question
// itself is left untouched.
func (s *Session) Present(q model.Question) Presented {
	opts := slices.Clone(q.Options)
	s.rng.Shuffle(len(opts), func(i, j int) {
		opts[i], opts[j] = opts[j], opts[i]
	})
	return Presented{Question: q, Options: opts}
}

// Record scores the answer to the current question and moves to the next one.
// A correct choice adds a point, a wrong one logs the question's topic, and a
// timeout or invalid input does neither.
func (s *Session) Record(p Presented, ans model.Answer) model.QuestionResult {
	s.state = StateScoring

	res := model.QuestionResult{
		Question: p.Question,
		Options:  p.Options,
		Verdict:  model.VerdictNoAnswer,
	}
	if ans.Outcome == model.OutcomeAnswered {
		if chosen, ok := p.Option(ans.Choice); ok {
			res.Chosen = chosen
			if chosen == p.Question.Answer {
				res.Verdict = model.VerdictCorrect
			} else {
				res.Verdict = model.VerdictWrong
			}
		}
	}

	switch res.Verdict {
	case model.VerdictCorrect:
		s.score++
	case model.VerdictWrong:
		s.wrongTopics = append(s.wrongTopics, p.Question.Topic)
	default:
		s.unanswered++
	}
	s.results = append(s.results, res)

	slog.Debug("answer recorded",
		"session", s.id, "question", s.index+1, "outcome", ans.Outcome,
		"verdict", res.Verdict, "topic", p.Question.Topic)

	s.index++
	if s.index < len(s.questions) {
		s.state = StateAwaitingAnswer
	} else {
		s.state = StateReporting
	}
	return res
}

// Report builds the final summary and ends the session.
func (s *Session) Report() model.Report {
	s.state = StateReporting
	total := len(s.results)
	pct := Percentage(s.score, total)
	r := model.Report{
		SessionID:   s.id,
		Score:       s.score,
		Total:       total,
		Percentage:  pct,
		Tier:        TierFor(pct),
		Unanswered:  s.unanswered,
		WrongTopics: s.WrongTopics(),
		StudyTips:   StudyTips(s.wrongTopics),
		Results:     slices.Clone(s.results),
	}
	s.state = StateDone

	slog.Info("quiz finished",
		"session", s.id, "score", r.Score, "total", r.Total,
		"percentage", r.Percentage, "tier", r.Tier.Name, "unanswered", r.Unanswered)
	return r
}

// Run plays the whole session against src. An interrupted run returns the
// collector's or presenter's error and no report.
func (s *Session) Run(ctx context.Context, src Source, c Collector, p Presenter) (model.Report, error) {
	slog.Info("quiz starting", "session", s.id,
		"difficulty", s.cfg.Difficulty, "num_questions", s.cfg.NumQuestions, "time_limit", s.cfg.TimeLimit)

	questions, err := s.Select(src)
	if err != nil {
		return model.Report{}, err
	}
	total := len(questions)
	p.Start(total)

	for i, q := range questions {
		pq := s.Present(q)
		p.Question(i+1, total, pq)

		n := len(pq.Options)
		ans, err := c.Collect(ctx, p.AnswerPrompt(n), n, s.cfg.TimeLimit)
		if err != nil {
			return model.Report{}, fmt.Errorf("collect answer %d: %w", i+1, err)
		}
		p.Result(s.Record(pq, ans))

		if i < total-1 {
			if err := p.Pause(ctx); err != nil {
				return model.Report{}, fmt.Errorf("pause after question %d: %w", i+1, err)
			}
		}
	}
	return s.Report(), nil
}
