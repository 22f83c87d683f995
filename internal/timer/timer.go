// Package timer collects numeric answers from a line-oriented input, either
// without limit or against a visible per-question countdown.
package timer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pavelanni/mushroomquiz/internal/model"
)

var (
	// ErrNotNumber is returned by ParseChoice for input that is not an integer.
	ErrNotNumber = errors.New("not a number")
	// ErrOutOfRange is returned by ParseChoice for an integer outside [1, n].
	ErrOutOfRange = errors.New("out of range")
)

// Urgency is how close a countdown is to expiring.
type Urgency int

const (
	UrgencyCalm Urgency = iota
	UrgencyWarning
	UrgencyCritical
)

// UrgencyFor bands the remaining seconds: calm above 10, warning from 10 down
// to 5, critical below 5.
func UrgencyFor(remaining int) Urgency {
	switch {
	case remaining > 10:
		return UrgencyCalm
	case remaining >= 5:
		return UrgencyWarning
	default:
		return UrgencyCritical
	}
}

// Display renders what the collector needs the user to see.
type Display interface {
	Prompt(text string)
	Rejected(err error, n int)
	TimeLimit(seconds int)
	Countdown(remaining int, u Urgency)
	CountdownStopped()
	TimeUp()
}

// Collector reads answers for the quiz.
type Collector struct {
	lines   *Lines
	display Display
	tick    time.Duration
}

// Option configures a Collector.
type Option func(*Collector)

// WithTick sets how long one countdown second lasts. Tests shorten it.
func WithTick(d time.Duration) Option {
	return func(c *Collector) { c.tick = d }
}

// New creates a Collector reading from lines and rendering on d.
func New(lines *Lines, d Display, opts ...Option) *Collector {
	c := &Collector{lines: lines, display: d, tick: time.Second}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ParseChoice converts a line of input into a choice in [1, n].
func ParseChoice(line string, n int) (int, error) {
	choice, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("%q: %w", line, ErrNotNumber)
	}
	if choice < 1 || choice > n {
		return 0, fmt.Errorf("%d not in 1-%d: %w", choice, n, ErrOutOfRange)
	}
	return choice, nil
}

// Collect asks for a choice in [1, n]. With seconds <= 0 it re-prompts until
// the input is valid. Otherwise the user gets one attempt within the limit:
// a valid line gives OutcomeAnswered, any other line OutcomeInvalid, and no
// line in time OutcomeTimedOut. The error is non-nil only when ctx is done or
// the input is exhausted.
func (c *Collector) Collect(ctx context.Context, prompt string, n, seconds int) (model.Answer, error) {
	if seconds <= 0 {
		return c.collectUntimed(ctx, prompt, n)
	}
	return c.collectTimed(ctx, prompt, n, seconds)
}

func (c *Collector) collectUntimed(ctx context.Context, prompt string, n int) (model.Answer, error) {
	for {
		c.display.Prompt(prompt)
		line, err := c.lines.ReadLine(ctx)
		if err != nil {
			return model.Answer{}, err
		}
		choice, err := ParseChoice(line, n)
		if err != nil {
			c.display.Rejected(err, n)
			continue
		}
		return model.Answer{Outcome: model.OutcomeAnswered, Choice: choice}, nil
	}
}

func (c *Collector) collectTimed(ctx context.Context, prompt string, n, seconds int) (model.Answer, error) {
	c.display.TimeLimit(seconds)
	c.display.Prompt(prompt)

	reply := c.lines.request()
	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()

	for remaining := seconds; remaining > 0; remaining-- {
		c.display.Countdown(remaining, UrgencyFor(remaining))
		select {
		case res := <-reply:
			c.display.CountdownStopped()
			if res.err != nil {
				return model.Answer{}, res.err
			}
			choice, err := ParseChoice(res.line, n)
			if err != nil {
				return model.Answer{Outcome: model.OutcomeInvalid}, nil
			}
			return model.Answer{Outcome: model.OutcomeAnswered, Choice: choice}, nil
		case <-ticker.C:
		case <-ctx.Done():
			return model.Answer{}, ctx.Err()
		}
	}

	// The pending request stays queued and swallows whatever is typed next.
	c.display.TimeUp()
	return model.Answer{Outcome: model.OutcomeTimedOut}, nil
}
