package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/pavelanni/mushroomquiz/internal/model"
	"github.com/pavelanni/mushroomquiz/internal/quiz"
	"github.com/pavelanni/mushroomquiz/internal/store"
	"github.com/pavelanni/mushroomquiz/internal/timer"
)

// Preset holds settings fixed from flags or config. Unset fields are asked for
// in the menus.
type Preset struct {
	Difficulty   model.Difficulty // empty asks
	NumQuestions int              // 0 asks
	TimeLimit    int              // negative asks, 0 is untimed
}

// App is the interactive menu loop around quiz sessions.
type App struct {
	term      *Terminal
	store     *store.Store
	collector *timer.Collector
	preset    Preset
	sessionOp []quiz.SessionOption
}

// NewApp wires a terminal, question store and collector together.
func NewApp(term *Terminal, s *store.Store, c *timer.Collector, preset Preset, opts ...quiz.SessionOption) *App {
	return &App{term: term, store: s, collector: c, preset: preset, sessionOp: opts}
}

// Run shows the main menu until the user exits. Interrupts and end of input
// end the loop with a farewell instead of an error.
func (a *App) Run(ctx context.Context) error {
	a.term.Header()
	for {
		action, err := a.term.MainMenu(ctx)
		if err != nil {
			return a.finish(err)
		}

		switch action {
		case ActionStart:
			if err := a.play(ctx); err != nil {
				return a.finish(err)
			}
			again, err := a.term.PlayAgain(ctx)
			if err != nil {
				return a.finish(err)
			}
			if !again {
				return nil
			}
			a.term.Header()
		case ActionAbout:
			count, err := a.store.QuestionCount()
			if err != nil {
				return fmt.Errorf("count questions: %w", err)
			}
			if err := a.term.About(ctx, count); err != nil {
				return a.finish(err)
			}
			a.term.Header()
		case ActionExit:
			a.term.Farewell()
			return nil
		}
	}
}

func (a *App) finish(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		slog.Debug("session aborted", "reason", err)
		a.term.Interrupted()
		return nil
	}
	return err
}

// Configure builds the session config, asking for anything the preset leaves open.
func (a *App) Configure(ctx context.Context) (model.Config, error) {
	cfg := model.Config{
		Difficulty:   a.preset.Difficulty,
		NumQuestions: a.preset.NumQuestions,
		TimeLimit:    a.preset.TimeLimit,
	}
	var err error
	if cfg.Difficulty == "" {
		if cfg.Difficulty, err = a.term.ChooseDifficulty(ctx); err != nil {
			return cfg, err
		}
	}
	if cfg.NumQuestions <= 0 {
		if cfg.NumQuestions, err = a.term.ChooseLength(ctx); err != nil {
			return cfg, err
		}
	}
	if cfg.TimeLimit < 0 {
		if cfg.TimeLimit, err = a.term.ChooseTimeLimit(ctx); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func (a *App) play(ctx context.Context) error {
	cfg, err := a.Configure(ctx)
	if err != nil {
		return err
	}
	session := quiz.New(cfg, a.sessionOp...)
	report, err := session.Run(ctx, a.store, a.collector, a.term)
	if err != nil {
		return err
	}
	a.term.Report(report)
	return nil
}
