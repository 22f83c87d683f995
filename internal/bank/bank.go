// Package bank holds the built-in question bank and reads additional banks
// from JSON or YAML files.
package bank

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pavelanni/mushroomquiz/internal/model"
)

//go:embed data/*.json
var dataFS embed.FS

const defaultFile = "data/mushrooms.json"

// ErrEmpty is returned when the loaded banks hold no questions at all.
var ErrEmpty = errors.New("question bank is empty")

// Inserter is the part of the question store the bank writes to.
type Inserter interface {
	InsertQuestion(q model.Question) (int64, error)
}

// Default returns the built-in mushroom cultivation bank.
func Default() ([]model.Question, error) {
	data, err := dataFS.ReadFile(defaultFile)
	if err != nil {
		return nil, fmt.Errorf("read built-in bank: %w", err)
	}
	return parse(data, defaultFile, json.Unmarshal)
}

// LoadFile reads a bank from path. Files ending in .yaml or .yml are decoded as
// YAML, everything else as JSON.
func LoadFile(path string) ([]model.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parse(data, path, yaml.Unmarshal)
	default:
		return parse(data, path, json.Unmarshal)
	}
}

func parse(data []byte, name string, unmarshal func([]byte, any) error) ([]model.Question, error) {
	var questions []model.Question
	if err := unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("%s question %d: %w", name, i+1, err)
		}
	}
	return questions, nil
}

// Seed inserts the built-in bank when paths is empty, otherwise the questions
// from every listed file. It returns the number of questions inserted.
func Seed(s Inserter, paths []string) (int, error) {
	if len(paths) == 0 {
		questions, err := Default()
		if err != nil {
			return 0, err
		}
		if err := insertAll(s, questions); err != nil {
			return 0, err
		}
		slog.Debug("seeded built-in bank", "count", len(questions))
		return len(questions), nil
	}

	total := 0
	for _, path := range paths {
		questions, err := LoadFile(path)
		if err != nil {
			return total, err
		}
		if err := insertAll(s, questions); err != nil {
			return total, fmt.Errorf("insert questions from %s: %w", path, err)
		}
		total += len(questions)
		slog.Info("imported questions", "path", path, "count", len(questions))
	}
	return total, nil
}

func insertAll(s Inserter, questions []model.Question) error {
	for _, q := range questions {
		if _, err := s.InsertQuestion(q); err != nil {
			return err
		}
	}
	return nil
}
