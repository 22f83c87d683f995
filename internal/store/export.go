package store

import (
	"fmt"
	"time"

	"github.com/pavelanni/mushroomquiz/internal/model"
)

// ExportBank builds an export-ready snapshot of the whole question bank.
func (s *Store) ExportBank() (model.BankExport, error) {
	questions, err := s.AllQuestions()
	if err != nil {
		return model.BankExport{}, fmt.Errorf("list questions: %w", err)
	}
	difficulties, err := s.DifficultyDistribution()
	if err != nil {
		return model.BankExport{}, fmt.Errorf("difficulty distribution: %w", err)
	}
	topicCounts, err := s.TopicDistribution()
	if err != nil {
		return model.BankExport{}, fmt.Errorf("topic distribution: %w", err)
	}

	topics := make(map[string]int, len(topicCounts))
	for _, tc := range topicCounts {
		topics[tc.Topic] = tc.Count
	}

	// IDs only mean something inside this process.
	for i := range questions {
		questions[i].ID = 0
	}

	return model.BankExport{
		ExportedAt:   time.Now().UTC(),
		NumQuestions: len(questions),
		Difficulties: difficulties,
		Topics:       topics,
		Questions:    questions,
	}, nil
}
