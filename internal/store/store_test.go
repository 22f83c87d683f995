package store

import (
	"database/sql"
	"errors"
	"slices"
	"testing"

	"github.com/pavelanni/mushroomquiz/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(MemoryDSN)
	if err != nil {
		t.Fatalf("newTestStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func insertTestQuestion(t *testing.T, s *Store, text string, difficulty model.Difficulty, topic string) int64 {
	t.Helper()
	id, err := s.InsertQuestion(model.Question{
		Text:        text,
		Options:     []string{"right", "wrong", "also wrong", "nope"},
		Answer:      "right",
		Difficulty:  difficulty,
		Topic:       topic,
		Explanation: "because " + text,
	})
	if err != nil {
		t.Fatalf("insertTestQuestion: %v", err)
	}
	return id
}

func TestQuestionCRUD(t *testing.T) {
	s := newTestStore(t)

	// Empty store should return zero count and empty list.
	count, err := s.QuestionCount()
	if err != nil {
		t.Fatalf("QuestionCount: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 questions, got %d", count)
	}

	list, err := s.AllQuestions()
	if err != nil {
		t.Fatalf("AllQuestions: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d", len(list))
	}

	// Insert and retrieve.
	id := insertTestQuestion(t, s, "What is mycelium?", model.DifficultyBeginner, "biology_basics")
	q, err := s.GetQuestion(id)
	if err != nil {
		t.Fatalf("GetQuestion: %v", err)
	}
	if q.Text != "What is mycelium?" {
		t.Errorf("expected text 'What is mycelium?', got %q", q.Text)
	}
	if q.Difficulty != model.DifficultyBeginner {
		t.Errorf("expected difficulty beginner, got %q", q.Difficulty)
	}
	if !slices.Equal(q.Options, []string{"right", "wrong", "also wrong", "nope"}) {
		t.Errorf("options not preserved: %v", q.Options)
	}
	if q.Answer != "right" || q.Explanation != "because What is mycelium?" {
		t.Errorf("answer/explanation not preserved: %+v", q)
	}

	// Not found.
	_, err = s.GetQuestion(9999)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected ErrNoRows, got %v", err)
	}

	count, err = s.QuestionCount()
	if err != nil {
		t.Fatalf("QuestionCount: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected count 1, got %d", count)
	}
}

func TestInsertRejectsInvalidQuestion(t *testing.T) {
	s := newTestStore(t)
	_, err := s.InsertQuestion(model.Question{
		Text:       "Which one?",
		Options:    []string{"a", "b"},
		Answer:     "c",
		Difficulty: model.DifficultyBeginner,
		Topic:      "timing",
	})
	if !errors.Is(err, model.ErrInvalidQuestion) {
		t.Fatalf("expected ErrInvalidQuestion, got %v", err)
	}
	count, _ := s.QuestionCount()
	if count != 0 {
		t.Errorf("invalid question was stored")
	}
}

func TestAllQuestionsInsertionOrder(t *testing.T) {
	s := newTestStore(t)
	texts := []string{"Q3", "Q1", "Q2"}
	for _, text := range texts {
		insertTestQuestion(t, s, text, model.DifficultyAdvanced, "timing")
	}

	qs, err := s.AllQuestions()
	if err != nil {
		t.Fatalf("AllQuestions: %v", err)
	}
	var got []string
	for _, q := range qs {
		got = append(got, q.Text)
	}
	if !slices.Equal(got, texts) {
		t.Errorf("expected insertion order %v, got %v", texts, got)
	}
}

func TestQuestionsByDifficulty(t *testing.T) {
	s := newTestStore(t)
	insertTestQuestion(t, s, "Q1", model.DifficultyBeginner, "substrates")
	insertTestQuestion(t, s, "Q2", model.DifficultyAdvanced, "substrates")
	insertTestQuestion(t, s, "Q3", model.DifficultyBeginner, "sterilization")
	insertTestQuestion(t, s, "Q4", model.DifficultyIntermediate, "timing")

	tests := []struct {
		name       string
		difficulty model.Difficulty
		wantCount  int
	}{
		{"beginner", model.DifficultyBeginner, 2},
		{"intermediate", model.DifficultyIntermediate, 1},
		{"advanced", model.DifficultyAdvanced, 1},
		{"mixed returns all", model.DifficultyMixed, 4},
		{"empty returns all", "", 4},
		{"unknown tag is empty", "expert", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qs, err := s.QuestionsByDifficulty(tt.difficulty)
			if err != nil {
				t.Fatalf("QuestionsByDifficulty: %v", err)
			}
			if qs == nil {
				t.Fatal("expected non-nil slice")
			}
			if len(qs) != tt.wantCount {
				t.Errorf("expected %d questions, got %d", tt.wantCount, len(qs))
			}
			if tt.difficulty.IsRank() {
				for _, q := range qs {
					if q.Difficulty != tt.difficulty {
						t.Errorf("question %q has difficulty %q, want %q", q.Text, q.Difficulty, tt.difficulty)
					}
				}
			}
		})
	}
}

func TestDistributions(t *testing.T) {
	s := newTestStore(t)
	insertTestQuestion(t, s, "Q1", model.DifficultyBeginner, "substrates")
	insertTestQuestion(t, s, "Q2", model.DifficultyBeginner, "sterilization")
	insertTestQuestion(t, s, "Q3", model.DifficultyIntermediate, "sterilization")

	dist, err := s.DifficultyDistribution()
	if err != nil {
		t.Fatalf("DifficultyDistribution: %v", err)
	}
	want := map[model.Difficulty]int{
		model.DifficultyBeginner:     2,
		model.DifficultyIntermediate: 1,
		model.DifficultyAdvanced:     0,
	}
	for d, n := range want {
		if dist[d] != n {
			t.Errorf("difficulty %s: expected %d, got %d", d, n, dist[d])
		}
	}

	topics, err := s.TopicDistribution()
	if err != nil {
		t.Fatalf("TopicDistribution: %v", err)
	}
	if len(topics) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(topics))
	}
	if topics[0] != (TopicCount{Topic: "sterilization", Count: 2}) {
		t.Errorf("expected sterilization first with 2, got %+v", topics[0])
	}
}

func TestExportBank(t *testing.T) {
	s := newTestStore(t)
	insertTestQuestion(t, s, "Q1", model.DifficultyBeginner, "substrates")
	insertTestQuestion(t, s, "Q2", model.DifficultyAdvanced, "timing")

	exp, err := s.ExportBank()
	if err != nil {
		t.Fatalf("ExportBank: %v", err)
	}
	if exp.NumQuestions != 2 || len(exp.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d/%d", exp.NumQuestions, len(exp.Questions))
	}
	if exp.Topics["timing"] != 1 || exp.Difficulties[model.DifficultyAdvanced] != 1 {
		t.Errorf("unexpected distributions: %+v %+v", exp.Topics, exp.Difficulties)
	}
	for _, q := range exp.Questions {
		if q.ID != 0 {
			t.Errorf("exported question %q kept ID %d", q.Text, q.ID)
		}
	}
}
