package bank

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pavelanni/mushroomquiz/internal/model"
	"github.com/pavelanni/mushroomquiz/internal/store"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDefaultBank(t *testing.T) {
	questions, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if len(questions) != 111 {
		t.Errorf("expected 111 questions, got %d", len(questions))
	}

	counts := map[model.Difficulty]int{}
	topics := map[string]bool{}
	for _, q := range questions {
		counts[q.Difficulty]++
		topics[q.Topic] = true
		if len(q.Options) != 4 {
			t.Errorf("%q has %d options, want 4", q.Text, len(q.Options))
		}
	}
	if counts[model.DifficultyBeginner] != 38 || counts[model.DifficultyIntermediate] != 46 || counts[model.DifficultyAdvanced] != 27 {
		t.Errorf("unexpected difficulty distribution: %v", counts)
	}
	if len(topics) != 10 {
		t.Errorf("expected 10 topics, got %d", len(topics))
	}
}

func TestLoadFileYAML(t *testing.T) {
	path := writeFile(t, "extra.yaml", `
- text: How long does a pressure cooker cycle take?
  options: ["10 minutes", "60-90 minutes"]
  answer: "60-90 minutes"
  difficulty: intermediate
  topic: sterilization
  explanation: 15 PSI for 60-90 minutes.
`)
	questions, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	if questions[0].Topic != "sterilization" || questions[0].Answer != "60-90 minutes" {
		t.Errorf("unexpected question: %+v", questions[0])
	}
}

func TestLoadFileJSON(t *testing.T) {
	path := writeFile(t, "extra.json", `[
		{"text": "Q?", "options": ["a", "b"], "answer": "b", "difficulty": "advanced", "topic": "timing", "explanation": "e"}
	]`)
	questions, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(questions) != 1 || questions[0].Difficulty != model.DifficultyAdvanced {
		t.Errorf("unexpected result: %+v", questions)
	}
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	path := writeFile(t, "bad.json", `[
		{"text": "Q?", "options": ["a", "b"], "answer": "c", "difficulty": "advanced", "topic": "timing"}
	]`)
	_, err := LoadFile(path)
	if !errors.Is(err, model.ErrInvalidQuestion) {
		t.Fatalf("expected ErrInvalidQuestion, got %v", err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSeed(t *testing.T) {
	s, err := store.New(store.MemoryDSN)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	n, err := Seed(s, nil)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	count, err := s.QuestionCount()
	if err != nil {
		t.Fatalf("QuestionCount: %v", err)
	}
	if n != 111 || count != 111 {
		t.Errorf("expected 111 seeded, got n=%d count=%d", n, count)
	}

	path := writeFile(t, "extra.json", `[
		{"text": "Q?", "options": ["a", "b"], "answer": "b", "difficulty": "beginner", "topic": "timing"}
	]`)
	n, err = Seed(s, []string{path})
	if err != nil {
		t.Fatalf("Seed from file: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 question from file, got %d", n)
	}
}

func TestSeedFilesReplaceBuiltIn(t *testing.T) {
	s, err := store.New(store.MemoryDSN)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	path := writeFile(t, "only.yaml", `
- text: Only?
  options: [a, b]
  answer: a
  difficulty: advanced
  topic: timing
`)
	if _, err := Seed(s, []string{path}); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	count, err := s.QuestionCount()
	if err != nil {
		t.Fatalf("QuestionCount: %v", err)
	}
	if count != 1 {
		t.Errorf("expected only the file's question in the store, got %d", count)
	}
}
