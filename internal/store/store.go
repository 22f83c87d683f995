package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/pavelanni/mushroomquiz/internal/model"

	_ "modernc.org/sqlite"
)

// MemoryDSN keeps the whole bank in process memory; nothing survives the run.
const MemoryDSN = ":memory:"

// Store is the question store. It is read-mostly: questions are inserted once
// at startup and then filtered for every session.
type Store struct {
	db *sql.DB
}

func New(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Every new connection to :memory: would see its own empty database.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS questions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		text TEXT NOT NULL,
		options TEXT NOT NULL,
		answer TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		topic TEXT NOT NULL,
		explanation TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_questions_difficulty ON questions(difficulty);
	`
	_, err := s.db.Exec(schema)
	return err
}

const questionColumns = `id, text, options, answer, difficulty, topic, explanation`

// InsertQuestion validates and stores a question.
func (s *Store) InsertQuestion(q model.Question) (int64, error) {
	if err := q.Validate(); err != nil {
		return 0, err
	}
	opts, err := json.Marshal(q.Options)
	if err != nil {
		return 0, fmt.Errorf("encode options: %w", err)
	}
	res, err := s.db.Exec(
		`INSERT INTO questions (text, options, answer, difficulty, topic, explanation)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		q.Text, string(opts), q.Answer, q.Difficulty, q.Topic, q.Explanation,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// AllQuestions returns every question in insertion order.
func (s *Store) AllQuestions() ([]model.Question, error) {
	return s.queryQuestions(`SELECT ` + questionColumns + ` FROM questions ORDER BY id`)
}

// QuestionsByDifficulty returns the questions tagged with d, in insertion order.
// Mixed or empty returns the whole store. An unknown tag matches nothing and is
// not an error.
func (s *Store) QuestionsByDifficulty(d model.Difficulty) ([]model.Question, error) {
	if d == "" || d == model.DifficultyMixed {
		return s.AllQuestions()
	}
	return s.queryQuestions(
		`SELECT `+questionColumns+` FROM questions WHERE difficulty = ? ORDER BY id`, d,
	)
}

// GetQuestion returns a question by ID.
func (s *Store) GetQuestion(id int64) (model.Question, error) {
	row := s.db.QueryRow(`SELECT `+questionColumns+` FROM questions WHERE id = ?`, id)
	return scanQuestion(row)
}

// QuestionCount returns the number of questions in the store.
func (s *Store) QuestionCount() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM questions`).Scan(&count)
	return count, err
}

func (s *Store) queryQuestions(query string, args ...any) ([]model.Question, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	questions := []model.Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuestion(sc scanner) (model.Question, error) {
	var q model.Question
	var opts string
	if err := sc.Scan(&q.ID, &q.Text, &opts, &q.Answer, &q.Difficulty, &q.Topic, &q.Explanation); err != nil {
		return q, err
	}
	if err := json.Unmarshal([]byte(opts), &q.Options); err != nil {
		return q, fmt.Errorf("decode options for question %d: %w", q.ID, err)
	}
	return q, nil
}
