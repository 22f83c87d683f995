package store

import "github.com/pavelanni/mushroomquiz/internal/model"

// DifficultyDistribution returns the number of questions per difficulty.
// Every ranked level is present, even when it has no questions.
func (s *Store) DifficultyDistribution() (map[model.Difficulty]int, error) {
	dist := make(map[model.Difficulty]int, len(model.Difficulties))
	for _, d := range model.Difficulties {
		dist[d] = 0
	}
	rows, err := s.db.Query(`SELECT difficulty, COUNT(*) FROM questions GROUP BY difficulty`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var d model.Difficulty
		var n int
		if err := rows.Scan(&d, &n); err != nil {
			return nil, err
		}
		dist[d] = n
	}
	return dist, rows.Err()
}

// TopicCount is the number of questions tagged with a topic.
type TopicCount struct {
	Topic string
	Count int
}

// TopicDistribution returns question counts per topic, largest first.
func (s *Store) TopicDistribution() ([]TopicCount, error) {
	rows, err := s.db.Query(
		`SELECT topic, COUNT(*) AS n FROM questions GROUP BY topic ORDER BY n DESC, topic`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var topics []TopicCount
	for rows.Next() {
		var tc TopicCount
		if err := rows.Scan(&tc.Topic, &tc.Count); err != nil {
			return nil, err
		}
		topics = append(topics, tc)
	}
	return topics, rows.Err()
}
