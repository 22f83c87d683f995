package model

import "time"

// BankExport is the top-level JSON structure for question bank export.
type BankExport struct {
	ExportedAt   time.Time          `json:"exported_at"`
	NumQuestions int                `json:"num_questions"`
	Difficulties map[Difficulty]int `json:"difficulties"`
	Topics       map[string]int     `json:"topics"`
	Questions    []Question         `json:"questions"`
}
