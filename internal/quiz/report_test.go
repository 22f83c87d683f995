package quiz

import (
	"slices"
	"testing"
)

func TestPercentage(t *testing.T) {
	tests := []struct {
		score, total int
		want         float64
	}{
		{9, 10, 90},
		{7, 10, 70},
		{1, 2, 50},
		{0, 5, 0},
		{5, 5, 100},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := Percentage(tt.score, tt.total); got != tt.want {
			t.Errorf("Percentage(%d, %d) = %v, want %v", tt.score, tt.total, got, tt.want)
		}
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{100, "Mushroom Master"},
		{90, "Mushroom Master"},
		{89.999, "Fungi Expert"},
		{70, "Fungi Expert"},
		{69.9, "Growing Cultivator"},
		{50, "Growing Cultivator"},
		{49.999, "Spore Beginner"},
		{0, "Spore Beginner"},
	}
	for _, tt := range tests {
		if got := TierFor(tt.pct); got.Name != tt.want {
			t.Errorf("TierFor(%v) = %q, want %q", tt.pct, got.Name, tt.want)
		}
	}
}

func TestNineOfTenIsMushroomMaster(t *testing.T) {
	pct := Percentage(9, 10)
	if pct != 90.0 {
		t.Fatalf("expected 90.0, got %v", pct)
	}
	if got := TierFor(pct).Name; got != "Mushroom Master" {
		t.Errorf("expected Mushroom Master, got %q", got)
	}
}

func TestStudyTips(t *testing.T) {
	tests := []struct {
		name   string
		topics []string
		want   []string
	}{
		{"none", nil, nil},
		{
			"duplicates collapse",
			[]string{"sterilization", "timing", "sterilization"},
			[]string{studyTips["sterilization"], studyTips["timing"]},
		},
		{
			"unknown topic omitted",
			[]string{"astrology", "substrates"},
			[]string{studyTips["substrates"]},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StudyTips(tt.topics); !slices.Equal(got, tt.want) {
				t.Errorf("StudyTips(%v) = %v, want %v", tt.topics, got, tt.want)
			}
		})
	}
}

func TestEveryBankTopicHasATip(t *testing.T) {
	topics := []string{
		"growing_conditions", "mushroom_varieties", "substrates", "biology_basics",
		"sterilization", "medicinal_mushrooms", "cultivation_process",
		"beginner_varieties", "growing_methods", "timing",
	}
	for _, topic := range topics {
		if studyTips[topic] == "" {
			t.Errorf("topic %q has no study tip", topic)
		}
	}
}
