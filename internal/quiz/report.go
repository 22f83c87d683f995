package quiz

import "github.com/pavelanni/mushroomquiz/internal/model"

// Tiers are checked top down; the first whose threshold the percentage
// reaches wins.
var tiers = []struct {
	min  float64
	tier model.Tier
}{
	{90, model.Tier{Rank: 0, Name: "Mushroom Master", Message: "Outstanding! You're ready to start your own mushroom farm!"}},
	{70, model.Tier{Rank: 1, Name: "Fungi Expert", Message: "Great job! You have solid mushroom cultivation knowledge!"}},
	{50, model.Tier{Rank: 2, Name: "Growing Cultivator", Message: "Good start! Keep learning and you'll be a mushroom pro!"}},
	{0, model.Tier{Rank: 3, Name: "Spore Beginner", Message: "Don't worry! Every expert started somewhere. Keep studying!"}},
}

var studyTips = map[string]string{
	"growing_conditions":  "Review optimal temperature and humidity ranges.",
	"mushroom_varieties":  "Learn about different types of mushrooms and their characteristics.",
	"substrates":          "Explore various substrates used in mushroom cultivation.",
	"biology_basics":      "Understand the structure and function of mycelium.",
	"sterilization":       "Look into sterilization techniques like pressure cooking.",
	"medicinal_mushrooms": "Research the benefits and uses of medicinal mushrooms.",
	"cultivation_process": "Familiarize yourself with the steps in mushroom cultivation.",
	"beginner_varieties":  "Identify beginner-friendly mushrooms to start growing.",
	"growing_methods":     "Discover different growing methods such as log cultivation.",
	"timing":              "Learn about the timelines for various mushroom cultivation stages.",
}

// Percentage returns score as a share of total, 0 when there were no questions.
func Percentage(score, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(score*100) / float64(total)
}

// TierFor classifies a percentage.
func TierFor(percentage float64) model.Tier {
	for _, t := range tiers {
		if percentage >= t.min {
			return t.tier
		}
	}
	return tiers[len(tiers)-1].tier
}

// StudyTips maps the topics of wrong answers to study tips. Each topic yields
// at most one tip, in order of first miss; topics without a tip are skipped.
func StudyTips(wrongTopics []string) []string {
	seen := make(map[string]bool, len(wrongTopics))
	var tips []string
	for _, topic := range wrongTopics {
		if seen[topic] {
			continue
		}
		seen[topic] = true
		if tip, ok := studyTips[topic]; ok {
			tips = append(tips, tip)
		}
	}
	return tips
}
