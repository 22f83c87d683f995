// Package ui is the terminal front end of the quiz: menus, question and
// countdown rendering, and the final report.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pavelanni/mushroomquiz/internal/catalog"
	"github.com/pavelanni/mushroomquiz/internal/model"
	"github.com/pavelanni/mushroomquiz/internal/quiz"
	"github.com/pavelanni/mushroomquiz/internal/store"
	"github.com/pavelanni/mushroomquiz/internal/timer"
)

// Terminal renders the quiz on out and reads menu input from in.
type Terminal struct {
	out   io.Writer
	in    *timer.Lines
	style Style
	msg   *catalog.Catalog
	title cases.Caser
}

// NewTerminal creates a Terminal.
func NewTerminal(out io.Writer, in *timer.Lines, style Style, msg *catalog.Catalog) *Terminal {
	return &Terminal{
		out:   out,
		in:    in,
		style: style,
		msg:   msg,
		title: cases.Title(language.English),
	}
}

func (t *Terminal) printf(format string, args ...any) {
	fmt.Fprintf(t.out, format, args...)
}

func (t *Terminal) println(text string) {
	fmt.Fprintln(t.out, text)
}

// Header clears the screen and prints the banner.
func (t *Terminal) Header() {
	s := t.style
	t.printf("%s", s.Clear)
	t.println("")
	t.println(s.paint(s.Cyan, "🍄 "+t.msg.T("AppTitle")+" 🍄"))
	t.println(s.paint(s.Cyan, "   "+t.msg.T("AppTagline")))
	t.println("")
	t.println(s.paint(s.Yellow, t.msg.T("Welcome")))
}

type menuItem struct {
	color string
	label string
}

func (t *Terminal) menu(title string, items []menuItem) {
	t.println("")
	t.println(t.style.paint(t.style.Bold, title))
	for i, it := range items {
		t.println(t.style.paint(it.color, fmt.Sprintf("%d. %s", i+1, it.label)))
	}
}

// choose reads menu choices until one in [1, n] arrives.
func (t *Terminal) choose(ctx context.Context, n int) (int, error) {
	prompt := t.msg.Td("ChoicePrompt", map[string]any{"Max": n})
	for {
		t.printf("\n%s", t.style.paint(t.style.Bold, prompt))
		line, err := t.in.ReadLine(ctx)
		if err != nil {
			return 0, err
		}
		choice, err := timer.ParseChoice(line, n)
		if err != nil {
			t.Rejected(err, n)
			continue
		}
		return choice, nil
	}
}

// MenuAction is a main menu entry.
type MenuAction int

const (
	ActionStart MenuAction = iota + 1
	ActionAbout
	ActionExit
)

// MainMenu asks what to do next.
func (t *Terminal) MainMenu(ctx context.Context) (MenuAction, error) {
	s := t.style
	t.menu(t.msg.T("MainMenuTitle"), []menuItem{
		{s.Green, "🎮 " + t.msg.T("MenuStartQuiz")},
		{s.Blue, "📖 " + t.msg.T("MenuAbout")},
		{s.Red, "🚪 " + t.msg.T("MenuExit")},
	})
	choice, err := t.choose(ctx, 3)
	return MenuAction(choice), err
}

var difficultyChoices = []model.Difficulty{
	model.DifficultyBeginner,
	model.DifficultyIntermediate,
	model.DifficultyAdvanced,
	model.DifficultyMixed,
}

// ChooseDifficulty asks for the difficulty filter.
func (t *Terminal) ChooseDifficulty(ctx context.Context) (model.Difficulty, error) {
	s := t.style
	t.menu(t.msg.T("DifficultyTitle"), []menuItem{
		{s.Green, "🟢 " + t.msg.T("DifficultyBeginner")},
		{s.Yellow, "🟡 " + t.msg.T("DifficultyIntermediate")},
		{s.Red, "🔴 " + t.msg.T("DifficultyAdvanced")},
		{s.Cyan, "🌈 " + t.msg.T("DifficultyMixed")},
	})
	choice, err := t.choose(ctx, len(difficultyChoices))
	if err != nil {
		return "", err
	}
	return difficultyChoices[choice-1], nil
}

var lengthChoices = []int{5, 10, 20}

// ChooseLength asks how many questions to play.
func (t *Terminal) ChooseLength(ctx context.Context) (int, error) {
	s := t.style
	t.menu(t.msg.T("LengthTitle"), []menuItem{
		{s.Green, "⚡ " + t.msg.Td("LengthQuick", map[string]any{"Count": lengthChoices[0]})},
		{s.Yellow, "🎯 " + t.msg.Td("LengthStandard", map[string]any{"Count": lengthChoices[1]})},
		{s.Red, "🏆 " + t.msg.Td("LengthChallenge", map[string]any{"Count": lengthChoices[2]})},
	})
	choice, err := t.choose(ctx, len(lengthChoices))
	if err != nil {
		return 0, err
	}
	return lengthChoices[choice-1], nil
}

// timeLimitChoices are seconds per question; 0 is untimed.
var timeLimitChoices = []int{0, 30, 15}

// ChooseTimeLimit asks for the per-question time limit.
func (t *Terminal) ChooseTimeLimit(ctx context.Context) (int, error) {
	s := t.style
	t.menu(t.msg.T("ModeTitle"), []menuItem{
		{s.Green, "🐌 " + t.msg.T("ModeRelaxed")},
		{s.Yellow, "⏰ " + t.msg.Td("ModeTimed", map[string]any{"Seconds": timeLimitChoices[1]})},
		{s.Red, "🚀 " + t.msg.Td("ModeSpeed", map[string]any{"Seconds": timeLimitChoices[2]})},
	})
	choice, err := t.choose(ctx, len(timeLimitChoices))
	if err != nil {
		return 0, err
	}
	return timeLimitChoices[choice-1], nil
}

// PlayAgain asks whether to start another quiz. Only "y" means yes.
func (t *Terminal) PlayAgain(ctx context.Context) (bool, error) {
	t.printf("\n%s", t.style.paint(t.style.Bold, t.msg.T("PlayAgain")))
	line, err := t.in.ReadLine(ctx)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(line), "y"), nil
}

// About describes the quiz and waits for Enter.
func (t *Terminal) About(ctx context.Context, bankSize int) error {
	s := t.style
	t.println("")
	t.println(s.paint(s.Cyan, "📖 "+t.msg.T("AboutTitle")))
	t.println(s.paint(s.Yellow, t.msg.T("AboutIntro")))
	for _, id := range []string{"AboutTechniques", "AboutVarieties", "AboutSubstrates", "AboutTerminology", "AboutFarming"} {
		t.println(s.paint(s.Yellow, "• "+t.msg.T(id)))
	}
	t.println(t.msg.Tp("AboutBank", bankSize))
	t.println("")
	t.printf("%s", s.paint(s.Bold, t.msg.T("PressEnterToReturn")))
	_, err := t.in.ReadLine(ctx)
	return err
}

// Start announces the quiz.
func (t *Terminal) Start(total int) {
	t.Header()
	t.println("")
	t.println(t.style.paint(t.style.Cyan, "🎯 "+t.msg.Tp("QuizStarting", total)))
	t.println("")
}

// Question prints one question with its options as presented.
func (t *Terminal) Question(num, total int, p quiz.Presented) {
	s := t.style
	t.println(s.paint(s.Bold, t.msg.Td("QuestionHeader", map[string]any{"Num": num, "Total": total})))
	difficulty := t.title.String(string(p.Question.Difficulty))
	t.println(s.paint(s.Blue, "📚 "+t.msg.Td("DifficultyLabel", map[string]any{"Difficulty": difficulty})))
	t.println("")
	t.println(s.paint(s.Yellow, p.Question.Text))
	t.println("")
	for i, opt := range p.Options {
		t.println(s.paint(s.Cyan, fmt.Sprintf("%d. %s", i+1, opt)))
	}
}

// AnswerPrompt is the text shown when asking for an answer.
func (t *Terminal) AnswerPrompt(n int) string {
	return t.msg.Td("AnswerPrompt", map[string]any{"Max": n})
}

// Result shows whether the answer was right and explains the question.
func (t *Terminal) Result(r model.QuestionResult) {
	s := t.style
	t.println("")
	switch r.Verdict {
	case model.VerdictCorrect:
		t.println(s.paint(s.Green, "✅ "+t.msg.T("Correct")+" 🎉"))
	case model.VerdictWrong:
		t.println(s.paint(s.Red, "❌ "+t.msg.Td("Wrong", map[string]any{"Answer": r.Question.Answer})))
	default:
		t.println(s.paint(s.Yellow, "⏰ "+t.msg.Td("NoAnswer", map[string]any{"Answer": r.Question.Answer})))
	}
	if r.Question.Explanation != "" {
		t.println(s.paint(s.Purple, "💡 "+r.Question.Explanation))
	}
}

// Pause waits for Enter between questions.
func (t *Terminal) Pause(ctx context.Context) error {
	t.printf("\n%s", t.style.paint(t.style.Bold, t.msg.T("PressEnterToContinue")))
	if _, err := t.in.ReadLine(ctx); err != nil {
		return err
	}
	t.Header()
	t.println("")
	return nil
}

// Prompt prints an input prompt without a newline.
func (t *Terminal) Prompt(text string) {
	t.printf("\n%s", t.style.paint(t.style.Bold, text))
}

// Rejected explains why a menu or answer input was not accepted.
func (t *Terminal) Rejected(err error, n int) {
	msg := t.msg.T("EnterValidNumber")
	if errors.Is(err, timer.ErrOutOfRange) {
		msg = t.msg.Td("EnterNumberBetween", map[string]any{"Max": n})
	}
	t.println(t.style.paint(t.style.Red, msg))
}

// TimeLimit announces the time available for the question.
func (t *Terminal) TimeLimit(seconds int) {
	t.println("")
	t.println(t.style.paint(t.style.Yellow, "⏰ "+t.msg.Tp("TimeLimit", seconds)))
}

func (t *Terminal) urgencyColor(u timer.Urgency) string {
	switch u {
	case timer.UrgencyCalm:
		return t.style.Green
	case timer.UrgencyWarning:
		return t.style.Yellow
	default:
		return t.style.Red
	}
}

// Countdown rewrites the remaining-time line.
func (t *Terminal) Countdown(remaining int, u timer.Urgency) {
	text := t.msg.Td("TimeRemaining", map[string]any{"Seconds": fmt.Sprintf("%2d", remaining)})
	t.printf("\r%s", t.style.paint(t.urgencyColor(u), "⏰ "+text))
}

// CountdownStopped ends the countdown line once an answer arrives.
func (t *Terminal) CountdownStopped() {
	t.println("")
}

// TimeUp reports that the time limit expired.
func (t *Terminal) TimeUp() {
	t.println("")
	t.println("")
	t.println(t.style.paint(t.style.Red, "⏰ "+t.msg.T("TimeUp")))
}

func (t *Terminal) tierColor(rank int) string {
	switch rank {
	case 0:
		return t.style.Green
	case 1:
		return t.style.Cyan
	case 2:
		return t.style.Yellow
	default:
		return t.style.Purple
	}
}

// Report prints the final score, tier and study recommendations.
func (t *Terminal) Report(r model.Report) {
	s := t.style
	t.println("")
	t.println(s.paint(s.Cyan, "🏆 "+t.msg.T("QuizComplete")+" 🏆"))
	t.println("")
	t.println(s.paint(s.Yellow, t.msg.Td("FinalScore", map[string]any{
		"Score":      r.Score,
		"Total":      r.Total,
		"Percentage": fmt.Sprintf("%.1f", r.Percentage),
	})))
	if r.Unanswered > 0 {
		t.println(t.msg.Tp("Unanswered", r.Unanswered))
	}
	t.println("")
	color := t.tierColor(r.Tier.Rank)
	t.println(s.paint(color, "🌟 "+strings.ToUpper(r.Tier.Name)+"! 🌟"))
	t.println(s.paint(color, r.Tier.Message))

	if len(r.WrongTopics) == 0 {
		t.println(s.paint(s.Green, "🎉 "+t.msg.T("WellRounded")+" 🎉"))
		return
	}
	t.println("")
	t.println(s.paint(s.Cyan, "📚 "+t.msg.T("StudyRecommendations")))
	for _, tip := range r.StudyTips {
		t.println("- " + tip)
	}
}

// Stats prints the composition of the question bank.
func (t *Terminal) Stats(difficulties map[model.Difficulty]int, topics []store.TopicCount) {
	total := 0
	for _, n := range difficulties {
		total += n
	}
	s := t.style
	t.println(s.paint(s.Bold, t.msg.Td("StatsTitle", map[string]any{"Count": total})))
	t.println("")
	t.println(s.paint(s.Cyan, t.msg.T("StatsByDifficulty")))
	for _, d := range model.Difficulties {
		t.printf("  %-14s %3d  %5.1f%%\n", t.title.String(string(d)), difficulties[d], quiz.Percentage(difficulties[d], total))
	}
	t.println("")
	t.println(s.paint(s.Cyan, t.msg.T("StatsByTopic")))
	for _, tc := range topics {
		t.printf("  %-22s %3d  %5.1f%%\n", tc.Topic, tc.Count, quiz.Percentage(tc.Count, total))
	}
}

// Farewell is printed when the user leaves through the menu.
func (t *Terminal) Farewell() {
	t.println("")
	t.println(t.style.paint(t.style.Green, t.msg.T("Farewell")+" 🍄🌟"))
}

// Interrupted is printed when the user aborts.
func (t *Terminal) Interrupted() {
	t.println("")
	t.println("")
	t.println(t.style.paint(t.style.Yellow, t.msg.T("Interrupted")+" 🍄"))
}
