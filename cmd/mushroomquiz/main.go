package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/pavelanni/mushroomquiz/internal/bank"
	"github.com/pavelanni/mushroomquiz/internal/catalog"
	"github.com/pavelanni/mushroomquiz/internal/model"
	"github.com/pavelanni/mushroomquiz/internal/store"
	"github.com/pavelanni/mushroomquiz/internal/timer"
	"github.com/pavelanni/mushroomquiz/internal/ui"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mushroomquiz",
		Short: "Terminal quiz on mushroom cultivation",
	}

	play := playCmd()
	root.AddCommand(play, statsCmd(), exportCmd())

	// Make "play" the default when no subcommand is given.
	root.RunE = play.RunE

	// Register play flags on root so bare `mushroomquiz -d beginner` still works.
	root.Flags().AddFlagSet(play.Flags())

	return root
}

func addCommonFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringSliceP("questions", "q", nil, "Question bank files, JSON or YAML, replacing the built-in bank (repeatable)")
	f.String("log-level", "warn", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	f.String("log-file", "", "Write logs to this file instead of stderr")
}

func playCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Start the interactive quiz",
		RunE:  runPlay,
	}
	f := cmd.Flags()
	f.StringP("difficulty", "d", "", "Difficulty (beginner, intermediate, advanced, mixed); empty asks")
	f.IntP("num-questions", "n", 0, "Questions per quiz; 0 asks")
	f.IntP("time-limit", "t", -1, "Seconds per question; 0 is untimed, negative asks")
	f.Bool("no-color", false, "Disable colored output")
	addCommonFlags(cmd)
	return cmd
}

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show how the question bank is distributed",
		RunE:  runStats,
	}
	cmd.Flags().Bool("no-color", false, "Disable colored output")
	addCommonFlags(cmd)
	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the question bank as JSON",
		RunE:  runExport,
	}
	cmd.Flags().StringP("output", "o", "-", "Output file path (- for stdout)")
	addCommonFlags(cmd)
	return cmd
}

// setupLogging installs the default slog logger. The returned function closes
// the log file, if any.
func setupLogging(v *viper.Viper) func() {
	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelWarn
	}

	// The terminal is the quiz itself; a log file keeps records out of it.
	var w io.Writer = os.Stderr
	closeLog := func() {}
	if path := v.GetString("log-file"); path != "" {
		lj := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}
		w = lj
		closeLog = func() { _ = lj.Close() }
	}

	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(w, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(w, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
	return closeLog
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
// A config file that exists but cannot be read is returned as an error next to
// the usable instance, so it can be logged once logging is set up.
func viperForCmd(cmd *cobra.Command) (*viper.Viper, error) {
	// A missing .env is normal.
	_ = godotenv.Load()

	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("MUSHROOMQUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("mushroomquiz")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/mushroomquiz")
	v.AddConfigPath("/etc/mushroomquiz")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return v, err
		}
	}

	return v, nil
}

// prepare loads configuration and logging for a command. Call the returned
// function when the command finishes.
func prepare(cmd *cobra.Command) (*viper.Viper, func()) {
	v, cfgErr := viperForCmd(cmd)
	closeLog := setupLogging(v)
	if cfgErr != nil {
		slog.Warn("error reading config file", "error", cfgErr)
	}
	return v, closeLog
}

// openBank loads the question bank into a fresh in-memory store.
func openBank(v *viper.Viper) (*store.Store, error) {
	db, err := store.New(store.MemoryDSN)
	if err != nil {
		return nil, fmt.Errorf("open question store: %w", err)
	}
	n, err := bank.Seed(db, v.GetStringSlice("questions"))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("load questions: %w", err)
	}
	if n == 0 {
		db.Close()
		return nil, fmt.Errorf("load questions: %w", bank.ErrEmpty)
	}
	return db, nil
}

func presetFrom(v *viper.Viper) (ui.Preset, error) {
	var p ui.Preset
	if d := v.GetString("difficulty"); d != "" {
		diff, err := model.ParseDifficulty(d)
		if err != nil {
			return p, err
		}
		p.Difficulty = diff
	}
	p.NumQuestions = v.GetInt("num-questions")
	if p.NumQuestions < 0 {
		return p, fmt.Errorf("num-questions must not be negative, got %d", p.NumQuestions)
	}
	p.TimeLimit = v.GetInt("time-limit")
	return p, nil
}

func runPlay(cmd *cobra.Command, _ []string) error {
	v, closeLog := prepare(cmd)
	defer closeLog()

	preset, err := presetFrom(v)
	if err != nil {
		return err
	}

	db, err := openBank(v)
	if err != nil {
		return err
	}
	defer db.Close()

	msg, err := catalog.New()
	if err != nil {
		return fmt.Errorf("load messages: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	lines := timer.NewLines(cmd.InOrStdin())
	term := ui.NewTerminal(out, lines, ui.StyleFor(out, v.GetBool("no-color")), msg)
	app := ui.NewApp(term, db, timer.New(lines, term), preset)

	slog.Info("starting quiz",
		"difficulty", preset.Difficulty,
		"num_questions", preset.NumQuestions,
		"time_limit", preset.TimeLimit,
	)
	return app.Run(ctx)
}

func runStats(cmd *cobra.Command, _ []string) error {
	v, closeLog := prepare(cmd)
	defer closeLog()

	db, err := openBank(v)
	if err != nil {
		return err
	}
	defer db.Close()

	difficulties, err := db.DifficultyDistribution()
	if err != nil {
		return fmt.Errorf("difficulty distribution: %w", err)
	}
	topics, err := db.TopicDistribution()
	if err != nil {
		return fmt.Errorf("topic distribution: %w", err)
	}

	msg, err := catalog.New()
	if err != nil {
		return fmt.Errorf("load messages: %w", err)
	}
	out := cmd.OutOrStdout()
	ui.NewTerminal(out, nil, ui.StyleFor(out, v.GetBool("no-color")), msg).Stats(difficulties, topics)
	return nil
}

func runExport(cmd *cobra.Command, _ []string) error {
	v, closeLog := prepare(cmd)
	defer closeLog()

	db, err := openBank(v)
	if err != nil {
		return err
	}
	defer db.Close()

	export, err := db.ExportBank()
	if err != nil {
		return fmt.Errorf("export bank: %w", err)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}

	outPath := v.GetString("output")
	var w io.Writer
	if outPath == "" || outPath == "-" {
		w = cmd.OutOrStdout()
	} else {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	// Ensure trailing newline.
	_, _ = fmt.Fprintln(w)

	slog.Info("exported question bank", "count", export.NumQuestions, "output", outPath)
	return nil
}
