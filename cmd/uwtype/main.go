// Package main provides the CLI entrypoint for uwtype.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/uwtype/uwtype/internal/board"
	"github.com/uwtype/uwtype/internal/boardui"
	"github.com/uwtype/uwtype/internal/config"
	"github.com/uwtype/uwtype/internal/identity"
	"github.com/uwtype/uwtype/internal/model"
	"github.com/uwtype/uwtype/internal/passage"
	"github.com/uwtype/uwtype/internal/store"
	"github.com/uwtype/uwtype/internal/submit"
	"github.com/uwtype/uwtype/internal/tui"
)

var (
	testCharsPerWord int
	testMaxWPM       float64

	boardTop       int
	boardFaculties int
	boardOnce      bool

	loginEmail   string
	loginProgram string
	loginFaculty string
)

func main() {
	// Optional .env next to the binary; UWTYPE_DB / UWTYPE_SECRET.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logErrf("failed to load .env: %v\n", err)
	}
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "uwtype",
		Short:         "Campus typing gauntlet with a live leaderboard",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTestCmd,
	}

	rootCmd.Flags().IntVar(&testCharsPerWord, "chars-per-word", model.DefaultScoring.CharsPerWord, "characters counted as one word")
	rootCmd.Flags().Float64Var(&testMaxWPM, "max-wpm", model.DefaultScoring.MaxWPM, "WPM ceiling for short elapsed windows")

	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newBoardCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runTestCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "chars-per-word", &testCharsPerWord, fileCfg.Test.CharsPerWord)
	applyFloatConfig(cmd, "max-wpm", &testMaxWPM, fileCfg.Test.MaxWPM)

	scoring := model.Scoring{CharsPerWord: testCharsPerWord, MaxWPM: testMaxWPM}
	if scoring.CharsPerWord <= 0 {
		return fmt.Errorf("--chars-per-word must be > 0")
	}
	if scoring.MaxWPM <= 0 {
		return fmt.Errorf("--max-wpm must be > 0")
	}

	profile, err := identity.LoadSession(config.DefaultTokenPath(), config.DefaultSecretPath())
	if err != nil {
		if errors.Is(err, identity.ErrNoSession) {
			return fmt.Errorf("%w\nexample: uwtype login --email you@uwaterloo.ca --faculty Engineering", err)
		}
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	best, err := st.BestWPM(context.Background(), profile.UserID)
	if err != nil {
		logErrf("failed to load personal best: %v\n", err)
	}

	gateway := submit.NewGateway(st, scoring)
	m, err := tui.NewModel(passage.NewSelector(), passage.Corpus, gateway, profile, scoring, best)
	if err != nil {
		return fmt.Errorf("failed to start test: %w", err)
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Create a local profile session",
		Args:  cobra.NoArgs,
		RunE:  runLoginCmd,
	}
	cmd.Flags().StringVar(&loginEmail, "email", "", "campus email ("+identity.CampusDomain+")")
	cmd.Flags().StringVar(&loginProgram, "program", "", "program (optional)")
	cmd.Flags().StringVar(&loginFaculty, "faculty", "", "faculty (optional)")
	return cmd
}

func runLoginCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "program", &loginProgram, fileCfg.Profile.Program)
	applyStringConfig(cmd, "faculty", &loginFaculty, fileCfg.Profile.Faculty)

	if strings.TrimSpace(loginEmail) == "" {
		return fmt.Errorf("--email is required")
	}
	profile, err := identity.NewProfile(loginEmail, loginProgram, loginFaculty)
	if err != nil {
		return err
	}
	secret, err := identity.LoadSecret(config.DefaultSecretPath())
	if err != nil {
		return err
	}
	token, err := identity.SignToken(profile, secret, time.Now())
	if err != nil {
		return fmt.Errorf("failed to sign session: %w", err)
	}
	if err := identity.SaveSession(config.DefaultTokenPath(), token); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", profile.Email); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the live leaderboard",
		Args:  cobra.NoArgs,
		RunE:  runBoardCmd,
	}
	cmd.Flags().IntVar(&boardTop, "top", model.DefaultBoardConfig.TopIndividuals, "individual entries to show")
	cmd.Flags().IntVar(&boardFaculties, "faculties", model.DefaultBoardConfig.TopFaculties, "faculty entries to show")
	cmd.Flags().BoolVar(&boardOnce, "once", false, "print the current board and exit")
	return cmd
}

func runBoardCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "top", &boardTop, fileCfg.Board.TopIndividuals)
	applyIntConfig(cmd, "faculties", &boardFaculties, fileCfg.Board.TopFaculties)

	if boardTop <= 0 {
		return fmt.Errorf("--top must be > 0")
	}
	if boardFaculties <= 0 {
		return fmt.Errorf("--faculties must be > 0")
	}
	cfg := model.BoardConfig{TopIndividuals: boardTop, TopFaculties: boardFaculties}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	if boardOnce {
		view, err := board.Recompute(ctx, st, cfg)
		if err != nil {
			return fmt.Errorf("failed to compute leaderboard: %w", err)
		}
		return board.Render(cmd.OutOrStdout(), view)
	}

	watcher, err := board.NewWatcher(ctx, st, cfg)
	if err != nil {
		return fmt.Errorf("failed to start leaderboard: %w", err)
	}
	defer watcher.Close()

	program := tea.NewProgram(boardui.NewModel(watcher), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run board TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# uwtype configuration
# Uncomment a value to enable it. CLI flags override config values.

[test]
# chars-per-word = %d     # Characters counted as one word
# max-wpm = %.0f          # WPM ceiling for short elapsed windows

[board]
# top = %d                # Individual entries to show
# faculties = %d          # Faculty entries to show

[profile]
# program = "Computer Science"
# faculty = "Mathematics"
`,
		model.DefaultScoring.CharsPerWord,
		model.DefaultScoring.MaxWPM,
		model.DefaultBoardConfig.TopIndividuals,
		model.DefaultBoardConfig.TopFaculties,
	)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
