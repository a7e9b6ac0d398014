// Package main provides the CLI entrypoint for aprendemos.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/aprendemos/internal/config"
	"github.com/verte-zerg/aprendemos/internal/dictee"
	"github.com/verte-zerg/aprendemos/internal/lessons"
	"github.com/verte-zerg/aprendemos/internal/logging"
	"github.com/verte-zerg/aprendemos/internal/model"
	"github.com/verte-zerg/aprendemos/internal/sound"
	"github.com/verte-zerg/aprendemos/internal/speech"
	"github.com/verte-zerg/aprendemos/internal/stats"
	"github.com/verte-zerg/aprendemos/internal/statsui"
	"github.com/verte-zerg/aprendemos/internal/store"
	"github.com/verte-zerg/aprendemos/internal/tui"
)

const (
	defaultLevel       = 1
	defaultTime        = 60
	defaultCurveWindow = 5
	defaultTopFacts    = 8
	maxSpeechRate      = 3.0
)

var (
	logLevel   string
	dataDir    string
	speechRate float64
	noSpeech   bool

	dicteeLevel int
	dicteePro   bool

	multiTables []int
	multiTime   int

	statsLesson      string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsTop         int
	statsPlain       bool
	statsColor       bool

	resetHistory bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "aprendemos",
		Short:         "Dictée and multiplication practice in the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGame(cmd, tui.Options{Start: tui.StartMenu})
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&logLevel, "log-level", logging.DefaultLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&dataDir, "data-dir", config.DefaultDataDir(), "directory holding the database")
	flags.Float64Var(&speechRate, "speech-rate", speech.DefaultRate, "speaking rate relative to the synthesizer default")
	flags.BoolVar(&noSpeech, "no-speech", false, "never speak words")

	rootCmd.AddCommand(newDicteeCmd())
	rootCmd.AddCommand(newMultiplicaCmd())
	rootCmd.AddCommand(newLessonsCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newResetCmd())

	return rootCmd
}

func newDicteeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dictee [lesson-id]",
		Short: "Play a dictée lesson",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := tui.Options{Start: tui.StartDictee}
			if len(args) == 1 {
				opts.LessonID = args[0]
			}
			return runGame(cmd, opts)
		},
	}
	cmd.Flags().IntVar(&dicteeLevel, "level", defaultLevel, "difficulty level (1-3)")
	cmd.Flags().BoolVar(&dicteePro, "pro", false, "hide the letter slots")
	return cmd
}

func newMultiplicaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "multiplica",
		Short: "Play a timed multiplication run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGame(cmd, tui.Options{Start: tui.StartMultiplica})
		},
	}
	cmd.Flags().IntSliceVar(&multiTables, "tables", nil, "tables to practice (1-12)")
	cmd.Flags().IntVar(&multiTime, "time", defaultTime, "run length in seconds (30, 60 or 90)")
	return cmd
}

// app bundles what every command needs once configuration is resolved.
type app struct {
	cfg     config.FileConfig
	log     *logrus.Logger
	store   *store.Store
	catalog *lessons.Catalog
	closers []io.Closer
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			logErrf("failed to close: %v\n", err)
		}
	}
}

func setup(cmd *cobra.Command) (*app, error) {
	if err := config.LoadEnv(".env", config.DefaultEnvPath()); err != nil {
		return nil, err
	}
	env := config.ReadEnv()
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "data-dir", &dataDir, fileCfg.Platform.DataDir)
	applyFloatConfig(cmd, "speech-rate", &speechRate, fileCfg.Speech.Rate)
	applyStringEnv(cmd, "log-level", &logLevel, env.LogLevel)
	applyStringEnv(cmd, "data-dir", &dataDir, env.DataDir)
	if speechRate <= 0 || speechRate > maxSpeechRate {
		return nil, fmt.Errorf("--speech-rate must be in (0, %.0f]", maxSpeechRate)
	}

	logPath := config.DefaultLogPath()
	if fileCfg.Log.File != nil {
		logPath = *fileCfg.Log.File
	}
	log, logCloser, err := logging.New(logging.Options{Level: logLevel, Path: logPath})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	a := &app{cfg: fileCfg, log: log, closers: []io.Closer{logCloser}}

	st, err := store.Open(config.DBPath(dataDir))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	st.SetLogger(log)
	a.store = st
	a.closers = append(a.closers, st)

	lessonDir := config.DefaultLessonDir()
	if fileCfg.Dictee.LessonDir != nil {
		lessonDir = *fileCfg.Dictee.LessonDir
	}
	extra, err := lessons.LoadDir(lessonDir, log)
	if err != nil {
		logErrf("failed to load lessons from %s: %v\n", lessonDir, err)
	}
	a.catalog = lessons.NewCatalog(extra...)
	log.WithFields(logrus.Fields{"lessons": a.catalog.Len(), "db": config.DBPath(dataDir)}).Debug("startup")
	return a, nil
}

func runGame(cmd *cobra.Command, opts tui.Options) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if opts.LessonID != "" {
		if _, ok := a.catalog.Find(opts.LessonID); !ok {
			return fmt.Errorf("unknown lesson %q (run: aprendemos lessons)", opts.LessonID)
		}
	}
	ctx := context.Background()
	if err := applySettings(ctx, cmd, a); err != nil {
		return err
	}

	speaker := speech.Speaker(speech.Nop{})
	if !noSpeech {
		speechOpts := speech.Options{Log: a.log}
		if a.cfg.Speech.Command != nil {
			speechOpts.Command = *a.cfg.Speech.Command
		}
		if v := config.ReadEnv().SpeechCommand; v != "" {
			speechOpts.Command = v
		}
		if a.cfg.Speech.Voice != nil {
			speechOpts.Voice = *a.cfg.Speech.Voice
		}
		speaker = speech.Detect(ctx, speechOpts)
	}
	defer speaker.Stop()

	game := tui.NewApp(tui.Deps{
		Store:      a.store,
		Catalog:    a.catalog,
		Speaker:    speaker,
		Sound:      sound.NewBell(os.Stderr, true),
		Log:        a.log,
		SpeechRate: speechRate,
	}, opts)
	program := tea.NewProgram(game, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// applySettings writes flag and config-file preferences over the stored
// settings. Only explicitly set values are written.
func applySettings(ctx context.Context, cmd *cobra.Command, a *app) error {
	platform := a.store.LoadPlatform(ctx)
	platformSet := false
	if v := a.cfg.Platform.PlayerName; v != nil && strings.TrimSpace(*v) != "" {
		platform.PlayerName = strings.TrimSpace(*v)
		platformSet = true
	}
	if v := a.cfg.Platform.Sound; v != nil {
		platform.SoundEnabled = *v
		platformSet = true
	}
	if platformSet {
		if err := a.store.SavePlatform(ctx, platform); err != nil {
			return fmt.Errorf("failed to save platform settings: %w", err)
		}
	}

	levelSet := applyIntConfig(cmd, "level", &dicteeLevel, a.cfg.Dictee.Level)
	proSet := applyBoolConfig(cmd, "pro", &dicteePro, a.cfg.Dictee.ProMode)
	tablesSet := applyIntSliceConfig(cmd, "tables", &multiTables, a.cfg.Multiplica.Tables)
	timeSet := applyIntConfig(cmd, "time", &multiTime, a.cfg.Multiplica.Time)
	if err := validateSettings(levelSet, tablesSet, timeSet); err != nil {
		return err
	}

	if levelSet || proSet {
		settings := a.store.LoadDictee(ctx)
		if levelSet {
			settings.Level = dicteeLevel
		}
		if proSet {
			settings.ProMode = dicteePro
		}
		if err := a.store.SaveDictee(ctx, settings); err != nil {
			return fmt.Errorf("failed to save dictée settings: %w", err)
		}
	}
	if tablesSet || timeSet {
		settings := a.store.LoadMultiplica(ctx)
		if tablesSet {
			settings.SelectedTables = lo.Uniq(multiTables)
			slices.Sort(settings.SelectedTables)
		}
		if timeSet {
			settings.SelectedTime = multiTime
		}
		if err := a.store.SaveMultiplica(ctx, settings); err != nil {
			return fmt.Errorf("failed to save multiplica settings: %w", err)
		}
	}
	return nil
}

func validateSettings(levelSet, tablesSet, timeSet bool) error {
	if levelSet && !dictee.Level(dicteeLevel).Valid() {
		return fmt.Errorf("--level must be between 1 and %d", len(dictee.Levels()))
	}
	if tablesSet {
		if len(multiTables) == 0 {
			return fmt.Errorf("--tables must not be empty")
		}
		for _, t := range multiTables {
			if !slices.Contains(model.AllTables, t) {
				return fmt.Errorf("--tables: %d is not a table between 1 and 12", t)
			}
		}
	}
	if timeSet && !slices.Contains(model.AllowedTimes, multiTime) {
		return fmt.Errorf("--time must be one of %v", model.AllowedTimes)
	}
	return nil
}

func newLessonsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lessons",
		Short: "List available dictée lessons",
		Args:  cobra.NoArgs,
		RunE:  runLessonsCmd,
	}
}

func runLessonsCmd(cmd *cobra.Command, _ []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	scores := a.store.LoadDictee(context.Background()).LessonScores
	out := cmd.OutOrStdout()
	for _, l := range a.catalog.All() {
		line := fmt.Sprintf("%-16s %s %s (%d words)", l.ID, l.Emoji, l.Title, l.TotalWords())
		if score, ok := scores[l.ID]; ok {
			line += fmt.Sprintf("  best %d pts", score.BestPoints)
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsLesson, "lesson", "", "lesson filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().IntVar(&statsTop, "top", defaultTopFacts, "number of hardest facts to list")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a text report instead of the browser")
	cmd.Flags().BoolVar(&statsColor, "color", false, "force coloured plots in the text report")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	if statsCurveWindow <= 0 {
		return fmt.Errorf("--curve-window must be > 0")
	}

	cfg := model.StatsConfig{
		LessonID:    statsLesson,
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}

	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if statsPlain {
		report, err := stats.BuildReport(context.Background(), a.store, cfg)
		if err != nil {
			return err
		}
		return report.Render(cmd.OutOrStdout(), stats.RenderOptions{
			Width:       stats.TerminalWidth(),
			CurveWindow: statsCurveWindow,
			TopFacts:    statsTop,
			Color:       statsColor,
		})
	}

	browser := statsui.NewModel(a.store, cfg)
	program := tea.NewProgram(browser, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
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

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore multiplication defaults",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
	cmd.Flags().BoolVar(&resetHistory, "history", false, "also delete stored sessions and runs")
	return cmd
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	if err := a.store.ResetMultiplica(ctx); err != nil {
		return fmt.Errorf("failed to reset multiplica settings: %w", err)
	}
	logErrln("Multiplication settings restored to defaults.")
	if resetHistory {
		if err := a.store.ClearHistory(ctx); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		logErrln("History cleared.")
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) bool {
	if cmd.Flags().Changed(name) {
		return true
	}
	if value == nil {
		return false
	}
	*target = *value
	return true
}

// applyStringEnv lets a non-empty environment value win over the config file
// but not over an explicit flag.
func applyStringEnv(cmd *cobra.Command, name string, target *string, value string) {
	if value == "" || cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) bool {
	if cmd.Flags().Changed(name) {
		return true
	}
	if value == nil {
		return false
	}
	*target = *value
	return true
}

func applyIntSliceConfig(cmd *cobra.Command, name string, target, value *[]int) bool {
	if cmd.Flags().Changed(name) {
		return true
	}
	if value == nil {
		return false
	}
	*target = append([]int(nil), (*value)...)
	return true
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) bool {
	if cmd.Flags().Changed(name) {
		return true
	}
	if value == nil {
		return false
	}
	*target = *value
	return true
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) bool {
	if cmd.Flags().Changed(name) {
		return true
	}
	if value == nil {
		return false
	}
	*target = *value
	return true
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# aprendemos configuration
# Uncomment a value to enable it. CLI flags override config values.

[platform]
# player-name = "Léa"      # Skips the name prompt
# sound = true             # Audio cues and speech
# data-dir = %q

[dictee]
# level = %d                # 1 Débutant, 2 Intermédiaire, 3 Expert
# pro-mode = false         # Hide the letter slots
# lesson-dir = %q

[multiplica]
# tables = [2, 3, 4, 5]    # Tables to practice (1-12)
# time = %d                # Run length: 30, 60 or 90 seconds

[speech]
# command = "espeak-ng"    # espeak-ng, espeak or say
# voice = "fr-fr"
# rate = %.2f              # Relative to the synthesizer default

[log]
# level = %q
# file = %q
`,
		config.DefaultDataDir(),
		defaultLevel,
		config.DefaultLessonDir(),
		defaultTime,
		speech.DefaultRate,
		logging.DefaultLevel,
		config.DefaultLogPath(),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
