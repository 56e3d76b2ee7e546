// Package main provides the CLI entrypoint for footwork.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/footwork/internal/config"
	"github.com/verte-zerg/footwork/internal/generator"
	"github.com/verte-zerg/footwork/internal/logging"
	"github.com/verte-zerg/footwork/internal/model"
	"github.com/verte-zerg/footwork/internal/plan"
	"github.com/verte-zerg/footwork/internal/scheduler"
	"github.com/verte-zerg/footwork/internal/tui"
)

const (
	defaultInterval = 3 * time.Second
	defaultJitter   = 200 * time.Millisecond
	defaultLead     = 150 * time.Millisecond
	defaultVisible  = 450 * time.Millisecond
	defaultHold     = 300 * time.Millisecond
	defaultFPS      = tui.DefaultFPS
	defaultPlanCues = 10
)

var (
	drillInterval time.Duration
	drillJitter   time.Duration
	drillNoJitter bool
	drillLead     time.Duration
	drillVisible  time.Duration
	drillHold     time.Duration
	drillFPS      int

	logLevel string
	logFile  string

	planCues int
	planSeed int64
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "footwork",
		Short:         "Split-step footwork reaction trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runDrillCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.DurationVar(&drillInterval, "interval", defaultInterval, "mean time between cues")
	flags.DurationVar(&drillJitter, "jitter", defaultJitter, "random +/- offset applied to the interval")
	flags.BoolVar(&drillNoJitter, "no-jitter", false, "use the exact interval every time")
	flags.DurationVar(&drillLead, "lead", defaultLead, "how long the split-step warning shows before a cue")
	flags.DurationVar(&drillVisible, "visible", defaultVisible, "how long a target stays lit")
	flags.DurationVar(&drillHold, "hold", defaultHold, "how long the warning lingers after a cue")
	flags.IntVar(&drillFPS, "fps", defaultFPS, "frames per second")
	flags.StringVar(&logLevel, "log-level", "info", "log level (error, warn, info, debug)")
	flags.StringVar(&logFile, "log-file", "", "write logs to this file (suggested: "+config.DefaultLogPath()+")")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newPlanCmd())

	return rootCmd
}

func runDrillCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	drill, err := resolveDrillConfig(cmd, fileCfg)
	if err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("footwork needs an interactive terminal (try: footwork plan)")
	}

	logger, closeLog, err := setupLogger(cmd, fileCfg)
	if err != nil {
		return err
	}
	defer closeLog()

	sched, err := scheduler.New(drill.Schedule, generator.New())
	if err != nil {
		return err
	}
	logger.Info("drill ready",
		"interval", drill.Schedule.BaseInterval,
		"jitter", drill.Schedule.Jitter,
		"jitter_enabled", drill.Schedule.JitterEnabled,
		"fps", drill.FPS,
	)

	m := tui.NewModel(sched, drill.FPS, logger)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		logger.Error("tui exited", "err", err)
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print a simulated cue timeline",
		Args:  cobra.NoArgs,
		RunE:  runPlanCmd,
	}
	cmd.Flags().IntVar(&planCues, "cues", defaultPlanCues, "number of cues to simulate")
	cmd.Flags().Int64Var(&planSeed, "seed", 0, "random seed (0 picks one)")
	return cmd
}

func runPlanCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	drill, err := resolveDrillConfig(cmd, fileCfg)
	if err != nil {
		return err
	}

	gen := generator.New()
	if planSeed != 0 {
		gen = generator.NewWithSource(rand.New(rand.NewSource(planSeed)))
	}
	step := time.Second / time.Duration(drill.FPS)
	entries, err := plan.Simulate(drill.Schedule, gen, planCues, step)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	return plan.Write(out, entries, shouldUseColor(out))
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

// resolveDrillConfig merges file values under any flags set on the command line.
func resolveDrillConfig(cmd *cobra.Command, fileCfg config.FileConfig) (model.DrillConfig, error) {
	drill := fileCfg.Drill
	applyDurationConfig(cmd, "interval", &drillInterval, drill.Interval)
	applyDurationConfig(cmd, "jitter", &drillJitter, drill.Jitter)
	applyBoolConfig(cmd, "no-jitter", &drillNoJitter, drill.NoJitter)
	applyDurationConfig(cmd, "lead", &drillLead, drill.Lead)
	applyDurationConfig(cmd, "visible", &drillVisible, drill.Visible)
	applyDurationConfig(cmd, "hold", &drillHold, drill.Hold)
	applyIntConfig(cmd, "fps", &drillFPS, drill.FPS)

	cfg := model.DrillConfig{
		Schedule: model.ScheduleConfig{
			BaseInterval:  drillInterval,
			Jitter:        drillJitter,
			JitterEnabled: !drillNoJitter && drillJitter > 0,
			PreCueLead:    drillLead,
			CueVisible:    drillVisible,
			PostCueHold:   drillHold,
		},
		FPS: drillFPS,
	}
	if err := validateConfig(cfg); err != nil {
		return model.DrillConfig{}, err
	}
	return cfg, nil
}

func validateConfig(cfg model.DrillConfig) error {
	if err := cfg.Schedule.Validate(); err != nil {
		return err
	}
	if cfg.FPS <= 0 || cfg.FPS > 240 {
		return fmt.Errorf("--fps must be between 1 and 240")
	}
	return nil
}

func setupLogger(cmd *cobra.Command, fileCfg config.FileConfig) (*slog.Logger, func(), error) {
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-file", &logFile, fileCfg.Log.File)

	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return nil, nil, err
	}
	if logFile == "" {
		return logging.Discard(), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := tea.LogToFile(logFile, "footwork")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	closeLog := func() {
		if cerr := f.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}
	return logging.New(f, level), closeLog, nil
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

func applyDurationConfig(cmd *cobra.Command, name string, target *time.Duration, value *config.Duration) {
	v := value.Value()
	if v == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *v
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

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func shouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# footwork configuration
# Uncomment a value to enable it. CLI flags override config values.

[drill]
# interval = %q          # Mean time between cues
# jitter = %q          # Random +/- offset applied to the interval
# no-jitter = false         # Use the exact interval every time
# lead = %q            # Warning shown this long before a cue
# visible = %q         # How long a target stays lit
# hold = %q            # Warning lingers this long after a cue
# fps = %d                  # Frames per second

[log]
# level = "info"            # error, warn, info, debug
# file = %q
`,
		defaultInterval.String(),
		defaultJitter.String(),
		defaultLead.String(),
		defaultVisible.String(),
		defaultHold.String(),
		defaultFPS,
		config.DefaultLogPath(),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
