package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/quizbox/internal/bank"
	"github.com/abhisek/quizbox/internal/config"
	"github.com/abhisek/quizbox/internal/logging"
	"github.com/abhisek/quizbox/internal/quiz"
)

var rootCmd = &cobra.Command{
	Use:   "quizbox",
	Short: "Terminal quiz runner",
	Long: `Quizbox is a terminal quiz runner for single-choice, multi-select and typed-answer questions.

Missed questions come back in extra rounds until every one has been answered correctly.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a config file (default $XDG_CONFIG_HOME/quizbox/config.yaml)")
	pf.String("bank", "", "Question bank file, .json or .yaml (overrides QUIZBOX_BANK)")
	pf.Bool("shuffle-options", false, "Shuffle the answer options of every question")
	pf.Duration("delay", quiz.DefaultAutoAdvanceDelay, "How long a correct answer stays on screen")
	pf.Bool("no-auto-advance", false, "Wait for Enter after correct answers too")

	rootCmd.AddCommand(drillCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(versionCmd)
}

// flagOverrides maps the flags the user actually set onto config keys, so
// unset flags never shadow the config file or environment.
func flagOverrides(cmd *cobra.Command) map[string]any {
	flags := cmd.Flags()
	out := make(map[string]any)

	if flags.Changed("bank") {
		v, _ := flags.GetString("bank")
		out["bank"] = v
	}
	if flags.Changed("shuffle-options") {
		v, _ := flags.GetBool("shuffle-options")
		out["shuffle_options"] = v
	}
	if flags.Changed("delay") {
		v, _ := flags.GetDuration("delay")
		out["auto_advance_delay"] = v
	}
	if flags.Changed("no-auto-advance") {
		v, _ := flags.GetBool("no-auto-advance")
		out["auto_advance"] = !v
	}
	return out
}

// loadConfig resolves the configuration for cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: path,
		Overrides:  flagOverrides(cmd),
	})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// runtime bundles what the interactive commands share.
type runtime struct {
	cfg      *config.Config
	logger   *zap.Logger
	store    *bank.Store
	closeLog func() error
}

func (r *runtime) Close() error {
	return r.closeLog()
}

// setup loads config, opens the log and loads the question bank.
func setup(cmd *cobra.Command) (*runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("set up logging: %w", err)
	}

	store, err := loadBank(cfg.Bank)
	if err != nil {
		logger.Error("question bank rejected", zap.String("path", cfg.Bank), zap.Error(err))
		_ = closeLog()
		return nil, err
	}
	logger.Info("question bank loaded",
		zap.String("source", store.Source()),
		zap.Int("questions", store.Len()))

	return &runtime{cfg: cfg, logger: logger, store: store, closeLog: closeLog}, nil
}

// loadBank reads path, or returns the built-in bank when path is empty.
func loadBank(path string) (*bank.Store, error) {
	if path == "" {
		return bank.Default(), nil
	}
	return bank.Load(path)
}
