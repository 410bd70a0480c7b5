package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/abhisek/quizbox/internal/quiz"
)

// EnvPrefix namespaces the environment variables read by Load.
const EnvPrefix = "QUIZBOX"

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the user-facing settings of quizbox.
type Config struct {
	Bank             string        `mapstructure:"bank"`               // path to a question bank; empty uses the built-in one
	ShuffleOptions   bool          `mapstructure:"shuffle_options"`    // shuffle answer options of every question
	AutoAdvance      bool          `mapstructure:"auto_advance"`       // move on by itself after a correct answer
	AutoAdvanceDelay time.Duration `mapstructure:"auto_advance_delay"` // how long a correct answer stays visible
	Log              LogConfig     `mapstructure:"log"`
}

// LogConfig controls the rotating log file.
type LogConfig struct {
	File       string `mapstructure:"file"` // "off" disables logging
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// Enabled reports whether a log file should be written.
func (l LogConfig) Enabled() bool {
	return l.File != "" && !strings.EqualFold(l.File, "off")
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		AutoAdvance:      true,
		AutoAdvanceDelay: quiz.DefaultAutoAdvanceDelay,
		Log: LogConfig{
			File:       DefaultLogPath(),
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 3,
		},
	}
}

// Policy converts the session-related settings.
func (c Config) Policy() quiz.Policy {
	p := quiz.DefaultPolicy()
	p.AutoAdvance = c.AutoAdvance
	p.AutoAdvanceDelay = c.AutoAdvanceDelay
	return p
}

// Validate checks values that cannot be fixed up silently.
func (c Config) Validate() error {
	if c.AutoAdvanceDelay < 0 {
		return fmt.Errorf("%w: auto_advance_delay must not be negative, got %s", ErrInvalidConfig, c.AutoAdvanceDelay)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 {
		return fmt.Errorf("%w: log rotation limits must not be negative", ErrInvalidConfig)
	}
	return nil
}

// LoadOptions tune where Load looks.
type LoadOptions struct {
	// ConfigFile is an explicit config path. It must exist when set.
	ConfigFile string

	// EnvFile is a dotenv file merged into the environment. A missing
	// file is ignored. Defaults to ".env".
	EnvFile string

	// Overrides win over every other source, keyed like the config file
	// ("auto_advance_delay", "log.level").
	Overrides map[string]any
}

// Load builds a Config from defaults, the optional config file, QUIZBOX_*
// environment variables (including those from a .env file) and overrides,
// in increasing priority.
func Load(opts LoadOptions) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// godotenv never replaces variables that are already set.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	def := DefaultConfig()
	v.SetDefault("bank", def.Bank)
	v.SetDefault("shuffle_options", def.ShuffleOptions)
	v.SetDefault("auto_advance", def.AutoAdvance)
	v.SetDefault("auto_advance_delay", def.AutoAdvanceDelay)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.max_size_mb", def.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", def.Log.MaxBackups)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir := Dir(); dir != "" {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	for key, val := range opts.Overrides {
		v.Set(key, val)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Dir is the directory searched for config.yaml:
// $XDG_CONFIG_HOME/quizbox, falling back to ~/.config/quizbox.
func Dir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "quizbox")
}

// DefaultLogPath resolves the log file location:
// $XDG_STATE_HOME/quizbox/quizbox.log, falling back to
// ~/.local/state/quizbox/quizbox.log. Empty when no home is known.
func DefaultLogPath() string {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, "quizbox", "quizbox.log")
}
