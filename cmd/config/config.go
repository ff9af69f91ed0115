// Package config initializes viper-backed configuration and constructs the
// editing service for the CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mfiguera/notepad/pkg/autosave"
	"github.com/mfiguera/notepad/pkg/history"
	"github.com/mfiguera/notepad/pkg/hostsvc"
	"github.com/mfiguera/notepad/pkg/registry"
	"github.com/mfiguera/notepad/pkg/service"
	"github.com/mfiguera/notepad/pkg/session"
)

var (
	cfgFile string

	// Yes makes every confirmation prompt answer yes.
	Yes bool
	// Verbose raises logging to debug level.
	Verbose bool
)

// InitConfig wires viper: config file, env overrides, defaults.
func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "notepad")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("NOTEPAD")

	viper.SetDefault("data_dir", filepath.Join(os.Getenv("HOME"), ".local", "share", "notepad"))
	viper.SetDefault("editor", os.Getenv("EDITOR"))
	viper.SetDefault("max_recent", registry.DefaultMaxRecent)
	viper.SetDefault("max_history", history.DefaultMaxEntries)
	viper.SetDefault("session_interval", autosave.DefaultSessionInterval)
	viper.SetDefault("history_interval", autosave.DefaultHistoryInterval)

	_ = viper.ReadInConfig()
}

// NewLogger builds the shared logger. Quiet unless there are issues.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if Verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
	return logger
}

// InitService constructs the editing service from the effective settings.
func InitService(host hostsvc.Services, confirm session.ConfirmFunc, logger *logrus.Logger) (*service.Service, error) {
	cfg := &service.Config{
		DataDir:         viper.GetString("data_dir"),
		Editor:          viper.GetString("editor"),
		MaxRecent:       viper.GetInt("max_recent"),
		MaxHistory:      viper.GetInt("max_history"),
		SessionInterval: viper.GetDuration("session_interval"),
		HistoryInterval: viper.GetDuration("history_interval"),
	}

	svc, err := service.New(cfg, host, confirm, logger)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// AddGlobalFlags attaches the persistent flags shared by every subcommand.
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/notepad/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&Yes, "yes", "y", false, "assume yes for confirmation prompts")
	cmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "v", false, "enable debug logging")
}

// Settings mirrors the config file keys for scaffolding and display.
type Settings struct {
	DataDir         string        `yaml:"data_dir"`
	Editor          string        `yaml:"editor"`
	MaxRecent       int           `yaml:"max_recent"`
	MaxHistory      int           `yaml:"max_history"`
	SessionInterval time.Duration `yaml:"session_interval"`
	HistoryInterval time.Duration `yaml:"history_interval"`
}

// Effective returns the settings currently in force.
func Effective() Settings {
	return Settings{
		DataDir:         viper.GetString("data_dir"),
		Editor:          viper.GetString("editor"),
		MaxRecent:       viper.GetInt("max_recent"),
		MaxHistory:      viper.GetInt("max_history"),
		SessionInterval: viper.GetDuration("session_interval"),
		HistoryInterval: viper.GetDuration("history_interval"),
	}
}

// Render marshals settings to YAML for `config show` and `config init`.
func (s Settings) Render() (string, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("marshal settings: %w", err)
	}
	return string(data), nil
}

// WriteDefault scaffolds a config file at path with the effective settings.
// Refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	rendered, err := Effective().Render()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, []byte(rendered), 0644)
}

// DefaultPath is where `config init` writes when no --config is given.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "notepad", "config.yaml"), nil
}
