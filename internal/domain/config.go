package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"path/filepath"
	"strconv"
	"text/template"
	"time"
)

//go:embed config_template.toml
var configTemplateContent string

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string    `toml:"-"`
	API      APIConfig   `toml:"api"`
	Board    BoardConfig `toml:"board"`
	Log      LogConfig   `toml:"log"`
	TUI      TUIConfig   `toml:"tui"`
}

// APIConfig holds backend connection settings from [api] section.
// Fields are ordered to minimize memory padding.
type APIConfig struct {
	BaseURL     string        `toml:"base_url"`
	Token       string        `toml:"token,omitempty"` // Bearer token, sent when non-empty
	Timeout     time.Duration `toml:"timeout"`
	DedupWindow time.Duration `toml:"dedup_window"`         // How long a settled GET keeps coalescing callers
	RateLimit   float64       `toml:"rate_limit,omitempty"` // Requests per second; 0 disables
	Burst       int           `toml:"burst,omitempty"`
}

// BoardConfig holds board behaviour settings from [board] section.
type BoardConfig struct {
	Project            EntityID      `toml:"project,omitempty"`
	StagnantAfter      time.Duration `toml:"stagnant_after"`
	ReconcileOnSuccess bool          `toml:"reconcile_on_success"` // Silent refresh after successful mutations too
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // Log level: debug, info, warn, error
}

// TUIConfig holds terminal board settings from [tui] section.
type TUIConfig struct {
	ColumnWidth int `toml:"columns_width,omitempty"`
}

// Default configuration values.
const (
	DefaultBaseURL       = "http://localhost:8000"
	DefaultTimeout       = 15 * time.Second
	DefaultDedupWindow   = 200 * time.Millisecond
	DefaultStagnantAfter = 72 * time.Hour
	DefaultLogLevel      = "info"
	DefaultColumnWidth   = 32
)

// Directory and file names for eqboard.
const (
	AppDirName         = "eqboard"       // Directory name under XDG config/state homes
	ConfigFileName     = "config.toml"   // Global config file name
	LocalConfigFile    = ".eqboard.toml" // Config file name in the working directory
	EnvFileName        = ".env"          // Environment overlay in the working directory
	LogDirName         = "logs"
	GlobalLogFileName  = "eqboard.log"
	ProjectLogFileName = "project-%s.log"
)

// Environment variables that override file configuration.
const (
	EnvAPIURL   = "EQBOARD_API_URL"
	EnvToken    = "EQBOARD_TOKEN"
	EnvProject  = "EQBOARD_PROJECT"
	EnvLogLevel = "EQBOARD_LOG_LEVEL"
)

// GlobalConfigDir returns the global config directory.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// GlobalConfigPath returns the global config path.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalConfigDir(configHome), ConfigFileName)
}

// LocalConfigPath returns the per-directory config path.
func LocalConfigPath(dir string) string {
	return filepath.Join(dir, LocalConfigFile)
}

// LogDir returns the log directory.
// stateHome is typically XDG_STATE_HOME or ~/.local/state (resolved by caller).
func LogDir(stateHome string) string {
	return filepath.Join(stateHome, AppDirName, LogDirName)
}

// GlobalLogPath returns the log file that receives every entry.
func GlobalLogPath(logDir string) string {
	return filepath.Join(logDir, GlobalLogFileName)
}

// ProjectLogPath returns the log file for one project.
func ProjectLogPath(logDir string, projectID EntityID) string {
	return filepath.Join(logDir, fmt.Sprintf(ProjectLogFileName, projectID))
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:     DefaultBaseURL,
			Timeout:     DefaultTimeout,
			DedupWindow: DefaultDedupWindow,
		},
		Board: BoardConfig{
			StagnantAfter:      DefaultStagnantAfter,
			ReconcileOnSuccess: true,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		TUI: TUIConfig{
			ColumnWidth: DefaultColumnWidth,
		},
	}
}

// ParseDuration accepts Go duration strings ("200ms", "72h") and a day
// suffix ("3d").
func ParseDuration(s string) (time.Duration, error) {
	if n := len(s); n > 1 && s[n-1] == 'd' {
		days, err := strconv.Atoi(s[:n-1])
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}

// templateData holds all data for rendering the config template.
type templateData struct {
	BaseURL            string
	Project            string
	Timeout            string
	DedupWindow        string
	StagnantAfter      string
	LogLevel           string
	RateLimit          float64
	Burst              int
	ColumnWidth        int
	ReconcileOnSuccess bool
}

// RenderConfigTemplate renders the commented config template from cfg.
// The token is never written.
func RenderConfigTemplate(cfg *Config) string {
	data := templateData{
		BaseURL:            cfg.API.BaseURL,
		Project:            cfg.Board.Project.String(),
		Timeout:            cfg.API.Timeout.String(),
		DedupWindow:        cfg.API.DedupWindow.String(),
		StagnantAfter:      cfg.Board.StagnantAfter.String(),
		LogLevel:           cfg.Log.Level,
		RateLimit:          cfg.API.RateLimit,
		Burst:              cfg.API.Burst,
		ColumnWidth:        cfg.TUI.ColumnWidth,
		ReconcileOnSuccess: cfg.Board.ReconcileOnSuccess,
	}

	tmpl, err := template.New("config").Delims("<<", ">>").Parse(configTemplateContent)
	if err != nil {
		// Should never happen with embedded template
		panic(fmt.Sprintf("failed to parse config template: %v", err))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		panic(fmt.Sprintf("failed to execute config template: %v", err))
	}
	return buf.String()
}
