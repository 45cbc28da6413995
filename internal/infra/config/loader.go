// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/equilibra/eqboard/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files, a .env file and the
// process environment.
type Loader struct {
	getenv        func(string) string
	dir           string // Working directory holding .eqboard.toml and .env
	globalConfDir string // Path to global config directory (e.g., ~/.config/eqboard)
}

// NewLoader creates a new Loader.
func NewLoader(dir string) *Loader {
	return &Loader{
		getenv:        os.Getenv,
		dir:           dir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config
// directory and environment lookup. A nil getenv reads no variables.
// This is useful for testing.
func NewLoaderWithGlobalDir(dir, globalConfDir string, getenv func(string) string) *Loader {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	return &Loader{
		getenv:        getenv,
		dir:           dir,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// Load returns the merged configuration.
// Precedence, lowest first: defaults, global file, local file, .env, environment.
func (l *Loader) Load() (*domain.Config, error) {
	base := domain.NewDefaultConfig()

	global, err := l.loadGlobalFile()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if global != nil {
		base = mergeConfigs(base, global)
	}

	if l.dir != "" {
		local, err := l.loadFile(domain.LocalConfigPath(l.dir))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if local != nil {
			base = mergeConfigs(base, local)
		}
	}

	env, err := l.environment()
	if err != nil {
		return nil, err
	}
	base = mergeConfigs(base, env)
	return base, nil
}

// LoadGlobal returns defaults merged with the global file only.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	global, err := l.loadGlobalFile()
	if err != nil {
		return nil, err
	}
	return mergeConfigs(domain.NewDefaultConfig(), global), nil
}

func (l *Loader) loadGlobalFile() (*fileConfig, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToFileConfig(raw), nil
}

// environment reads the .env file of the working directory, then lets the
// process environment override it.
func (l *Loader) environment() (*fileConfig, error) {
	vars := map[string]string{}
	if l.dir != "" {
		dotenv, err := godotenv.Read(filepath.Join(l.dir, domain.EnvFileName))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", domain.EnvFileName, err)
		}
		for k, v := range dotenv {
			vars[k] = v
		}
	}
	for _, k := range []string{domain.EnvAPIURL, domain.EnvToken, domain.EnvProject, domain.EnvLogLevel} {
		if v := l.getenv(k); v != "" {
			vars[k] = v
		}
	}

	res := &fileConfig{}
	if v := vars[domain.EnvAPIURL]; v != "" {
		res.BaseURL = &v
	}
	if v := vars[domain.EnvToken]; v != "" {
		res.Token = &v
	}
	if v := vars[domain.EnvProject]; v != "" {
		id := domain.ParseEntityID(v)
		res.Project = &id
	}
	if v := vars[domain.EnvLogLevel]; v != "" {
		v = strings.ToLower(v)
		res.LogLevel = &v
	}
	return res, nil
}

// fileConfig is one configuration layer. Nil fields are not set by it.
type fileConfig struct {
	BaseURL            *string
	Token              *string
	Timeout            *time.Duration
	DedupWindow        *time.Duration
	RateLimit          *float64
	Burst              *int
	Project            *domain.EntityID
	StagnantAfter      *time.Duration
	ReconcileOnSuccess *bool
	LogLevel           *string
	ColumnWidth        *int
	Warnings           []string
}

// convertRawToFileConfig converts the raw map to a config layer and collects warnings.
func convertRawToFileConfig(raw map[string]any) *fileConfig {
	res := &fileConfig{}
	var warnings []string

	duration := func(section, key string, v any) *time.Duration {
		s, ok := v.(string)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("invalid value for [%s].%s: expected a duration string", section, key))
			return nil
		}
		d, err := domain.ParseDuration(s)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("invalid value for [%s].%s: %v", section, key, err))
			return nil
		}
		return &d
	}

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
			continue
		}
		switch section {
		case "api":
			for k, v := range m {
				switch k {
				case "base_url":
					if s, ok := v.(string); ok {
						res.BaseURL = &s
					}
				case "token":
					if s, ok := v.(string); ok {
						res.Token = &s
					}
				case "timeout":
					res.Timeout = duration(section, k, v)
				case "dedup_window":
					res.DedupWindow = duration(section, k, v)
				case "rate_limit":
					switch n := v.(type) {
					case float64:
						res.RateLimit = &n
					case int64:
						f := float64(n)
						res.RateLimit = &f
					}
				case "burst":
					if n, ok := v.(int64); ok {
						b := int(n)
						res.Burst = &b
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [api]: %s", k))
				}
			}
		case "board":
			for k, v := range m {
				switch k {
				case "project":
					var id domain.EntityID
					switch p := v.(type) {
					case string:
						id = domain.ParseEntityID(p)
					case int64:
						id = domain.IDFromInt64(p)
					}
					if !id.IsZero() {
						res.Project = &id
					}
				case "stagnant_after":
					res.StagnantAfter = duration(section, k, v)
				case "reconcile_on_success":
					if b, ok := v.(bool); ok {
						res.ReconcileOnSuccess = &b
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [board]: %s", k))
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					if s, ok := v.(string); ok {
						res.LogLevel = &s
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
				}
			}
		case "tui":
			for k, v := range m {
				switch k {
				case "columns_width":
					if n, ok := v.(int64); ok {
						w := int(n)
						res.ColumnWidth = &w
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [tui]: %s", k))
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// mergeConfigs merges a layer onto base, with override taking precedence.
func mergeConfigs(base *domain.Config, override *fileConfig) *domain.Config {
	result := *base
	if len(override.Warnings) > 0 {
		result.Warnings = append(append([]string{}, base.Warnings...), override.Warnings...)
	}

	if override.BaseURL != nil {
		result.API.BaseURL = *override.BaseURL
	}
	if override.Token != nil {
		result.API.Token = *override.Token
	}
	if override.Timeout != nil {
		result.API.Timeout = *override.Timeout
	}
	if override.DedupWindow != nil {
		result.API.DedupWindow = *override.DedupWindow
	}
	if override.RateLimit != nil {
		result.API.RateLimit = *override.RateLimit
	}
	if override.Burst != nil {
		result.API.Burst = *override.Burst
	}
	if override.Project != nil {
		result.Board.Project = *override.Project
	}
	if override.StagnantAfter != nil {
		result.Board.StagnantAfter = *override.StagnantAfter
	}
	if override.ReconcileOnSuccess != nil {
		result.Board.ReconcileOnSuccess = *override.ReconcileOnSuccess
	}
	if override.LogLevel != nil {
		result.Log.Level = *override.LogLevel
	}
	if override.ColumnWidth != nil {
		result.TUI.ColumnWidth = *override.ColumnWidth
	}
	return &result
}
