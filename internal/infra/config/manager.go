package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/equilibra/eqboard/internal/domain"
)

// Ensure Manager implements domain.ConfigManager.
var _ domain.ConfigManager = (*Manager)(nil)

// Manager manages configuration files.
type Manager struct {
	dir           string // Working directory holding .eqboard.toml
	globalConfDir string // Path to global config directory (e.g., ~/.config/eqboard)
}

// NewManager creates a new Manager.
func NewManager(dir string) *Manager {
	return &Manager{
		dir:           dir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewManagerWithGlobalDir creates a new Manager with a custom global config directory.
// This is useful for testing.
func NewManagerWithGlobalDir(dir, globalConfDir string) *Manager {
	return &Manager{
		dir:           dir,
		globalConfDir: globalConfDir,
	}
}

// GetGlobalConfigInfo returns information about the global config file.
func (m *Manager) GetGlobalConfigInfo() domain.ConfigInfo {
	if m.globalConfDir == "" {
		return domain.ConfigInfo{}
	}
	return m.getConfigInfo(filepath.Join(m.globalConfDir, domain.ConfigFileName))
}

// GetLocalConfigInfo returns information about the working directory config file.
func (m *Manager) GetLocalConfigInfo() domain.ConfigInfo {
	if m.dir == "" {
		return domain.ConfigInfo{}
	}
	return m.getConfigInfo(domain.LocalConfigPath(m.dir))
}

// getConfigInfo reads a config file and returns its info.
func (m *Manager) getConfigInfo(path string) domain.ConfigInfo {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.ConfigInfo{
			Path:   path,
			Exists: false,
		}
	}
	return domain.ConfigInfo{
		Path:    path,
		Content: string(content),
		Exists:  true,
	}
}

// InitGlobalConfig creates a global config file rendered from cfg.
func (m *Manager) InitGlobalConfig(cfg *domain.Config) error {
	if m.globalConfDir == "" {
		return errors.New("global config directory not available")
	}
	if err := os.MkdirAll(m.globalConfDir, 0700); err != nil {
		return err
	}
	return m.initConfig(filepath.Join(m.globalConfDir, domain.ConfigFileName), cfg)
}

// InitLocalConfig creates .eqboard.toml in the working directory.
func (m *Manager) InitLocalConfig(cfg *domain.Config) error {
	if m.dir == "" {
		return errors.New("working directory not available")
	}
	return m.initConfig(domain.LocalConfigPath(m.dir), cfg)
}

// initConfig creates a config file from the template.
func (m *Manager) initConfig(path string, cfg *domain.Config) error {
	if _, err := os.Stat(path); err == nil {
		return domain.ErrConfigExists
	}
	content := domain.RenderConfigTemplate(cfg)
	return os.WriteFile(path, []byte(content), 0600)
}
