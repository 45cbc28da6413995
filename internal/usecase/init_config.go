// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"
	"net/url"

	"github.com/equilibra/eqboard/internal/domain"
)

// InitConfigInput contains the input for the InitConfig use case.
// Fields are ordered to minimize memory padding.
type InitConfigInput struct {
	ProjectID domain.EntityID // Written as board.project when set
	BaseURL   string          // Written as api.base_url when set
	Global    bool            // Write the global file instead of .eqboard.toml
}

// InitConfigOutput contains the output of the InitConfig use case.
type InitConfigOutput struct {
	Config *domain.Config // Values rendered into the file
	Path   string
}

// InitConfig writes a configuration file rendered from the defaults.
type InitConfig struct {
	configManager domain.ConfigManager
}

// NewInitConfig creates a new InitConfig use case.
func NewInitConfig(configManager domain.ConfigManager) *InitConfig {
	return &InitConfig{configManager: configManager}
}

// Execute renders the defaults with the given overrides and writes them.
// An existing file is never overwritten.
func (uc *InitConfig) Execute(_ context.Context, in InitConfigInput) (*InitConfigOutput, error) {
	cfg := domain.NewDefaultConfig()
	if !in.ProjectID.IsZero() {
		if !in.ProjectID.IsInteger() {
			return nil, fmt.Errorf("%w: project %q", domain.ErrInvalidID, in.ProjectID)
		}
		cfg.Board.Project = in.ProjectID.Canonical()
	}
	if in.BaseURL != "" {
		u, err := url.Parse(in.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("invalid api url %q: must be absolute", in.BaseURL)
		}
		cfg.API.BaseURL = in.BaseURL
	}

	info := uc.configManager.GetLocalConfigInfo()
	write := uc.configManager.InitLocalConfig
	if in.Global {
		info = uc.configManager.GetGlobalConfigInfo()
		write = uc.configManager.InitGlobalConfig
	}
	if err := write(cfg); err != nil {
		return nil, err
	}
	return &InitConfigOutput{Path: info.Path, Config: cfg}, nil
}
