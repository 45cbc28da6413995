package cli

import (
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/equilibra/eqboard/internal/app"
	"github.com/equilibra/eqboard/internal/domain"
	"github.com/equilibra/eqboard/internal/usecase"
)

// newConfigCommand creates the config command.
func newConfigCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `Manage eqboard configuration files and settings.`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newConfigShowCommand(c))
	cmd.AddCommand(newConfigTemplateCommand())
	cmd.AddCommand(newConfigInitCommand(c))

	return cmd
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display effective configuration after merging all sources.

Sources are applied in order: defaults, global config, .eqboard.toml in the
working directory, .env, then EQBOARD_* environment variables.
The API token is never printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ShowConfigUseCase().Execute(cmd.Context(), usecase.ShowConfigInput{})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()

			// Display loaded files section
			_, _ = fmt.Fprintln(w, "[Loaded from]")
			for _, info := range []domain.ConfigInfo{out.GlobalConfig, out.LocalConfig} {
				if info.Exists {
					_, _ = fmt.Fprintf(w, "- %s\n", info.Path)
				} else {
					_, _ = fmt.Fprintf(w, "- %s (not found)\n", info.Path)
				}
			}
			_, _ = fmt.Fprintln(w)

			// Display effective config in TOML format
			_, _ = fmt.Fprintln(w, "[Effective Config]")
			return formatEffectiveConfig(w, out.EffectiveConfig)
		},
	}

	return cmd
}

// formatEffectiveConfig formats the effective config in TOML format.
// Sections are read from the toml tags so new fields show up without
// changes here. Durations are printed in the same form the loader accepts.
func formatEffectiveConfig(w io.Writer, cfg *domain.Config) error {
	output := make(map[string]any)

	cfgVal := reflect.ValueOf(cfg).Elem()
	cfgType := cfgVal.Type()
	for i := 0; i < cfgVal.NumField(); i++ {
		tagName := tomlName(cfgType.Field(i))
		if tagName == "" {
			continue
		}
		section := cfgVal.Field(i)
		if section.Kind() != reflect.Struct {
			continue
		}

		values := make(map[string]any)
		for j := 0; j < section.NumField(); j++ {
			field := section.Type().Field(j)
			key := tomlName(field)
			if key == "" {
				continue
			}
			val := section.Field(j)
			switch {
			case key == "token":
				if val.String() != "" {
					values[key] = "********"
				}
			case field.Type == reflect.TypeOf(time.Duration(0)):
				values[key] = time.Duration(val.Int()).String()
			case strings.Contains(field.Tag.Get("toml"), "omitempty") && val.IsZero():
				// omitempty: skip zero values
			default:
				values[key] = val.Interface()
			}
		}
		output[tagName] = values
	}

	if err := toml.NewEncoder(w).Encode(output); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// tomlName returns the key of a toml-tagged field, or "" when skipped.
func tomlName(field reflect.StructField) string {
	tag := field.Tag.Get("toml")
	if tag == "" || tag == "-" {
		return ""
	}
	return strings.Split(tag, ",")[0]
}

// newConfigTemplateCommand creates the config template subcommand.
func newConfigTemplateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Output configuration template",
		Long: `Output a configuration file template with default values to stdout.

It does not read existing configuration files and works even if they are broken.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _ = fmt.Fprint(cmd.OutOrStdout(), domain.RenderConfigTemplate(domain.NewDefaultConfig()))
			return nil
		},
	}
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand(c *app.Container) *cobra.Command {
	var (
		global bool
		apiURL string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate configuration file template",
		Long: `Generate a configuration file template.

By default, creates .eqboard.toml in the working directory.
With --global, creates the global configuration file at ~/.config/eqboard/config.toml.
An explicit --project and --api-url are written into the file instead of the defaults.

Error conditions:
- Target file already exists: error`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var project domain.EntityID
			if cmd.Flags().Changed("project") {
				project = c.ProjectID()
			}
			out, err := c.InitConfigUseCase().Execute(cmd.Context(), usecase.InitConfigInput{
				ProjectID: project,
				BaseURL:   apiURL,
				Global:    global,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", out.Path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Generate global configuration")
	cmd.Flags().StringVar(&apiURL, "api-url", "", "Backend root URL")

	return cmd
}
