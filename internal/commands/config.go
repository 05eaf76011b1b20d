package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sanchai/sanchai/internal/config"
	"github.com/sanchai/sanchai/internal/render"
)

// NewConfigCmd creates the config command and its subcommands
func NewConfigCmd(deps *Dependencies, opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
		Long: `Show or change sanchai settings stored in ~/.sanchai/config.json.

Environment variables (` + config.EnvBackendURL + `, ` + config.EnvTimeout + `, ` + config.EnvLogFile + `)
and a .env file in the working directory override the file; flags override both.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(deps, opts)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(deps, opts)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Change one setting in the config file",
		Long:  "Change one setting in the config file.\n\nKeys: " + strings.Join(config.SettableKeys(), ", "),
		Args:  cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return config.SettableKeys(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfig(deps, args[0], args[1])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(deps.Stdout, path)
			return nil
		},
	})

	return cmd
}

func showConfig(deps *Dependencies, opts *globalOptions) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	fmt.Fprintln(deps.Stdout, string(data))
	return nil
}

func setConfig(deps *Dependencies, key, value string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := validateValue(key, value); err != nil {
		return err
	}
	if err := config.Set(&cfg, key, value); err != nil {
		return err
	}

	if err := config.SaveConfig(cfg); err != nil {
		return err
	}

	fmt.Fprintln(deps.Stdout, successStyle.Render(fmt.Sprintf("ok %s = %s", key, value)))
	return nil
}

// validateValue checks values whose valid set is owned by the render package.
// A markdown style may also be the path of a glamour JSON style file.
func validateValue(key, value string) error {
	switch key {
	case "markdown.style":
		if slices.Contains(render.StyleNames(), value) {
			return nil
		}
		if info, err := os.Stat(value); err == nil && !info.IsDir() {
			return nil
		}
		return fmt.Errorf("unknown markdown style %q (use %s, or a path to a style file)",
			value, strings.Join(render.StyleNames(), ", "))
	case "tui_theme":
		if !slices.Contains(render.TUIThemeNames(), value) {
			return fmt.Errorf("unknown tui theme %q (use %s)", value, strings.Join(render.TUIThemeNames(), ", "))
		}
	}
	return nil
}
