package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagscloud/pkg/config"
	"github.com/matzehuels/tagscloud/pkg/errors"
)

// configCommand creates the config command with init and show subcommands.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the tagscloud config file",
		Long: `Manage the tagscloud config file.

Settings are read from the file named by --config, or from
$XDG_CONFIG_HOME/tagscloud/config.toml (~/.config/tagscloud/config.toml)
when it exists. Command-line flags override file values.`,
	}

	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configShowCommand())

	return cmd
}

// configInitCommand writes the default config to a file.
func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			path, err := initConfig(path, force)
			if err != nil {
				return err
			}
			printSuccess("Config written")
			printFile(path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}

// initConfig writes [config.Default] to path, or to the default location
// when path is empty, and returns the path written.
func initConfig(path string, force bool) (string, error) {
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return "", fmt.Errorf("locate config dir: %w", err)
		}
		path = p
	}
	if err := errors.ValidateOutputPath(path); err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err == nil && !force {
		return "", errors.New(errors.ErrCodeInvalidPath, "%s already exists (use --force to overwrite)", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := config.Write(f, config.Default()); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, f.Close()
}

// configShowCommand prints the effective config as TOML.
func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			return config.Write(cmd.OutOrStdout(), cfg)
		},
	}
}
