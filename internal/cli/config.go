package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/edgesvg/pkg/config"
)

// configCommand creates the config command for managing the configuration file.
func (c *CLI) configCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the edgesvg configuration file",
		Long: `Manage the configuration file that supplies defaults for render.

Files ending in .yaml or .yml are read as YAML, anything else as TOML.`,
	}

	cmd.PersistentFlags().StringVar(&path, "config", "", "config file (default: $XDG_CONFIG_HOME/edgesvg/config.toml)")

	cmd.AddCommand(c.configInitCommand(&path))
	cmd.AddCommand(c.configPathCommand(&path))
	cmd.AddCommand(c.configShowCommand(&path))

	return cmd
}

// configInitCommand writes a configuration file with default values.
func (c *CLI) configInitCommand(path *string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with default values",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := configPath(*path)
			if err != nil {
				return err
			}
			if _, err := os.Stat(p); err == nil && !force {
				printWarning("Config already exists")
				printFile(p)
				printNextStep("Overwrite with", "edgesvg config init --force")
				return nil
			}
			if err := config.Save(config.DefaultConfig(), p); err != nil {
				return err
			}
			printSuccess("Config written")
			printFile(p)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// configPathCommand prints the configuration file location.
func (c *CLI) configPathCommand(path *string) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := configPath(*path)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p)
			return nil
		},
	}
}

// configShowCommand prints the effective configuration.
func (c *CLI) configShowCommand(path *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := configPath(*path)
			if err != nil {
				return err
			}
			cfg, err := config.Load(p)
			if err != nil {
				return err
			}
			status := "defaults (file not found)"
			if _, err := os.Stat(p); err == nil {
				status = "loaded"
			}
			printKeyValue("Path", p)
			printKeyValue("Status", status)

			data, err := cfg.Marshal(p)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
