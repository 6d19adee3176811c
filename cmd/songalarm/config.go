package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/songalarm/internal/config"
)

var configOpts struct {
	format string
	force  bool
}

// configCmd represents the config command group.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the configuration file",
	Long: `Inspect or create the songalarm configuration file.

Use 'songalarm config show' to print the effective configuration.
Use 'songalarm config init' to write a default configuration file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShowRun(cmd, args)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  `Print the configuration after defaults, config file and flags are applied.`,
	RunE:  configShowRun,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write the effective configuration to the config file path.
Refuses to overwrite an existing file unless --force is given.`,
	RunE: configInitRun,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)

	for _, cmd := range []*cobra.Command{configCmd, configShowCmd} {
		cmd.Flags().StringVarP(&configOpts.format, "format", "f", config.FormatTOML,
			"Output format (toml, yaml)")
	}
	configInitCmd.Flags().BoolVar(&configOpts.force, "force", false,
		"Overwrite an existing config file")
}

func configShowRun(cmd *cobra.Command, args []string) error {
	data, err := cfg.Marshal(configOpts.format)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func configInitRun(cmd *cobra.Command, args []string) error {
	path := globalOpts.configPath
	if path == "" {
		path = config.ConfigPath()
	}
	if path == "" {
		return errors.New("unable to determine config path")
	}

	if _, err := os.Stat(path); err == nil && !configOpts.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	_, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return err
}
