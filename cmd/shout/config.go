package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/shout/internal/config"
)

var configOpts struct {
	format   string
	defaults bool
	write    bool
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration shout and shoutd run with: the defaults overlaid
by the config file.

Use --defaults to ignore the file and --write to save the printed
configuration to the config path, for example to start a new config file:

  shout config --defaults --write`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().StringVarP(&configOpts.format, "format", "f", "toml", "Output format: toml or yaml")
	configCmd.Flags().BoolVar(&configOpts.defaults, "defaults", false, "Print the built-in defaults")
	configCmd.Flags().BoolVar(&configOpts.write, "write", false, "Also save the configuration to the config path")
}

func runConfig(cmd *cobra.Command, args []string) error {
	c := cfg
	if configOpts.defaults {
		c = config.DefaultConfig()
	}

	if err := printConfig(cmd.OutOrStdout(), c, configOpts.format); err != nil {
		return err
	}

	if configOpts.write {
		path := globalOpts.configPath
		if path == "" {
			path = config.ConfigPath()
		}
		if _, err := os.Stat(path); err == nil && !configOpts.defaults {
			logger.Info("overwriting config file", "path", path)
		}
		if err := c.Save(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", path)
	}
	return nil
}

// printConfig renders c as TOML or YAML.
func printConfig(w io.Writer, c *config.Config, format string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "toml", "":
		data, err = toml.Marshal(c)
	case "yaml", "yml":
		data, err = yaml.Marshal(c)
	default:
		return fmt.Errorf("unsupported format %q (must be toml or yaml)", format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_, err = w.Write(data)
	return err
}
