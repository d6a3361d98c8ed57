// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/admonish/internal/container"
	"github.com/pdiddy/admonish/internal/convert"
	"github.com/pdiddy/admonish/internal/render"
	"github.com/pdiddy/admonish/pkg/types"
)

var configOnce sync.Once

// initConfig locates the config file and enables ADMONISH_* environment
// overrides. It runs once, on the first loadConfig call.
func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("admonish")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "admonish"))
		}
	}

	viper.SetEnvPrefix("ADMONISH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Using config file:", viper.ConfigFileUsed())
	}
}

// bindFlags binds the named flags of the running command to config keys.
// Binding happens at run time so subcommands can share keys.
func bindFlags(keys map[string]string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		for key, name := range keys {
			if err := viper.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
				return fmt.Errorf("binding flag --%s: %w", name, err)
			}
		}
		return nil
	}
}

// loadConfig layers flags, environment, and the config file over the defaults.
func loadConfig() (types.Config, error) {
	configOnce.Do(initConfig)

	cfg := types.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, nil
}

// newConverter builds the converter for cfg.Conversion.Backend.
func newConverter(cfg types.Config) (convert.Converter, error) {
	switch cfg.Conversion.Backend {
	case types.BackendMarkdown, "":
		return convert.Fenced{}, nil
	case types.BackendHTML:
		return render.NewHTML(), nil
	case types.BackendPandoc:
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, err
		}
		return render.NewPandoc(rt, cfg.Pandoc)
	default:
		return nil, fmt.Errorf("unsupported backend %q: use markdown, html, or pandoc", cfg.Conversion.Backend)
	}
}

// outputExt picks the output file extension when none is configured.
func outputExt(cfg types.Config) string {
	if cfg.Conversion.OutputExt != "" {
		return cfg.Conversion.OutputExt
	}
	switch cfg.Conversion.Backend {
	case types.BackendHTML:
		return ".html"
	case types.BackendPandoc:
		switch to := cfg.Pandoc.To; to {
		case "", "html", "html4", "html5":
			return ".html"
		case "latex":
			return ".tex"
		case "markdown", "gfm", "commonmark":
			return ".md"
		default:
			return "." + to
		}
	}
	return ""
}
