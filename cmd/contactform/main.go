// Contactform renders, serves and prompts the contact form.
//
// Usage:
//
//	contactform render [flags]
//	contactform serve [flags]
//	contactform prompt [flags]
//
// Every command accepts --config pointing at a YAML file; see
// 'contactform <command> --help' for the rest.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/internal/logging"
	"github.com/goliatone/go-contactform/pkg/config"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "contactform",
	Short: "Contact form renderer and server",
	Long: `Render the contact form to HTML, serve it over HTTP with live
validation, or fill it in from the terminal.

Form text, validation messages, field presets and theme tokens are read from
the YAML file given with --config.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(promptCmd)
}

// setup loads the config and builds the logger shared by every command.
func setup() (*config.Config, *zap.Logger, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	if err := logging.Initialize(level); err != nil {
		return nil, nil, err
	}
	return cfg, logging.GetLogger(), nil
}
