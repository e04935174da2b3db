// Package main provides the ez_search CLI: interview question generation,
// DSA table lookup and the HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/yaswanth-142004/EZ-Search/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "ez_search",
	Short: "Interview question search agent",
	Long: `ez_search harvests interview questions from public prep pages, normalizes them and
curates them for a company, role and job description with an LLM. It also serves a
static company DSA question table.`,
	SilenceUsage: true,
}

var (
	configPath string
	verbose    bool
	logMode    string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.PersistentFlags().StringVar(&logMode, "log-mode", "", "Log format: dev or prod (defaults to LOG_MODE or dev)")
}

// resolveConfig layers CLI flags over the config file, the environment and
// the built-in defaults, in that order of priority. Command-specific flags
// are applied by the caller.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	env := config.FromEnv()
	cfg := env.MergeWithDefaults(config.Default())

	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded.MergeWithDefaults(cfg)
	}

	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = verbose
	}
	if cmd.Flags().Changed("log-mode") {
		cfg.LogMode = logMode
	}
	return cfg, nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
