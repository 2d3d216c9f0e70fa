// Package main provides the interview-prep command line client and server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/interview-prep/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "interview_prep",
	Short: "AI-powered job interview preparation",
	Long:  "interview_prep generates tailored interview questions with model answers from a job description, streams results as they are produced, and manages a favorites collection.",
}

var (
	configPath string
	backendURL string
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend-url", "", "Base URL of the interview-prep API")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed progress information")
}

// loadConfig merges the config file (if any), environment, and flags.
// Flags win over the file, the file wins over the environment.
func loadConfig() (*config.Config, error) {
	cfg := config.FromEnv()

	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		merged := fileCfg.MergeWithDefaults(*cfg)
		cfg = &merged
	}

	if backendURL != "" {
		cfg.BackendURL = backendURL
	}
	if verbose {
		cfg.Verbose = true
	}
	if cfg.BackendURL == "" {
		cfg.BackendURL = config.DefaultBackendURL
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
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
