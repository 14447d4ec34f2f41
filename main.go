package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"primeadapt/internal/config"
	"primeadapt/internal/logging"
)

var (
	configPath string
	verbose    bool

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "primeadapt",
	Short: "MaPrimeAdapt eligibility wizard",
	Long: `primeadapt serves the MaPrimeAdapt eligibility wizard to browser front ends
and evaluates response sets from the command line.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(); err != nil {
			return fmt.Errorf("failed to load .env: %w", err)
		}
		var err error
		cfg, err = config.Load(configPath, nil)
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.Debug || verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (JSON or JSON5); <name>.local.<ext> overrides it")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	evaluateCmd.Flags().StringVarP(&responsesFile, "file", "f", "-", "response set JSON file, - for stdin")
	evaluateCmd.Flags().BoolVar(&traceRules, "trace", false, "include the outcome of every rule")
	bracketsCmd.Flags().IntVar(&householdSize, "household", 1, "household size (6 means six or more)")

	rootCmd.AddCommand(serveCmd, evaluateCmd, bracketsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
