// Package cli implements the fromtodk command line.
package cli

import (
	"context"
	"fmt"
	"fromtodk/internal/app"
	"fromtodk/internal/config"
	"fromtodk/internal/platform/obs"
	"fromtodk/internal/ports"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose      bool
	language     string
	strategy     string
	timeout      time.Duration
	sparqlStrict bool
	logLevel     string
)

// newDistanceService builds the lookup used by the root command. Tests
// replace it with an in-memory implementation.
var newDistanceService = func(cfg *config.Config, log *zap.Logger) (ports.DistanceService, error) {
	return app.NewDistanceService(cfg, log)
}

var rootCmd = &cobra.Command{
	Use:   "fromtodk [flags] <from> <to>",
	Short: "Distance in kilometres between two places found on Wikidata",
	Long: `Searches Wikidata for both place names, takes the first match of each,
reads their coordinates and prints the geodesic distance in kilometres.
An empty line is printed when either place or its coordinate is not found.`,
	Example:       `  fromtodk "Lyngby Hovedgade" Aros`,
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDistance,
}

func init() {
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print the matched identifiers of both places")
	rootCmd.Flags().StringVarP(&language, "language", "l", "", "search language (default from SEARCH_LANGUAGE, da)")
	rootCmd.Flags().StringVar(&strategy, "strategy", "", "coordinate strategy: claims or sparql")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0, "timeout per HTTP attempt")
	rootCmd.Flags().BoolVar(&sparqlStrict, "strict", false, "fail on malformed SPARQL rows instead of treating them as absent")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func runDistance(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := obs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	svc, err := newDistanceService(cfg, log)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	res, err := svc.LookupDistance(ctx, args[0], args[1])
	if err != nil {
		return fmt.Errorf("distance lookup failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if verbose {
		fmt.Fprintln(out, res.FromIDs)
		fmt.Fprintln(out, res.ToIDs)
	}
	fmt.Fprintln(out, res.KmString())

	return nil
}

// loadConfig resolves the environment configuration, then applies the flags
// that were set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("language") {
		cfg.Language = language
	}
	if flags.Changed("strategy") {
		cfg.Strategy = strategy
	}
	if flags.Changed("timeout") {
		cfg.HTTPTimeout = timeout
	}
	if flags.Changed("strict") {
		cfg.SPARQLStrict = sparqlStrict
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}
