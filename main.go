// threatfeed downloads public ad/tracker blocklists and rewrites each one as
// a sorted, newline-delimited domain list suitable for a firewall threat feed.
package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"threatfeed/config"
	"threatfeed/logger"
	"threatfeed/parser"
	"threatfeed/updater"
)

func main() {
	cfg, err := config.Default()
	if err != nil {
		log.Fatalf("Failed to load built-in sources: %v", err)
	}

	logger.Setup(cfg.Environment)
	defer logger.Sync()

	rootCmd := &cobra.Command{
		Use:          "threatfeed",
		Short:        "Fetch blocklists and save them as plain domain lists",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cfg)
		},
	}

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger.Info(ctx, "starting", zap.Int("sources", len(cfg.Sources)), zap.Duration("timeout", cfg.Timeout))

	upd := updater.NewUpdater(cfg, parser.NewLoader(cfg.Timeout))
	results, err := upd.Run(ctx)
	if err != nil {
		logger.Error(ctx, "update aborted", zap.Error(err))
		return err
	}

	failed := 0
	for _, res := range results {
		if res.FetchErr != nil {
			failed++
		}
	}
	logger.Info(ctx, "done", zap.Int("sources", len(results)), zap.Int("failed", failed))
	return nil
}
