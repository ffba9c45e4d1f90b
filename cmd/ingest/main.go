package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/app"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/config"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type runtimeDeps struct {
	cfg    config.Config
	logger *logging.Logger
	ingest *app.Ingest
	season string
}

func newRootCmd() *cobra.Command {
	var seasonFlag string

	root := &cobra.Command{
		Use:           "ingest",
		Short:         "Scrape floorball.lv and maintain the fantasy database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&seasonFlag, "season", "", "season label, e.g. 2024/2025 (default: from APP_SEASON)")

	withDeps := func(run func(ctx context.Context, deps runtimeDeps, cmd *cobra.Command) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			level := cfg.LogLevel
			if cfg.IngestDebug {
				level = logging.LevelDebug
			}
			logger := logging.NewConsole(level)
			logging.SetDefault(logger)
			defer func() { _ = logger.Sync() }()

			ingest, cleanup, err := app.NewIngest(cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			season := seasonFlag
			if season == "" {
				season = cfg.Season
			}

			return run(ctx, runtimeDeps{cfg: cfg, logger: logger, ingest: ingest, season: season}, cmd)
		}
	}

	root.AddCommand(
		newCalendarCmd(withDeps),
		newEventsCmd(withDeps),
		newStatsCmd(withDeps),
		newSyncCmd(withDeps),
		newPriceCmd(withDeps),
		newParityCmd(withDeps),
	)

	return root
}

type depsRunner func(func(ctx context.Context, deps runtimeDeps, cmd *cobra.Command) error) func(*cobra.Command, []string) error

func newCalendarCmd(withDeps depsRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "calendar",
		Short: "Fetch the season calendar and upsert matches",
		RunE: withDeps(func(ctx context.Context, deps runtimeDeps, cmd *cobra.Command) error {
			result, err := deps.ingest.Calendar.IngestSeason(ctx, deps.season)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "calendar: months=%d failed=%d upserted=%d skipped_rows=%d\n",
				result.MonthsFetched, result.MonthsFailed, result.Upserted, result.SkippedRows)
			if result.SoftSkipped {
				fmt.Fprintln(cmd.OutOrStdout(), "calendar: source unreachable, run soft-skipped")
			}
			return nil
		}),
	}
}

func newEventsCmd(withDeps depsRunner) *cobra.Command {
	var matchID string
	var allFinished bool

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Ingest match protocols into scoring events",
		RunE: withDeps(func(ctx context.Context, deps runtimeDeps, cmd *cobra.Command) error {
			switch {
			case matchID != "" && allFinished:
				return fmt.Errorf("--match-id and --all-finished are mutually exclusive")
			case matchID != "":
				if err := deps.ingest.Events.IngestMatch(ctx, matchID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "events: match %s ingested\n", matchID)
				return nil
			case allFinished:
				result, err := deps.ingest.Events.IngestAllFinished(ctx, deps.season)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "events: ingested=%d failed=%d skipped=%d\n",
					result.Ingested, result.Failed, result.Skipped)
				return nil
			default:
				return fmt.Errorf("one of --match-id or --all-finished is required")
			}
		}),
	}
	cmd.Flags().StringVar(&matchID, "match-id", "", "ingest a single match by its stored id")
	cmd.Flags().BoolVar(&allFinished, "all-finished", false, "ingest every finished match of the season")

	return cmd
}

func newStatsCmd(withDeps depsRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Scrape season aggregate tables into the staging area",
		RunE: withDeps(func(ctx context.Context, deps runtimeDeps, cmd *cobra.Command) error {
			staged, err := deps.ingest.Stats.Seed(ctx, deps.season)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stats: staged %d rows\n", staged)
			return nil
		}),
	}
}

func newSyncCmd(withDeps depsRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Rebuild the players table from staged season stats",
		RunE: withDeps(func(ctx context.Context, deps runtimeDeps, cmd *cobra.Command) error {
			synced, err := deps.ingest.Stats.Sync(ctx, deps.season)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sync: %d players\n", synced)
			return nil
		}),
	}
}

func newPriceCmd(withDeps depsRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "price",
		Short: "Recompute player prices from season totals",
		RunE: withDeps(func(ctx context.Context, deps runtimeDeps, cmd *cobra.Command) error {
			priced, err := deps.ingest.Pricing.Reprice(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "price: %d players repriced\n", priced)
			return nil
		}),
	}
}

func newParityCmd(withDeps depsRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "parity",
		Short: "Compare scraped season totals against computed event totals",
		// Parity is a monitor, not a gate: mismatches print but never fail
		// the run, so it is safe to chain after ingestion in CI.
		RunE: withDeps(func(ctx context.Context, deps runtimeDeps, cmd *cobra.Command) error {
			report, err := deps.ingest.Parity.Check(ctx, deps.season)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "parity: compared=%d unmatched=%d mismatches=%d\n",
				report.Compared, report.Unmatched, len(report.Mismatches))
			for _, m := range report.Mismatches {
				fmt.Fprintf(out, "  %s goals%+d assists%+d pim%+d\n",
					m.PlayerName, m.DiffGoals, m.DiffAssists, m.DiffPIM)
			}
			return nil
		}),
	}
}
