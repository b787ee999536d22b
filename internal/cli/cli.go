package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"ffcal/internal/calendar"
	"ffcal/internal/config"
	"ffcal/internal/event"
	"ffcal/internal/fetch"
	"ffcal/internal/logger"
	"ffcal/internal/normalize"
	"ffcal/internal/pipeline"
	"ffcal/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
	// ExitEmpty signals that the run produced an empty dataset: nothing was
	// published and the caller should not proceed to publish either.
	ExitEmpty = 2
)

var (
	flagOutputDir string
	flagVerbose   bool
)

// NewRootCmd creates the root command with its subcommands.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ffcal",
		Short: "Scrape the ForexFactory economic calendar and republish it",
		Long: `Scrapes economic-calendar events, normalizes them into a canonical
deduplicated dataset, and emits a subscribable ICS calendar.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagOutputDir, "output-dir", "", "Output directory (overrides "+config.EnvOutputDir+")")
	root.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	root.AddCommand(newScrapeCmd())
	root.AddCommand(newICSCmd())
	return root
}

func newScrapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scrape",
		Short: "Run the full pipeline and write the dataset and calendar files",
		RunE:  runScrape,
	}
}

func newICSCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ics",
		Short: "Regenerate the calendar file from an existing dataset",
		RunE:  runICS,
	}
}

func setup() (*config.Config, *storage.Store, error) {
	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}
	if flagOutputDir != "" {
		cfg.OutputDir = flagOutputDir
	}

	store, err := storage.New(cfg.OutputDir)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing storage: %w", err)
	}
	return cfg, store, nil
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, store, err := setup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting scrape", logger.Fields{
		"zone":    cfg.ZoneName,
		"horizon": cfg.MonthHorizon,
	})

	browser, err := fetch.NewBrowser(ctx, cfg.ZoneName)
	if err != nil {
		return fmt.Errorf("starting browser: %w", err)
	}
	defer browser.Close()

	windows := event.Windows(event.CurrentWindow(time.Now().In(cfg.Zone)), cfg.MonthHorizon)
	p := pipeline.New(fetch.New(browser), normalize.New(cfg))

	events, err := p.Run(ctx, windows)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoEvents) {
			// Fail distinctly: publishing nothing would blank subscribers'
			// calendars, and an empty scrape usually means extraction broke.
			// Returned rather than exited in place so the deferred browser
			// shutdown still runs.
			logger.Error("run produced no events, nothing published", logger.Fields{
				"windows": len(windows),
			}, err)
		}
		return fmt.Errorf("running pipeline: %w", err)
	}

	if err := store.WriteEvents(events); err != nil {
		return fmt.Errorf("writing dataset: %w", err)
	}

	ics := calendar.Generate(events, cfg.CalendarTitle, cfg.EventDuration)
	if err := store.WriteCalendar(ics); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}

	logger.Info("run complete", logger.Fields{
		"events":   len(events),
		"dataset":  store.Path(),
		"counters": logger.CountersSnapshot(),
	})
	return nil
}

func runICS(cmd *cobra.Command, args []string) error {
	cfg, store, err := setup()
	if err != nil {
		return err
	}

	events, err := store.LoadEvents()
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	ics := calendar.Generate(events, cfg.CalendarTitle, cfg.EventDuration)
	if err := store.WriteCalendar(ics); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}

	logger.Info("calendar regenerated", logger.Fields{"events": len(events)})
	return nil
}

// Execute runs the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps a command error to the process exit code. The empty-result
// sentinel survives the wrapping done along the return path.
func exitCode(err error) int {
	if errors.Is(err, pipeline.ErrNoEvents) {
		return ExitEmpty
	}
	return ExitError
}
