// Package root contains the root command for the application
package root

import (
	"errors"
	"fmt"
	"io"

	"fjacquet/daily-dollar/internal/budget"
	"fjacquet/daily-dollar/internal/config"
	"fjacquet/daily-dollar/internal/container"
	"fjacquet/daily-dollar/internal/dateutils"
	"fjacquet/daily-dollar/internal/events"
	"fjacquet/daily-dollar/internal/logging"
	"fjacquet/daily-dollar/internal/report"
	"fjacquet/daily-dollar/internal/store"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags shared by every command
type CommonFlags struct {
	ConfigFile string
	Format     string
	AsOf       string
}

var (
	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "daily-dollar",
		Short: "A paycheck-to-paycheck budgeting tool.",
		Long: `daily-dollar tracks spending against category budgets within pay periods
that start on your paycheck day, rolls the leftover balance into the next
period and forecasts how the next period will end.`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  openBudget,
		PersistentPostRunE: closeBudget,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	// SharedFlags holds the persistent flags of the root command
	SharedFlags = CommonFlags{}

	app *container.Container
)

// Init initializes the root command and all flags
func Init() {
	if Cmd.PersistentFlags().Lookup("config") != nil {
		return
	}
	Cmd.PersistentFlags().StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default: config.yaml in ~/.daily-dollar, .daily-dollar or .)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Format, "format", "f", report.FormatText, "Output format: text or json")
	Cmd.PersistentFlags().StringVar(&SharedFlags.AsOf, "as-of", "", "Evaluate the budget as of this date (YYYY-MM-DD) instead of today")
}

// openBudget loads configuration, wires the container and opens the budget,
// which runs the period check once.
func openBudget(cmd *cobra.Command, _ []string) error {
	if !report.ValidFormat(SharedFlags.Format) {
		return fmt.Errorf("unsupported output format %q (use text or json)", SharedFlags.Format)
	}

	if _, err := config.LoadEnv(); err != nil {
		return fmt.Errorf("failed to load .env file: %w", err)
	}
	cfg, err := config.Load(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}

	var opts []container.Option
	if SharedFlags.AsOf != "" {
		date, err := dateutils.ParseISODate(SharedFlags.AsOf)
		if err != nil {
			return fmt.Errorf("invalid --as-of: %w", err)
		}
		opts = append(opts, container.WithClock(dateutils.FixedClock(date)))
	}

	c, err := container.NewContainer(cfg, opts...)
	if err != nil {
		return err
	}

	if app != nil {
		_ = closeBudget(cmd, nil)
	}

	stderr := cmd.ErrOrStderr()
	events.SubscribeTyped(c.GetBus(), events.PeriodRolledOver, func(e events.EventT[events.Rollover]) error {
		_, err := fmt.Fprintf(stderr, "New period started on %s, beginning balance %s\n",
			dateutils.ToISODate(e.Data.PeriodStart), report.FormatMoney(e.Data.BeginningBalance))
		return err
	})

	// A failed save leaves the budget usable; anything else does not.
	_, err = c.GetService().Open(cmd.Context())
	var persistErr *store.PersistError
	switch {
	case errors.As(err, &persistErr) && persistErr.Op == store.OpSave:
		fmt.Fprintf(stderr, "Warning: %v\n", err)
	case err != nil:
		_ = c.GetService().Close(cmd.Context())
		return fmt.Errorf("failed to open budget: %w", err)
	}
	app = c
	return nil
}

func closeBudget(cmd *cobra.Command, _ []string) error {
	if app == nil {
		return nil
	}
	err := app.GetService().Close(cmd.Context())
	app = nil
	return err
}

// Service returns the opened budget service. It panics when called outside
// a command run.
func Service() *budget.Service {
	if app == nil {
		panic("budget service used before the root command opened it")
	}
	return app.GetService()
}

// Logger returns the configured logger.
func Logger() logging.Logger {
	if app == nil {
		return logging.NewDiscardLogger()
	}
	return app.GetLogger()
}

// Config returns the loaded configuration.
func Config() *config.Config {
	if app == nil {
		return nil
	}
	return app.GetConfig()
}

// Reports returns a report generator writing in the selected format.
func Reports() *report.Generator {
	return report.NewGenerator(Logger())
}

// Format is the selected output format.
func Format() string {
	return SharedFlags.Format
}

// Printf writes a confirmation line in text mode; JSON output stays clean.
func Printf(w io.Writer, format string, args ...any) {
	if SharedFlags.Format == report.FormatJSON {
		return
	}
	fmt.Fprintf(w, format, args...)
}
