// Package cli implements the activityctl administration commands.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/erikadonato/to-do-list/internal/config"
	"github.com/erikadonato/to-do-list/internal/domain"
	"github.com/erikadonato/to-do-list/internal/logging"
	"github.com/erikadonato/to-do-list/internal/persistence"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Driver string
	DSN    string

	open storeOpener
}

type storeOpener func(ctx context.Context, cfg config.Config) (persistence.Store, error)

// ValidDrivers lists the values accepted by --driver.
var ValidDrivers = []string{config.DriverMemory, config.DriverSQLite, config.DriverPostgres, config.DriverMySQL}

// NewRootCommand creates the root command for activityctl.
func NewRootCommand() *cobra.Command {
	return newRootCommand(persistence.Open)
}

func newRootCommand(open storeOpener) *cobra.Command {
	opts := &RootOptions{open: open}

	cmd := &cobra.Command{
		Use:           "activityctl",
		Short:         "Manage activity records",
		Long:          "activityctl searches, creates, updates and deletes activities directly against the configured store.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.Driver != "" && !isValidDriver(opts.Driver) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid driver %q: must be one of %v", opts.Driver, ValidDrivers))
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Driver, "driver", "", "store driver (memory|sqlite|postgres|mysql); defaults to STORE_DRIVER")
	cmd.PersistentFlags().StringVar(&opts.DSN, "dsn", "", "connection string or file path for the selected driver")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewSaveCommand(opts))
	cmd.AddCommand(NewUpdateCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))

	return cmd
}

// config resolves the environment configuration with flag overrides applied.
func (o *RootOptions) config() config.Config {
	cfg := config.Load()
	if o.Driver != "" {
		cfg.StoreDriver = o.Driver
	}
	if o.DSN != "" {
		switch cfg.StoreDriver {
		case config.DriverSQLite:
			cfg.SQLitePath = o.DSN
		case config.DriverPostgres:
			cfg.PostgresURL = o.DSN
		case config.DriverMySQL:
			cfg.MySQLDSN = o.DSN
		}
	}
	return cfg
}

// withService opens the store, builds a service over it and hands it to fn.
func (o *RootOptions) withService(cmd *cobra.Command, fn func(*domain.Service) error) error {
	cfg := o.config()
	store, err := o.open(cmd.Context(), cfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "open store", err)
	}
	defer store.Close()

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	return fn(domain.NewService(store, domain.WithLogger(logger)))
}

func isValidDriver(driver string) bool {
	for _, d := range ValidDrivers {
		if d == driver {
			return true
		}
	}
	return false
}
