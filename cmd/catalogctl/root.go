package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ghuser/stockroom/pkg/app"
	"github.com/ghuser/stockroom/pkg/config"
	"github.com/ghuser/stockroom/pkg/database"
	"github.com/ghuser/stockroom/pkg/events"
	"github.com/ghuser/stockroom/pkg/logger"
	appsvcs "github.com/ghuser/stockroom/services/catalog/application/services"
	domainevents "github.com/ghuser/stockroom/services/catalog/domain/events"
)

// skipServices marks commands that talk to the database without the catalog
// managers.
const skipServices = "skip-services"

// RootOptions are shared by every subcommand.
type RootOptions struct {
	Output string

	cfg  *config.Config
	svcs *appsvcs.Services

	closers []func() error
}

// NewRootCmd builds the command tree. Services are wired from the
// environment unless already set, which tests use to run against memory.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&RootOptions{Output: formatTable})
}

func newRootCmd(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Administer the inventory catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.Output = strings.ToLower(strings.TrimSpace(opts.Output))
			if opts.Output != formatTable && opts.Output != formatJSON {
				return usageErrorf("invalid --output value %q: supported values are %s|%s", opts.Output, formatTable, formatJSON)
			}
			if opts.cfg == nil {
				cfg, err := config.LoadEnv()
				if err != nil {
					return err
				}
				opts.cfg = cfg
			}
			if opts.svcs != nil || cmd.Annotations[skipServices] == "true" {
				return nil
			}
			return opts.wire(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return opts.close()
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.Output, "output", "o", opts.Output, "Output format: table|json")

	cmd.AddCommand(
		newSummaryCmd(opts),
		newCategoryCmd(opts),
		newItemCmd(opts),
		newMigrateCmd(opts),
	)
	return cmd
}

// wire opens the database and the event bus so CLI writes publish the same
// outbox events as the API.
func (o *RootOptions) wire(cmd *cobra.Command) error {
	log := logger.NewText(os.Stderr, o.cfg.LogLevel)

	db, err := database.NewPool(cmd.Context(), o.cfg.CatalogDatabaseURL, log)
	if err != nil {
		return err
	}
	o.closers = append(o.closers, func() error { db.Close(); return nil })

	bus, err := events.NewEventBus(o.cfg, log)
	if err != nil {
		return err
	}
	o.closers = append(o.closers, bus.Close)
	if err := bus.InitTopics(domainevents.Topics()...); err != nil {
		return err
	}

	o.svcs = appsvcs.New(&app.Application{
		Config:   o.cfg,
		Db:       db,
		Logger:   log,
		EventBus: bus,
	})
	return nil
}

func (o *RootOptions) close() error {
	var first error
	for i := len(o.closers) - 1; i >= 0; i-- {
		if err := o.closers[i](); err != nil && first == nil {
			first = fmt.Errorf("close: %w", err)
		}
	}
	o.closers = nil
	return first
}
