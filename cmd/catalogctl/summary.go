package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	catalogmigrations "github.com/ghuser/stockroom/migrations/catalog"
	"github.com/ghuser/stockroom/pkg/migrator"
)

func newSummaryCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Count categories and items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := opts.svcs.Summary.Get(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd, opts, sum, func(w io.Writer) {
				fmt.Fprintf(w, "categories\t%d\nitems\t%d\n", sum.CategoryCount, sum.ItemCount)
			})
		},
	}
}

func newMigrateCmd(opts *RootOptions) *cobra.Command {
	var versionOnly bool
	cmd := &cobra.Command{
		Use:         "migrate",
		Short:       "Apply pending catalog schema migrations",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipServices: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			url := opts.cfg.CatalogDatabaseURL
			if !versionOnly {
				if err := migrator.RunMigrations(cmd.Context(), url, catalogmigrations.FS); err != nil {
					return err
				}
			}
			v, err := migrator.Version(cmd.Context(), url, catalogmigrations.FS)
			if err != nil {
				return err
			}
			return render(cmd, opts, map[string]int64{"version": v}, func(w io.Writer) {
				fmt.Fprintf(w, "schema version\t%d\n", v)
			})
		},
	}
	cmd.Flags().BoolVar(&versionOnly, "version", false, "Print the applied version without migrating")
	return cmd
}
