package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bjaus/tablebuilder/internal/source"
)

func newQueryCmd(a *app) *cobra.Command {
	var driver, dsn string
	cmd := &cobra.Command{
		Use:   "query [sql]",
		Short: "Render the result of a SQL query",
		Long: `Runs a query against SQLite, SQL Server or PostgreSQL and renders the rows.
Driver, DSN and query default to the source block of the definition.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			if a.cfg != nil {
				src := a.cfg.Source
				driver = firstNonEmpty(driver, src.Driver)
				dsn = firstNonEmpty(dsn, src.DSN)
				query = firstNonEmpty(query, src.Query)
			}
			if driver == "" || dsn == "" || query == "" {
				return fmt.Errorf("--driver, --dsn and a query are required")
			}
			set, err := source.Query(cmd.Context(), driver, dsn, query)
			if err != nil {
				return err
			}
			a.logger.Debug("ran query", "driver", driver, "rows", len(set.Records))
			return a.render(cmd, set)
		},
	}
	cmd.Flags().StringVar(&driver, "driver", "", fmt.Sprintf("database driver %v", source.Drivers()))
	cmd.Flags().StringVar(&dsn, "dsn", "", "data source name (env TABLEBUILDER_DSN with --config)")
	return cmd
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
