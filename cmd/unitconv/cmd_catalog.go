package main

import (
	"database/sql"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"unitconv"
)

var exportSQLite string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the units of every category",
	Args:  cobra.NoArgs,
	RunE:  runCatalog,
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, g := range cat.Groups() {
		fmt.Fprintln(w, g.Label)
		for _, u := range g.Units {
			fmt.Fprintf(w, "  %s\t%s\n", u.Name, unitconv.FormatValue(u.Factor, -1))
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if exportSQLite == "" {
		return nil
	}
	db, err := sql.Open("sqlite3", unitconv.SQLiteDSN(exportSQLite, "rwc"))
	if err != nil {
		return err
	}
	defer db.Close()
	if err := unitconv.SaveCatalogSQLite(cmd.Context(), db, cat); err != nil {
		return fmt.Errorf("export catalog: %w", err)
	}
	logger.Info("catalog exported", "path", exportSQLite)
	return nil
}
