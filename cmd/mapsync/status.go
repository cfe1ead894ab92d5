package main

import (
	"fmt"

	"github.com/fwojciec/mapsync"
)

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	status := deps.TableStatus
	fmt.Fprintf(deps.Stdout, "Backend: %s\n", status.Backend)

	if !status.Configured {
		fmt.Fprintln(deps.Stdout, "Table: not configured")
		return nil
	}

	switch {
	case deps.Database != nil:
		db, err := deps.Database.RetrieveDatabase(deps.Ctx)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", mapsync.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Table: %s (%s)\n", db.Title, db.ID)
	case deps.Rows != nil:
		n, err := deps.Rows.CountRows(deps.Ctx)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", mapsync.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Table: %s (%d rows)\n", deps.Settings.DBPath, n)
	default:
		fmt.Fprintln(deps.Stdout, "Table: configured")
	}
	return nil
}
