package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/leadscan"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	results, err := deps.Results.FindResults(deps.Ctx, leadscan.ResultFilter{
		UserID: &c.User,
		Limit:  c.Limit,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leadscan.ErrorMessage(err))
		return err
	}

	if err := export(deps, c.Export, results); err != nil {
		return err
	}

	switch c.Format {
	case "json":
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case "csv":
		return leadscan.WriteCSV(deps.Stdout, results)
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No saved results. Use 'leadscan scan --save <url>' to save one.")
		return nil
	}

	for _, r := range results {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  (%d emails, %d phone numbers)\n",
			r.ID, r.ScannedAt.Local().Format(time.DateTime), r.URL, len(r.Emails), len(r.PhoneNumbers))
	}

	return nil
}
