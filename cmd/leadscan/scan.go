package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/leadscan"
	"github.com/fwojciec/leadscan/fs"
)

// Run executes the scan command.
func (c *ScanCmd) Run(deps *Dependencies) error {
	result, err := deps.Scanner.Scan(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leadscan.ErrorMessage(err))
		return err
	}

	if c.Save {
		result.UserID = c.User
		if err := deps.Results.CreateResult(deps.Ctx, result); err != nil {
			fmt.Fprintf(deps.Stderr, "error: failed to save result: %s\n", leadscan.ErrorMessage(err))
			return err
		}
	}

	if err := export(deps, c.Export, []*leadscan.Result{result}); err != nil {
		return err
	}

	switch c.Format {
	case "json":
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "csv":
		return leadscan.WriteCSV(deps.Stdout, []*leadscan.Result{result})
	}

	fmt.Fprint(deps.Stdout, leadscan.FormatResult(result))
	if c.Save {
		fmt.Fprintf(deps.Stdout, "\nSaved as %s\n", result.ID)
	}
	return nil
}

// export writes results to a CSV file in dir when dir is set.
// The file path goes to stderr so stdout stays machine readable.
func export(deps *Dependencies, dir string, results []*leadscan.Result) error {
	if dir == "" {
		return nil
	}
	path, err := fs.NewExporter(dir).Export(results)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: failed to export: %s\n", leadscan.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stderr, "Exported to %s\n", path)
	return nil
}
