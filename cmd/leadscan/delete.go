package main

import (
	"fmt"

	"github.com/fwojciec/leadscan"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return leadscan.Errorf(leadscan.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Results.DeleteResult(deps.Ctx, c.ID); err != nil {
		if leadscan.ErrorCode(err) == leadscan.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: result %q not found. Use 'leadscan history' to see saved results.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", leadscan.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted result %s\n", c.ID)
	return nil
}
