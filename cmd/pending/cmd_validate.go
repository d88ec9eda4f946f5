package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/talgya/pending/internal/catalog"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the content catalog for broken references",
		Long: `Validate loads the catalog and reports duplicate ids, events with
no choices, out-of-range weights and probabilities, choices pointing at
events that do not exist, and traps with no triggers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalogPath, _ := cmd.Flags().GetString("catalog")
			cat, err := catalog.Load(catalogPath)
			if err != nil {
				return err
			}
			errs := cat.Validate()
			if len(errs) == 0 {
				fmt.Printf("catalog ok: %d events, %d traps, %d profiles, %d endings\n",
					len(cat.Events), len(cat.Traps), len(cat.Profiles), len(cat.Endings))
				return nil
			}
			for _, e := range errs {
				fmt.Fprintf(os.Stderr, "catalog: %v\n", e)
			}
			return fmt.Errorf("%d catalog issue(s)", len(errs))
		},
	}
}
