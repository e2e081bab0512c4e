package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"borough-recommender/models"
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List venue groups and accommodation types",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Venue groups (rank with --rank):")
		for _, g := range models.AllVenueGroups() {
			fmt.Fprintf(out, "  %-18s %s\n", g, g.Color())
		}
		fmt.Fprintln(out, "\nAccommodation types (select with --categories):")
		for _, t := range models.SelectableAccommodationTypes() {
			fmt.Fprintf(out, "  %s\n", t)
		}
		return nil
	},
}
