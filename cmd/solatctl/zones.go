package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/waktusolat/solat-api/internal/gazetteer"
)

var zonesCmd = &cobra.Command{
	Use:   "zones [state]",
	Short: "List JAKIM zones, optionally filtered by state prefix",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runZones,
}

func runZones(cmd *cobra.Command, args []string) error {
	g, err := gazetteer.Load()
	if err != nil {
		return err
	}

	zones := g.All()
	if len(args) == 1 {
		zones = g.FilterByState(args[0])
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tNEGERI\tDAERAH")
	for _, z := range zones {
		fmt.Fprintf(w, "%s\t%s\t%s\n", z.Code, z.Negeri, z.Daerah())
	}
	return w.Flush()
}
