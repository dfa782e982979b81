package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newGridCommand(g *globals) *cobra.Command {
	var ascii bool
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Build the occupancy grid and print a summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.setup(cmd)
			if err != nil {
				return err
			}
			grid := e.svc.Grid()
			rep := e.svc.Report()
			_, islands := grid.Components()

			fmt.Fprintf(e.out, "grid:     %dx%d cells of %gpx (%s)\n", grid.Width(), grid.Height(), grid.CellSize(), grid.Policy())
			fmt.Fprintf(e.out, "walkable: %d\n", rep.Walkable)
			fmt.Fprintf(e.out, "islands:  %d\n", islands)
			fmt.Fprintf(e.out, "elements: %d (%d rasterized)\n", rep.Elements, rep.Rasterized)
			fmt.Fprintf(e.out, "beacons:  %d\n", e.svc.Registry().Len())
			if len(rep.Skipped) > 0 {
				fmt.Fprintf(e.out, "skipped:  %s\n", strings.Join(rep.Skipped, ", "))
			}
			if ascii {
				fmt.Fprintln(e.out, grid)
			}
			return e.finish()
		},
	}
	cmd.Flags().BoolVar(&ascii, "ascii", false, "Also print the grid ('.' walkable, '#' blocked)")
	return cmd
}
