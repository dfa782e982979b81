package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sofiagarciadougherty/InMaps/navigator"
	"github.com/sofiagarciadougherty/InMaps/occupancy"
)

func newRouteCommand(g *globals) *cobra.Command {
	var (
		from, to, toCell string
		asJSON           bool
	)
	cmd := &cobra.Command{
		Use:   "route",
		Short: "Plan a route from a cell to a named point of interest",
		Example: `  inmaps route --from 0,0 --to "Booth A"
  inmaps route --from 0,0 --to-cell 4,4 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseCell(from)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			if (to == "") == (toCell == "") {
				return errors.New("exactly one of --to or --to-cell is required")
			}

			e, err := g.setup(cmd)
			if err != nil {
				return err
			}
			var r navigator.Route
			if to != "" {
				r, err = e.svc.Route(cmd.Context(), start, to)
			} else {
				var target occupancy.Cell
				if target, err = parseCell(toCell); err != nil {
					return fmt.Errorf("--to-cell: %w", err)
				}
				r, err = e.svc.RouteToCell(cmd.Context(), start, target)
			}
			if err != nil {
				return err
			}

			if asJSON {
				if err := writeRouteJSON(e, r); err != nil {
					return err
				}
				return e.finish()
			}
			if r.Substituted {
				fmt.Fprintf(e.out, "goal %s is blocked, routing to %s\n", r.Requested, r.Goal)
			}
			if !r.Found() {
				fmt.Fprintf(e.out, "no route from %s to %s\n", r.From, r.Goal)
				return e.finish()
			}
			fmt.Fprintf(e.out, "%d steps: %s\n", r.Path.Steps(), formatPath(r.Path))
			return e.finish()
		},
	}
	cmd.Flags().StringVar(&from, "from", "0,0", "Start cell as x,y")
	cmd.Flags().StringVar(&to, "to", "", "Destination element name (case-insensitive)")
	cmd.Flags().StringVar(&toCell, "to-cell", "", "Destination cell as x,y")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the route as JSON")
	return cmd
}

// routeJSON mirrors the {"path": [[x, y], ...]} shape clients expect.
type routeJSON struct {
	Goal        [2]int   `json:"goal"`
	Substituted bool     `json:"substituted"`
	Path        [][2]int `json:"path"`
}

func writeRouteJSON(e *env, r navigator.Route) error {
	out := routeJSON{
		Goal:        [2]int{r.Goal.X, r.Goal.Y},
		Substituted: r.Substituted,
		Path:        make([][2]int, 0, len(r.Path)),
	}
	for _, c := range r.Path {
		out.Path = append(out.Path, [2]int{c.X, c.Y})
	}
	enc := json.NewEncoder(e.out)
	return enc.Encode(out)
}

func formatPath(p []occupancy.Cell) string {
	parts := make([]string, len(p))
	for i, c := range p {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// parseCell parses "x,y".
func parseCell(s string) (occupancy.Cell, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return occupancy.Cell{}, fmt.Errorf("cell %q: want x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return occupancy.Cell{}, fmt.Errorf("cell %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return occupancy.Cell{}, fmt.Errorf("cell %q: %w", s, err)
	}
	return occupancy.Cell{X: x, Y: y}, nil
}
