package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sofiagarciadougherty/InMaps/beacon"
	"github.com/sofiagarciadougherty/InMaps/internal/config"
)

func newLocateCommand(g *globals) *cobra.Command {
	var (
		raw    []string
		scale  float64
		method string
	)
	cmd := &cobra.Command{
		Use:     "locate",
		Short:   "Estimate a position from beacon readings",
		Example: `  inmaps locate --reading 17091=-63 --reading 17092=-71`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			readings, err := parseReadings(raw)
			if err != nil {
				return err
			}
			e, err := g.setup(cmd, func(c *config.Config) {
				if method != "" {
					c.Signal.Method = method
				}
			})
			if err != nil {
				return err
			}
			if scale != 0 {
				if err := e.svc.SetScale(cmd.Context(), scale); err != nil {
					return err
				}
			}
			fix, err := e.svc.Locate(cmd.Context(), readings)
			if err != nil {
				return err
			}
			fmt.Fprintf(e.out, "cell %s (%s %.2f,%.2f; %d used, %d discarded)\n",
				fix.Cell, e.svc.LocateMethod(), fix.X, fix.Y, fix.Used, fix.Discarded)
			return e.finish()
		},
	}
	cmd.Flags().StringArrayVarP(&raw, "reading", "r", nil, "Beacon reading as ID=RSSI (repeatable)")
	cmd.Flags().Float64Var(&scale, "scale", 0, "Scale factor to use instead of the configured initial scale")
	cmd.Flags().StringVar(&method, "method", "", "Estimation method: centroid or multilateration (overrides signal.method)")
	return cmd
}

// parseReadings parses ID=RSSI pairs; the last '=' separates the two.
func parseReadings(raw []string) ([]beacon.Reading, error) {
	out := make([]beacon.Reading, 0, len(raw))
	for _, r := range raw {
		i := strings.LastIndex(r, "=")
		if i <= 0 {
			return nil, fmt.Errorf("reading %q: want ID=RSSI", r)
		}
		rssi, err := strconv.ParseFloat(strings.TrimSpace(r[i+1:]), 64)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", r, err)
		}
		out = append(out, beacon.Reading{ID: strings.TrimSpace(r[:i]), RSSI: rssi})
	}
	return out, nil
}
