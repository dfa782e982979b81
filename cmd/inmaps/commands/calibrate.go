package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCalibrateCommand(g *globals) *cobra.Command {
	var (
		a, b     string
		distance float64
	)
	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Derive the scale factor from two beacons a known distance apart",
		Long: `Calibrate computes grid distance / physical distance for two registered
beacons and prints the resulting scale factor. Pass it to "locate --scale"
or store it as calibration.initial_scale.`,
		Example: `  inmaps calibrate --a 17091 --b 17092 --distance 2.0`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.setup(cmd)
			if err != nil {
				return err
			}
			scale, err := e.svc.Calibrate(cmd.Context(), a, b, distance)
			if err != nil {
				return err
			}
			fmt.Fprintf(e.out, "scale factor %g\n", scale)
			return e.finish()
		},
	}
	cmd.Flags().StringVar(&a, "a", "", "First beacon id or alias")
	cmd.Flags().StringVar(&b, "b", "", "Second beacon id or alias")
	cmd.Flags().Float64Var(&distance, "distance", 0, "Physical distance between the beacons")
	_ = cmd.MarkFlagRequired("a")
	_ = cmd.MarkFlagRequired("b")
	_ = cmd.MarkFlagRequired("distance")
	return cmd
}
