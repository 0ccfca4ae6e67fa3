package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newBoundCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bound",
		Short: "Print the raster breadth lower bound for an L×L lattice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, _ := cmd.Flags().GetInt("size")
			topology, _ := cmd.Flags().GetString("topology")

			res, err := c.app.Bound(cmd.Context(), l, topology)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "raster breadth lower bound for L=%d on %s: %d\n",
				res.L, res.Topology.ID, res.Bound)
			return nil
		},
	}
	cmd.Flags().IntP("size", "L", 0, "Linear lattice size L")
	cmd.Flags().StringP("topology", "t", "", "Topology spec; defaults to the configured one")
	_ = cmd.MarkFlagRequired("size")
	return cmd
}
