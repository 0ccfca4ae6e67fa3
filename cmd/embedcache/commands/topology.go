package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newTopologyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "topology [spec]",
		Short: "Describe a topology",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var spec string
			if len(args) == 1 {
				spec = args[0]
			}

			topo, err := c.app.Describe(cmd.Context(), spec)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "id:          %s\n", topo.ID)
			_, _ = fmt.Fprintf(out, "qubits:      %d\n", topo.Graph.NumNodes())
			_, _ = fmt.Fprintf(out, "couplers:    %d\n", topo.Graph.NumEdges())
			if t := topo.Tiling; t != nil {
				_, _ = fmt.Fprintf(out, "tiling:      %dx%d tiles, %d qubits per tile\n", t.Rows, t.Cols, t.NodesPerTile)
			} else {
				_, _ = fmt.Fprintln(out, "tiling:      none")
			}
			_, _ = fmt.Fprintf(out, "fingerprint: %s\n", topo.Fingerprint())
			return nil
		},
	}
}
