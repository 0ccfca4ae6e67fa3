package commands

import (
	"fmt"

	"github.com/anneal-lab/embedcache/internal/adapters/store"
	"github.com/anneal-lab/embedcache/internal/app"
	"github.com/spf13/cobra"
)

func (c *CLI) newEmbedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "embed",
		Short: "Resolve the embeddings of an L×L lattice, from the cache when possible",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, _ := cmd.Flags().GetInt("size")
			topology, _ := cmd.Flags().GetString("topology")
			noCache, _ := cmd.Flags().GetBool("no-cache")
			timeout, _ := cmd.Flags().GetDuration("timeout")
			breadth, _ := cmd.Flags().GetInt("raster-breadth")
			printTable, _ := cmd.Flags().GetBool("print")
			progress, _ := cmd.Flags().GetBool("progress")

			opts := app.EmbedOptions{
				L:             l,
				Topology:      topology,
				NoCache:       noCache,
				Timeout:       timeout,
				RasterBreadth: breadth,
			}
			if cmd.Flags().Changed("max-num-emb") {
				maxNumEmb, _ := cmd.Flags().GetInt("max-num-emb")
				opts.MaxNumEmb = &maxNumEmb
			}

			res, err := c.app.Embed(cmd.Context(), opts)
			if progress {
				_ = c.app.Report(cmd.ErrOrStderr())
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "topology:   %s\n", res.Topology.ID)
			_, _ = fmt.Fprintf(out, "L:          %d\n", res.Graph.L())
			_, _ = fmt.Fprintf(out, "embeddings: %d\n", res.Table.Rows())
			_, _ = fmt.Fprintf(out, "columns:    %d\n", res.Table.Cols())
			_, _ = fmt.Fprintf(out, "source:     %s\n", res.Source)
			_, _ = fmt.Fprintf(out, "cache:      %s\n", res.Path)
			if printTable {
				return store.Encode(out, res.Table)
			}
			return nil
		},
	}
	cmd.Flags().IntP("size", "L", 0, "Linear lattice size L")
	cmd.Flags().StringP("topology", "t", "", "Topology spec (zephyr:MxT, chimera:MxNxT or a topology file); defaults to the configured one")
	cmd.Flags().BoolP("no-cache", "n", false, "Ignore cached embeddings and search again")
	cmd.Flags().Duration("timeout", 0, "Search time budget (default from configuration)")
	cmd.Flags().Int("raster-breadth", 0, "Raster breadth handed to the search (default from configuration)")
	cmd.Flags().Int("max-num-emb", 0, "Maximum number of disjoint embeddings kept by a search, 0 keeps all (default from configuration)")
	cmd.Flags().BoolP("print", "p", false, "Print the embedding table")
	cmd.Flags().Bool("progress", false, "Print the recorded load, search and persist steps to stderr")
	_ = cmd.MarkFlagRequired("size")
	return cmd
}
