// Package commands implements the CLI commands for embedcache.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/anneal-lab/embedcache/internal/app"
	"github.com/anneal-lab/embedcache/internal/build"
	"github.com/anneal-lab/embedcache/internal/core/domain"
	"github.com/spf13/cobra"
)

// CLI represents the command line interface for embedcache.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Embed(ctx context.Context, opts app.EmbedOptions) (*app.EmbedResult, error)
	Bound(ctx context.Context, l int, spec string) (*app.BoundResult, error)
	Describe(ctx context.Context, spec string) (*domain.Topology, error)
	Clean(ctx context.Context) error
	Report(w io.Writer) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "embedcache",
		Short:         "Embed square lattices into annealer topologies, with an on-disk cache",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newEmbedCmd())
	rootCmd.AddCommand(c.newBoundCmd())
	rootCmd.AddCommand(c.newTopologyCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
