package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/stash/internal/version"
)

// NewRootCmd builds the stash command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "stash",
		Short: "Stash - personal notes and bookmarks",
		Long: `Stash keeps notes and bookmarks in memory and serves them over a JSON API.

Bookmarks saved without a title get one from the page itself.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newExtractCmd())
	root.AddCommand(newFetchCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
