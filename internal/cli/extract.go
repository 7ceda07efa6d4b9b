package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/stash/internal/logger"
	"github.com/MrSnakeDoc/stash/internal/metadata"
)

func newExtractCmd() *cobra.Command {
	var pageURL string

	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Extract title and description from a local HTML page",
		Long: `Extract title and description from a local HTML page and print them as JSON.

Reads standard input when no file is given. --url is the fallback title.

Examples:
  stash extract page.html --url https://example.com
  curl -s https://go.dev | stash extract --url https://go.dev`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var page []byte
			var err error
			if len(args) == 1 {
				page, err = os.ReadFile(args[0])
			} else {
				page, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("failed to read page: %w", err)
			}

			return writeJSON(cmd.OutOrStdout(), metadata.Extract(string(page), pageURL))
		},
	}

	cmd.Flags().StringVar(&pageURL, "url", "", "page URL, used as the title when none is found")
	return cmd
}

func newFetchCmd() *cobra.Command {
	var (
		timeout   time.Duration
		userAgent string
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Fetch a page and print its metadata as JSON",
		Long: `Fetch a page the way bookmark creation does and print its metadata as JSON.

Failures are reported on stderr and exit non-zero; the service itself would
fall back to the URL as title.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level := "error"
			if verbose {
				level = "debug"
			}
			f := metadata.NewFetcher(metadata.Options{
				Timeout:   timeout,
				UserAgent: userAgent,
			}, logger.New(level, true))

			md, err := f.Fetch(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch %s: %w", args[0], err)
			}
			return writeJSON(cmd.OutOrStdout(), md)
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "request timeout")
	cmd.Flags().StringVar(&userAgent, "user-agent", "", "User-Agent header (default: desktop browser)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log each step")
	return cmd
}
