package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/stash/internal/app"
	"github.com/MrSnakeDoc/stash/internal/config"
	"github.com/MrSnakeDoc/stash/internal/logger"
	redisstore "github.com/MrSnakeDoc/stash/internal/store/redis"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the Redis metadata cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List cached URLs",
		Args:  cobra.NoArgs,
		RunE: withCache(func(ctx context.Context, cmd *cobra.Command, store *redisstore.Store, args []string) error {
			urls, err := store.ListMetadata(ctx)
			if err != nil {
				return err
			}
			slices.Sort(urls)
			for _, u := range urls {
				fmt.Fprintln(cmd.OutOrStdout(), u)
			}
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "forget <url>",
		Short: "Drop the cached metadata of one URL",
		Args:  cobra.ExactArgs(1),
		RunE: withCache(func(ctx context.Context, cmd *cobra.Command, store *redisstore.Store, args []string) error {
			return store.InvalidateMetadata(ctx, args[0])
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "flush",
		Short: "Drop every cached metadata entry",
		Args:  cobra.NoArgs,
		RunE: withCache(func(ctx context.Context, cmd *cobra.Command, store *redisstore.Store, args []string) error {
			n, err := store.FlushMetadata(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d entries removed\n", n)
			return nil
		}),
	})

	return cmd
}

type cacheFunc func(ctx context.Context, cmd *cobra.Command, store *redisstore.Store, args []string) error

// withCache connects with the service configuration and closes the client
// when fn returns.
func withCache(fn cacheFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if !cfg.RedisEnabled() {
			return fmt.Errorf("STASH_REDIS_ADDR is not set, there is no metadata cache")
		}

		ctx := cmd.Context()
		client, store, err := app.ConnectCache(ctx, cfg, logger.New("error", true))
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer func() {
			_ = client.Close()
		}()

		return fn(ctx, cmd, store, args)
	}
}
