package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagscloud/pkg/cache"
	"github.com/matzehuels/tagscloud/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout and artifact cache",
		Long: `Manage the layout and artifact cache.

Layouts are cached by their placement inputs and rendered files by layout
and render settings. The backend is chosen by the [cache] config section:
"file" (default, under $XDG_CACHE_HOME/tagscloud), "redis" or "none".`,
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached layouts and artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd.Context())
			if err != nil {
				return err
			}

			var (
				cl       cache.Clearer
				location string
			)
			switch cfg.Cache.Backend {
			case config.CacheNone:
				printInfo("Caching is disabled")
				return nil
			case config.CacheRedis:
				rc, err := cache.NewRedisCache(cmd.Context(), cfg.Cache.RedisURL)
				if err != nil {
					return err
				}
				defer rc.Close()
				cl, location = rc, "Redis: "+cache.DefaultRedisPrefix+"*"
			default:
				dir, err := cacheDir()
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					printInfo("Cache is empty")
					return nil
				}
				fc, err := cache.NewFileCache(dir)
				if err != nil {
					return fmt.Errorf("open cache: %w", err)
				}
				cl, location = fc, "Directory: "+dir
			}

			count, err := cl.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess("Cleared %d cached entries", count)
			printDetail("%s", location)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
