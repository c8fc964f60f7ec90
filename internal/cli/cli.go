package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tagscloud/pkg/buildinfo"
	"github.com/matzehuels/tagscloud/pkg/cache"
	"github.com/matzehuels/tagscloud/pkg/config"
	"github.com/matzehuels/tagscloud/pkg/pipeline"
	"github.com/matzehuels/tagscloud/pkg/render/sink"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "tagscloud"

	// defaultLayoutOutput is the file the layout command writes by default.
	defaultLayoutOutput = "cloud.layout.json"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is set by the --config flag.
	configPath string

	// noCache is set by the --no-cache flag.
	noCache bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Tagscloud lays out rectangles as a circular tag cloud",
		Long: `Tagscloud places rectangles around a center point without overlap, following
an outward spiral, and renders the resulting cloud as an image.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/tagscloud/config.toml if present)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the layout and artifact cache")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use, with the logger
// attached to ctx.
func (c *CLI) newRunner(ctx context.Context, cfg config.Cache) *pipeline.Runner {
	logger := loggerFromContext(ctx)
	return pipeline.NewRunner(c.newCache(ctx, cfg, logger), logger)
}

// newCache opens the configured cache, falling back to no caching when it
// is disabled or unavailable.
func (c *CLI) newCache(ctx context.Context, cfg config.Cache, logger *log.Logger) cache.Cache {
	if c.noCache || cfg.Backend == config.CacheNone {
		return cache.NewNullCache()
	}
	if cfg.Backend == config.CacheRedis {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn("cache disabled", "backend", cfg.Backend, "err", err)
			return cache.NewNullCache()
		}
		return rc
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		logger.Warn("cache disabled", "dir", dir, "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/tagscloud/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Config
// =============================================================================

// loadConfig loads the file named by --config, or the user config file if
// one exists, or the built-in defaults.
func (c *CLI) loadConfig(ctx context.Context) (config.Config, error) {
	logger := loggerFromContext(ctx)
	if c.configPath != "" {
		logger.Debug("loading config", "path", c.configPath)
		return config.Load(c.configPath)
	}
	cfg, path, err := config.LoadDefault()
	if path != "" {
		logger.Debug("loaded config", "path", path)
	}
	return cfg, err
}

// =============================================================================
// Output Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, sink.NormalizeFormat(strings.ToLower(f)))
		}
	}
	return formats
}

// formatFromPath returns the output format implied by a file extension, or
// "" when the extension names no supported format.
func formatFromPath(path string) string {
	f := sink.NormalizeFormat(strings.ToLower(filepath.Ext(path)))
	if sink.ValidFormats[f] {
		return f
	}
	return ""
}

// basePath strips a known format extension from path.
func basePath(path string) string {
	if formatFromPath(path) != "" {
		return strings.TrimSuffix(path, filepath.Ext(path))
	}
	return path
}

// outputPaths maps each format to the file it is written to. A single
// format whose extension matches output is written to output unchanged;
// otherwise each format gets base(output).<format>.
func outputPaths(output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && formatFromPath(output) == formats[0] {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}
