package cli

import (
	"context"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagscloud/pkg/config"
	"github.com/matzehuels/tagscloud/pkg/errors"
	"github.com/matzehuels/tagscloud/pkg/layout"
	"github.com/matzehuels/tagscloud/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering a saved layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var flags outputFlags

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a computed layout",
		Long: `Render a computed layout.

The visualize command takes a layout.json file (produced by 'layout') and
renders it to PNG, BMP, JPEG, SVG or JSON. The layout holds every position,
so this step only draws.

Without --output, files are named after the input: cloud.layout.json
becomes cloud.png, cloud.svg, ...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			l, err := layout.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("load layout %s: %w", args[0], err)
			}

			if l.Fill != "" {
				cfg.Output.Fill = l.Fill
			}
			if !cmd.Flags().Changed("output") {
				cfg.Output.Path = layoutBase(args[0])
			}
			flags.apply(cmd, &cfg)
			runner := c.newRunner(cmd.Context(), cfg.Cache)
			defer runner.Close()
			return runVisualize(cmd.Context(), runner, l, cfg)
		},
	}

	flags.register(cmd.Flags())
	flags.registerCompletions(cmd)

	return cmd
}

// runVisualize renders l and writes one file per format.
func runVisualize(ctx context.Context, runner *pipeline.Runner, l layout.Layout, cfg config.Config) error {
	if err := errors.ValidateOutputPath(cfg.Output.Path); err != nil {
		return err
	}
	opts, err := pipeline.FromConfig(cfg)
	if err != nil {
		return err
	}

	var (
		artifacts map[string][]byte
		cached    bool
	)
	err = withSpinner(ctx, "Rendering...", "Visualization failed", func() error {
		artifacts, cached, err = runner.RenderWithCacheInfo(ctx, l, opts)
		return err
	})
	if err != nil {
		return fmt.Errorf("visualize: %w", err)
	}

	printSuccess("Rendered %d rectangles%s", len(l.Rectangles), cacheNote(cached))
	return writeArtifacts(artifacts, cfg.Output.Path)
}

// writeArtifacts writes every artifact next to output, in format order.
func writeArtifacts(artifacts map[string][]byte, output string) error {
	formats := slices.Sorted(maps.Keys(artifacts))
	paths := outputPaths(output, formats)
	for _, format := range formats {
		path := paths[format]
		if err := errors.ValidateOutputPath(path); err != nil {
			return err
		}
		if err := os.WriteFile(path, artifacts[format], 0644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// layoutBase strips the .json and .layout suffixes from a layout file name.
func layoutBase(path string) string {
	return strings.TrimSuffix(strings.TrimSuffix(path, ".json"), ".layout")
}
