package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagscloud/pkg/config"
	"github.com/matzehuels/tagscloud/pkg/errors"
	"github.com/matzehuels/tagscloud/pkg/layout"
	"github.com/matzehuels/tagscloud/pkg/pipeline"
)

// layoutCommand creates the layout command for computing cloud layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  cloudFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute a tag-cloud layout",
		Long: `Compute a tag-cloud layout.

The layout command places --count rectangles around --center and writes the
positions as a layout.json file that can be rendered with 'visualize'.

Rectangles are placed one by one along an outward spiral. When the spiral
leaves the field before all rectangles fit, the command fails unless
--stop-on-exhausted is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, &cfg); err != nil {
				return err
			}
			runner := c.newRunner(cmd.Context(), cfg.Cache)
			defer runner.Close()
			return runLayout(cmd.Context(), runner, cfg, output)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", defaultLayoutOutput, "output file")

	return cmd
}

// runLayout computes the layout and writes it to output.
func runLayout(ctx context.Context, runner *pipeline.Runner, cfg config.Config, output string) error {
	if err := errors.ValidateOutputPath(output); err != nil {
		return err
	}
	opts, err := pipeline.FromConfig(cfg)
	if err != nil {
		return err
	}

	prog := newProgress(loggerFromContext(ctx))
	var result *pipeline.Result
	err = withSpinner(ctx, "Computing layout...", "Layout failed", func() error {
		result, err = runner.Layout(ctx, opts)
		return err
	})
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	prog.done(result)

	result.Layout.Fill = cfg.Output.Fill
	if err := layout.WriteFile(result.Layout, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Layout complete")
	printFile(output)
	printResult(result)
	printNewline()
	printNextStep("Render", appName+" visualize "+output)

	return nil
}

// printResult prints placement statistics and warns about a partial cloud.
func printResult(result *pipeline.Result) {
	printStats(result.Stats.Placed, result.Stats.Requested, result.Stats.Candidates, result.CacheInfo.LayoutHit)
	if result.Exhausted {
		printWarning("Field exhausted after %d of %d rectangles", result.Stats.Placed, result.Stats.Requested)
	}
}
