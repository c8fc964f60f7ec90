package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagscloud/pkg/config"
	"github.com/matzehuels/tagscloud/pkg/errors"
	"github.com/matzehuels/tagscloud/pkg/pipeline"
)

// renderCommand creates the render command, which runs layout and
// visualize in one step.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		cloud  cloudFlags
		output outputFlags
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Compute a layout and render it in one step",
		Long: `Compute a layout and render it in one step.

With no flags and no config file, render draws the classic demo cloud:
75 rectangles of 50x40 around (250,250), yellow on black, to cloud75.bmp.

Use 'layout' and 'visualize' to keep the layout.json in between.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			if err := cloud.apply(cmd, &cfg); err != nil {
				return err
			}
			output.apply(cmd, &cfg)
			runner := c.newRunner(cmd.Context(), cfg.Cache)
			defer runner.Close()
			return runRender(cmd.Context(), runner, cfg)
		},
	}

	cloud.register(cmd.Flags())
	output.register(cmd.Flags())
	output.registerCompletions(cmd)

	return cmd
}

// runRender runs the full pipeline and writes the artifacts.
func runRender(ctx context.Context, runner *pipeline.Runner, cfg config.Config) error {
	if err := errors.ValidateOutputPath(cfg.Output.Path); err != nil {
		return err
	}
	opts, err := pipeline.FromConfig(cfg)
	if err != nil {
		return err
	}

	prog := newProgress(loggerFromContext(ctx))
	var result *pipeline.Result
	err = withSpinner(ctx, "Computing layout...", "Render failed", func() error {
		result, err = runner.Execute(ctx, opts)
		return err
	})
	if err != nil {
		return err
	}
	prog.done(result)

	printSuccess("Render complete")
	if err := writeArtifacts(result.Artifacts, cfg.Output.Path); err != nil {
		return err
	}
	printResult(result)
	return nil
}
