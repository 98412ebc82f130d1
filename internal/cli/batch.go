package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kozu/pkg/pipeline"
)

// batchOpts holds the flags for the batch command.
type batchOpts struct {
	generateOpts
	count       int
	concurrency int
	dir         string
}

// batchCommand creates the batch command.
func (c *CLI) batchCommand() *cobra.Command {
	opts := batchOpts{count: 10, concurrency: pipeline.DefaultConcurrency, dir: "."}

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Generate many compositions concurrently",
		Long: `Batch generates --count compositions with at most --concurrency running at
once. With --seed, run i uses seed+i so the batch can be reproduced.`,
		Example: `  kozu batch --count 50 --dir out/
  kozu batch --count 8 --seed 100 --format png,json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBatch(cmd.Context(), opts)
		},
	}
	opts.bind(cmd, true, true)
	cmd.Flags().IntVarP(&opts.count, "count", "n", opts.count, "number of compositions")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "j", opts.concurrency, "maximum parallel runs")
	cmd.Flags().StringVarP(&opts.dir, "dir", "d", opts.dir, "output directory")
	return cmd
}

func (c *CLI) runBatch(ctx context.Context, o batchOpts) error {
	runner, err := c.newRunner(ctx, o.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts := c.pipelineOptions(o.generateOpts)
	prog := newProgress(c.Logger)

	spinner := newSpinnerWithContext(ctx, "Generating compositions")
	spinner.SetTotal(o.count)
	spinner.Start()
	results, err := runner.ExecuteBatch(ctx, opts, pipeline.Batch{
		Count:       o.count,
		Concurrency: o.concurrency,
		OnResult:    func(int, *pipeline.Result) { spinner.Increment() },
	})
	if err != nil {
		spinner.StopWithError("Batch failed")
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Generated %d compositions", len(results)))

	var written int
	for i, res := range results {
		base := filepath.Join(o.dir, fmt.Sprintf("%s-%03d-%s-%s", appName, i+1, res.Template, formatSeed(res.Seed)))
		paths, err := writeArtifacts(res, opts.Formats, base)
		if err != nil {
			return err
		}
		written += len(paths)
	}

	prog.done(fmt.Sprintf("Wrote %d files to %s", written, o.dir))
	return nil
}
