package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kozu/pkg/composition"
	"github.com/matzehuels/kozu/pkg/errors"
	"github.com/matzehuels/kozu/pkg/pipeline"
)

// ideaNotice is shown by the idea command.
const ideaNotice = "Illustration ideas are under development: rough sketches based on the shapes will be suggested here."

// generateOpts holds the flags shared by generate, regenerate and idea.
// Zero values fall back to the loaded config.
type generateOpts struct {
	template string
	width    float64
	height   float64
	seed     uint64
	formats  string
	scale    float64
	output   string
	noCache  bool
}

func (o *generateOpts) bind(cmd *cobra.Command, withTemplate, withSeed bool) {
	if withTemplate {
		cmd.Flags().StringVarP(&o.template, "template", "t", "", "composition template (default: random)")
	}
	if withSeed {
		cmd.Flags().Uint64VarP(&o.seed, "seed", "s", 0, "random seed (default: random); a fixed seed reproduces a composition")
	}
	cmd.Flags().Float64Var(&o.width, "width", 0, "canvas width (default from config: 500)")
	cmd.Flags().Float64Var(&o.height, "height", 0, "canvas height (default from config: 500)")
	cmd.Flags().StringVarP(&o.formats, "format", "f", "", "output format(s): png (default), svg, json (comma-separated)")
	cmd.Flags().Float64Var(&o.scale, "scale", 0, "PNG scale factor (default 1)")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file or base path (default: shapes.png)")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable the artifact cache")
}

// pipelineOptions merges flags over the config.
func (c *CLI) pipelineOptions(o generateOpts) pipeline.Options {
	opts := pipeline.Options{
		Template: o.template,
		Width:    o.width,
		Height:   o.height,
		Seed:     o.seed,
		Formats:  parseFormats(o.formats),
		Scale:    o.scale,
		Logger:   c.Logger,
	}
	if opts.Width == 0 {
		opts.Width = c.Config.Canvas.Width
	}
	if opts.Height == 0 {
		opts.Height = c.Config.Canvas.Height
	}
	if len(opts.Formats) == 0 {
		opts.Formats = append([]string(nil), c.Config.Render.Formats...)
	}
	if opts.Scale == 0 {
		opts.Scale = c.Config.Render.Scale
	}
	return opts
}

// generateCommand creates the generate command (alias create).
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"create"},
		Short:   "Generate a random composition",
		Long: `Generate picks one of the composition templates at random (or the one given
with --template), places its shapes on a transparent canvas and writes the
result. The seed is printed so the same composition can be produced again.`,
		Example: `  kozu generate
  kozu create --template sun --format png,svg
  kozu generate --seed 42 -o art.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := c.runGenerate(cmd.Context(), opts, false)
			return err
		},
	}
	opts.bind(cmd, true, true)
	return cmd
}

// regenerateCommand creates the regenerate command.
func (c *CLI) regenerateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "regenerate",
		Short: "Generate a new random composition with a fresh seed",
		Long:  `Regenerate always draws a fresh seed and bypasses the cache, replacing the previous output file.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := c.runGenerate(cmd.Context(), opts, true)
			return err
		},
	}
	opts.bind(cmd, true, false)
	return cmd
}

// ideaCommand creates the idea command.
func (c *CLI) ideaCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "idea",
		Short: "Generate a triangle composition as a starting point for an illustration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.template = composition.TemplateTriangle
			if _, err := c.runGenerate(cmd.Context(), opts, false); err != nil {
				return err
			}
			printNewline()
			printWarning("%s", ideaNotice)
			return nil
		},
	}
	opts.bind(cmd, false, true)
	return cmd
}

// runGenerate executes one pipeline run and writes its artifacts. fresh
// forces a new seed and skips the cache.
func (c *CLI) runGenerate(ctx context.Context, o generateOpts, fresh bool) (*pipeline.Result, error) {
	runner, err := c.newRunner(ctx, o.noCache || fresh)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	opts := c.pipelineOptions(o)
	if fresh {
		opts.Seed = 0
		opts.Refresh = true
	}

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		return nil, err
	}

	output := o.output
	if output == "" {
		output = c.Config.Render.Output
	}
	paths, err := writeArtifacts(res, opts.Formats, output)
	if err != nil {
		return nil, err
	}

	printSuccess("Generated %s composition", StyleHighlight.Render(res.Template))
	printStats(res.Stats.ShapeCount, res.Seed, res.CacheInfo.RenderHit)
	for _, p := range paths {
		printFile(p)
	}
	if !res.CacheInfo.Cacheable {
		printNewline()
		printNextStep("Reproduce this composition", fmt.Sprintf("kozu generate --template %s --seed %d", res.Template, res.Seed))
	}
	return res, nil
}

// writeArtifacts writes every rendered format next to output and returns
// the written paths in format order.
func writeArtifacts(res *pipeline.Result, formats []string, output string) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := pipeline.Filename(output, format)
		if err := writeFile(path, res.Artifacts[format]); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, data []byte) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "create directory %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}

func formatSeed(seed uint64) string {
	return strconv.FormatUint(seed, 10)
}
