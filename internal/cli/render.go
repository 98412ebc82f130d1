package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/kozu/pkg/export"
	"github.com/matzehuels/kozu/pkg/pipeline"
)

// renderOpts holds the flags for the render command.
type renderOpts struct {
	formats string
	scale   float64
	output  string
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <file.json>",
		Short: "Render a saved JSON composition to PNG or SVG",
		Long: `Render reads a composition previously written with --format json and draws
it again without sampling. Shapes, colors and canvas size come from the file,
so a composition can be re-exported at another scale or in another format.`,
		Example: `  kozu render shapes.json
  kozu render shapes.json --format png,svg --scale 2 -o large.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := c.runRender(args[0], opts)
			return err
		},
	}
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): png (default), svg, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG scale factor (default 1)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file or base path (default: shapes.png)")
	return cmd
}

// runRender imports a JSON document and writes it in the requested
// formats. Canvas limits and the PNG pixel budget apply as for generate.
func (c *CLI) runRender(path string, o renderOpts) ([]string, error) {
	doc, err := export.ImportJSON(path)
	if err != nil {
		return nil, err
	}
	comp, err := doc.Composition()
	if err != nil {
		return nil, err
	}

	opts := c.pipelineOptions(generateOpts{formats: o.formats, scale: o.scale})
	opts.Width, opts.Height = doc.Width, doc.Height
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	artifacts, err := pipeline.Render(comp, doc.Seed, opts.Formats, opts.Scale)
	if err != nil {
		return nil, err
	}

	output := o.output
	if output == "" {
		output = c.Config.Render.Output
	}
	paths, err := writeArtifacts(&pipeline.Result{Artifacts: artifacts}, opts.Formats, output)
	if err != nil {
		return nil, err
	}

	c.Logger.Debug("rendered document", "path", path, "shapes", len(comp.Shapes), "formats", opts.Formats)
	printSuccess("Rendered %s composition from %s", StyleHighlight.Render(doc.Template), path)
	for _, p := range paths {
		printFile(p)
	}
	return paths, nil
}
