package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kozu/pkg/composition"
)

var templateDescriptions = map[string]string{
	composition.TemplateTriangle: "circle, rectangle and triangle on the corners of a balanced triangle",
	composition.TemplateSun:      "one large shape in the center of the canvas",
}

// templatesCommand creates the templates command.
func (c *CLI) templatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List composition templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := c.Config.Selector()
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, StyleTitle.Render("Templates"))
			for _, name := range sel.Names() {
				printKeyValue(name, templateDescriptions[name])
			}
			return nil
		},
	}
}
