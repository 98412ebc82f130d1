package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kozu/pkg/composition"
	"github.com/matzehuels/kozu/pkg/pipeline"
	"github.com/matzehuels/kozu/pkg/shape"
)

// List styles
var (
	listDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
	promptStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	errorTextStyle = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// interactive command
// =============================================================================

// interactiveCommand creates the interactive command.
func (c *CLI) interactiveCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"ui"},
		Short:   "Create, regenerate and save compositions interactively",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, true)
			if err != nil {
				return err
			}
			defer runner.Close()

			if output == "" {
				output = pipeline.Filename(c.Config.Render.Output, pipeline.FormatPNG)
			}
			opts := c.pipelineOptions(generateOpts{formats: pipeline.FormatPNG})
			m := NewSessionModel(ctx, runner, opts, output)
			_, err = tea.NewProgram(m, tea.WithContext(ctx)).Run()
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "file used by save (default: shapes.png)")
	return cmd
}

// =============================================================================
// SessionModel - interactive composition session
// =============================================================================

// generatedMsg carries a finished pipeline run.
type generatedMsg struct {
	result *pipeline.Result
	notice string
	err    error
}

// savedMsg reports the outcome of a save.
type savedMsg struct {
	path string
	err  error
}

// SessionModel is the bubbletea model for the interactive session.
type SessionModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	opts   pipeline.Options
	output string

	Current    *pipeline.Result
	Confirming bool
	Busy       bool
	Status     string
	Err        error
}

// NewSessionModel creates a session that renders with runner and saves to
// output.
func NewSessionModel(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, output string) SessionModel {
	opts.Formats = []string{pipeline.FormatPNG}
	return SessionModel{ctx: ctx, runner: runner, opts: opts, output: output}
}

func (m SessionModel) Init() tea.Cmd {
	return nil
}

func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Confirming {
			return m.updateConfirm(msg)
		}
		if m.Busy {
			if k := msg.String(); k == "q" || k == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "c", "enter", "r":
			return m.start(m.generate("", ""))
		case "i":
			return m.start(m.generate(composition.TemplateTriangle, ideaNotice))
		case "s":
			if m.Current == nil {
				m.Status = "Nothing to save yet: press c to create a composition"
				return m, nil
			}
			m.Confirming = true
			m.Status = ""
		}

	case generatedMsg:
		m.Busy = false
		m.Err = msg.err
		if msg.err == nil {
			m.Current = msg.result
			m.Status = msg.notice
		}

	case savedMsg:
		m.Busy = false
		m.Err = msg.err
		if msg.err == nil {
			m.Status = "Saved " + msg.path
		}
	}
	return m, nil
}

func (m SessionModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.Confirming = false
		return m.start(m.save())
	case "n", "N", "esc", "q":
		m.Confirming = false
		m.Status = "Save cancelled"
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m SessionModel) start(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.Busy = true
	m.Err = nil
	m.Status = ""
	return m, cmd
}

// generate runs the pipeline with a fresh seed. An empty template picks one
// at random.
func (m SessionModel) generate(template, notice string) tea.Cmd {
	opts := m.opts
	opts.Template = template
	opts.Seed = 0
	return func() tea.Msg {
		res, err := m.runner.Execute(m.ctx, opts)
		return generatedMsg{result: res, notice: notice, err: err}
	}
}

// save writes the current composition as a transparent PNG.
func (m SessionModel) save() tea.Cmd {
	data := m.Current.Artifacts[pipeline.FormatPNG]
	path := m.output
	return func() tea.Msg {
		return savedMsg{path: path, err: writeFile(path, data)}
	}
}

func (m SessionModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("kozu"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("c create  r regenerate  i idea  s save  q quit"))
	b.WriteString("\n\n")

	if m.Current == nil {
		b.WriteString(listDimStyle.Render("No composition yet."))
		b.WriteString("\n")
	} else {
		b.WriteString(renderComposition(m.Current))
		b.WriteString("\n")
	}

	switch {
	case m.Busy:
		b.WriteString("\n" + listDimStyle.Render("Working..."))
	case m.Confirming:
		b.WriteString("\n" + promptStyle.Render(fmt.Sprintf("Save as transparent PNG to %s? (y/n)", m.output)))
	case m.Err != nil:
		b.WriteString("\n" + errorTextStyle.Render(iconError+" "+m.Err.Error()))
	case m.Status != "":
		b.WriteString("\n" + StyleDim.Render(iconInfo+" "+m.Status))
	}
	b.WriteString("\n")
	return b.String()
}

// renderComposition draws a summary table of the shapes in res.
func renderComposition(res *pipeline.Result) string {
	c := res.Composition
	header := fmt.Sprintf("%s  %s  %s",
		StyleHighlight.Render(res.Template),
		listDimStyle.Render("seed "+formatSeed(res.Seed)),
		listDimStyle.Render(fmt.Sprintf("%gx%g", c.Width, c.Height)))

	rows := make([][]string, 0, len(c.Shapes))
	for _, s := range c.Shapes {
		hex := shape.FormatColor(s.Color)
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("■")
		rows = append(rows, []string{
			s.Kind.String(),
			fmt.Sprintf("%.0f, %.0f", s.Position.X, s.Position.Y),
			fmt.Sprintf("%.1f", s.Size),
			swatch + " " + hex,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Shape", "Center", "Size", "Color").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	return header + "\n" + t.Render()
}
