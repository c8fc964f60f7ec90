package cli

import (
	"fmt"
	"image"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tagscloud/pkg/cloud"
	"github.com/matzehuels/tagscloud/pkg/errors"
	"github.com/matzehuels/tagscloud/pkg/pipeline"
)

// Preview styles
var (
	previewTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	previewRectStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	previewLatestStyle = lipgloss.NewStyle().Foreground(colorYellow)
	previewCenterStyle = lipgloss.NewStyle().Foreground(colorRed)
	previewFieldStyle  = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim)
)

const (
	// previewMinCols and previewMinRows bound the drawing area from below.
	previewMinCols = 20
	previewMinRows = 8

	// previewChrome is the number of terminal rows used by everything but
	// the field.
	previewChrome = 6
)

// previewCommand creates the preview command, which steps through a
// layout in the terminal.
func (c *CLI) previewCommand() *cobra.Command {
	var flags cloudFlags

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Step through a layout interactively in the terminal",
		Long: `Step through a layout interactively in the terminal.

Each key press places the next rectangle, so you can watch the spiral fill
the field. Keys: n/space place one, a place all, r restart, q quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, &cfg); err != nil {
				return err
			}
			opts, err := pipeline.FromConfig(cfg)
			if err != nil {
				return err
			}
			m, err := newPreviewModel(opts)
			if err != nil {
				return err
			}

			p := tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithAltScreen())
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("preview: %w", err)
			}
			if fm, ok := final.(previewModel); ok {
				printSuccess("Placed %d of %d rectangles", fm.layouter.Len(), fm.opts.Count)
			}
			return nil
		},
	}

	flags.register(cmd.Flags())

	return cmd
}

// =============================================================================
// previewModel - Interactive placement
// =============================================================================

// previewModel is the bubbletea model for stepping through a layout.
type previewModel struct {
	opts     pipeline.Options
	layouter *cloud.Layouter
	last     image.Rectangle
	err      error
	width    int
	height   int
}

// newPreviewModel creates a model with an empty layouter for opts.
func newPreviewModel(opts pipeline.Options) (previewModel, error) {
	opts.SetLayoutDefaults()
	m := previewModel{opts: opts, width: 80, height: 24}
	if err := m.reset(); err != nil {
		return previewModel{}, err
	}
	return m, nil
}

func (m *previewModel) reset() error {
	l, err := cloud.NewLayouter(m.opts.Center, cloud.WithSpiral(
		cloud.WithCoefficient(m.opts.Coefficient),
		cloud.WithAngleStep(m.opts.AngleStep),
	))
	if err != nil {
		return err
	}
	m.layouter, m.last, m.err = l, image.Rectangle{}, nil
	return nil
}

// done reports whether no more rectangles can be placed.
func (m previewModel) done() bool {
	return m.err != nil || m.layouter.Len() >= m.opts.Count
}

// place puts the next rectangle. Errors end the run.
func (m *previewModel) place() {
	if m.done() {
		return
	}
	rect, err := m.layouter.PutNextRectangle(m.opts.SizeAt(m.layouter.Len()))
	if err != nil {
		m.err = err
		return
	}
	m.last = rect
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "n", " ", "right":
			m.place()
		case "a", "enter":
			for !m.done() {
				m.place()
			}
		case "r":
			if err := m.reset(); err != nil {
				m.err = err
			}
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(previewTitleStyle.Render(fmt.Sprintf("Cloud around (%d,%d)", m.opts.Center.X, m.opts.Center.Y)))
	b.WriteString("\n")
	b.WriteString(previewFieldStyle.Render(m.drawField()))
	b.WriteString("\n")
	b.WriteString(m.status())
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("n/space place  a all  r restart  q quit"))

	return b.String()
}

// status summarizes progress and the last error.
func (m previewModel) status() string {
	s := StyleNumber.Render(fmt.Sprint(m.layouter.Len())) +
		StyleDim.Render(fmt.Sprintf("/%d placed · %d candidates", m.opts.Count, m.layouter.Candidates()))
	switch {
	case errors.Is(m.err, errors.ErrCodePlacementExhausted):
		s += "  " + StyleWarning.Render("field exhausted")
	case m.err != nil:
		s += "  " + StyleWarning.Render(errors.UserMessage(m.err))
	case m.layouter.Len() >= m.opts.Count:
		s += "  " + styleIconSuccess.Render(iconSuccess+" done")
	}
	return s
}

// drawField rasterizes the field into terminal cells. Cells are sampled at
// their centers; a terminal row covers twice the field height of a column.
func (m previewModel) drawField() string {
	field := m.layouter.Field()
	if field.Empty() {
		return StyleDim.Render("(empty field)")
	}

	cols := max(m.width-2, previewMinCols)
	rows := max(m.height-previewChrome, previewMinRows)
	scale := math.Max(float64(field.Dx())/float64(cols), float64(field.Dy())/float64(2*rows))
	scale = math.Max(scale, 0.5)
	cols = int(math.Ceil(float64(field.Dx()) / scale))
	rows = int(math.Ceil(float64(field.Dy()) / (2 * scale)))

	rects := m.layouter.Rectangles()
	center := m.layouter.Center()

	var b strings.Builder
	for row := 0; row < rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		y0 := float64(row) * 2 * scale
		for col := 0; col < cols; col++ {
			x0 := float64(col) * scale
			p := image.Pt(int(x0+scale/2), int(y0+scale))
			cell := image.Rect(int(x0), int(y0), int(x0+scale)+1, int(y0+2*scale)+1)

			switch {
			case center.In(cell):
				b.WriteString(previewCenterStyle.Render("+"))
			case p.In(m.last):
				b.WriteString(previewLatestStyle.Render("█"))
			case covered(p, rects):
				b.WriteString(previewRectStyle.Render("█"))
			default:
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}

// covered reports whether any rectangle contains p.
func covered(p image.Point, rects []image.Rectangle) bool {
	for _, r := range rects {
		if p.In(r) {
			return true
		}
	}
	return false
}
