package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartistry/pkg/pipeline"
	"github.com/matzehuels/chartistry/pkg/scene"
)

// Preview styles
var (
	previewKeyStyle  = lipgloss.NewStyle().Foreground(colorGray).Width(10)
	previewDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
	previewTipStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
	previewLineStyle = lipgloss.NewStyle().Bold(true)
)

const (
	pointerSteps = 20
	resizeStep   = 0.1
)

// previewCommand creates the preview command, an interactive terminal view
// of a mounted chart.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		width, height float64
		flags         cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "preview [chart.toml]",
		Short: "Explore a chart's layout interactively",
		Long: `Explore a chart's layout interactively.

The chart stays mounted while you toggle lines, resize the container and
move the tooltip pointer; every change flows through the same reactive
graph a rendered chart uses.

Keys: 1-9 toggle lines, ←/→ move the pointer, +/- resize, esc hide the
pointer, q quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), args[0], width, height, flags)
		},
	}

	cmd.Flags().Float64Var(&width, "width", pipeline.DefaultWidth, "initial container width")
	cmd.Flags().Float64Var(&height, "height", pipeline.DefaultHeight, "initial container height")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, path string, width, height float64, flags cacheFlags) error {
	defs, err := loadDefinitions([]string{path})
	if err != nil {
		return err
	}
	def := defs[0]

	runner, err := c.newRunner(ctx, flags)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	tbl, err := runner.Load(ctx, def)
	if err != nil {
		return err
	}
	m, err := runner.Layout(ctx, def, tbl, "", pipeline.Options{Definition: def, Width: width, Height: height})
	if err != nil {
		return err
	}
	defer m.Close()

	_, err = tea.NewProgram(NewPreviewModel(m, width, height), tea.WithContext(ctx)).Run()
	return err
}

// PreviewModel is the bubbletea model of the preview command. It drives a
// mounted chart and shows its layout, legend and tooltip.
type PreviewModel struct {
	Mounted       *pipeline.Mounted
	Width, Height float64
	// Pointer is the tooltip position in steps across the plot area; -1
	// hides the tooltip.
	Pointer int
	// Renders counts the scenes drawn since the model was created, the
	// current one included.
	Renders int

	cancel func()
}

// NewPreviewModel wraps m, which has already observed width × height.
func NewPreviewModel(m *pipeline.Mounted, width, height float64) *PreviewModel {
	p := &PreviewModel{
		Mounted: m,
		Width:   width,
		Height:  height,
		Pointer: -1,
	}
	p.cancel = m.Chart.OnRender(func(*scene.Node) { p.Renders++ })
	return p
}

func (p *PreviewModel) Init() tea.Cmd { return nil }

func (p *PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c":
			p.cancel()
			return p, tea.Quit
		case "esc":
			p.Pointer = -1
			p.Mounted.Chart.ClearPointer()
		case "left", "h":
			p.movePointer(-1)
		case "right", "l":
			p.movePointer(1)
		case "+", "=":
			p.resize(1 + resizeStep)
		case "-", "_":
			p.resize(1 - resizeStep)
		default:
			if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
				p.Mounted.Chart.Toggle(int(key[0] - '1'))
			}
		}
	}
	return p, nil
}

func (p *PreviewModel) movePointer(delta int) {
	if p.Pointer < 0 {
		p.Pointer = pointerSteps / 2
	} else {
		p.Pointer = max(0, min(pointerSteps, p.Pointer+delta))
	}
	p.pointAt()
}

func (p *PreviewModel) pointAt() {
	snap, ok := p.Mounted.Chart.Layout()
	if !ok || p.Pointer < 0 {
		return
	}
	in := snap.Inner
	x := in.Left + in.Width()*float64(p.Pointer)/pointerSteps
	p.Mounted.Chart.SetPointer(x, in.CentreY())
}

func (p *PreviewModel) resize(factor float64) {
	p.Width = math.Round(p.Width * factor)
	p.Height = math.Round(p.Height * factor)
	p.Mounted.Chart.Observe(p.Width, p.Height)
	p.pointAt()
}

func (p *PreviewModel) View() string {
	var b strings.Builder
	def := p.Mounted.Definition

	title := def.Name
	if def.Title != "" {
		title = def.Title + previewDimStyle.Render(" ("+def.Name+")")
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(previewDimStyle.Render("1-9 toggle  ←/→ pointer  +/- resize  esc hide  q quit"))
	b.WriteString("\n\n")

	snap, ok := p.Mounted.Chart.Layout()
	if !ok {
		b.WriteString(previewDimStyle.Render("waiting for the container size"))
		return b.String()
	}
	w, h, _ := p.Mounted.Chart.Size()
	b.WriteString(previewKeyStyle.Render("container") + " " + fmt.Sprintf("%.0f×%.0f", p.Width, p.Height) + "\n")
	b.WriteString(previewKeyStyle.Render("chart") + " " + fmt.Sprintf("%.0f×%.0f", w, h) + "\n")
	b.WriteString(previewKeyStyle.Render("inner") + " " + formatBounds(snap.Inner) + "\n")
	b.WriteString(previewKeyStyle.Render("renders") + " " + StyleNumber.Render(fmt.Sprint(p.Renders)) + "\n\n")

	for _, e := range p.Mounted.Chart.Entries() {
		mark := "○"
		style := previewDimStyle
		if e.Visible {
			mark = "●"
			style = previewLineStyle.Foreground(lipgloss.Color(e.Colour))
		}
		fmt.Fprintf(&b, "  %d %s %s\n", e.Index+1, style.Render(mark), e.Name)
	}
	b.WriteString("\n")
	b.WriteString(slotTable(snap))

	if tip := tooltipLines(p.Mounted.Chart.Scene()); len(tip) > 0 {
		b.WriteString("\n")
		b.WriteString(previewTipStyle.Render(strings.Join(tip, "\n")))
	}
	return b.String()
}

// tooltipLines returns the text of the tooltip drawn in root, if any.
func tooltipLines(root *scene.Node) []string {
	if root == nil {
		return nil
	}
	tip := root.Find("tooltip")
	if tip == nil {
		return nil
	}
	var lines []string
	for _, op := range tip.Ops {
		if t, ok := op.(scene.Text); ok {
			lines = append(lines, t.Text)
		}
	}
	return lines
}
