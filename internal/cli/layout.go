package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartistry/pkg/geom"
	"github.com/matzehuels/chartistry/pkg/layout"
	"github.com/matzehuels/chartistry/pkg/pipeline"
)

// layoutCommand creates the layout command, which prints where every edge
// component of a chart lands.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		width, height float64
		flags         cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [chart.toml]",
		Short: "Print the edge layout of a chart",
		Long: `Print the edge layout of a chart.

The chart is mounted in a container of the given size and the resolved
outer bounds, plot area and every edge slot are listed in stacking order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], width, height, flags)
		},
	}

	cmd.Flags().Float64Var(&width, "width", pipeline.DefaultWidth, "container width")
	cmd.Flags().Float64Var(&height, "height", pipeline.DefaultHeight, "container height")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, path string, width, height float64, flags cacheFlags) error {
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

	tbl, hit, err := runner.LoadWithCacheInfo(ctx, def, false)
	if err != nil {
		return err
	}
	m, err := runner.Layout(ctx, def, tbl, "", pipeline.Options{Definition: def, Width: width, Height: height})
	if err != nil {
		return err
	}
	defer m.Close()

	snap, _ := m.Chart.Layout()
	printSuccess("%s", def.Name)
	printKeyValue("outer", formatBounds(snap.Outer))
	printKeyValue("inner", formatBounds(snap.Inner))
	printStats(tbl.Len(), len(tbl.Columns), hit, false)
	printNewline()
	fmt.Println(slotTable(snap))
	printNewline()
	printNextStep("Render", appName+" render "+path)
	return nil
}

// slotTable renders the edge slots of snap as a bordered table.
func slotTable(snap layout.Snapshot) string {
	rows := make([][]string, 0, len(snap.Edges))
	for _, s := range snap.Edges {
		rows = append(rows, []string{
			s.Edge,
			strconv.Itoa(s.Index),
			strconv.FormatFloat(s.Thickness, 'f', 1, 64),
			formatBounds(s.Bounds),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Edge", "#", "Thickness", "Bounds").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}

func formatBounds(b geom.Bounds) string {
	return fmt.Sprintf("(%.1f, %.1f) → (%.1f, %.1f)  %.1f×%.1f", b.Left, b.Top, b.Right, b.Bottom, b.Width(), b.Height())
}
