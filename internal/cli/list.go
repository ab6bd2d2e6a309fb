package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartistry/pkg/config"
)

// listCommand creates the list command.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [dir]",
		Short: "List the chart definitions in a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			defs, err := config.LoadDir(dir)
			if err != nil {
				return err
			}
			if len(defs) == 0 {
				printInfo("No chart definitions in %s", dir)
				return nil
			}
			fmt.Println(definitionTable(defs))
			return nil
		},
	}
}

// definitionTable summarises defs, one row each.
func definitionTable(defs []*config.Definition) string {
	rows := make([][]string, 0, len(defs))
	for _, d := range defs {
		ratio, _ := d.Ratio()
		rows = append(rows, []string{
			d.Name,
			d.Title,
			d.Source.Kind,
			ratio.String(),
			strconv.Itoa(len(d.Lines)),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Name", "Title", "Source", "Aspect", "Styled lines").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorGreen)
			case col >= 2:
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
