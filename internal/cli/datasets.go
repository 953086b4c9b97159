package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orgchart/pkg/dataset"
)

// datasetsCommand creates the datasets command group.
func (c *CLI) datasetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "List and inspect the available data sets",
	}

	cmd.AddCommand(c.datasetsListCommand())
	cmd.AddCommand(c.datasetsShowCommand())

	return cmd
}

// datasetsListCommand creates the "datasets list" subcommand.
func (c *CLI) datasetsListCommand() *cobra.Command {
	var datasetDir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the registered data sets",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := dataset.BuiltIn()
			if datasetDir != "" {
				if err := dataset.LoadDir(reg, datasetDir); err != nil {
					return fmt.Errorf("load data sets from %s: %w", datasetDir, err)
				}
			}

			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(StyleDim).
				Headers("NAME", "BOXES", "DEFAULT")

			for _, name := range reg.Names() {
				d, err := reg.Get(name)
				if err != nil {
					continue
				}
				def := ""
				if name == dataset.Default {
					def = iconSuccess
				}
				t.Row(name, fmt.Sprintf("%d", len(d.Nodes)), def)
			}

			fmt.Println(t.Render())
			return nil
		},
	}

	cmd.Flags().StringVar(&datasetDir, "datasets", "", "directory with additional TOML data sets")

	return cmd
}

// datasetsShowCommand creates the "datasets show" subcommand.
func (c *CLI) datasetsShowCommand() *cobra.Command {
	var datasetDir string

	cmd := &cobra.Command{
		Use:   "show [name]",
		Short: "Show the members of a data set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := dataset.BuiltIn()
			if datasetDir != "" {
				if err := dataset.LoadDir(reg, datasetDir); err != nil {
					return fmt.Errorf("load data sets from %s: %w", datasetDir, err)
				}
			}

			d, err := reg.Get(args[0])
			if err != nil {
				return err
			}
			if d.IsEmpty() {
				printInfo("Data set %q is empty", d.Name)
				return nil
			}

			fmt.Println(StyleTitle.Render(d.Name))
			printNewline()
			for _, n := range d.Nodes {
				label := n.DisplayName()
				if n.Role != "" {
					label += " " + StyleDim.Render("("+n.Role+")")
				}
				if n.IsRoot() {
					printKeyValue(n.ID, label)
					continue
				}
				printKeyValue(n.ID, label+" "+StyleDim.Render(iconArrow+" "+n.Parent))
			}
			printNewline()
			printNextStep("Layout", "orgchart layout \""+d.Name+"\"")
			return nil
		},
	}

	cmd.Flags().StringVar(&datasetDir, "datasets", "", "directory with additional TOML data sets")

	return cmd
}
