package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orgchart/pkg/dataset"
	"github.com/matzehuels/orgchart/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// DataSetListModel - Interactive data set selection
// =============================================================================

// DataSetSelection holds the result of the data set selection.
type DataSetSelection struct {
	DataSet dataset.DataSet
}

// DataSetListModel is the bubbletea model for interactive data set selection.
type DataSetListModel struct {
	Sets     []dataset.DataSet
	Cursor   int
	Selected *DataSetSelection
	Height   int
	Offset   int
}

// NewDataSetListModel creates a new data set list model.
func NewDataSetListModel(sets []dataset.DataSet) DataSetListModel {
	return DataSetListModel{
		Sets:   sets,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m DataSetListModel) Init() tea.Cmd {
	return nil
}

func (m DataSetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Sets)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			d := m.Sets[m.Cursor]
			if d.IsEmpty() {
				return m, nil
			}
			m.Selected = &DataSetSelection{DataSet: d}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m DataSetListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Data Set"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Sets) {
		end = len(m.Sets)
	}

	for i := m.Offset; i < end; i++ {
		d := m.Sets[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		label := fmt.Sprintf("%s  %s", d.Name, listDimStyle.Render(fmt.Sprintf("%d boxes", len(d.Nodes))))
		if d.IsEmpty() {
			label = fmt.Sprintf("%s  %s", d.Name, listDimStyle.Render("empty"))
		}

		style := listNormalStyle
		if i == m.Cursor {
			style = listSelectedStyle
		}
		if d.IsEmpty() {
			style = listDimStyle
		}

		b.WriteString(cursor + style.Render(label) + "\n")
	}

	return b.String()
}

// =============================================================================
// Pick Command
// =============================================================================

// pickCommand creates the pick command for interactive data set selection.
func (c *CLI) pickCommand() *cobra.Command {
	var (
		output     string
		datasetDir string
		noCache    bool
		style      string
		formatsStr string
	)

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Interactively select a data set and render it",
		Long: `Interactively select a data set and render it.

Shows the registered data sets in a scrollable list. Selecting one runs the
full layout and render pipeline for it. Empty data sets (such as the custom
slot before any chart has been saved) are shown but cannot be selected.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPick(cmd.Context(), datasetDir, output, style, parseFormats(formatsStr), noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, nodelink, json (comma-separated)")
	cmd.Flags().StringVar(&style, "style", pipeline.DefaultStyle, "visual style: simple (default), outline")
	cmd.Flags().StringVar(&datasetDir, "datasets", "", "directory with additional TOML data sets")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runPick shows the picker and renders the chosen data set.
func (c *CLI) runPick(ctx context.Context, datasetDir, output, style string, formats []string, noCache bool) error {
	reg := dataset.BuiltIn()
	if datasetDir != "" {
		if err := dataset.LoadDir(reg, datasetDir); err != nil {
			return fmt.Errorf("load data sets from %s: %w", datasetDir, err)
		}
	}

	sel, err := dataset.NewSelector(reg, nil)
	if err != nil {
		return fmt.Errorf("initialize selector: %w", err)
	}

	sets := make([]dataset.DataSet, 0)
	for _, name := range reg.Names() {
		d, err := reg.Get(name)
		if err != nil {
			continue
		}
		sets = append(sets, d)
	}

	model := NewDataSetListModel(sets)
	prog := tea.NewProgram(model, tea.WithContext(ctx))
	final, err := prog.Run()
	if err != nil {
		return fmt.Errorf("run picker: %w", err)
	}

	result, ok := final.(DataSetListModel)
	if !ok || result.Selected == nil {
		printInfo("No data set selected")
		return nil
	}

	if err := sel.Select(result.Selected.DataSet.Name); err != nil {
		return err
	}
	chosen := sel.Current()
	printInfo("Selected %s", StyleHighlight.Render(chosen.Name))

	opts := pipeline.Options{
		Dataset: chosen.Name,
		Formats: formats,
		Style:   style,
	}
	return c.runRender(ctx, opts, renderOpts{
		output:     output,
		datasetDir: datasetDir,
		noCache:    noCache,
	})
}
