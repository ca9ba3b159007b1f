package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sankey/pkg/render/sankey/layout"
)

// inspectCommand opens an interactive column browser.
func (c *CLI) inspectCommand() *cobra.Command {
	var flags diagramFlags

	cmd := &cobra.Command{
		Use:   "inspect [edges.json|edges.csv|diagram.layout.json]",
		Short: "Browse columns and flows interactively",
		Long: `Browse the diagram column by column. Select a node to see its value and
the flows entering and leaving it.

Keys: ←/→ switch column, ↑/↓ select node, q quit.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeInputFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := c.loadDiagram(cmd.Context(), args[0], &flags)
			if err != nil {
				return err
			}
			if l.ColumnCount() == 0 {
				printInfo("Diagram is empty")
				return nil
			}
			_, err = tea.NewProgram(newInspectModel(l), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
	flags.register(cmd)

	return cmd
}

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectModel is the bubbletea model of the column browser.
type inspectModel struct {
	l      layout.Layout
	levels []int // populated levels, ascending
	col    int   // index into levels
	cursor []int // selected row per column
	height int
}

func newInspectModel(l layout.Layout) inspectModel {
	levels := l.Columns.Levels()
	return inspectModel{
		l:      l,
		levels: levels,
		cursor: make([]int, len(levels)),
		height: 15,
	}
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.col > 0 {
				m.col--
			}
		case "right", "l":
			if m.col < len(m.levels)-1 {
				m.col++
			}
		case "up", "k":
			if m.cursor[m.col] > 0 {
				m.cursor[m.col]--
			}
		case "down", "j":
			if m.cursor[m.col] < len(m.column())-1 {
				m.cursor[m.col]++
			}
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-12, 5)
	}
	return m, nil
}

// column returns the node IDs of the current column in drawing order.
func (m inspectModel) column() []string {
	if len(m.levels) == 0 {
		return nil
	}
	return m.l.Columns[m.levels[m.col]]
}

// selected returns the highlighted node ID.
func (m inspectModel) selected() string {
	ids := m.column()
	if len(ids) == 0 {
		return ""
	}
	return ids[m.cursor[m.col]]
}

func (m inspectModel) View() string {
	var b strings.Builder

	if len(m.levels) == 0 {
		return "empty diagram\n"
	}
	level := m.levels[m.col]
	b.WriteString(StyleTitle.Render(fmt.Sprintf("Column %d", level)))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.col+1, len(m.levels))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ column  ↑/↓ node  q quit"))
	b.WriteString("\n\n")

	ids := m.column()
	cur := m.cursor[m.col]
	offset := max(0, cur-m.height+1)
	for i := offset; i < len(ids) && i < offset+m.height; i++ {
		n, _ := m.l.Graph.Node(ids[i])
		line := fmt.Sprintf("%-24s %s", ids[i], formatValue(n.Value))
		if i == cur {
			b.WriteString(listSelectedStyle.Render("▸ " + line))
		} else {
			b.WriteString(listNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if id := m.selected(); id != "" {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(m.degrees(id)))
		b.WriteString("\n")
		b.WriteString(m.flowTable(id))
		b.WriteString("\n")
	}
	return b.String()
}

// degrees summarizes how many flows enter and leave id.
func (m inspectModel) degrees(id string) string {
	g := m.l.Graph
	return fmt.Sprintf("%s: %d in %s %d out", id, g.InDegree(id), iconArrow, g.OutDegree(id))
}

// flowRows lists the flows entering and leaving id with their share of
// the node's value.
func (m inspectModel) flowRows(id string) [][]string {
	g := m.l.Graph
	n, _ := g.Node(id)
	share := func(w float64) string {
		if n.Value == 0 {
			return "-"
		}
		return fmt.Sprintf("%.1f%%", 100*w/n.Value)
	}

	var rows [][]string
	for _, i := range g.InEdges(id) {
		e := g.Edge(i)
		rows = append(rows, []string{"in", e.From, formatValue(e.Weight), share(e.Weight)})
	}
	for _, i := range g.OutEdges(id) {
		e := g.Edge(i)
		rows = append(rows, []string{"out", e.To, formatValue(e.Weight), share(e.Weight)})
	}
	return rows
}

func (m inspectModel) flowTable(id string) string {
	rows := m.flowRows(id)
	if len(rows) == 0 {
		return listDimStyle.Render("  no flows")
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Value", "Share").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return listDimStyle
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}
