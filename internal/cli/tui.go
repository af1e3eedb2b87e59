package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/JRJacoby/SciViewer/pkg/tree"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailStyle       = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

const detailPreviewLimit = 400

func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <filepath>",
		Short: "Explore a file's structure interactively",
		Long: `Open a terminal browser over the groups and datasets of a file.

Keys: ↑/↓ move, → or enter expands, ← collapses or jumps to the parent,
g/G go to top/bottom, q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.detectAndInspect(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			root, err := treeOf(result, filepath.Base(args[0]))
			if err != nil {
				return err
			}
			p := tea.NewProgram(NewTreeBrowserModel(root),
				tea.WithContext(cmd.Context()),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}

// =============================================================================
// TreeBrowserModel - Interactive tree navigation
// =============================================================================

// browserRow is one visible line of the browser.
type browserRow struct {
	node  *tree.Node
	depth int
}

// TreeBrowserModel is the bubbletea model for the interactive browser.
type TreeBrowserModel struct {
	Root     *tree.Node
	Expanded map[string]bool
	Cursor   int
	Offset   int
	Height   int

	rows []browserRow
}

// NewTreeBrowserModel creates a browser with the root expanded.
func NewTreeBrowserModel(root *tree.Node) TreeBrowserModel {
	m := TreeBrowserModel{
		Root:     root,
		Expanded: map[string]bool{root.Path: true},
		Height:   15,
	}
	m.rows = m.visibleRows()
	return m
}

func (m TreeBrowserModel) visibleRows() []browserRow {
	var rows []browserRow
	m.Root.Walk(func(n *tree.Node, depth int) bool {
		rows = append(rows, browserRow{node: n, depth: depth})
		return m.Expanded[n.Path]
	})
	return rows
}

// Selected returns the node under the cursor.
func (m TreeBrowserModel) Selected() *tree.Node {
	return m.rows[m.Cursor].node
}

func (m TreeBrowserModel) Init() tea.Cmd {
	return nil
}

func (m TreeBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(m.Cursor - 1)
		case "down", "j":
			m.move(m.Cursor + 1)
		case "g", "home":
			m.move(0)
		case "G", "end":
			m.move(len(m.rows) - 1)
		case "right", "l", "enter", " ":
			if n := m.Selected(); n.IsGroup() && len(n.Children) > 0 {
				m.setExpanded(n.Path, !m.Expanded[n.Path] || msg.String() == "right" || msg.String() == "l")
			}
		case "left", "h":
			m.collapseOrParent()
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-14, 5)
		m.move(m.Cursor)
	}
	return m, nil
}

func (m *TreeBrowserModel) move(cursor int) {
	m.Cursor = min(max(cursor, 0), len(m.rows)-1)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// setExpanded changes a group's state, keeping the cursor on the same node.
func (m *TreeBrowserModel) setExpanded(path string, expanded bool) {
	current := m.Selected()
	m.Expanded[path] = expanded
	m.rows = m.visibleRows()
	for i, r := range m.rows {
		if r.node == current {
			m.move(i)
			return
		}
	}
	m.move(m.Cursor)
}

func (m *TreeBrowserModel) collapseOrParent() {
	n := m.Selected()
	if n.IsGroup() && m.Expanded[n.Path] && n != m.Root {
		m.setExpanded(n.Path, false)
		return
	}
	depth := m.rows[m.Cursor].depth
	for i := m.Cursor - 1; i >= 0; i-- {
		if m.rows[i].depth < depth {
			m.move(i)
			return
		}
	}
}

func (m TreeBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Root.Name))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  →/⏎ expand  ← collapse  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.rows))
	for i := m.Offset; i < end; i++ {
		b.WriteString(m.rowLine(i))
		b.WriteString("\n")
	}

	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.rows))))
	b.WriteString("\n")
	b.WriteString(detailStyle.Render(details(m.Selected())))
	return b.String()
}

func (m TreeBrowserModel) rowLine(i int) string {
	r := m.rows[i]
	cursor := "  "
	if i == m.Cursor {
		cursor = "▸ "
	}

	marker := "  "
	if r.node.IsGroup() && len(r.node.Children) > 0 {
		marker = "▸ "
		if m.Expanded[r.node.Path] {
			marker = "▾ "
		}
	}

	label := nodeLabel(r.node, r.node.Name)
	if i == m.Cursor {
		label = listSelectedStyle.Render(r.node.Name)
	}
	return cursor + strings.Repeat("  ", r.depth) + marker + label
}

// details renders the metadata panel of the selected node.
func details(n *tree.Node) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", StyleTitle.Render(n.Path), StyleDim.Render(n.Kind.String()))
	if n.IsGroup() {
		fmt.Fprintf(&b, "children: %d\n", len(n.Children))
	} else {
		fmt.Fprintf(&b, "shape: %s  dtype: %s\n", tree.FormatShape(n.Shape), StyleDType.Render(n.DType))
	}
	if len(n.Attrs) > 0 {
		fmt.Fprintf(&b, "attrs: %s\n", compactJSON(n.Attrs, detailPreviewLimit))
	}
	if !n.IsGroup() {
		fmt.Fprintf(&b, "preview: %s", compactJSON(n.Preview, detailPreviewLimit))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func compactJSON(v any, limit int) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	if len(data) > limit {
		return string(data[:limit]) + "…"
	}
	return string(data)
}
