package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// LayoutListModel - Interactive template layout selection
// =============================================================================

// LayoutChoice is one selectable template layout with its classification
// summary, precomputed so the view stays a pure formatting concern.
type LayoutChoice struct {
	Index    int
	Name     string
	Elements int
	Branding int
	SafeArea string
	Usable   bool
}

// LayoutListModel is the bubbletea model for interactive layout selection.
type LayoutListModel struct {
	Template string
	Choices  []LayoutChoice
	Cursor   int
	Selected *LayoutChoice
	Height   int
	Offset   int
}

// NewLayoutListModel creates a new layout list model.
func NewLayoutListModel(template string, choices []LayoutChoice) LayoutListModel {
	return LayoutListModel{
		Template: template,
		Choices:  choices,
		Cursor:   0,
		Height:   15,
		Offset:   0,
	}
}

func (m LayoutListModel) Init() tea.Cmd {
	return nil
}

func (m LayoutListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Choices)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			choice := m.Choices[m.Cursor]
			m.Selected = &choice
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

func (m LayoutListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Layout"))
	if m.Template != "" {
		b.WriteString(listDimStyle.Render("  " + m.Template))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Choices) {
		end = len(m.Choices)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		c := m.Choices[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		name := c.Name
		if name == "" {
			name = "—"
		}

		rows = append(rows, []string{
			cursor,
			fmt.Sprintf("%d", c.Index),
			name,
			fmt.Sprintf("%d", c.Elements),
			fmt.Sprintf("%d", c.Branding),
			c.SafeArea,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Layout", "Elements", "Branding", "Safe Area").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Choices) {
				return lipgloss.NewStyle()
			}
			c := m.Choices[actualIdx]
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if isCurrent {
				if c.Usable {
					return base.Foreground(colorGreen).Bold(true)
				}
				return base.Foreground(colorYellow).Bold(true)
			}
			if !c.Usable {
				return base.Foreground(colorDim)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Choices))))

	return b.String()
}
