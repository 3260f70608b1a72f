package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	menuTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(1, 0, 1, 2)

	menuItemStyle = lipgloss.NewStyle().
			Padding(0, 0, 0, 4)

	menuSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				Padding(0, 0, 0, 2)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(1, 0, 0, 2)
)

// MenuChoice is an entry of the main menu.
type MenuChoice int

const (
	MenuQuit MenuChoice = iota
	MenuEdit
	MenuDiscover
)

var menuItems = []struct {
	choice MenuChoice
	label  string
}{
	{MenuEdit, "Edit my pipeline"},
	{MenuDiscover, "Discover pipelines"},
	{MenuQuit, "Quit"},
}

type menuModel struct {
	cursor int
	chosen MenuChoice
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.chosen = MenuQuit
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(menuItems)-1 {
				m.cursor++
			}
		case "enter":
			m.chosen = menuItems[m.cursor].choice
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m menuModel) View() string {
	s := menuTitleStyle.Render("Pipelines")
	s += "\n"

	for i, item := range menuItems {
		if i == m.cursor {
			s += menuSelectedStyle.Render("> "+item.label) + "\n"
		} else {
			s += menuItemStyle.Render(item.label) + "\n"
		}
	}

	s += hintStyle.Render("↑/↓/j/k navigate  enter select  q quit")
	return s
}

// RunMenu shows the main menu and returns the chosen action.
func RunMenu() (MenuChoice, error) {
	p := tea.NewProgram(menuModel{})
	result, err := p.Run()
	if err != nil {
		return MenuQuit, err
	}
	return result.(menuModel).chosen, nil
}
