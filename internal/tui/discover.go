package tui

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/pipelines/internal/model"
)

var (
	activeBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("39")) // bright blue

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	cardNameStyle = lipgloss.NewStyle().
			Bold(true)

	selectedCardNameStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")). // bright white
				Background(lipgloss.Color("24"))  // dark blue bg

	cardStepStyle = lipgloss.NewStyle()

	cardDateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	cardEmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)
)

type discoverModel struct {
	profiles []model.Profile
	homepage string
	viewport viewport.Model
	cursor   int
	width    int
	height   int
	ready    bool
}

func (m discoverModel) Init() tea.Cmd {
	return nil
}

func (m discoverModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.cursor = clamp(m.cursor-1, 0, max(len(m.profiles)-1, 0))
			m.viewport.SetContent(renderCards(m.profiles, m.cursor))
			m.ensureCursorVisible()
			return m, nil
		case "down", "j":
			m.cursor = clamp(m.cursor+1, 0, max(len(m.profiles)-1, 0))
			m.viewport.SetContent(renderCards(m.profiles, m.cursor))
			m.ensureCursorVisible()
			return m, nil
		case "o":
			if m.homepage != "" {
				openURL(m.homepage)
			}
			return m, nil
		}
	}

	// Forward other keys (pgup/pgdn/home/end) to the viewport.
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *discoverModel) recalcLayout() {
	// Header (1 line) + border top/bottom (2) + status bar (1) = 4 lines overhead.
	width := max(m.width-4, 20)
	height := max(m.height-4, 5)
	if !m.ready {
		m.viewport = viewport.New(width, height)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = height
	}
	m.viewport.SetContent(renderCards(m.profiles, m.cursor))
}

func (m *discoverModel) ensureCursorVisible() {
	if len(m.profiles) == 0 {
		return
	}
	top := cardOffset(m.profiles, m.cursor)
	bottom := top + cardHeight(m.profiles[m.cursor]) - 1

	if top < m.viewport.YOffset {
		m.viewport.SetYOffset(top)
	} else if bottom >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(bottom - m.viewport.Height + 1)
	}
}

func (m discoverModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := headerStyle.Render(fmt.Sprintf("Discover (%d pipelines)", len(m.profiles)))
	content := activeBorderStyle.Width(m.width - 2).Render(m.viewport.View())

	statusText := " ↑/↓ cursor  pgup/pgdn scroll  q quit"
	if m.homepage != "" {
		statusText = " ↑/↓ cursor  pgup/pgdn scroll  o open " + m.homepage + "  q quit"
	}
	statusBar := statusBarStyle.Width(m.width).Render(statusText)

	return header + "\n" + content + "\n" + statusBar
}

// cardHeight is the number of lines a profile occupies in the list,
// including the blank separator.
func cardHeight(p model.Profile) int {
	steps := len(p.Pipeline)
	if steps == 0 {
		steps = 1
	}
	return 1 + steps*2 + 1
}

func cardOffset(profiles []model.Profile, index int) int {
	offset := 0
	for i := 0; i < index && i < len(profiles); i++ {
		offset += cardHeight(profiles[i])
	}
	return offset
}

// renderCards lays profiles out one card each. The line count of every card
// must agree with cardHeight.
func renderCards(profiles []model.Profile, cursor int) string {
	if len(profiles) == 0 {
		return "  (no pipelines yet)"
	}

	var b strings.Builder
	for i, p := range profiles {
		nameSt := cardNameStyle
		prefix := "  "
		if i == cursor {
			nameSt = selectedCardNameStyle
			prefix = "> "
		}
		b.WriteString(prefix)
		b.WriteString(nameSt.Render(p.DisplayName()))
		b.WriteByte('\n')

		if len(p.Pipeline) == 0 {
			b.WriteString("    " + cardEmptyStyle.Render("empty pipeline") + "\n")
			b.WriteByte('\n')
		}
		for _, e := range p.Pipeline {
			b.WriteString("    " + cardStepStyle.Render(stepLabel(e)) + "\n")
			b.WriteString("    " + cardDateStyle.Render(e.Date) + "\n")
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func stepLabel(e model.Experience) string {
	switch {
	case e.Title != "" && e.Company != "":
		return e.Title + " @ " + e.Company
	case e.Company != "":
		return e.Company
	case e.Title != "":
		return e.Title
	}
	return "(untitled)"
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// openURL opens url in the default system browser, fire-and-forget.
func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return
	}
	_ = cmd.Start()
}

// RunDiscover shows the loaded discovery feed as a scrollable list of
// pipeline cards.
func RunDiscover(profiles []model.Profile, homepage string) error {
	m := discoverModel{
		profiles: profiles,
		homepage: homepage,
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
