package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/pipelines/internal/experience"
	"github.com/amishk599/pipelines/internal/model"
	"github.com/amishk599/pipelines/internal/search"
)

const (
	maxCompanySuggestions = 6
	maxSchoolSuggestions  = 8
)

var (
	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(10)

	focusedLabelStyle = labelStyle.
				Foreground(lipgloss.Color("39")).
				Bold(true)

	suggestionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedSuggestionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("24"))

	datePreviewStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Italic(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	submitStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	focusedSubmitStyle = submitStyle.
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("24"))
)

type fieldKind int

const (
	fieldCompany fieldKind = iota
	fieldTitle
	fieldStart
	fieldEnd
	fieldPresent
	fieldsPerEntry
)

var fieldLabels = [...]string{"Company", "Title", "Start", "End", "Present"}

// schoolResultsMsg signals that the school field replaced its candidates.
type schoolResultsMsg struct{}

// entryInputs is the on-screen state of one experience entry.
type entryInputs struct {
	form    *experience.Form
	company *search.LocalField
	inputs  [fieldPresent]textinput.Model
	dateErr [2]string // start, end
	cursor  int       // company suggestion cursor
}

// schoolChoice is written by the school field's selection callback, which
// runs synchronously inside Update.
type schoolChoice struct {
	name string
}

type editorModel struct {
	list      *experience.List
	companies []model.Company
	entries   []entryInputs

	school        *search.RemoteField
	schoolInput   textinput.Model
	schoolChoice  *schoolChoice
	schoolResults []model.School
	schoolCursor  int

	focus    int
	viewport viewport.Model
	width    int
	height   int
	ready    bool

	notice    string
	submitted bool
}

// EditorOptions configures RunEditor.
type EditorOptions struct {
	Pipeline       []model.Experience
	School         string
	Companies      []model.Company
	Searcher       model.SchoolSearcher
	Reporter       model.ErrorReporter
	SearchDelay    time.Duration
	RequestTimeout time.Duration
	Now            func() time.Time
}

// EditorResult is what the user left the editor with.
type EditorResult struct {
	Pipeline  []model.Experience
	School    string
	Submitted bool
}

func newEditorModel(opts EditorOptions, send func(tea.Msg)) (editorModel, error) {
	var listOpts []experience.Option
	if opts.Now != nil {
		listOpts = append(listOpts, experience.WithClock(opts.Now))
	}
	list, err := experience.NewList(opts.Pipeline, listOpts...)
	if err != nil {
		return editorModel{}, fmt.Errorf("load pipeline: %w", err)
	}

	m := editorModel{
		list:         list,
		companies:    opts.Companies,
		schoolChoice: &schoolChoice{name: opts.School},
	}
	for i := 0; i < list.Len(); i++ {
		m.entries = append(m.entries, newEntryInputs(list.Form(i), opts.Companies))
	}
	if len(m.entries) == 0 {
		m.entries = append(m.entries, newEntryInputs(list.Add(), opts.Companies))
	}

	remoteOpts := []search.RemoteOption{
		search.WithResultsHandler(func([]model.School) { send(schoolResultsMsg{}) }),
	}
	if opts.SearchDelay > 0 {
		remoteOpts = append(remoteOpts, search.WithDelay(opts.SearchDelay))
	}
	if opts.RequestTimeout > 0 {
		remoteOpts = append(remoteOpts, search.WithRequestTimeout(opts.RequestTimeout))
	}
	if opts.Reporter != nil {
		remoteOpts = append(remoteOpts, search.WithReporter(opts.Reporter))
	}
	choice := m.schoolChoice
	m.school = search.NewRemoteField(opts.Searcher, func(name string) { choice.name = name }, remoteOpts...)
	m.schoolInput = newInput("Search schools", 100)

	m.applyFocus()
	return m, nil
}

func newEntryInputs(form *experience.Form, companies []model.Company) entryInputs {
	e := entryInputs{
		form:    form,
		company: search.NewLocalField(companies, form.SetCompany),
	}
	e.inputs[fieldCompany] = newInput("Search companies", 100)
	e.inputs[fieldTitle] = newInput("Job title", 100)
	e.inputs[fieldStart] = newInput("YYYY-MM", 7)
	e.inputs[fieldEnd] = newInput("YYYY-MM", 7)

	e.inputs[fieldTitle].SetValue(form.Title())
	e.inputs[fieldStart].SetValue(form.StartDate())
	e.inputs[fieldEnd].SetValue(form.EndDate())
	return e
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	ti.Prompt = ""
	return ti
}

func (m editorModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		return m, nil

	case schoolResultsMsg:
		// The field is authoritative; a clear may have raced this message.
		m.schoolResults = m.school.Results()
		m.schoolCursor = 0
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		m.notice = ""
		next, cmd := m.handleKey(msg)
		em := next.(editorModel)
		em.refresh()
		return em, cmd
	}

	return m, nil
}

func (m editorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entry, kind := m.focusTarget()

	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab":
		return m, m.moveFocus(1)
	case "shift+tab":
		return m, m.moveFocus(-1)
	case "ctrl+n":
		m.entries = append(m.entries, newEntryInputs(m.list.Add(), m.companies))
		m.focus = (len(m.entries) - 1) * int(fieldsPerEntry)
		return m, m.applyFocus()
	case "ctrl+x":
		if entry < 0 {
			return m, nil
		}
		if err := m.list.Remove(entry); err != nil {
			m.notice = err.Error()
			return m, nil
		}
		m.entries = append(m.entries[:entry], m.entries[entry+1:]...)
		if len(m.entries) == 0 {
			m.focus = m.schoolFocus()
		} else {
			m.focus = min(entry, len(m.entries)-1) * int(fieldsPerEntry)
		}
		return m, m.applyFocus()
	case "up":
		if m.moveSuggestion(entry, kind, -1) {
			return m, nil
		}
		return m, m.moveFocus(-1)
	case "down":
		if m.moveSuggestion(entry, kind, 1) {
			return m, nil
		}
		return m, m.moveFocus(1)
	case "enter":
		return m.handleEnter(entry, kind)
	case " ":
		if entry >= 0 && kind == fieldPresent {
			m.togglePresent(entry)
			return m, nil
		}
	}

	return m.updateInput(entry, kind, msg)
}

func (m editorModel) handleEnter(entry int, kind fieldKind) (tea.Model, tea.Cmd) {
	switch {
	case m.focus == m.submitFocus():
		if !m.list.CanSubmit() {
			m.notice = "fix the highlighted entries before submitting"
			return m, nil
		}
		for _, e := range m.entries {
			if e.datesPending() {
				m.notice = "finish or clear the unsaved dates before submitting"
				return m, nil
			}
		}
		m.submitted = true
		return m, tea.Quit

	case m.focus == m.schoolFocus():
		if len(m.schoolResults) == 0 {
			return m, m.moveFocus(1)
		}
		if err := m.school.Select(m.schoolCursor); err != nil {
			m.notice = err.Error()
			return m, nil
		}
		m.schoolInput.SetValue("")
		m.schoolResults = nil
		m.schoolCursor = 0
		return m, nil

	case kind == fieldCompany:
		e := &m.entries[entry]
		if len(e.company.Results()) == 0 {
			return m, m.moveFocus(1)
		}
		if err := e.company.Select(e.cursor); err != nil {
			m.notice = err.Error()
			return m, nil
		}
		e.inputs[fieldCompany].SetValue("")
		e.cursor = 0
		return m, nil

	case kind == fieldPresent:
		m.togglePresent(entry)
		return m, nil
	}
	return m, m.moveFocus(1)
}

func (m editorModel) updateInput(entry int, kind fieldKind, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.focus == m.schoolFocus() {
		before := m.schoolInput.Value()
		m.schoolInput, cmd = m.schoolInput.Update(msg)
		if after := m.schoolInput.Value(); after != before {
			m.school.Input(after)
			if after == "" {
				m.schoolResults = nil
				m.schoolCursor = 0
			}
		}
		return m, cmd
	}

	if entry < 0 || kind == fieldPresent {
		return m, nil
	}

	e := &m.entries[entry]
	before := e.inputs[kind].Value()
	e.inputs[kind], cmd = e.inputs[kind].Update(msg)
	after := e.inputs[kind].Value()
	if after == before {
		return m, cmd
	}

	switch kind {
	case fieldCompany:
		e.company.Input(after)
		e.cursor = 0
		if after == "" {
			e.form.SetCompany("")
		}
	case fieldTitle:
		e.form.SetTitle(after)
	case fieldStart, fieldEnd:
		e.setDate(kind, after)
	}
	return m, cmd
}

// setDate applies a month input once it is empty or complete. Partial input
// leaves the stored month untouched.
func (e *entryInputs) setDate(kind fieldKind, value string) {
	slot := int(kind - fieldStart)
	if value != "" && len(value) < len("2006-01") {
		e.dateErr[slot] = ""
		return
	}
	var err error
	if kind == fieldStart {
		err = e.form.SetStartDate(value)
	} else {
		err = e.form.SetEndDate(value)
	}
	if err != nil {
		e.dateErr[slot] = "use YYYY-MM with a month from 01 to 12"
		return
	}
	e.dateErr[slot] = ""
}

// datesPending reports whether a month input shows something other than the
// stored month.
func (e entryInputs) datesPending() bool {
	if e.dateErr[0] != "" || e.dateErr[1] != "" {
		return true
	}
	return e.inputs[fieldStart].Value() != e.form.StartDate() ||
		e.inputs[fieldEnd].Value() != e.form.EndDate()
}

func (m *editorModel) togglePresent(entry int) {
	f := m.entries[entry].form
	f.SetPresent(!f.Present())
}

func (m *editorModel) moveSuggestion(entry int, kind fieldKind, delta int) bool {
	if m.focus == m.schoolFocus() {
		n := min(len(m.schoolResults), maxSchoolSuggestions)
		if n == 0 {
			return false
		}
		m.schoolCursor = clamp(m.schoolCursor+delta, 0, n-1)
		return true
	}
	if entry < 0 || kind != fieldCompany {
		return false
	}
	e := &m.entries[entry]
	n := min(len(e.company.Results()), maxCompanySuggestions)
	if n == 0 {
		return false
	}
	e.cursor = clamp(e.cursor+delta, 0, n-1)
	return true
}

func (m editorModel) schoolFocus() int {
	return len(m.entries) * int(fieldsPerEntry)
}

func (m editorModel) submitFocus() int {
	return m.schoolFocus() + 1
}

// focusTarget returns the entry and field under focus, or -1 when the focus
// is on the school field or the submit button.
func (m editorModel) focusTarget() (int, fieldKind) {
	if m.focus >= m.schoolFocus() {
		return -1, 0
	}
	return m.focus / int(fieldsPerEntry), fieldKind(m.focus % int(fieldsPerEntry))
}

func (m *editorModel) moveFocus(delta int) tea.Cmd {
	total := m.submitFocus() + 1
	m.focus = (m.focus + delta + total) % total
	return m.applyFocus()
}

func (m *editorModel) applyFocus() tea.Cmd {
	entry, kind := m.focusTarget()
	var cmd tea.Cmd
	for i := range m.entries {
		for k := range m.entries[i].inputs {
			if i == entry && fieldKind(k) == kind {
				cmd = m.entries[i].inputs[k].Focus()
			} else {
				m.entries[i].inputs[k].Blur()
			}
		}
	}
	if m.focus == m.schoolFocus() {
		cmd = m.schoolInput.Focus()
	} else {
		m.schoolInput.Blur()
	}
	return cmd
}

func (m *editorModel) recalcLayout() {
	// Title (1 line) + status bar (1) = 2 lines overhead.
	width := max(m.width, 20)
	height := max(m.height-2, 5)
	if !m.ready {
		m.viewport = viewport.New(width, height)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = height
	}
	m.refresh()
}

// refresh re-renders the form and scrolls the focused line into view.
func (m *editorModel) refresh() {
	if !m.ready {
		return
	}
	lines, focusLine := m.renderLines()
	m.viewport.SetContent(strings.Join(lines, "\n"))

	if focusLine < m.viewport.YOffset {
		m.viewport.SetYOffset(focusLine)
	} else if focusLine >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(focusLine - m.viewport.Height + 1)
	}
}

// renderLines renders the whole form and reports the line holding the focus.
func (m editorModel) renderLines() ([]string, int) {
	var lines []string
	focusLine := 0
	focusEntry, focusKind := m.focusTarget()

	label := func(text string, focused bool) string {
		if focused {
			return focusedLabelStyle.Render(text)
		}
		return labelStyle.Render(text)
	}

	lines = append(lines, sectionStyle.Render("Experience"))
	if len(m.entries) == 0 {
		lines = append(lines, datePreviewStyle.Render("  no entries, press ctrl+n to add one"))
	}
	for i, e := range m.entries {
		lines = append(lines, "", fmt.Sprintf("  #%d", e.form.Index()+1))
		for k := fieldCompany; k < fieldsPerEntry; k++ {
			focused := i == focusEntry && k == focusKind
			if focused {
				focusLine = len(lines)
			}
			if k == fieldPresent {
				box := "[ ]"
				if e.form.Present() {
					box = "[x]"
				}
				lines = append(lines, "  "+label(fieldLabels[k], focused)+box)
				continue
			}
			line := "  " + label(fieldLabels[k], focused) + e.inputs[k].View()
			if k == fieldStart || k == fieldEnd {
				if msg := e.dateErr[k-fieldStart]; msg != "" {
					line += "  " + warnStyle.Render(msg)
				}
			}
			lines = append(lines, line)

			if k == fieldCompany {
				if focused {
					results := e.company.Results()
					for j := 0; j < len(results) && j < maxCompanySuggestions; j++ {
						lines = append(lines, renderSuggestion(results[j].Name, j == e.cursor))
					}
				}
				if name := e.form.Company(); name != "" {
					lines = append(lines, "  "+label("", false)+datePreviewStyle.Render(name))
				}
			}
		}

		lines = append(lines, "  "+label("", false)+datePreviewStyle.Render(e.form.Entry().Date))
		if e.datesPending() {
			lines = append(lines, "  "+warnStyle.Render("⚠ unsaved date, the entry keeps "+e.form.Entry().Date))
		}
		flags := m.list.Flags(i)
		if !flags.Valid {
			lines = append(lines, "  "+warnStyle.Render("⚠ end date is before start date"))
		}
		if !flags.ValidPresent {
			lines = append(lines, "  "+warnStyle.Render("⚠ a current position cannot start in the future"))
		}
	}

	lines = append(lines, "", sectionStyle.Render("Education"))
	schoolFocused := m.focus == m.schoolFocus()
	if schoolFocused {
		focusLine = len(lines)
	}
	lines = append(lines, "  "+label("School", schoolFocused)+m.schoolInput.View())
	if schoolFocused {
		for j := 0; j < len(m.schoolResults) && j < maxSchoolSuggestions; j++ {
			s := m.schoolResults[j]
			text := s.Name
			if s.Country != "" {
				text += " (" + s.Country + ")"
			}
			lines = append(lines, renderSuggestion(text, j == m.schoolCursor))
		}
	}
	if m.schoolChoice.name != "" {
		lines = append(lines, "  "+label("", false)+datePreviewStyle.Render(m.schoolChoice.name))
	}

	lines = append(lines, "")
	submitFocused := m.focus == m.submitFocus()
	if submitFocused {
		focusLine = len(lines)
		lines = append(lines, "  "+focusedSubmitStyle.Render("Submit"))
	} else {
		lines = append(lines, "  "+submitStyle.Render("Submit"))
	}
	if m.notice != "" {
		lines = append(lines, "  "+warnStyle.Render(m.notice))
	}
	return lines, focusLine
}

func renderSuggestion(text string, selected bool) string {
	if selected {
		return "            " + selectedSuggestionStyle.Render("> "+text)
	}
	return "            " + suggestionStyle.Render("  "+text)
}

func (m editorModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	title := headerStyle.Render("Edit pipeline")
	statusText := " tab/↑/↓ move  enter select  space toggle  ctrl+n add  ctrl+x remove  esc quit"
	statusBar := statusBarStyle.Width(m.width).Render(statusText)
	return title + "\n" + m.viewport.View() + "\n" + statusBar
}

func (m editorModel) result() EditorResult {
	return EditorResult{
		Pipeline:  m.list.Entries(),
		School:    m.schoolChoice.name,
		Submitted: m.submitted,
	}
}

// programRef lets lookup goroutines reach the program created after the
// model they belong to.
type programRef struct {
	p *tea.Program
}

func (r *programRef) send(msg tea.Msg) {
	if r.p != nil {
		r.p.Send(msg)
	}
}

// RunEditor launches the pipeline editor. School lookups run in the
// background and are delivered to the program with Send.
func RunEditor(opts EditorOptions) (EditorResult, error) {
	ref := &programRef{}
	m, err := newEditorModel(opts, ref.send)
	if err != nil {
		return EditorResult{}, err
	}
	defer m.school.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	ref.p = p
	final, err := p.Run()
	if err != nil {
		return EditorResult{}, err
	}
	return final.(editorModel).result(), nil
}
