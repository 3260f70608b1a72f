package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/amishk599/pipelines/internal/model"
)

var testCompanies = []model.Company{
	{ID: 1, Name: "Google"},
	{ID: 2, Name: "Goldman Sachs"},
	{ID: 3, Name: "Meta"},
}

type stubSearcher struct {
	schools []model.School
}

func (s stubSearcher) SearchSchools(_ context.Context, _ string) ([]model.School, error) {
	return s.schools, nil
}

func fixedNow() time.Time {
	return time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
}

func newTestEditor(t *testing.T, opts EditorOptions) (editorModel, chan tea.Msg) {
	t.Helper()
	msgs := make(chan tea.Msg, 4)
	if opts.Companies == nil {
		opts.Companies = testCompanies
	}
	if opts.Searcher == nil {
		opts.Searcher = stubSearcher{}
	}
	opts.Now = fixedNow
	opts.SearchDelay = 10 * time.Millisecond

	m, err := newEditorModel(opts, func(msg tea.Msg) { msgs <- msg })
	require.NoError(t, err)
	t.Cleanup(m.school.Close)
	return m, msgs
}

func press(t *testing.T, m editorModel, msgs ...tea.Msg) (editorModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(editorModel)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func TestEditor_StartsWithOneEmptyEntry(t *testing.T) {
	m, _ := newTestEditor(t, EditorOptions{})

	res := m.result()
	require.Len(t, res.Pipeline, 1)
	assert.Equal(t, model.Experience{Date: " - "}, res.Pipeline[0])
	assert.False(t, res.Submitted)
	assert.True(t, m.entries[0].inputs[fieldCompany].Focused())
}

func TestEditor_SeedsFromExistingPipeline(t *testing.T) {
	m, _ := newTestEditor(t, EditorOptions{
		Pipeline: []model.Experience{{Company: "Meta", Title: "SWE", Date: "June 2021 - Present"}},
		School:   "MIT",
	})

	require.Len(t, m.entries, 1)
	e := m.entries[0]
	assert.Equal(t, "Meta", e.form.Company())
	assert.Empty(t, e.inputs[fieldCompany].Value())
	assert.Equal(t, "SWE", e.inputs[fieldTitle].Value())
	assert.Equal(t, "2021-06", e.inputs[fieldStart].Value())
	assert.True(t, e.form.Present())
	assert.Equal(t, "MIT", m.result().School)
}

func TestEditor_CompanyAutocomplete(t *testing.T) {
	m, _ := newTestEditor(t, EditorOptions{})

	m, _ = press(t, m, runes("go"))
	results := m.entries[0].company.Results()
	require.Len(t, results, 2)
	assert.Equal(t, "Google", results[0].Name)
	assert.Equal(t, "Goldman Sachs", results[1].Name)

	m, _ = press(t, m, keyOf(tea.KeyDown), keyOf(tea.KeyEnter))

	assert.Equal(t, "Goldman Sachs", m.result().Pipeline[0].Company)
	assert.Empty(t, m.entries[0].inputs[fieldCompany].Value())
	assert.Empty(t, m.entries[0].company.Results())
	assert.Empty(t, m.entries[0].company.Query())

	m, _ = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Contains(t, m.View(), "Goldman Sachs")
}

func TestEditor_ClearingCompanyInputClearsChoice(t *testing.T) {
	m, _ := newTestEditor(t, EditorOptions{
		Pipeline: []model.Experience{{Company: "Meta", Date: "June 2021 - Present"}},
	})

	// Typing alone keeps the stored company.
	m, _ = press(t, m, runes("go"))
	assert.Equal(t, "Meta", m.result().Pipeline[0].Company)

	m, _ = press(t, m, keyOf(tea.KeyBackspace), keyOf(tea.KeyBackspace))
	assert.Empty(t, m.result().Pipeline[0].Company)
	assert.Empty(t, m.entries[0].company.Results())
}

func TestEditor_DatesAndPresent(t *testing.T) {
	m, _ := newTestEditor(t, EditorOptions{})

	// company -> title -> start
	m, _ = press(t, m,
		keyOf(tea.KeyTab), runes("Engineer"),
		keyOf(tea.KeyTab), runes("2023-03"),
		keyOf(tea.KeyTab), runes("2022-01"),
	)
	entry := m.result().Pipeline[0]
	assert.Equal(t, "Engineer", entry.Title)
	assert.Equal(t, "March 2023 - January 2022", entry.Date)
	assert.False(t, m.list.CanSubmit())

	m, _ = press(t, m, keyOf(tea.KeyTab), keyOf(tea.KeySpace))
	assert.Equal(t, "March 2023 - Present", m.result().Pipeline[0].Date)
	assert.True(t, m.list.CanSubmit())
}

func TestEditor_InvalidMonthIsNotApplied(t *testing.T) {
	m, _ := newTestEditor(t, EditorOptions{})

	m, _ = press(t, m, keyOf(tea.KeyTab), keyOf(tea.KeyTab), runes("2023-13"))

	assert.NotEmpty(t, m.entries[0].dateErr[0])
	assert.Equal(t, "", m.entries[0].form.StartDate())

	m, _ = press(t, m, keyOf(tea.KeyBackspace), runes("2"))
	assert.Empty(t, m.entries[0].dateErr[0])
	assert.Equal(t, "2023-12", m.entries[0].form.StartDate())
}

func TestEditor_SubmitGatedByValidity(t *testing.T) {
	m, _ := newTestEditor(t, EditorOptions{
		Pipeline: []model.Experience{{Company: "Meta", Date: "June 2024 - Present"}},
	})
	// Present entry starting after the clock.
	require.False(t, m.list.CanSubmit())

	m.focus = m.submitFocus()
	m, cmd := press(t, m, keyOf(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.False(t, m.submitted)
	assert.NotEmpty(t, m.notice)

	// Give the entry an end and unset present.
	m.focus = int(fieldEnd)
	m.applyFocus()
	m, _ = press(t, m, runes("2024-08"))
	m.focus = int(fieldPresent)
	m, _ = press(t, m, keyOf(tea.KeySpace))
	assert.Equal(t, "June 2024 - August 2024", m.result().Pipeline[0].Date)
	require.True(t, m.list.CanSubmit())

	m.focus = m.submitFocus()
	m, cmd = press(t, m, keyOf(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.result().Submitted)
}

func TestEditor_SubmitBlockedByUnsavedDates(t *testing.T) {
	m, _ := newTestEditor(t, EditorOptions{})

	m, _ = press(t, m,
		keyOf(tea.KeyTab), keyOf(tea.KeyTab), runes("2021-03"),
		keyOf(tea.KeyTab), runes("2022-01"),
	)
	require.True(t, m.list.CanSubmit())
	require.False(t, m.entries[0].datesPending())

	// An invalid month leaves the old start stored.
	m.focus = int(fieldStart)
	m.applyFocus()
	m, _ = press(t, m, keyOf(tea.KeyBackspace), keyOf(tea.KeyBackspace), runes("13"))
	assert.Equal(t, "2021-03", m.entries[0].form.StartDate())
	assert.True(t, m.entries[0].datesPending())

	m.focus = m.submitFocus()
	m, cmd := press(t, m, keyOf(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.False(t, m.submitted)
	assert.NotEmpty(t, m.notice)

	// A partial month is pending too.
	m.focus = int(fieldStart)
	m.applyFocus()
	m, _ = press(t, m, keyOf(tea.KeyBackspace), keyOf(tea.KeyBackspace), runes("0"))
	assert.Empty(t, m.entries[0].dateErr[0])
	assert.True(t, m.entries[0].datesPending())

	m, _ = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Contains(t, m.View(), "unsaved date")

	m.focus = m.submitFocus()
	m, cmd = press(t, m, keyOf(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.False(t, m.submitted)

	m.focus = int(fieldStart)
	m.applyFocus()
	m, _ = press(t, m, runes("4"))
	assert.Equal(t, "2021-04", m.entries[0].form.StartDate())
	assert.False(t, m.entries[0].datesPending())

	m.focus = m.submitFocus()
	m, cmd = press(t, m, keyOf(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.True(t, m.result().Submitted)
}

func TestEditor_AddAndRemoveEntries(t *testing.T) {
	m, _ := newTestEditor(t, EditorOptions{})

	m, _ = press(t, m, runes("x"), keyOf(tea.KeyCtrlN))
	require.Len(t, m.entries, 2)
	assert.Equal(t, int(fieldsPerEntry), m.focus)
	assert.True(t, m.entries[1].inputs[fieldCompany].Focused())

	m, _ = press(t, m, keyOf(tea.KeyTab), runes("Second"))
	assert.Equal(t, "Second", m.result().Pipeline[1].Title)

	// Remove the first entry; the second shifts down and keeps its data.
	m.focus = 0
	m, _ = press(t, m, keyOf(tea.KeyCtrlX))
	require.Len(t, m.entries, 1)
	assert.Equal(t, 0, m.entries[0].form.Index())
	assert.Equal(t, "Second", m.result().Pipeline[0].Title)

	m, _ = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Contains(t, m.View(), "#1")
	assert.NotContains(t, m.View(), "#2")

	m, _ = press(t, m, keyOf(tea.KeyCtrlX))
	assert.Empty(t, m.entries)
	assert.Empty(t, m.result().Pipeline)
	assert.Equal(t, m.schoolFocus(), m.focus)
}

func TestEditor_SchoolSearch(t *testing.T) {
	defer goleak.VerifyNone(t)

	searcher := stubSearcher{schools: []model.School{
		{Name: "Stanford University", Country: "United States"},
		{Name: "Stanford University", Country: "United States"},
		{Name: "Stanford Online High School", Country: "United States"},
	}}
	m, msgs := newTestEditor(t, EditorOptions{Searcher: searcher})

	// Focus wraps from the first field to submit, then back to the school.
	m, _ = press(t, m, keyOf(tea.KeyShiftTab), keyOf(tea.KeyShiftTab))
	require.Equal(t, m.schoolFocus(), m.focus)

	m, _ = press(t, m, runes("Stan"))

	var msg tea.Msg
	select {
	case msg = <-msgs:
	case <-time.After(2 * time.Second):
		t.Fatal("no school results delivered")
	}
	m, _ = press(t, m, msg)
	require.Len(t, m.schoolResults, 2)

	m, _ = press(t, m, keyOf(tea.KeyDown), keyOf(tea.KeyEnter))
	res := m.result()
	assert.Equal(t, "Stanford Online High School", res.School)
	assert.Empty(t, m.schoolInput.Value())
	assert.Empty(t, m.schoolResults)

	m.school.Close()
}

func TestEditor_ClearingSchoolInputClearsChoice(t *testing.T) {
	m, _ := newTestEditor(t, EditorOptions{School: "MIT"})
	m.focus = m.schoolFocus()
	m.applyFocus()

	m, _ = press(t, m, runes("a"), keyOf(tea.KeyBackspace))

	assert.Empty(t, m.result().School)
	assert.Empty(t, m.schoolResults)
}

func TestEditor_ViewShowsWarnings(t *testing.T) {
	m, _ := newTestEditor(t, EditorOptions{
		Pipeline: []model.Experience{{Company: "Meta", Date: "March 2023 - January 2022"}},
	})
	m, _ = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	view := m.View()
	assert.Contains(t, view, "Edit pipeline")
	assert.Contains(t, view, "March 2023 - January 2022")
	assert.Contains(t, view, "end date is before start date")
	assert.True(t, strings.Contains(view, "Submit"))
}
