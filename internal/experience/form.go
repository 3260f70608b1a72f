// Package experience holds the editable state of pipeline entries and the
// rules that gate their submission.
package experience

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/amishk599/pipelines/internal/datefmt"
	"github.com/amishk599/pipelines/internal/model"
)

// Callbacks connect a Form to the collection that owns it. Any of them may be nil.
type Callbacks struct {
	Update          func(entry model.Experience, index int)
	SetValid        func(valid bool)
	SetValidPresent func(validPresent bool)
}

// Option configures a Form.
type Option func(*Form)

// WithClock sets the clock used by the present check.
func WithClock(now func() time.Time) Option {
	return func(f *Form) { f.now = now }
}

func withID(id uuid.UUID) Option {
	return func(f *Form) { f.ID = id }
}

// Form is the editable state behind one experience entry. The stored Date is
// regenerated from the start month, end month and present flag on every edit.
type Form struct {
	ID    uuid.UUID
	index int

	company   string
	title     string
	startDate string // YYYY-MM or ""
	endDate   string // YYYY-MM or ""
	present   bool

	flags Flags
	cb    Callbacks
	now   func() time.Time
}

// NewForm creates the form for position index. A non-nil entry seeds the
// fields; its date range is split back into month values.
func NewForm(entry *model.Experience, index int, cb Callbacks, opts ...Option) (*Form, error) {
	f := &Form{
		ID:    uuid.New(),
		index: index,
		cb:    cb,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}

	if entry != nil {
		start, end, present, err := datefmt.ParseRange(entry.Date)
		if err != nil {
			return nil, fmt.Errorf("experience %d: %w", index, err)
		}
		f.company = entry.Company
		f.title = entry.Title
		f.startDate = start
		f.endDate = end
		f.present = present
	}

	f.revalidate()
	return f, nil
}

func (f *Form) Index() int { return f.index }
func (f *Form) Company() string { return f.company }
func (f *Form) Title() string { return f.title }
func (f *Form) StartDate() string { return f.startDate }
func (f *Form) EndDate() string { return f.endDate }
func (f *Form) Present() bool { return f.present }
func (f *Form) Flags() Flags { return f.flags }

// Entry returns the current entry with its regenerated date range.
func (f *Form) Entry() model.Experience {
	// The stored months are checked on every edit, so formatting cannot fail.
	date, _ := datefmt.FormatRange(f.startDate, f.endDate, f.present)
	return model.Experience{
		Company: f.company,
		Title:   f.title,
		Date:    date,
	}
}

// SetCompany records the company chosen in the company search.
func (f *Form) SetCompany(name string) {
	f.company = name
	f.commit()
}

// SetTitle records the title chosen in the title search.
func (f *Form) SetTitle(title string) {
	f.title = title
	f.commit()
}

// SetStartDate records a month input value ("YYYY-MM", or "" to clear).
func (f *Form) SetStartDate(value string) error {
	if _, err := datefmt.ToDisplay(value); err != nil {
		return fmt.Errorf("start date: %w", err)
	}
	f.startDate = value
	f.commit()
	f.revalidate()
	return nil
}

// SetEndDate records a month input value ("YYYY-MM", or "" to clear).
func (f *Form) SetEndDate(value string) error {
	if _, err := datefmt.ToDisplay(value); err != nil {
		return fmt.Errorf("end date: %w", err)
	}
	f.endDate = value
	f.commit()
	f.revalidate()
	return nil
}

// SetPresent marks the entry as ongoing. The end month is kept but not shown
// while present is set.
func (f *Form) SetPresent(present bool) {
	f.present = present
	f.commit()
	f.revalidate()
}

func (f *Form) commit() {
	if f.cb.Update != nil {
		f.cb.Update(f.Entry(), f.index)
	}
}

func (f *Form) revalidate() {
	f.flags = Validate(f.startDate, f.endDate, f.present, f.now())
	if f.cb.SetValid != nil {
		f.cb.SetValid(f.flags.Valid)
	}
	if f.cb.SetValidPresent != nil {
		f.cb.SetValidPresent(f.flags.ValidPresent)
	}
}
