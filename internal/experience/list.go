package experience

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/amishk599/pipelines/internal/model"
)

// List is the ordered pipeline held by the parent view. Forms push their
// entries and flags into it through callbacks; entries are removed by
// position.
type List struct {
	entries []model.Experience
	forms   []*Form
	flags   map[uuid.UUID]Flags
	opts    []Option
}

// NewList builds a list with one form per existing entry.
func NewList(entries []model.Experience, opts ...Option) (*List, error) {
	l := &List{
		flags: make(map[uuid.UUID]Flags),
		opts:  opts,
	}
	for i := range entries {
		entry := entries[i]
		if _, err := l.insert(&entry); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Add appends an empty entry and returns its form.
func (l *List) Add() *Form {
	// An empty entry always parses.
	f, _ := l.insert(nil)
	return f
}

func (l *List) insert(entry *model.Experience) (*Form, error) {
	id := uuid.New()
	cb := Callbacks{
		Update: l.Update,
		SetValid: func(valid bool) {
			fl := l.flags[id]
			fl.Valid = valid
			l.flags[id] = fl
		},
		SetValidPresent: func(validPresent bool) {
			fl := l.flags[id]
			fl.ValidPresent = validPresent
			l.flags[id] = fl
		},
	}
	opts := append([]Option{withID(id)}, l.opts...)
	f, err := NewForm(entry, len(l.forms), cb, opts...)
	if err != nil {
		return nil, err
	}
	l.forms = append(l.forms, f)
	l.entries = append(l.entries, f.Entry())
	return f, nil
}

// Update replaces the entry at index. It is the Update callback of every form
// in the list.
func (l *List) Update(entry model.Experience, index int) {
	if index < 0 || index >= len(l.entries) {
		return
	}
	l.entries[index] = entry
}

// Remove deletes the entry at index and shifts later forms down.
func (l *List) Remove(index int) error {
	if index < 0 || index >= len(l.forms) {
		return fmt.Errorf("remove experience %d: index out of range [0,%d)", index, len(l.forms))
	}
	delete(l.flags, l.forms[index].ID)
	l.forms = append(l.forms[:index], l.forms[index+1:]...)
	l.entries = append(l.entries[:index], l.entries[index+1:]...)
	for i := index; i < len(l.forms); i++ {
		l.forms[i].index = i
	}
	return nil
}

// Len returns the number of entries.
func (l *List) Len() int {
	return len(l.forms)
}

// Form returns the form at index.
func (l *List) Form(index int) *Form {
	return l.forms[index]
}

// Entries returns a copy of the pipeline in order.
func (l *List) Entries() []model.Experience {
	out := make([]model.Experience, len(l.entries))
	copy(out, l.entries)
	return out
}

// Flags returns the last flags pushed by the form at index.
func (l *List) Flags(index int) Flags {
	return l.flags[l.forms[index].ID]
}

// CanSubmit reports whether every entry is valid.
func (l *List) CanSubmit() bool {
	for _, f := range l.forms {
		if !l.flags[f.ID].OK() {
			return false
		}
	}
	return true
}
