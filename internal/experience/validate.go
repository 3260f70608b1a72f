package experience

import "time"

// monthLayout is the layout of month input values ("YYYY-MM").
const monthLayout = "2006-01"

// Flags gate submission of an experience entry.
type Flags struct {
	// Valid is false when the end month sorts before the start month.
	Valid bool
	// ValidPresent is false when an ongoing entry starts in the future.
	ValidPresent bool
}

// OK reports whether both flags are set.
func (f Flags) OK() bool {
	return f.Valid && f.ValidPresent
}

// Validate derives the flags for one entry. Month values compare as strings:
// both are zero-padded and an empty start sorts before any populated end. An
// ongoing entry ends at "Present", which never precedes its start, so the
// hidden end month is ignored. A start month that does not parse never fails
// the present check.
func Validate(startISO, endISO string, present bool, now time.Time) Flags {
	flags := Flags{
		Valid:        present || endISO >= startISO,
		ValidPresent: true,
	}
	if present {
		if start, err := time.Parse(monthLayout, startISO); err == nil && start.After(now) {
			flags.ValidPresent = false
		}
	}
	return flags
}
