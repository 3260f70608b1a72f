// Package datefmt converts between the display date format used in stored
// experience entries ("September 2020") and the month input format
// ("2020-09").
package datefmt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Present is the literal end side of a range that is still ongoing.
const Present = "Present"

// rangeSep separates the start and end sides of a display range.
const rangeSep = " - "

var (
	ErrInvalidMonth  = errors.New("invalid month")
	ErrInvalidFormat = errors.New("invalid date format")
)

// ToDisplay converts "YYYY-MM" to "MonthName YYYY". The empty string maps to
// itself.
func ToDisplay(iso string) (string, error) {
	if iso == "" {
		return "", nil
	}
	year, month, ok := strings.Cut(iso, "-")
	if !ok || !isYear(year) || len(month) != 2 {
		return "", fmt.Errorf("to display %q: %w", iso, ErrInvalidFormat)
	}
	n, err := strconv.Atoi(month)
	if err != nil {
		return "", fmt.Errorf("to display %q: %w", iso, ErrInvalidFormat)
	}
	m := Month(n)
	if !m.Valid() {
		return "", fmt.Errorf("to display %q: %w", iso, ErrInvalidMonth)
	}
	return m.String() + " " + year, nil
}

// ToISO converts "MonthName YYYY" to "YYYY-MM". The empty string maps to
// itself.
func ToISO(display string) (string, error) {
	if display == "" {
		return "", nil
	}
	name, year, ok := strings.Cut(display, " ")
	if !ok || !isYear(year) {
		return "", fmt.Errorf("to iso %q: %w", display, ErrInvalidFormat)
	}
	m, ok := MonthByName(name)
	if !ok {
		return "", fmt.Errorf("to iso %q: %w", display, ErrInvalidMonth)
	}
	return fmt.Sprintf("%s-%02d", year, int(m)), nil
}

// FormatRange builds the stored "<start> - <end>" string from month input
// values. When present is set the end side is the literal "Present" and
// endISO is ignored.
func FormatRange(startISO, endISO string, present bool) (string, error) {
	start, err := ToDisplay(startISO)
	if err != nil {
		return "", err
	}
	end := Present
	if !present {
		end, err = ToDisplay(endISO)
		if err != nil {
			return "", err
		}
	}
	return start + rangeSep + end, nil
}

// ParseRange splits a stored range back into month input values. A blank
// range yields two blank values.
func ParseRange(date string) (startISO, endISO string, present bool, err error) {
	if strings.TrimSpace(date) == "" {
		return "", "", false, nil
	}
	start, end, ok := strings.Cut(date, "-")
	if !ok {
		return "", "", false, fmt.Errorf("parse range %q: %w", date, ErrInvalidFormat)
	}
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)

	startISO, err = ToISO(start)
	if err != nil {
		return "", "", false, err
	}
	if end == Present {
		return startISO, "", true, nil
	}
	endISO, err = ToISO(end)
	if err != nil {
		return "", "", false, err
	}
	return startISO, endISO, false, nil
}

func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
