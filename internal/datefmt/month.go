package datefmt

// Month is a 1-based calendar month. It is the single month table shared by
// the display and input formats.
type Month int

const (
	January Month = iota + 1
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
)

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Valid reports whether m is in 1..12.
func (m Month) Valid() bool {
	return m >= January && m <= December
}

// String returns the English month name, or "" for an invalid month.
func (m Month) String() string {
	if !m.Valid() {
		return ""
	}
	return monthNames[m-1]
}

// MonthByName looks up a month by its exact English name.
func MonthByName(name string) (Month, bool) {
	for i, n := range monthNames {
		if n == name {
			return Month(i + 1), true
		}
	}
	return 0, false
}
