package datefmt

import (
	"errors"
	"fmt"
	"testing"
)

func TestRoundTrip_AllMonths(t *testing.T) {
	for _, year := range []int{1999, 2020, 2024} {
		for m := 1; m <= 12; m++ {
			iso := fmt.Sprintf("%d-%02d", year, m)
			display, err := ToDisplay(iso)
			if err != nil {
				t.Fatalf("ToDisplay(%q): %v", iso, err)
			}
			got, err := ToISO(display)
			if err != nil {
				t.Fatalf("ToISO(%q): %v", display, err)
			}
			if got != iso {
				t.Errorf("round trip %q -> %q -> %q", iso, display, got)
			}
		}
	}
}

func TestToDisplay(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{in: "2020-09", want: "September 2020"},
		{in: "2021-01", want: "January 2021"},
		{in: "", want: ""},
		{in: "2021-13", wantErr: ErrInvalidMonth},
		{in: "2021-00", wantErr: ErrInvalidMonth},
		{in: "2021", wantErr: ErrInvalidFormat},
		{in: "21-01", wantErr: ErrInvalidFormat},
		{in: "2021-1", wantErr: ErrInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ToDisplay(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ToDisplay(%q) error = %v, want %v", tt.in, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ToDisplay(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ToDisplay(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestToISO(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{in: "September 2020", want: "2020-09"},
		{in: "December 1999", want: "1999-12"},
		{in: "", want: ""},
		{in: "Septembre 2020", wantErr: ErrInvalidMonth},
		{in: "september 2020", wantErr: ErrInvalidMonth},
		{in: "September", wantErr: ErrInvalidFormat},
		{in: "September 20", wantErr: ErrInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ToISO(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ToISO(%q) error = %v, want %v", tt.in, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ToISO(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ToISO(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatRange(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		present bool
		want    string
	}{
		{name: "closed range", start: "2020-09", end: "2021-09", want: "September 2020 - September 2021"},
		{name: "present ignores end", start: "2020-09", end: "2021-09", present: true, want: "September 2020 - Present"},
		{name: "blank", want: " - "},
		{name: "start only", start: "2020-09", want: "September 2020 - "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatRange(tt.start, tt.end, tt.present)
			if err != nil {
				t.Fatalf("FormatRange: %v", err)
			}
			if got != tt.want {
				t.Errorf("FormatRange() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		in          string
		wantStart   string
		wantEnd     string
		wantPresent bool
	}{
		{in: "September 2020 - September 2021", wantStart: "2020-09", wantEnd: "2021-09"},
		{in: "September 2020 - Present", wantStart: "2020-09", wantPresent: true},
		{in: "", wantStart: "", wantEnd: ""},
		{in: " - ", wantStart: "", wantEnd: ""},
		{in: "March 2019 - ", wantStart: "2019-03"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			start, end, present, err := ParseRange(tt.in)
			if err != nil {
				t.Fatalf("ParseRange(%q): %v", tt.in, err)
			}
			if start != tt.wantStart || end != tt.wantEnd || present != tt.wantPresent {
				t.Errorf("ParseRange(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.in, start, end, present, tt.wantStart, tt.wantEnd, tt.wantPresent)
			}
		})
	}
}

func TestParseRange_Invalid(t *testing.T) {
	if _, _, _, err := ParseRange("Someday 2020 - Present"); !errors.Is(err, ErrInvalidMonth) {
		t.Errorf("expected ErrInvalidMonth, got %v", err)
	}
	if _, _, _, err := ParseRange("September 2020"); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestMonthByName(t *testing.T) {
	m, ok := MonthByName("July")
	if !ok || m != July {
		t.Errorf("MonthByName(July) = %v, %v", m, ok)
	}
	if _, ok := MonthByName("Jul"); ok {
		t.Error("expected abbreviation to be rejected")
	}
	if Month(13).String() != "" {
		t.Error("expected invalid month to render empty")
	}
}
