package money

import (
	"errors"
	"testing"
)

func TestParseMinor(t *testing.T) {
	cases := []struct {
		input string
		want  int64
		err   error
	}{
		{"200.00", 20000, nil},
		{"200", 20000, nil},
		{"0.5", 50, nil},
		{"0", 0, nil},
		{"-12.34", -1234, nil},
		{" 10.00 ", 1000, nil},
		{"1.234", 0, ErrTooManyDecimals},
		{"", 0, ErrInvalidAmount},
		{"abc", 0, ErrInvalidAmount},
	}
	for _, tc := range cases {
		got, err := ParseMinor(tc.input)
		if !errors.Is(err, tc.err) {
			t.Fatalf("ParseMinor(%q) error = %v, want %v", tc.input, err, tc.err)
		}
		if err == nil && got != tc.want {
			t.Fatalf("ParseMinor(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestParsePositiveMinor(t *testing.T) {
	if _, err := ParsePositiveMinor("0"); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero, got %v", err)
	}
	if _, err := ParsePositiveMinor("-5"); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for negative, got %v", err)
	}
	got, err := ParsePositiveMinor("99.99")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 9999 {
		t.Fatalf("ParsePositiveMinor(99.99) = %d, want 9999", got)
	}
}

func TestFormatMinor(t *testing.T) {
	cases := []struct {
		input int64
		want  string
	}{
		{20000, "200.00"},
		{80000, "800.00"},
		{50, "0.50"},
		{0, "0.00"},
		{-1234, "-12.34"},
	}
	for _, tc := range cases {
		if got := FormatMinor(tc.input); got != tc.want {
			t.Fatalf("FormatMinor(%d) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestPercentage(t *testing.T) {
	if got := Percentage(1, 3); got != "33.3" {
		t.Fatalf("Percentage(1, 3) = %q, want 33.3", got)
	}
	if got := Percentage(50, 100); got != "50.0" {
		t.Fatalf("Percentage(50, 100) = %q, want 50.0", got)
	}
	if got := Percentage(10, 0); got != "0.0" {
		t.Fatalf("Percentage with zero total = %q, want 0.0", got)
	}
}
