package utils

import (
	"strings"
	"testing"
)

func TestParseInt(t *testing.T) {
	cases := []struct {
		in   string
		def  int
		want int
	}{
		{"", 10, 10},
		{"abc", 10, 10},
		{"0", 10, 10},
		{"-3", 10, 10},
		{"7", 10, 7},
	}

	for _, tc := range cases {
		if got := ParseInt(tc.in, tc.def); got != tc.want {
			t.Errorf("ParseInt(%q, %d) = %d, want %d", tc.in, tc.def, got, tc.want)
		}
	}
}

func TestRoundMoney(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{5, 5},
		{5.5, 5.5},
		{4.999, 5},
		{4.991, 4.99},
		{0, 0},
		{-2.555, -2.56},
	}

	for _, tc := range cases {
		if got := RoundMoney(tc.in); got != tc.want {
			t.Errorf("RoundMoney(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestGenerateBookingReference(t *testing.T) {
	ref := GenerateBookingReference()

	if !strings.HasPrefix(ref, "CS-") {
		t.Fatalf("reference %q missing CS- prefix", ref)
	}
	parts := strings.Split(ref, "-")
	if len(parts) != 4 {
		t.Fatalf("reference %q, want 4 dash-separated parts", ref)
	}
	if len(parts[1]) != 8 || len(parts[2]) != 6 || len(parts[3]) != 4 {
		t.Errorf("reference %q has malformed date/time/random parts", ref)
	}
}
