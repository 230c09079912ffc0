package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out float64
		ok  bool
	}{
		{"1", 1, true},
		{"1.5", 1.5, true},
		{"1,5", 1.5, true},
		{" 250 ", 250, true},
		{"0.01", 0.01, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
		{"   ", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %v, got %v (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestParseBalance(t *testing.T) {
	// An initial balance may be negative or zero; only non-numbers fail.
	cases := []struct {
		in  string
		out float64
		ok  bool
	}{
		{"1000", 1000, true},
		{"-50", -50, true},
		{"0", 0, true},
		{"12,34", 12.34, true},
		{"balance", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseBalance(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %v, got %v (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}
