package core

import "testing"

func TestDateRoundTrip(t *testing.T) {
	d := NewDate(2024, 6, 13)
	if d.String() != "2024-06-13" {
		t.Fatalf("got %q", d.String())
	}
	parsed, err := ParseDate("2024-06-13")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed != d {
		t.Fatalf("expected %s, got %s", d, parsed)
	}
	if _, err := ParseDate("13/06/2024"); err == nil {
		t.Fatal("expected error for wrong layout")
	}
}

func TestDateAddDays(t *testing.T) {
	d := NewDate(2024, 2, 28)
	if got := d.AddDays(1); got != NewDate(2024, 2, 29) {
		t.Fatalf("got %s", got)
	}
	if got := d.AddDays(2); got != NewDate(2024, 3, 1) {
		t.Fatalf("got %s", got)
	}
}
