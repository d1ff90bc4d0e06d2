package models

import (
	"regexp"
	"testing"
)

var bookingNumberPattern = regexp.MustCompile(`^BK-\d{14}-[A-Z0-9]{6}$`)

func TestNewBookingNumberFormat(t *testing.T) {
	for i := 0; i < 50; i++ {
		bn := NewBookingNumber()
		if !bookingNumberPattern.MatchString(bn) {
			t.Fatalf("booking number %q does not match expected format", bn)
		}
	}
}

func TestNewBookingNumberVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[NewBookingNumber()] = true
	}
	// 50 draws from a 36^6 suffix space colliding down to one value would
	// mean the generator is broken.
	if len(seen) < 2 {
		t.Fatal("booking numbers do not vary")
	}
}
