package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSafeParse(t *testing.T) {
	if got := SafeParse("123.45"); !got.Equal(decimal.RequireFromString("123.45")) {
		t.Errorf("SafeParse(123.45) = %v", got)
	}
	if got := SafeParse(""); !got.IsZero() {
		t.Errorf("SafeParse(empty) = %v, want 0", got)
	}
	if got := SafeParse("not-a-number"); !got.IsZero() {
		t.Errorf("SafeParse(garbage) = %v, want 0", got)
	}
}

func TestSafeParsePtr(t *testing.T) {
	v := "10.5"
	if got := SafeParsePtr(&v); !got.Equal(decimal.RequireFromString("10.5")) {
		t.Errorf("SafeParsePtr(&10.5) = %v", got)
	}
	if got := SafeParsePtr(nil); !got.IsZero() {
		t.Errorf("SafeParsePtr(nil) = %v, want 0", got)
	}
}

func TestParseKnownDistinguishesNilFromZero(t *testing.T) {
	zero := "0"
	d, ok := ParseKnown(&zero)
	if !ok || !d.IsZero() {
		t.Errorf("ParseKnown(&0) = %v, %v; want 0, true", d, ok)
	}

	if _, ok := ParseKnown(nil); ok {
		t.Error("ParseKnown(nil) reported a known value")
	}

	bad := "abc"
	if _, ok := ParseKnown(&bad); ok {
		t.Error("ParseKnown(&abc) reported a known value")
	}
}
