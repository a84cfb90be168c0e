package domain

import "testing"

func strPtr(s string) *string { return &s }

func TestSegmentOfRetirementSet(t *testing.T) {
	for subtype := range retirementSubtypes {
		if got := SegmentOf(&subtype); got != SegmentRetirement {
			t.Errorf("SegmentOf(%q) = %q, want retirement", subtype, got)
		}
	}
}

func TestSegmentOfCaseInsensitive(t *testing.T) {
	for _, subtype := range []string{"IRA", "Roth 401k", "ROTH", "Sep Ira", "TFSA"} {
		if got := SegmentOf(&subtype); got != SegmentRetirement {
			t.Errorf("SegmentOf(%q) = %q, want retirement", subtype, got)
		}
	}
}

func TestSegmentOfDefaultsToBrokerage(t *testing.T) {
	if got := SegmentOf(nil); got != SegmentBrokerage {
		t.Errorf("SegmentOf(nil) = %q, want brokerage", got)
	}
	for _, subtype := range []string{"brokerage", "mutualfund", "cash management", "something else"} {
		if got := SegmentOf(&subtype); got != SegmentBrokerage {
			t.Errorf("SegmentOf(%q) = %q, want brokerage", subtype, got)
		}
	}
}

func TestLabelOfKnownSubtypes(t *testing.T) {
	cases := map[string]string{
		"401k":      "401(k)",
		"roth":      "Roth IRA",
		"hsa":       "HSA",
		"brokerage": "Brokerage",
	}
	for subtype, want := range cases {
		if got := LabelOf(&subtype); got != want {
			t.Errorf("LabelOf(%q) = %q, want %q", subtype, got, want)
		}
	}
	if got := LabelOf(nil); got != "Investment" {
		t.Errorf("LabelOf(nil) = %q, want Investment", got)
	}
}

func TestLabelOfFallbackHumanizes(t *testing.T) {
	cases := map[string]string{
		"cash_management":  "Cash Management",
		"money market":     "Money Market",
		"ugma":             "Ugma",
		"variable_annuity": "Variable Annuity",
	}
	for subtype, want := range cases {
		if got := LabelOf(&subtype); got != want {
			t.Errorf("LabelOf(%q) = %q, want %q", subtype, got, want)
		}
	}
}

func TestBadgeClassOf(t *testing.T) {
	if got := BadgeClassOf(strPtr("ira")); got != "badge-retirement" {
		t.Errorf("BadgeClassOf(ira) = %q, want badge-retirement", got)
	}
	if got := BadgeClassOf(strPtr("brokerage")); got != "badge-brokerage" {
		t.Errorf("BadgeClassOf(brokerage) = %q, want badge-brokerage", got)
	}
	if got := BadgeClassOf(nil); got != "badge-brokerage" {
		t.Errorf("BadgeClassOf(nil) = %q, want badge-brokerage", got)
	}
}
