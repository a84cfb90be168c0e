package domain

import "strings"

// Segment classifies an investment account as taxable or tax-advantaged.
type Segment string

const (
	SegmentBrokerage  Segment = "brokerage"
	SegmentRetirement Segment = "retirement"
)

// retirementSubtypes is the fixed set of account subtypes treated as
// tax-advantaged. Matching is case-insensitive on the raw subtype string.
var retirementSubtypes = map[string]bool{
	"401a":                          true,
	"401k":                          true,
	"403b":                          true,
	"457b":                          true,
	"457plan":                       true,
	"529":                           true,
	"529 plan":                      true,
	"hsa":                           true,
	"ira":                           true,
	"keogh":                         true,
	"non-taxable brokerage account": true,
	"pension":                       true,
	"profit sharing plan":           true,
	"rdsp":                          true,
	"retirement":                    true,
	"roth":                          true,
	"roth 401k":                     true,
	"rrif":                          true,
	"rrsp":                          true,
	"sarsep":                        true,
	"sep ira":                       true,
	"simple ira":                    true,
	"tfsa":                          true,
}

// subtypeLabels maps known subtypes to their display labels. Anything else
// falls back to a humanized form of the raw subtype.
var subtypeLabels = map[string]string{
	"401a":       "401(a)",
	"401k":       "401(k)",
	"403b":       "403(b)",
	"457b":       "457(b)",
	"457plan":    "457 Plan",
	"529":        "529 Plan",
	"529 plan":   "529 Plan",
	"brokerage":  "Brokerage",
	"hsa":        "HSA",
	"ira":        "IRA",
	"mutualfund": "Mutual Fund",
	"roth":       "Roth IRA",
	"roth 401k":  "Roth 401(k)",
	"sep ira":    "SEP IRA",
	"simple ira": "SIMPLE IRA",
	"tfsa":       "TFSA",
}

// SegmentOf derives the segment from an account subtype. A missing or
// unrecognized subtype defaults to brokerage.
func SegmentOf(subtype *string) Segment {
	if subtype == nil {
		return SegmentBrokerage
	}
	if retirementSubtypes[strings.ToLower(*subtype)] {
		return SegmentRetirement
	}
	return SegmentBrokerage
}

// LabelOf returns the display label for an account subtype.
func LabelOf(subtype *string) string {
	if subtype == nil {
		return "Investment"
	}
	if label, ok := subtypeLabels[strings.ToLower(*subtype)]; ok {
		return label
	}
	return humanize(*subtype)
}

// BadgeClassOf returns the badge style name for an account subtype.
func BadgeClassOf(subtype *string) string {
	if SegmentOf(subtype) == SegmentRetirement {
		return "badge-retirement"
	}
	return "badge-brokerage"
}

// humanize turns a raw subtype like "cash_management" into "Cash Management".
// The transform is limited to underscore replacement and word capitalization
// so the original subtype stays recognizable.
func humanize(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
