// Package normalize contains the pure field normalizers of the cleansing
// layer: code-to-label maps, country canonicalization, 8-digit date decoding,
// and composite product-key decomposition.
//
// Normalizers never fail a row for a bad value. Unknown codes, blank input,
// and undecodable dates resolve to defined sentinels (NotApplicable, nil
// date) so that downstream stages can treat them as analyzable states. The
// single exception is key decomposition, where a malformed key is a
// reportable MalformedKeyError rather than a silent default.
package normalize

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NotApplicable is the canonical sentinel for unknown or missing
// categorical values.
const NotApplicable = "n/a"

// foldT strips diacritics so that code lookups survive source systems that
// emit accented variants (NFD split, drop combining marks, recompose).
var foldT = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldKey canonicalizes a raw code for map lookup: trim, strip diacritics,
// upper-case.
func foldKey(s string) string {
	s = strings.TrimSpace(s)
	if folded, _, err := transform.String(foldT, s); err == nil {
		s = folded
	}
	return strings.ToUpper(s)
}

var (
	genderLabels = map[string]string{
		"M": "Male", "MALE": "Male",
		"F": "Female", "FEMALE": "Female",
	}
	maritalLabels = map[string]string{
		"S": "Single",
		"M": "Married",
	}
	productLineLabels = map[string]string{
		"M": "Mountain",
		"R": "Road",
		"S": "Other Sales",
		"T": "Touring",
	}
	countryLabels = map[string]string{
		"DE":  "Germany",
		"US":  "United States",
		"USA": "United States",
	}
)

// label resolves a raw code against a map, case-insensitively and
// whitespace-trimmed. Unmapped, blank, or nil input yields NotApplicable.
func label(m map[string]string, raw string) string {
	if v, ok := m[foldKey(raw)]; ok {
		return v
	}
	return NotApplicable
}

// Gender maps a raw gender code ("M", "F", "Male", ...) to its label.
func Gender(raw string) string { return label(genderLabels, raw) }

// MaritalStatus maps a raw marital-status code ("S", "M") to its label.
func MaritalStatus(raw string) string { return label(maritalLabels, raw) }

// ProductLine maps a raw product-line code ("M", "R", "S", "T") to its label.
func ProductLine(raw string) string { return label(productLineLabels, raw) }

// Country canonicalizes a raw country value. Known abbreviations map to full
// names, blank input maps to NotApplicable, and any other non-empty value
// passes through trimmed but otherwise unchanged.
func Country(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return NotApplicable
	}
	if v, ok := countryLabels[foldKey(raw)]; ok {
		return v
	}
	return trimmed
}

// DateFromYMD interprets an integer as a YYYYMMDD calendar date. Zero,
// negative, not-exactly-8-digit, or uninterpretable values yield (zero,
// false), meaning "no date".
func DateFromYMD(n int) (time.Time, bool) {
	if n < 10000000 || n > 99999999 {
		return time.Time{}, false
	}
	y, m, d := n/10000, n/100%100, n%100
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (e.g. month 13), which would silently
	// change the value; require a round trip instead.
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

// Composite product keys: a 5-character category prefix, a one-character
// separator, then the entity key, e.g. "CO-RF-FR-R92B-58".
const (
	keyPrefixWidth = 5
	keyMinWidth    = keyPrefixWidth + 2 // prefix + separator + at least one key char
)

// MalformedKeyError reports a composite key too short to decompose.
type MalformedKeyError struct {
	Key string
}

func (e *MalformedKeyError) Error() string {
	return fmt.Sprintf("malformed composite key %q: need at least %d characters", e.Key, keyMinWidth)
}

// SplitProductKey decomposes a raw composite product key into the category
// id and the entity key. The category id has its internal "-" separator
// replaced by "_" to match the ERP category table's key format.
func SplitProductKey(raw string) (catID, key string, err error) {
	raw = strings.TrimSpace(raw)
	if len(raw) < keyMinWidth {
		return "", "", &MalformedKeyError{Key: raw}
	}
	catID = strings.ReplaceAll(raw[:keyPrefixWidth], "-", "_")
	key = raw[keyPrefixWidth+1:]
	return catID, key, nil
}
