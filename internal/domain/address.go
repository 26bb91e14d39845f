package domain

import "strings"

// addressRule splits an address on a delimiter and picks the street candidates
// from the parts.
type addressRule struct {
	delimiter string
	pick      func(parts []string) []string
}

// addressRules are tried in order; the first delimiter that splits the address
// into more than one part decides the candidates.
var addressRules = []addressRule{
	{delimiter: "OF", pick: secondPart},  // "100 BLOCK OF MAIN ST"
	{delimiter: "BLOCK", pick: lastPart}, // "100 BLOCK MAIN ST"
	{delimiter: "&", pick: allParts},     // "MAIN ST & 1ST AVE"
	{delimiter: "AND", pick: allParts},   // "MAIN ST AND 1ST AVE"
}

func secondPart(parts []string) []string { return parts[1:2] }

func lastPart(parts []string) []string { return parts[len(parts)-1:] }

func allParts(parts []string) []string { return parts }

// NormalizeAddress extracts the street names named by a raw address. It always
// returns at least one street; a street may be empty when the address has no
// usable text.
func NormalizeAddress(raw string) []string {
	candidates := []string{raw}
	for _, rule := range addressRules {
		if parts := strings.Split(raw, rule.delimiter); len(parts) > 1 {
			candidates = rule.pick(parts)
			break
		}
	}

	streets := make([]string, 0, len(candidates))
	for _, c := range candidates {
		streets = append(streets, normalizeStreet(c))
	}
	return streets
}

// normalizeStreet drops any unit suffix after '#', trims whitespace, and
// removes non-ASCII characters.
func normalizeStreet(s string) string {
	s, _, _ = strings.Cut(s, "#")
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r > 0x7f {
			return -1
		}
		return r
	}, s)
}
