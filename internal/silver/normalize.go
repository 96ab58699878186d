package silver

import "strings"

// usStateAbbrevs canonicalizes the state spellings that show up in source
// data to their two-letter uppercase abbreviation.
var usStateAbbrevs = map[string]string{
	"california": "CA", "ca": "CA",
	"new york": "NY", "ny": "NY",
	"texas": "TX", "tx": "TX",
	"colorado": "CO", "co": "CO",
	"utah": "UT", "ut": "UT",
	"washington": "WA", "wa": "WA",
	"oregon": "OR", "or": "OR",
	"florida": "FL", "fl": "FL",
	"massachusetts": "MA", "ma": "MA",
	"illinois": "IL", "il": "IL",
}

// cityAliases canonicalizes common city abbreviations/nicknames to their
// full name, e.g. "SF" -> "San Francisco" (spec.md §4.1, scenario C).
var cityAliases = map[string]string{
	"sf":  "San Francisco",
	"la":  "Los Angeles",
	"nyc": "New York",
	"dc":  "Washington",
	"slc": "Salt Lake City",
}

// NormalizeState uppercases and canonicalizes a state string to its
// two-letter abbreviation. Unrecognized inputs are uppercased and passed
// through unchanged, since not every state in the source set needs to be
// enumerated for the pipeline to function.
func NormalizeState(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if abbr, ok := usStateAbbrevs[key]; ok {
		return abbr
	}
	return strings.ToUpper(strings.TrimSpace(raw))
}

// NormalizeCity canonicalizes common city aliases and trims the rest,
// leaving their letter case unchanged.
func NormalizeCity(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if full, ok := cityAliases[key]; ok {
		return full
	}
	return strings.TrimSpace(raw)
}

// NormalizeZip truncates a zip code to its first five digits, handling the
// ZIP+4 format some sources carry.
func NormalizeZip(raw string) string {
	z := strings.TrimSpace(raw)
	if i := strings.IndexByte(z, '-'); i >= 0 {
		z = z[:i]
	}
	if len(z) > 5 {
		z = z[:5]
	}
	return z
}

// NormalizeFeature lowercases a feature string for stable Feature node
// identity.
func NormalizeFeature(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// NormalizePropertyType lowercases and underscores a property type string
// for stable PropertyType node identity ("Single Family" -> "single_family").
func NormalizePropertyType(raw string) string {
	lower := strings.ToLower(strings.TrimSpace(raw))
	return strings.ReplaceAll(lower, " ", "_")
}
