package geo

import "strings"

// NormalizePostcode trims, uppercases, and collapses internal whitespace to
// single spaces. Every lookup, cache key, and equality comparison in this
// package goes through it so " ab1 2cd " and "AB12CD" behave consistently.
func NormalizePostcode(postcode string) string {
	fields := strings.Fields(strings.ToUpper(postcode))
	return strings.Join(fields, " ")
}

// cacheKey derives the cache/memo key for a postcode. Spaces are removed on
// top of normalization so spaced and unspaced renderings share one entry.
func cacheKey(postcode string) string {
	return strings.ReplaceAll(NormalizePostcode(postcode), " ", "")
}
