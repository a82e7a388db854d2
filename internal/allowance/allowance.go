// Package allowance knows the default number of paid days off per country.
package allowance

import (
	"sort"
	"strings"
)

// Lookup returns the default yearly allowance for an ISO 3166-1 alpha-2
// country code. Unknown codes give 0 and false.
func Lookup(countryCode string) (int, bool) {
	days, ok := defaults[strings.ToUpper(strings.TrimSpace(countryCode))]
	return days, ok
}

// Days is Lookup without the presence flag
func Days(countryCode string) int {
	days, _ := Lookup(countryCode)
	return days
}

// Countries lists every code with a known allowance, sorted
func Countries() []string {
	codes := make([]string, 0, len(defaults))
	for code := range defaults {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
