// Package phone normalizes raw phone-number strings into canonical
// comparison keys used to join call records against tasks.
package phone

import "strings"

// Strategy maps a raw phone string to a digits-only comparison key. An empty
// key means no usable number was present. The two data sources emit
// different prefix conventions, so two strategies exist; a join must apply
// the same strategy to both sides.
type Strategy func(raw string) string

// StripPrefixes keeps only digits, then drops a leading "92" country code,
// then a leading trunk "0". "+92 301 2345678", "03012345678" and
// "3012345678" all map to "3012345678".
func StripPrefixes(raw string) string {
	digits := digitsOnly(raw)
	if strings.HasPrefix(digits, "92") {
		digits = digits[2:]
	}
	if strings.HasPrefix(digits, "0") {
		digits = digits[1:]
	}
	return digits
}

// LastTen keeps only the last 10 digits, discarding any country code or
// trunk prefix ahead of them.
func LastTen(raw string) string {
	digits := digitsOnly(raw)
	if len(digits) > 10 {
		digits = digits[len(digits)-10:]
	}
	return digits
}

func digitsOnly(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
