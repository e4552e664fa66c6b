package ir

import "golang.org/x/text/unicode/norm"

// NormalizeName NFC-normalizes a field or class name so that visually
// identical names built from different code point sequences address the
// same Parse column.
func NormalizeName(name string) string {
	return norm.NFC.String(name)
}
