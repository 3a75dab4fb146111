package maskmap

import (
	"strings"
	"unicode"
)

const maskSuffix = "Mask"

// DefaultBaseName is the derived output name when no source identifier
// exists to derive from.
const DefaultBaseName = "LitMask"

// DeriveName derives a default output base name from a source identifier,
// usually a source texture's file name without extension. The last word of
// the identifier is replaced with "Mask": after the latest of '_', '-' or
// space when the name is delimited, at the last capitalized word when it is
// PascalCase, and at the last character otherwise. Names already ending in
// "Mask" pass through unchanged, and an empty identifier yields
// DefaultBaseName.
func DeriveName(base string) string {
	if base == "" {
		return DefaultBaseName
	}
	if strings.HasSuffix(base, maskSuffix) {
		return base
	}

	// Delimited names cut right after the last delimiter, keeping it.
	if i := strings.LastIndexAny(base, "_- "); i >= 0 {
		return base[:i+1] + maskSuffix
	}

	// PascalCase: a run of one uppercase letter plus any following
	// lowercase letters is one word; with two or more words the last one
	// is replaced by the suffix.
	runes := []rune(base)
	words := 0
	lastUpper := -1
	for i, r := range runes {
		if unicode.IsUpper(r) {
			words++
			lastUpper = i
		}
	}
	if words >= 2 && lastUpper > 0 {
		return string(runes[:lastUpper]) + maskSuffix
	}

	// Single-rune identifiers keep their name untouched, an inherited
	// quirk of the naming scheme.
	if len(runes) <= 1 {
		return base
	}
	return string(runes[:len(runes)-1]) + maskSuffix
}
