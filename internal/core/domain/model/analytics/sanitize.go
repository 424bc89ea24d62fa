package analytics

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// FallbackCategory is the counter key for lines without a usable category.
	FallbackCategory = "outros"
	// FallbackProduct is the counter key for lines without a usable name.
	FallbackProduct = "item"
)

var (
	disallowedRune = regexp.MustCompile(`[^a-z0-9_-]`)
	underscoreRun  = regexp.MustCompile(`_+`)
)

// SanitizeKey turns free text into a counter key made of [a-z0-9_-] only.
// Diacritics are stripped, periods removed, slashes and whitespace runs become
// a single underscore. Any Unicode space counts as whitespace. An empty result
// yields fallback.
//
//	SanitizeKey("X Burger", FallbackProduct)      // "x_burger"
//	SanitizeKey("Pão de Queijo", FallbackProduct) // "pao_de_queijo"
//	SanitizeKey("Bebidas/Sucos", FallbackCategory) // "bebidas_sucos"
func SanitizeKey(raw, fallback string) string {
	key := stripMarks(raw)
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, ".", "")
	key = strings.ReplaceAll(key, "/", "_")
	key = strings.Join(strings.FieldsFunc(key, unicode.IsSpace), "_")
	key = disallowedRune.ReplaceAllString(key, "")
	key = underscoreRun.ReplaceAllString(key, "_")
	key = strings.Trim(key, "_")

	if key == "" {
		return fallback
	}
	return key
}

// SanitizeCategory is SanitizeKey with the category fallback.
func SanitizeCategory(raw string) string {
	return SanitizeKey(raw, FallbackCategory)
}

// SanitizeProduct is SanitizeKey with the product fallback.
func SanitizeProduct(raw string) string {
	return SanitizeKey(raw, FallbackProduct)
}

func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
