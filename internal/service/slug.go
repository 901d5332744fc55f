package service

import (
	"strings"
	"unicode"
)

var reemplazosSlug = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n", "ü", "u",
)

// slugify lowercases, strips accents common in Spanish product names and
// collapses everything that is not alphanumeric into single hyphens.
func slugify(s string) string {
	s = reemplazosSlug.Replace(strings.ToLower(strings.TrimSpace(s)))
	var b strings.Builder
	ultimoGuion := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			ultimoGuion = false
		default:
			if !ultimoGuion && b.Len() > 0 {
				b.WriteByte('-')
				ultimoGuion = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
