package service

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"docanalyzer/internal/domain"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// asciiFold decomposes accented characters and drops what is left outside ASCII.
var asciiFold = transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
	return r > unicode.MaxASCII
})))

// SanitizeFilename turns a client-supplied filename into a flat, safe storage
// key: path separators and whitespace become "_", characters outside
// [A-Za-z0-9._-] are removed, and leading or trailing dots and underscores
// are stripped. An empty result yields domain.ErrInvalidFilename.
func SanitizeFilename(name string) (string, error) {
	folded, _, err := transform.String(asciiFold, name)
	if err != nil {
		return "", domain.ErrInvalidFilename
	}

	folded = strings.NewReplacer("/", " ", "\\", " ").Replace(folded)
	folded = strings.Join(strings.Fields(folded), "_")
	folded = unsafeFilenameChars.ReplaceAllString(folded, "")
	folded = strings.Trim(folded, "._")

	if folded == "" {
		return "", domain.ErrInvalidFilename
	}
	return folded, nil
}

// hasAllowedExtension reports whether name ends in the accepted upload
// extension, ignoring case.
func hasAllowedExtension(name string) bool {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return false
	}
	return strings.EqualFold(name[i+1:], domain.AllowedExtension)
}
