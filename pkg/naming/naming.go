// Package naming derives canonical display names from scanned-release
// filenames and matches them against an explicit-content block-list.
// Everything here is pure string work; no I/O.
package naming

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// Release-group tags: [GroupX], (Scanlation Team), {web}.
	tagPattern = regexp.MustCompile(`[\[({][^\])}]*[\])}]`)
	// Volume/chapter numbering: v02, vol. 3, c013, ch 5, chapter 12, #7.
	numberingPattern = regexp.MustCompile(`(?i)(?:\b(?:v(?:ol(?:ume)?)?|c(?:h(?:apter)?)?)\.?\s*\d+\b|#\d+\b)`)
	separatorPattern = regexp.MustCompile(`[_.]+`)
	spacePattern     = regexp.MustCompile(`\s+`)
	unsafePattern    = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
)

// ExtractMangaName strips the extension, bracketed release-group tags,
// and volume/chapter numbering from a raw filename, producing the
// canonical display name the content filter matches against.
// Deterministic and pure.
func ExtractMangaName(filename string) string {
	name := filepath.Base(filename)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = tagPattern.ReplaceAllString(name, " ")
	name = separatorPattern.ReplaceAllString(name, " ")
	name = numberingPattern.ReplaceAllString(name, " ")
	name = spacePattern.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// Filter flags titles whose derived name matches a configured block-list.
type Filter struct {
	Keywords []string
}

// HasExplicitContent reports whether the name contains any configured
// keyword, case-insensitive. A single hit flags the title.
func (f Filter) HasExplicitContent(name string) bool {
	lower := strings.ToLower(name)
	for _, keyword := range f.Keywords {
		if keyword == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

// SanitizeFilename converts a display name into a filesystem-safe file
// name: spaces become underscores, anything outside [A-Za-z0-9._-] is
// dropped.
func SanitizeFilename(name string) string {
	s := strings.TrimSpace(name)
	s = spacePattern.ReplaceAllString(s, "_")
	s = unsafePattern.ReplaceAllString(s, "")
	if s == "" {
		s = "untitled"
	}
	return s
}
