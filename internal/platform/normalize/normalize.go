// Package normalize produces canonical comparison keys for scraped
// player and team names. Scraped text arrives with Latvian diacritics,
// jersey numbers and parenthetical notes; stored rows do not, so both
// sides of every name join must pass through the same functions here.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Name strips diacritics, collapses runs of whitespace and trims.
// It is idempotent: Name(Name(s)) == Name(s).
func Name(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(out), " ")
}

// FoldKey is the case-insensitive join key used when matching scraped
// names against stored rows.
func FoldKey(s string) string {
	return strings.ToLower(Name(s))
}

// StripAnnotations removes jersey numbers and parenthetical notes from a
// scraped name cell, e.g. "#7 Janis Berzins (C)" -> "Janis Berzins".
func StripAnnotations(s string) string {
	if idx := strings.IndexByte(s, '('); idx >= 0 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")
	s = strings.TrimLeft(s, "0123456789")
	s = strings.TrimLeft(s, ". ")
	return strings.TrimSpace(s)
}

// TeamCode derives a 3-character uppercase code from a team name: the
// first three alphanumeric characters when the name has that many,
// otherwise one initial per word padded with 'X'. Empty input yields "".
func TeamCode(name string) string {
	cleaned := Name(name)
	if cleaned == "" {
		return ""
	}

	alnum := make([]rune, 0, 3)
	for _, r := range cleaned {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			alnum = append(alnum, unicode.ToUpper(r))
			if len(alnum) == 3 {
				return string(alnum)
			}
		}
	}

	initials := make([]rune, 0, 3)
	for _, word := range strings.Fields(cleaned) {
		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				initials = append(initials, unicode.ToUpper(r))
				break
			}
		}
		if len(initials) == 3 {
			break
		}
	}
	for len(initials) < 3 {
		initials = append(initials, 'X')
	}
	return string(initials)
}
