package league

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// playerNamespace seeds name-based player ids so a replay of the same log
// always hands out the same ids.
var playerNamespace = uuid.MustParse("6f1c2f0e-8b7a-4d0e-9a51-3c2d7e4b1a90")

// DisplayName trims name and collapses inner whitespace runs to one space.
func DisplayName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// CanonicalName is the identity key for a player name: the display form,
// case folded.
func CanonicalName(name string) string {
	return cases.Fold().String(DisplayName(name))
}

// PlayerID returns the stable id for name.
func PlayerID(name string) uuid.UUID {
	return uuid.NewSHA1(playerNamespace, []byte(CanonicalName(name)))
}

// SameName reports whether a and b identify the same player.
func SameName(a, b string) bool {
	return CanonicalName(a) == CanonicalName(b)
}

// ValidName reports whether name is made of letters and spaces only.
func ValidName(name string) bool {
	for _, r := range name {
		if !unicode.IsLetter(r) && r != ' ' {
			return false
		}
	}
	return true
}

func nameLen(name string) int {
	return utf8.RuneCountInString(name)
}
