package accounting

import (
	"strings"
	"unicode"
)

// NameInitials derives avatar initials from a customer name.
// Anything after a hyphen is ignored and a leading "Al" is dropped. The initials are
// the first rune of the name and the first rune of its last word, or the second
// rune when the name is a single word: "John Smith" -> "JS", "Madonna" -> "MA".
func NameInitials(name string) string {
	name, _, _ = strings.Cut(name, "-")
	name = strings.TrimSpace(name)

	if strings.HasPrefix(name, "Al") {
		name = strings.TrimSpace(name[len("Al"):])
	}

	runes := []rune(name)

	var picked []rune

	i := 0
	for ; i < len(runes) && i < 2 && !unicode.IsSpace(runes[i]); i++ {
		picked = append(picked, runes[i])
	}

	for i < len(runes) {
		if unicode.IsSpace(runes[i]) && i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			picked = append(picked, runes[i+1])
			i += 2

			continue
		}

		i++
	}

	switch len(picked) {
	case 0:
		return ""
	case 1:
		return strings.ToUpper(string(picked[0]))
	}

	return strings.ToUpper(string([]rune{picked[0], picked[len(picked)-1]}))
}
