package model

import (
	"strings"
	"unicode"
)

// DefaultLabeler turns a property name such as "firstName" or "last_name"
// into "First Name" / "Last Name". Schema titles win over it.
func DefaultLabeler(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	var (
		words   []string
		current []rune
		prev    rune
	)
	flush := func() {
		if len(current) > 0 {
			words = append(words, titleCase(string(current)))
			current = current[:0]
		}
	}
	for i, r := range name {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			flush()
		case i > 0 && unicode.IsLower(prev) && unicode.IsUpper(r):
			flush()
			current = append(current, r)
		default:
			current = append(current, r)
		}
		prev = r
	}
	flush()
	return strings.Join(words, " ")
}

func titleCase(word string) string {
	runes := []rune(strings.ToLower(word))
	if len(runes) == 0 {
		return ""
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
