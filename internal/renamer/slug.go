package renamer

import "strings"

// Sanitize turns a raw title into a file name slug. ok is false when the
// title is blank or nothing survives sanitizing.
//
// Spaces become underscores, every character outside [a-zA-Z0-9_-] is
// dropped, and letters are lowercased. When dropped characters sat between
// two underscores the second one is dropped too, so "Milk & Eggs" gives
// "milk_eggs" rather than "milk__eggs". Underscores that were already
// adjacent are kept, which makes Sanitize the identity on valid slugs.
func Sanitize(raw string) (slug string, ok bool) {
	trimmed := strings.Trim(raw, " \t")
	if trimmed == "" {
		return "", false
	}

	var b strings.Builder
	b.Grow(len(trimmed))
	dropped := false
	var last byte
	for _, r := range strings.ReplaceAll(trimmed, " ", "_") {
		if !isSlugRune(r) {
			dropped = true
			continue
		}
		if r == '_' && dropped && last == '_' {
			dropped = false
			continue
		}
		b.WriteRune(r)
		last = byte(r)
		dropped = false
	}

	slug = strings.ToLower(b.String())
	if slug == "" {
		return "", false
	}
	return slug, true
}

func isSlugRune(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') ||
		r == '_' || r == '-'
}
