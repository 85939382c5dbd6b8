package mdtable

import "strings"

const markdownControlChars = "#*[]`~>\\|!"

// SanitizeInput prepares free text (title, description, location, participant
// name) for embedding into markdown: trim, truncate to maxLength characters,
// then backslash-escape markdown control characters so a stray pipe or
// formatting character cannot shift table columns or inject markup.
func SanitizeInput(input string, maxLength int) string {
	trimmed := strings.TrimSpace(input)

	runes := []rune(trimmed)
	if len(runes) > maxLength {
		runes = runes[:maxLength]
	}

	var b strings.Builder
	b.Grow(len(runes) * 2)
	for _, r := range runes {
		if strings.ContainsRune(markdownControlChars, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
