package books

import "strings"

// splitAuthorName divides a free-text author entry at the first run of
// whitespace. "Jane Doe" becomes ("Jane", "Doe"); a single word like
// "Madonna" becomes ("Madonna", "").
func splitAuthorName(entry string) (firstName, lastName string) {
	entry = strings.TrimSpace(entry)
	first, rest, found := strings.Cut(entry, " ")
	if !found {
		return entry, ""
	}
	return first, strings.TrimSpace(rest)
}
