package search

import "strings"

// contextRunes is how many runes to keep before the first matched term.
const contextRunes = 40

// Highlight returns a window of content of at most maxLen runes around the earliest
// occurrence of any term (case-insensitive), with "..." marking cut ends.
// When no term occurs the window starts at the beginning.
func Highlight(content string, terms []string, maxLen int) string {
	runes := []rune(content)
	if maxLen <= 0 || len(runes) <= maxLen {
		return content
	}
	start := 0
	if pos := firstMatch(runes, terms); pos > contextRunes {
		start = pos - contextRunes
	}
	end := start + maxLen
	if end > len(runes) {
		end = len(runes)
		start = end - maxLen
	}
	out := string(runes[start:end])
	if start > 0 {
		out = "..." + out
	}
	if end < len(runes) {
		out += "..."
	}
	return out
}

// firstMatch returns the rune offset of the earliest term occurrence, or -1.
func firstMatch(runes []rune, terms []string) int {
	lower := []rune(strings.ToLower(string(runes)))
	if len(lower) != len(runes) {
		// Lowercasing changed the rune count; offsets would not line up.
		return -1
	}
	hay := string(lower)
	best := -1
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		byteIdx := strings.Index(hay, t)
		if byteIdx < 0 {
			continue
		}
		pos := len([]rune(hay[:byteIdx]))
		if best < 0 || pos < best {
			best = pos
		}
	}
	return best
}
