// Package labels derives deduplicated label sets from ordered label sequences.
package labels

// Unique returns labels with later duplicates removed, keeping each label at the position
// of its first occurrence. The result is never nil.
func Unique(labels []string) []string {
	out := make([]string, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

// First returns at most n labels from the front of labels.
func First(labels []string, n int) []string {
	if n < 0 {
		n = 0
	}
	if len(labels) <= n {
		return labels
	}
	return labels[:n]
}
