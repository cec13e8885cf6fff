// Package utils provides shared utilities for text, sizes, and logging.
package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// Truncate returns s truncated to maxLen runes, with "..." appended if truncated.
// If maxLen is 0 or negative, returns s unchanged.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}

// FormatSize renders a byte count the way document sizes are shown: "512 B", "245 KB",
// "1.2 MB", "3.4 GB". Kilobytes are whole numbers, larger units keep one decimal.
func FormatSize(n int64) string {
	const unit = 1024
	switch {
	case n < unit:
		return fmt.Sprintf("%d B", n)
	case n < unit*unit:
		return fmt.Sprintf("%d KB", (n+unit/2)/unit)
	case n < unit*unit*unit:
		return oneDecimal(float64(n)/(unit*unit)) + " MB"
	default:
		return oneDecimal(float64(n)/(unit*unit*unit)) + " GB"
	}
}

func oneDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0")
}
