package util //nolint:revive // package name util hosts shared display formatting helpers

import (
	"fmt"
	"time"
)

const (
	unknownSize = "Unknown size"
	unknownDate = "Unknown date"

	// DisplayDateLayout renders dates like "Mar 5, 2024".
	DisplayDateLayout = "Jan 2, 2006"
)

var sizeUnits = [...]string{"B", "KB", "MB", "GB", "TB"}

// FormatFileSize renders a byte count in binary units with two decimals,
// e.g. "1.50 KB". Returns "Unknown size" when bytes is nil.
func FormatFileSize(bytes *int64) string {
	if bytes == nil {
		return unknownSize
	}
	size := float64(*bytes)
	unit := 0
	for size >= 1024 && unit < len(sizeUnits)-1 {
		size /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f %s", size, sizeUnits[unit])
}

// FormatDate renders t in UTC using DisplayDateLayout. Returns "Unknown date" when t is nil.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return unknownDate
	}
	return t.UTC().Format(DisplayDateLayout)
}
