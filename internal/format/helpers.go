package format

import (
	"fmt"
	"time"
)

// Status returns "✅" for true and "❌" for false.
func Status(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}

// FmtDuration formats a duration as "Xms", "Ys" or "Xm Ys".
func FmtDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	s := int(d.Seconds())
	if s >= 60 {
		return fmt.Sprintf("%dm %ds", s/60, s%60)
	}
	return fmt.Sprintf("%ds", s)
}

// Truncate shortens s to maxLen characters, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
