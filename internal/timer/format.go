package timer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatCountdown renders seconds as zero-padded mm:ss. Minutes are not
// wrapped into hours, so 90 minutes shows as 90:00.
func FormatCountdown(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// CeilSeconds rounds a remaining duration up to whole seconds, so the
// display reads 00:01 until the phase is really over.
func CeilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}

// ParseMinutes reads a user-entered phase length. Anything that is not a
// non-negative integer counts as zero minutes.
func ParseMinutes(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
