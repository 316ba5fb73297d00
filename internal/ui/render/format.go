package render

import (
	"fmt"
	"strconv"
)

// Duration formats milliseconds as m:ss. Negative values render as 0:00.
func Duration(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	secs := ms / 1000
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// Songs returns the queue size label, e.g. "1 song" or "25 songs".
func Songs(n int) string {
	if n == 1 {
		return "1 song"
	}
	return strconv.Itoa(n) + " songs"
}
