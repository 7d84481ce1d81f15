package classifier

import (
	"fmt"
	"strings"

	"healthfeed/config"
)

// EstimateReadTime converts article content into a display string like
// "3 min read", assuming config.WordsPerMinute and rounding up. Empty
// content yields the one-minute default.
func EstimateReadTime(content string) string {
	words := len(strings.Fields(content))
	if words == 0 {
		return "1 min read"
	}

	minutes := (words + config.WordsPerMinute - 1) / config.WordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}
