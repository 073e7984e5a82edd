package provider

import (
	"unicode/utf8"
)

const truncatedMarker = "\n... [resultado truncado]"

// truncateHistory keeps the most recent max turns. Tool turns left at the
// front without their assistant turn are dropped too, since no backend
// accepts a tool result it cannot pair with a call.
func truncateHistory(history []Message, max int) []Message {
	if max <= 0 || len(history) <= max {
		return history
	}
	kept := history[len(history)-max:]
	for len(kept) > 0 && kept[0].Role == RoleTool {
		kept = kept[1:]
	}
	out := make([]Message, len(kept))
	copy(out, kept)
	return out
}

// truncateResult caps a tool result at limit characters.
func truncateResult(result string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(result) <= limit {
		return result
	}
	return string([]rune(result)[:limit]) + truncatedMarker
}
