package repository

import "strconv"

// uintToString renders a content ID in the string form relation rows use
// for their object reference.
func uintToString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// idsToStrings converts a batch of content IDs the same way.
func idsToStrings(ids []uint) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, uintToString(id))
	}
	return out
}

func clampLimit(limit, fallback, max int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > max {
		return max
	}
	return limit
}
