package validators

import "strings"

// maxQueryLen caps operator-typed product queries; matches the resolve body
// validation tag.
const maxQueryLen = 512

// SanitizeQuery trims operator input and enforces the query length cap.
func SanitizeQuery(input string) string {
	trimmed := strings.TrimSpace(input)
	if len(trimmed) > maxQueryLen {
		return trimmed[:maxQueryLen]
	}
	return trimmed
}
