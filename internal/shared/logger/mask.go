package logger

import "strings"

// MaskEmail keeps the first character of the local part.
// Example: operator@example.com -> o***@example.com
func MaskEmail(email string) string {
	if email == "" {
		return ""
	}

	local, domain, ok := strings.Cut(email, "@")
	if !ok || domain == "" || strings.Contains(domain, "@") {
		return "***@***"
	}
	if local == "" {
		return "***@" + domain
	}

	first := []rune(local)[0]
	return string(first) + "***@" + domain
}
