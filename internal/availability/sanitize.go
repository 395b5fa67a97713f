package availability

import (
	"regexp"
	"strings"
)

// MinSubdomainLength is the shortest subdomain worth checking remotely.
const MinSubdomainLength = 3

// emailShape is the same loose shape test the signup form applies before
// asking the registry; full validation belongs to the server.
var emailShape = regexp.MustCompile(`\S+@\S+\.\S+`)

// SanitizeSubdomain lowercases the input and strips everything outside
// [a-z0-9-]. The same rule runs server-side, so a value that survives
// sanitation unchanged is safe to send.
func SanitizeSubdomain(raw string) string {
	raw = strings.ToLower(raw)
	var b strings.Builder
	b.Grow(len(raw))
	for _, c := range raw {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-' {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// ValidEmailShape reports whether the value looks enough like an email to be
// worth a remote check.
func ValidEmailShape(s string) bool {
	return emailShape.MatchString(s)
}
