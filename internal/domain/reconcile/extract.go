package reconcile

import (
	"regexp"
	"strings"
)

// Site code extraction patterns, tried in order; the first match wins.
var (
	// parenPattern matches the token following a closing parenthesis, the
	// shape most daily descriptions use: "(Region) SITE042 power failure".
	parenPattern = regexp.MustCompile(`\)\s*([A-Za-z0-9_]+)`)
	// tokenPattern is the fallback: a standalone letters-then-digits token
	// anywhere in the description, e.g. "Alarm at SITE042 - power fail".
	tokenPattern = regexp.MustCompile(`\b[A-Za-z]{2,}[0-9]{2,}[A-Za-z0-9_]*\b`)
)

// ExtractSiteCode derives a site code from a daily ticket description.
// The second return value is false when the description is blank or no
// pattern matches. Extraction is deterministic: patterns are tried in a
// fixed precedence and only the first match is used.
func ExtractSiteCode(shortDescription string) (string, bool) {
	if strings.TrimSpace(shortDescription) == "" {
		return "", false
	}

	if match := parenPattern.FindStringSubmatch(shortDescription); match != nil {
		return strings.TrimSpace(match[1]), true
	}

	if match := tokenPattern.FindString(shortDescription); match != "" {
		return match, true
	}

	return "", false
}
