package logging

import "strings"

// Redact masks a secret, keeping only the last four characters
func Redact(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) <= 4 {
		return "****"
	}
	return "****" + trimmed[len(trimmed)-4:]
}

// RedactURLQuery masks the value of the given query parameter in a raw URL string
func RedactURLQuery(rawURL, param string) string {
	marker := param + "="
	idx := strings.Index(rawURL, marker)
	if idx < 0 {
		return rawURL
	}
	start := idx + len(marker)
	end := strings.IndexByte(rawURL[start:], '&')
	if end < 0 {
		return rawURL[:start] + Redact(rawURL[start:])
	}
	return rawURL[:start] + Redact(rawURL[start:start+end]) + rawURL[start+end:]
}
