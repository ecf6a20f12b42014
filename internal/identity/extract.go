package identity

import (
	"net/url"
	"regexp"
	"strings"
)

// Contact identifier patterns. Profile handles shorter than two characters
// are rejected as noise.
var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneRe = regexp.MustCompile(`(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{3}\)?|\d{3})[ .-]?\d{3}[ .-]?\d{4}\b`)

	linkedinRe = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/(?:in|pub|mwlite/in)/([A-Za-z0-9\-_%]+)`)
	githubRe   = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/([A-Za-z0-9\-]+)`)

	nonDigitRe = regexp.MustCompile(`\D`)
)

// Extract pulls normalized contact identifiers out of unstructured candidate
// text. It is a pure function: text with no contact patterns yields empty
// sets, never an error.
func Extract(text string) Identity {
	if text == "" {
		return Identity{}
	}

	emails := make(map[string]struct{})
	for _, m := range emailRe.FindAllString(text, -1) {
		emails[strings.ToLower(m)] = struct{}{}
	}

	phones := make(map[string]struct{})
	for _, m := range phoneRe.FindAllString(text, -1) {
		phones[nonDigitRe.ReplaceAllString(m, "")] = struct{}{}
	}

	linkedin := make(map[string]struct{})
	for _, m := range linkedinRe.FindAllStringSubmatch(text, -1) {
		if u, ok := normalizeProfileURL("https://linkedin.com/in", m[1]); ok {
			linkedin[u] = struct{}{}
		}
	}

	github := make(map[string]struct{})
	for _, m := range githubRe.FindAllStringSubmatch(text, -1) {
		if u, ok := normalizeProfileURL("https://github.com", m[1]); ok {
			github[u] = struct{}{}
		}
	}

	return Identity{
		Emails:   normalizeSet(emails),
		Phones:   normalizeSet(phones),
		LinkedIn: normalizeSet(linkedin),
		GitHub:   normalizeSet(github),
	}
}

// normalizeProfileURL rewrites a profile handle to the canonical lowercase
// https://<host>/<path>/<handle> form. Handles of length <= 1 are rejected.
func normalizeProfileURL(base, handle string) (string, bool) {
	if decoded, err := url.QueryUnescape(handle); err == nil {
		handle = decoded
	}
	handle = strings.Trim(strings.TrimSpace(handle), "/")
	if len(handle) <= 1 {
		return "", false
	}
	return strings.ToLower(base + "/" + handle), true
}
