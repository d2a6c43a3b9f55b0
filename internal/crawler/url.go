package crawler

import (
	"net/url"
	"strings"
)

// Normalize canonicalizes a URL for deduplication and storage.
// Two URLs identify the same resource iff their normalized forms are
// equal: the query and fragment are stripped, scheme and host are
// lowercased, and an empty path becomes "/" so that
// http://example.com and http://example.com/ collapse to one entry.
//
// Malformed input is returned unchanged: normalization must never
// abort the caller over a bad href found in page markup.
func Normalize(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	u.RawQuery = ""
	u.Fragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if u.Path == "" {
		u.Path = "/"
	}

	return u.String()
}

// InScope reports whether a URL belongs to the crawl's target domain.
// A URL is in scope iff its scheme is http or https and its host equals
// the target host exactly; subdomains are out of scope. The check is
// pure, so callers can re-evaluate it freely, including under the
// visited set's lock at accept-into-frontier time.
func InScope(rawURL, host string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return strings.EqualFold(u.Host, host)
}
