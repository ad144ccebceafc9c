package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
)

// CleanText collapses all runs of whitespace into single spaces and trims
// the result. Listing and detail pages interleave text with markup, so raw
// node text is full of newlines and indentation.
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// HashURL creates a hex digest of a URL, used as a stable fallback id for
// detail URLs that carry no numeric component.
func HashURL(url string) string {
	h := sha256.New()
	h.Write([]byte(url))
	return hex.EncodeToString(h.Sum(nil))
}

// ResolveURL resolves a possibly relative href against a base URL. Invalid
// input falls back to the href unchanged; the caller treats the result as
// opaque.
func ResolveURL(base, href string) string {
	if href == "" {
		return ""
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}

	ref, err := url.Parse(href)
	if err != nil {
		return href
	}

	return baseURL.ResolveReference(ref).String()
}
