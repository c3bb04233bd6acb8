package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// etagLength is the number of hex digits kept in an entity tag
const etagLength = 32

// Digest returns the hex SHA-256 digest of data
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ETag returns a strong HTTP entity tag for a response body
func ETag(body []byte) string {
	return `"` + Digest(body)[:etagLength] + `"`
}

// MatchesETag reports whether an If-None-Match header value names etag
func MatchesETag(header, etag string) bool {
	if header == "" {
		return false
	}
	if header == "*" {
		return true
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == etag || candidate == "W/"+etag {
			return true
		}
	}
	return false
}
