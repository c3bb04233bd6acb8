// Package utils provides content hashing helpers.
//
// ETag and MatchesETag derive HTTP entity tags from SHA-256 digests so
// identical trace responses can be answered with 304 Not Modified.
package utils
