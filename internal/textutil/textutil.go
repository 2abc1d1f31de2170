package textutil

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
)

// KeyHash computes the MD5 hex digest used for generated string keys.
// It is an identifier, not a security boundary.
func KeyHash(s string) string {
	h := md5.Sum([]byte(s))
	return hex.EncodeToString(h[:])
}

// Hash computes a SHA-256 hex hash of content, used to tell whether a file
// changed between load and write.
func Hash(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}
