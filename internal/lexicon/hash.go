package lexicon

import (
	"crypto/sha256"
	"encoding/hex"
)

// shortHash returns a hex-encoded SHA-256 digest of data. Used only for the
// engine-version fingerprint, so no ecosystem hashing library is wired
// here: a fixed-size content digest is exactly what crypto/sha256 is for.
func shortHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
