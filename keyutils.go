// keyutils.go: Master secret generation, random strings, fingerprints and URL digests.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package urlmatrix

import (
	"crypto/md5" // #nosec G501 -- checksum format consumed by the decoder, not a security primitive
	crand "crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/rand/v2"
	"strings"
)

// Master secret sizes in characters.
const (
	MasterKeySize = 32
	MasterIVSize  = 16
)

const (
	alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	lowerDigits  = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// MasterSecret is the per-invocation key/IV pair every cell secret derives from.
//
// It is generated fresh by each Build and never stored in the Artifact in clear.
type MasterSecret struct {
	Key string
	IV  string
}

// GenerateMasterSecret returns a random alphanumeric key of MasterKeySize
// characters and IV of MasterIVSize characters.
func GenerateMasterSecret(r *rand.Rand) MasterSecret {
	if r == nil {
		r = newRand()
	}
	return MasterSecret{
		Key: randomString(r, MasterKeySize, alphanumeric),
		IV:  randomString(r, MasterIVSize, alphanumeric),
	}
}

// Fingerprint identifies the secret in logs without exposing it.
func (m MasterSecret) Fingerprint() string {
	return GetKeyFingerprint([]byte(m.Key + m.IV))
}

// GetKeyFingerprint generates a fingerprint for a key (non-cryptographic).
//
// The first 8 bytes of SHA-256 rendered as 16 hex characters; empty input
// yields an empty string.
func GetKeyFingerprint(key []byte) string {
	if len(key) == 0 {
		return ""
	}
	hash := sha256.Sum256(key)
	return fmt.Sprintf("%016x", hash[:8])
}

// URLChecksum returns the 8 hex character checksum stored in the metadata cell.
func URLChecksum(url string) string {
	sum := md5.Sum([]byte(url)) // #nosec G401
	return hex.EncodeToString(sum[:])[:8]
}

// URLHash returns the 16 hex character digest stored in the verification cell.
func URLHash(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])[:16]
}

// NormalizeURL prefixes https:// when the URL has no http(s) scheme.
func NormalizeURL(url string) string {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	return "https://" + url
}

func randomString(r *rand.Rand, n int, charset string) string {
	if n <= 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		sb.WriteByte(charset[r.IntN(len(charset))])
	}
	return sb.String()
}

// newRand returns a ChaCha8 generator seeded from the operating system.
// Output is never meant to be reproducible across invocations.
func newRand() *rand.Rand {
	var seed [32]byte
	_, _ = crand.Read(seed[:]) // crypto/rand.Read does not fail on supported platforms
	return rand.New(rand.NewChaCha8(seed))
}
