// decoy.go: Fake URL fragments for the unused cells.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package urlmatrix

import (
	"math/rand/v2"
	"slices"
)

var (
	decoyPatterns = []string{
		"https://", "www.", ".com", ".cn", ".org", ".net",
		"/api/", "/static/", "/index", "/page/", "?id=", "&token=",
		"/v2/", "/data/",
	}

	// TLD-like patterns get the random text in front of them
	decoySuffixes = []string{".com", ".cn", ".org", ".net"}
)

const (
	decoyMinRandom = 3
	decoyMaxRandom = 10
)

// GenerateDecoy returns a string that looks like a URL fragment.
//
// A pattern is drawn from a fixed vocabulary and combined with 3 to 10 random
// lowercase alphanumeric characters: "x7kq.org", "/api/m2c9", "www.q0z1".
// Decoys never enter the checksum or the verification hash.
func GenerateDecoy(r *rand.Rand) string {
	if r == nil {
		r = newRand()
	}
	pattern := decoyPatterns[r.IntN(len(decoyPatterns))]
	random := randomString(r, decoyMinRandom+r.IntN(decoyMaxRandom-decoyMinRandom+1), lowerDigits)

	if slices.Contains(decoySuffixes, pattern) {
		return random + pattern
	}
	return pattern + random
}
