// keyparts.go: Split-and-permute obfuscation of the master key and IV.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package urlmatrix

import (
	"math/rand/v2"
	"strings"
)

// Slice widths of the obfuscated master secret. They partition MasterKeySize
// and MasterIVSize respectively.
var (
	keyPartWidths = [3]int{10, 10, 12}
	ivPartWidths  = [3]int{5, 5, 6}
)

// SecretPart is a shuffled slice of the master key or IV.
//
// Scrambled[i] holds the original character at index Permutation[i], so the
// slice is rebuilt with original[Permutation[i]] = Scrambled[i].
type SecretPart struct {
	Scrambled   string `json:"s"`
	Permutation []int  `json:"m"`
}

// ObfuscatePart shuffles s with a random bijection on its byte indices.
func ObfuscatePart(s string, r *rand.Rand) SecretPart {
	if s == "" {
		return SecretPart{Scrambled: "", Permutation: []int{}}
	}
	if r == nil {
		r = newRand()
	}

	perm := r.Perm(len(s))
	scrambled := make([]byte, len(s))
	for i, p := range perm {
		scrambled[i] = s[p]
	}
	return SecretPart{Scrambled: string(scrambled), Permutation: perm}
}

// Restore applies the inverse permutation. Malformed parts (length mismatch or
// out-of-range entries) restore to an empty string.
func (p SecretPart) Restore() string {
	if len(p.Permutation) != len(p.Scrambled) {
		return ""
	}
	out := make([]byte, len(p.Scrambled))
	seen := make([]bool, len(p.Scrambled))
	for i, idx := range p.Permutation {
		if idx < 0 || idx >= len(out) || seen[idx] {
			return ""
		}
		seen[idx] = true
		out[idx] = p.Scrambled[i]
	}
	return string(out)
}

// ObfuscateSecret splits the master key 10/10/12 and the IV 5/5/6 and shuffles
// every slice independently.
func ObfuscateSecret(m MasterSecret, r *rand.Rand) (keyParts, ivParts [3]SecretPart) {
	if r == nil {
		r = newRand()
	}
	for i, s := range splitWidths(padRight(m.Key, MasterKeySize), keyPartWidths) {
		keyParts[i] = ObfuscatePart(s, r)
	}
	for i, s := range splitWidths(padRight(m.IV, MasterIVSize), ivPartWidths) {
		ivParts[i] = ObfuscatePart(s, r)
	}
	return keyParts, ivParts
}

// RestoreSecret concatenates the restored parts.
func RestoreSecret(parts [3]SecretPart) string {
	var sb strings.Builder
	for _, p := range parts {
		sb.WriteString(p.Restore())
	}
	return sb.String()
}

// splitWidths cuts s into consecutive slices of the given widths; the last
// slice takes whatever remains.
func splitWidths(s string, widths [3]int) [3]string {
	var out [3]string
	offset := 0
	for i, w := range widths {
		end := offset + w
		if i == len(widths)-1 || end > len(s) {
			end = len(s)
		}
		out[i] = s[offset:end]
		offset = end
	}
	return out
}
