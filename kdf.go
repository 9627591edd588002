// kdf.go: Per-cell key and IV derivation from the master secret.
//
// Derivation is a pure function of (master secret, row, column) so that any
// party holding the master secret can recompute a cell's key/IV from its
// coordinates alone. Nothing is cached.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package urlmatrix

import (
	"crypto/md5" // #nosec G501 -- IV derivation format shared with the decoder
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Derived secret sizes in hex characters.
const (
	DerivedKeySize = 32
	DerivedIVSize  = 16
)

// seedSliceLen is the width of the master key windows mixed into a key seed.
const seedSliceLen = 8

// DerivedSecret is the key/IV pair of a single cell.
type DerivedSecret struct {
	Key string
	IV  string
}

// DeriveKey maps (masterKey, row, col) to a 32 hex character cell key.
//
// The seed is masterKey[row:row+8] + col + masterKey[col:col+8] + row, hashed
// with SHA-256. Keys shorter than MasterKeySize are right-padded with '0';
// windows running past the end of the key are clamped.
//
// Example:
//
//	key := urlmatrix.DeriveKey(master.Key, 1, 2)
//	fmt.Println(len(key)) // 32
func DeriveKey(masterKey string, row, col int) string {
	mk := padRight(masterKey, MasterKeySize)

	var seed strings.Builder
	seed.WriteString(window(mk, row, seedSliceLen))
	seed.WriteString(strconv.Itoa(col))
	seed.WriteString(window(mk, col, seedSliceLen))
	seed.WriteString(strconv.Itoa(row))

	sum := sha256.Sum256([]byte(seed.String()))
	return hex.EncodeToString(sum[:])[:DerivedKeySize]
}

// DeriveIV maps (masterIV, row, col) to a 16 hex character cell IV.
//
// The seed is row + masterIV[:8] + col + masterIV[8:], hashed with MD5.
// Only 16 hex characters (8 bytes of digest) are kept; the AES methods use the
// 16 ASCII bytes of that string as the IV.
func DeriveIV(masterIV string, row, col int) string {
	iv := padRight(masterIV, MasterIVSize)

	seed := strconv.Itoa(row) + iv[:8] + strconv.Itoa(col) + iv[8:]
	sum := md5.Sum([]byte(seed)) // #nosec G401
	return hex.EncodeToString(sum[:])[:DerivedIVSize]
}

// DeriveSecret derives both the key and the IV of the cell at (row, col).
func DeriveSecret(master MasterSecret, row, col int) DerivedSecret {
	return DerivedSecret{
		Key: DeriveKey(master.Key, row, col),
		IV:  DeriveIV(master.IV, row, col),
	}
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat("0", n-len(s))
}

// window returns s[start:start+n] clamped to the bounds of s.
func window(s string, start, n int) string {
	if start < 0 || start >= len(s) {
		return ""
	}
	end := start + n
	if end > len(s) {
		end = len(s)
	}
	return s[start:end]
}
