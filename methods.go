// methods.go: The cipher method pool applied to individual matrix cells.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package urlmatrix

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	goerrors "github.com/agilira/go-errors"
)

// Method selects one of the interchangeable cell transforms.
type Method int

// The cipher method pool. The metadata cell always uses MethodAESBase64 and
// the verification cell MethodAESHex; every other cell draws one uniformly.
const (
	MethodAESBase64     Method = iota // AES-128-CBC, base64
	MethodAESHex                      // AES-128-CBC, lowercase hex
	MethodXOR                         // repeating key+iv XOR, base64
	MethodReverseBase64               // reversed base64 between random padding
	MethodSubstitution                // printable-range character shift, base64

	methodCount
)

// Methods returns every method of the pool in index order.
func Methods() []Method {
	return []Method{MethodAESBase64, MethodAESHex, MethodXOR, MethodReverseBase64, MethodSubstitution}
}

// RandomMethod draws a method uniformly from the pool.
func RandomMethod(r *rand.Rand) Method {
	return Method(r.IntN(int(methodCount)))
}

// Valid reports whether m belongs to the pool.
func (m Method) Valid() bool {
	return m >= 0 && m < methodCount
}

func (m Method) String() string {
	switch m {
	case MethodAESBase64:
		return "aes-base64"
	case MethodAESHex:
		return "aes-hex"
	case MethodXOR:
		return "xor"
	case MethodReverseBase64:
		return "reverse-base64"
	case MethodSubstitution:
		return "substitution"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// Encrypt applies the raw transform. Errors are returned as-is; callers that
// must never fail use EncryptCell.
//
// r supplies the random padding of MethodReverseBase64 and may be nil for the
// other methods.
func (m Method) Encrypt(plaintext, key, iv string, r *rand.Rand) (string, error) {
	switch m {
	case MethodAESBase64:
		ct, err := encryptCBC([]byte(plaintext), key, iv)
		if err != nil {
			return "", err
		}
		return base64.StdEncoding.EncodeToString(ct), nil
	case MethodAESHex:
		ct, err := encryptCBC([]byte(plaintext), key, iv)
		if err != nil {
			return "", err
		}
		return hex.EncodeToString(ct), nil
	case MethodXOR:
		return xorEncrypt(plaintext, key, iv)
	case MethodReverseBase64:
		if r == nil {
			r = newRand()
		}
		return reverseEncrypt(plaintext, key, r), nil
	case MethodSubstitution:
		return substitutionEncrypt(plaintext, key), nil
	default:
		richErr := goerrors.New(ErrCodeCellCipher, fmt.Sprintf("unknown cipher method %d", int(m)))
		return "", fmt.Errorf("urlmatrix: %w", richErr)
	}
}

// EncryptCell encrypts one cell and never fails.
//
// Empty plaintext yields an empty ciphertext without invoking any method. If
// the method fails (or is unknown) the plaintext is base64-encoded instead and
// fellBack is true.
func EncryptCell(m Method, plaintext, key, iv string, r *rand.Rand) (ciphertext string, fellBack bool) {
	if plaintext == "" {
		return "", false
	}
	ct, err := m.Encrypt(plaintext, key, iv, r)
	if err != nil {
		return fallbackEncrypt(plaintext), true
	}
	return ct, false
}

func fallbackEncrypt(plaintext string) string {
	return base64.StdEncoding.EncodeToString([]byte(plaintext))
}

// xorEncrypt XORs the UTF-8 plaintext with the repeating bytes of key+iv.
func xorEncrypt(plaintext, key, iv string) (string, error) {
	keystream := key + iv
	if len(keystream) == 0 {
		richErr := goerrors.New(ErrCodeKeystream, "key and iv are both empty")
		return "", fmt.Errorf("%w: %w", ErrEmptyKeystream, richErr)
	}

	buf := getBuffer(len(plaintext))
	defer putBuffer(buf)
	out := *buf
	for i := 0; i < len(plaintext); i++ {
		out[i] = plaintext[i] ^ keystream[i%len(keystream)]
	}
	return base64.StdEncoding.EncodeToString(out), nil
}

// reverseEncrypt base64-encodes, reverses and wraps the result in random
// alphanumeric padding whose length is the first key rune modulo 10.
func reverseEncrypt(plaintext, key string, r *rand.Rand) string {
	offset := 5
	if key != "" {
		first, _ := utf8.DecodeRuneInString(key)
		offset = int(first) % 10
	}

	encoded := []byte(base64.StdEncoding.EncodeToString([]byte(plaintext)))
	for i, j := 0, len(encoded)-1; i < j; i, j = i+1, j-1 {
		encoded[i], encoded[j] = encoded[j], encoded[i]
	}

	var sb strings.Builder
	sb.Grow(len(encoded) + 2*offset)
	sb.WriteString(randomString(r, offset, alphanumeric))
	sb.Write(encoded)
	sb.WriteString(randomString(r, offset, alphanumeric))
	return sb.String()
}

// substitutionEncrypt shifts every rune by a key and position dependent
// offset into the ASCII range, then base64-encodes the shifted string.
func substitutionEncrypt(plaintext, key string) string {
	keySum := 1
	if key != "" {
		keySum = 0
		for i, c := range []rune(key) {
			if i == 5 {
				break
			}
			keySum += int(c)
		}
	}

	var sb strings.Builder
	sb.Grow(len(plaintext))
	i := 0
	for _, c := range plaintext {
		offset := (i*keySum+int(c))%95 + 32
		shifted := (int(c) + offset) % 127
		if shifted < 32 {
			shifted += 32
		}
		sb.WriteRune(rune(shifted))
		i++
	}
	return base64.StdEncoding.EncodeToString([]byte(sb.String()))
}
