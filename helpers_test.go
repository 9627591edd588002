// helpers_test.go: Inverse transforms used to check cell ciphertexts.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package urlmatrix_test

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math/rand/v2"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"github.com/agilira/urlmatrix"
)

// testRand returns a deterministic generator for reproducible tests.
func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func decryptCBC(ciphertext []byte, key, iv string) ([]byte, error) {
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("bad ciphertext length %d", len(ciphertext))
	}
	block, err := aes.NewCipher([]byte(key[:urlmatrix.CellKeySize]))
	if err != nil {
		return nil, err
	}
	plain := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, []byte(iv[:aes.BlockSize])).CryptBlocks(plain, ciphertext)
	pad := int(plain[len(plain)-1])
	if pad == 0 || pad > aes.BlockSize {
		return nil, fmt.Errorf("bad padding %d", pad)
	}
	return plain[:len(plain)-pad], nil
}

// decryptCell inverts every method except MethodSubstitution, which is one-way.
func decryptCell(t *testing.T, m urlmatrix.Method, ciphertext, key, iv string) string {
	t.Helper()
	switch m {
	case urlmatrix.MethodAESBase64:
		raw, err := base64.StdEncoding.DecodeString(ciphertext)
		require.NoError(t, err)
		plain, err := decryptCBC(raw, key, iv)
		require.NoError(t, err)
		return string(plain)
	case urlmatrix.MethodAESHex:
		raw, err := hex.DecodeString(ciphertext)
		require.NoError(t, err)
		plain, err := decryptCBC(raw, key, iv)
		require.NoError(t, err)
		return string(plain)
	case urlmatrix.MethodXOR:
		raw, err := base64.StdEncoding.DecodeString(ciphertext)
		require.NoError(t, err)
		keystream := key + iv
		for i := range raw {
			raw[i] ^= keystream[i%len(keystream)]
		}
		return string(raw)
	case urlmatrix.MethodReverseBase64:
		first, _ := utf8.DecodeRuneInString(key)
		offset := int(first) % 10
		require.GreaterOrEqual(t, len(ciphertext), 2*offset)
		core := []byte(ciphertext[offset : len(ciphertext)-offset])
		for i, j := 0, len(core)-1; i < j; i, j = i+1, j-1 {
			core[i], core[j] = core[j], core[i]
		}
		raw, err := base64.StdEncoding.DecodeString(string(core))
		require.NoError(t, err)
		return string(raw)
	default:
		t.Fatalf("method %s cannot be inverted", m)
		return ""
	}
}
