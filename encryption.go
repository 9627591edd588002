// encryption.go: AES-CBC block encryption with PKCS#7 padding for matrix cells.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package urlmatrix

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"

	goerrors "github.com/agilira/go-errors"
)

// CellKeySize is the AES-128 key size used by the block cipher methods.
const CellKeySize = 16

// Public standard errors for the cell cipher layer.
var (
	// ErrInvalidKeySize is returned when fewer than CellKeySize key bytes are available.
	ErrInvalidKeySize = errors.New("urlmatrix: invalid key size")

	// ErrInvalidIVSize is returned when fewer than aes.BlockSize IV bytes are available.
	ErrInvalidIVSize = errors.New("urlmatrix: invalid iv size")

	// ErrCipherInit is returned when AES cipher initialization fails.
	ErrCipherInit = errors.New("urlmatrix: cipher initialization error")

	// ErrEmptyKeystream is returned by the XOR method when key and IV are both empty.
	ErrEmptyKeystream = errors.New("urlmatrix: empty keystream")
)

// Error codes for rich error handling
const (
	ErrCodeInvalidKey = "URLMATRIX_INVALID_KEY"
	ErrCodeInvalidIV  = "URLMATRIX_INVALID_IV"
	ErrCodeCipherInit = "URLMATRIX_CIPHER_INIT"
	ErrCodeKeystream  = "URLMATRIX_EMPTY_KEYSTREAM"
)

// encryptCBC encrypts plaintext with AES-128-CBC.
//
// The key and IV are the first 16 bytes of the supplied strings; shorter
// inputs are rejected. The padded plaintext lives in a pooled buffer that is
// wiped before it is returned to the pool.
func encryptCBC(plaintext []byte, key, iv string) ([]byte, error) {
	if len(key) < CellKeySize {
		richErr := goerrors.New(ErrCodeInvalidKey, fmt.Sprintf("key must provide at least %d bytes (got %d)", CellKeySize, len(key)))
		return nil, fmt.Errorf("%w: %w", ErrInvalidKeySize, richErr)
	}
	if len(iv) < aes.BlockSize {
		richErr := goerrors.New(ErrCodeInvalidIV, fmt.Sprintf("iv must provide at least %d bytes (got %d)", aes.BlockSize, len(iv)))
		return nil, fmt.Errorf("%w: %w", ErrInvalidIVSize, richErr)
	}

	block, err := aes.NewCipher([]byte(key[:CellKeySize]))
	if err != nil {
		richErr := goerrors.Wrap(err, ErrCodeCipherInit, "failed to create AES cipher")
		return nil, fmt.Errorf("%w: %w", ErrCipherInit, richErr)
	}

	padded := getBuffer(paddedLen(len(plaintext)))
	defer putBuffer(padded)
	pkcs7Pad(*padded, plaintext)

	ciphertext := make([]byte, len(*padded))
	cipher.NewCBCEncrypter(block, []byte(iv[:aes.BlockSize])).CryptBlocks(ciphertext, *padded)
	return ciphertext, nil
}

func paddedLen(n int) int {
	return n + aes.BlockSize - n%aes.BlockSize
}

// pkcs7Pad copies src into dst and fills the tail with the pad length.
// dst must be paddedLen(len(src)) bytes long.
func pkcs7Pad(dst, src []byte) {
	n := copy(dst, src)
	pad := byte(len(dst) - n)
	for i := n; i < len(dst); i++ {
		dst[i] = pad
	}
}
