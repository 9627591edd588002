// configcrypt.go: Whole-blob AES-CBC encryption for flat configuration files.
//
// This is the companion of the URL matrix: it encrypts a configuration
// document with a single fixed (or hex-supplied) 16-byte key and IV, PKCS#7
// padding and base64 output. There is no fragmentation and no decoys.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package configcrypt

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/agilira/go-errors"
	"golang.org/x/crypto/argon2"
)

// KeySize is the AES-128 key size and IVSize the CBC IV size, in bytes.
const (
	KeySize = 16
	IVSize  = aes.BlockSize
)

// Argon2id parameters for DeriveKeyIV.
const (
	argonTime    = 3
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// DefaultKey and DefaultIV are the built-in material shared with the
// application decrypting the configuration.
var (
	DefaultKey = []byte{0x5A, 0x58, 0x6F, 0x31, 0x4D, 0x33, 0x55, 0x31, 0x4E, 0x47, 0x49, 0x32, 0x5A, 0x54, 0x4E, 0x6A}
	DefaultIV  = []byte{0x59, 0x57, 0x4A, 0x70, 0x5A, 0x32, 0x46, 0x70, 0x62, 0x47, 0x56, 0x69, 0x61, 0x57, 0x34, 0x75}
)

// Public standard errors, usable with errors.Is().
var (
	ErrInvalidKeySize = errors.New("configcrypt: invalid key size")
	ErrInvalidIVSize  = errors.New("configcrypt: invalid iv size")
	ErrEmptyInput     = errors.New("configcrypt: input cannot be empty")
	ErrBase64Decode   = errors.New("configcrypt: base64 decode error")
	ErrHexDecode      = errors.New("configcrypt: hex decode error")
	ErrCiphertextSize = errors.New("configcrypt: ciphertext is not a multiple of the block size")
	ErrPadding        = errors.New("configcrypt: invalid padding")
)

// Error codes for rich error handling
const (
	ErrCodeInvalidKey   = "CONFIGCRYPT_INVALID_KEY"
	ErrCodeInvalidIV    = "CONFIGCRYPT_INVALID_IV"
	ErrCodeEmptyInput   = "CONFIGCRYPT_EMPTY_INPUT"
	ErrCodeBase64Decode = "CONFIGCRYPT_BASE64_DECODE"
	ErrCodeHexDecode    = "CONFIGCRYPT_HEX_DECODE"
	ErrCodeCiphertext   = "CONFIGCRYPT_CIPHERTEXT"
	ErrCodePadding      = "CONFIGCRYPT_PADDING"
)

// Encrypt encrypts plaintext with AES-128-CBC and returns base64.
//
// Example:
//
//	encoded, err := configcrypt.Encrypt([]byte(doc), configcrypt.DefaultKey, configcrypt.DefaultIV)
func Encrypt(plaintext, key, iv []byte) (string, error) {
	if len(plaintext) == 0 {
		richErr := goerrors.New(ErrCodeEmptyInput, "no configuration text provided")
		return "", fmt.Errorf("%w: %w", ErrEmptyInput, richErr)
	}
	block, err := newBlock(key, iv)
	if err != nil {
		return "", err
	}

	pad := aes.BlockSize - len(plaintext)%aes.BlockSize
	padded := make([]byte, len(plaintext)+pad)
	copy(padded, plaintext)
	copy(padded[len(plaintext):], bytes.Repeat([]byte{byte(pad)}, pad))

	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt reverses Encrypt. Surrounding whitespace in encoded is ignored.
func Decrypt(encoded string, key, iv []byte) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		richErr := goerrors.New(ErrCodeEmptyInput, "no encrypted data provided")
		return nil, fmt.Errorf("%w: %w", ErrEmptyInput, richErr)
	}
	block, err := newBlock(key, iv)
	if err != nil {
		return nil, err
	}

	ciphertext, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		richErr := goerrors.Wrap(err, ErrCodeBase64Decode, "failed to decode base64")
		return nil, fmt.Errorf("%w: %w", ErrBase64Decode, richErr)
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		richErr := goerrors.New(ErrCodeCiphertext, fmt.Sprintf("ciphertext length %d is not a positive multiple of %d", len(ciphertext), aes.BlockSize))
		return nil, fmt.Errorf("%w: %w", ErrCiphertextSize, richErr)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)
	return unpad(plaintext)
}

// DecryptString is Decrypt returning a string.
func DecryptString(encoded string, key, iv []byte) (string, error) {
	plaintext, err := Decrypt(encoded, key, iv)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// ParseHexKey decodes a 32 hex character key or IV.
func ParseHexKey(s string) ([]byte, error) {
	key, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		richErr := goerrors.Wrap(err, ErrCodeHexDecode, "key must be a 32 character hex string")
		return nil, fmt.Errorf("%w: %w", ErrHexDecode, richErr)
	}
	if len(key) != KeySize {
		richErr := goerrors.New(ErrCodeInvalidKey, fmt.Sprintf("key must be %d bytes (got %d)", KeySize, len(key)))
		return nil, fmt.Errorf("%w: %w", ErrInvalidKeySize, richErr)
	}
	return key, nil
}

// DeriveKeyIV derives a key and an IV from a passphrase using Argon2id.
//
// Both passphrase and salt must be non-empty. The same inputs always yield the
// same key and IV, so the salt has to travel with the encrypted document.
func DeriveKeyIV(passphrase, salt []byte) (key, iv []byte, err error) {
	if len(passphrase) == 0 {
		richErr := goerrors.New(ErrCodeEmptyInput, "passphrase cannot be empty")
		return nil, nil, fmt.Errorf("%w: %w", ErrEmptyInput, richErr)
	}
	if len(salt) == 0 {
		richErr := goerrors.New(ErrCodeEmptyInput, "salt cannot be empty")
		return nil, nil, fmt.Errorf("%w: %w", ErrEmptyInput, richErr)
	}
	material := argon2.IDKey(passphrase, salt, argonTime, argonMemory, argonThreads, KeySize+IVSize)
	return material[:KeySize], material[KeySize:], nil
}

func newBlock(key, iv []byte) (cipher.Block, error) {
	if len(key) != KeySize {
		richErr := goerrors.New(ErrCodeInvalidKey, fmt.Sprintf("key must be %d bytes (got %d)", KeySize, len(key)))
		return nil, fmt.Errorf("%w: %w", ErrInvalidKeySize, richErr)
	}
	if len(iv) != IVSize {
		richErr := goerrors.New(ErrCodeInvalidIV, fmt.Sprintf("iv must be %d bytes (got %d)", IVSize, len(iv)))
		return nil, fmt.Errorf("%w: %w", ErrInvalidIVSize, richErr)
	}
	// Cannot fail once the key size is checked
	return aes.NewCipher(key)
}

func unpad(b []byte) ([]byte, error) {
	pad := int(b[len(b)-1])
	if pad == 0 || pad > aes.BlockSize || pad > len(b) {
		richErr := goerrors.New(ErrCodePadding, "padding length out of range")
		return nil, fmt.Errorf("%w: %w", ErrPadding, richErr)
	}
	for _, v := range b[len(b)-pad:] {
		if int(v) != pad {
			richErr := goerrors.New(ErrCodePadding, "inconsistent padding bytes")
			return nil, fmt.Errorf("%w: %w", ErrPadding, richErr)
		}
	}
	return b[:len(b)-pad], nil
}
