// configcrypt_test.go: Configuration encryption tests
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package configcrypt_test

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agilira/urlmatrix/configcrypt"
)

// TestEncrypt_KnownVector matches openssl enc -aes-128-cbc -base64 with the default key and IV
func TestEncrypt_KnownVector(t *testing.T) {
	encoded, err := configcrypt.Encrypt([]byte("hello config"), configcrypt.DefaultKey, configcrypt.DefaultIV)
	require.NoError(t, err)
	assert.Equal(t, "LPfAD33VoYC2kHJ5MEy3kg==", encoded)
}

func TestDefaultKeyMaterial(t *testing.T) {
	assert.Equal(t, "ZXo1M3U1NGI2ZTNj", string(configcrypt.DefaultKey))
	assert.Equal(t, "YWJpZ2FpbGViaW4u", string(configcrypt.DefaultIV))
}

func TestRoundTrip(t *testing.T) {
	inputs := [][]byte{
		[]byte("a"),
		[]byte("exactly 16 bytes"),
		[]byte(configcrypt.SampleConfig()),
		bytes.Repeat([]byte{0x00, 0xff}, 1000),
	}
	customKey, err := configcrypt.ParseHexKey("00112233445566778899aabbccddeeff")
	require.NoError(t, err)

	for _, key := range [][]byte{configcrypt.DefaultKey, customKey} {
		for _, in := range inputs {
			encoded, err := configcrypt.Encrypt(in, key, configcrypt.DefaultIV)
			require.NoError(t, err)
			out, err := configcrypt.Decrypt(encoded, key, configcrypt.DefaultIV)
			require.NoError(t, err)
			assert.Equal(t, in, out)
		}
	}
}

func TestDecrypt_TrimsWhitespace(t *testing.T) {
	out, err := configcrypt.DecryptString("  LPfAD33VoYC2kHJ5MEy3kg==\n", configcrypt.DefaultKey, configcrypt.DefaultIV)
	require.NoError(t, err)
	assert.Equal(t, "hello config", out)
}

func TestDecrypt_Errors(t *testing.T) {
	wrongKey := bytes.Repeat([]byte{1}, configcrypt.KeySize)
	oneBlock := base64.StdEncoding.EncodeToString(make([]byte, 16))

	tests := []struct {
		name    string
		input   string
		key     []byte
		iv      []byte
		wantErr error
	}{
		{"empty", "   ", configcrypt.DefaultKey, configcrypt.DefaultIV, configcrypt.ErrEmptyInput},
		{"bad base64", "not base64!", configcrypt.DefaultKey, configcrypt.DefaultIV, configcrypt.ErrBase64Decode},
		{"partial block", base64.StdEncoding.EncodeToString([]byte("short")), configcrypt.DefaultKey, configcrypt.DefaultIV, configcrypt.ErrCiphertextSize},
		{"wrong key size", oneBlock, []byte("short"), configcrypt.DefaultIV, configcrypt.ErrInvalidKeySize},
		{"wrong iv size", oneBlock, configcrypt.DefaultKey, []byte("iv"), configcrypt.ErrInvalidIVSize},
		{"wrong key", "LPfAD33VoYC2kHJ5MEy3kg==", wrongKey, configcrypt.DefaultIV, configcrypt.ErrPadding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := configcrypt.Decrypt(tt.input, tt.key, tt.iv)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEncrypt_Errors(t *testing.T) {
	_, err := configcrypt.Encrypt(nil, configcrypt.DefaultKey, configcrypt.DefaultIV)
	assert.ErrorIs(t, err, configcrypt.ErrEmptyInput)

	_, err = configcrypt.Encrypt([]byte("x"), make([]byte, 32), configcrypt.DefaultIV)
	assert.ErrorIs(t, err, configcrypt.ErrInvalidKeySize)
}

func TestParseHexKey(t *testing.T) {
	key, err := configcrypt.ParseHexKey(" 00112233445566778899AABBCCDDEEFF ")
	require.NoError(t, err)
	assert.Len(t, key, configcrypt.KeySize)
	assert.Equal(t, byte(0xff), key[15])

	_, err = configcrypt.ParseHexKey("zz")
	assert.ErrorIs(t, err, configcrypt.ErrHexDecode)

	_, err = configcrypt.ParseHexKey("0011")
	assert.ErrorIs(t, err, configcrypt.ErrInvalidKeySize)
}

func TestDeriveKeyIV(t *testing.T) {
	key, iv, err := configcrypt.DeriveKeyIV([]byte("passphrase"), []byte("salt-1234"))
	require.NoError(t, err)
	assert.Len(t, key, configcrypt.KeySize)
	assert.Len(t, iv, configcrypt.IVSize)
	assert.NotEqual(t, key, iv)

	key2, iv2, err := configcrypt.DeriveKeyIV([]byte("passphrase"), []byte("salt-1234"))
	require.NoError(t, err)
	assert.Equal(t, key, key2)
	assert.Equal(t, iv, iv2)

	key3, _, err := configcrypt.DeriveKeyIV([]byte("passphrase"), []byte("salt-5678"))
	require.NoError(t, err)
	assert.NotEqual(t, key, key3)

	_, _, err = configcrypt.DeriveKeyIV(nil, []byte("salt"))
	assert.ErrorIs(t, err, configcrypt.ErrEmptyInput)
	_, _, err = configcrypt.DeriveKeyIV([]byte("pw"), nil)
	assert.ErrorIs(t, err, configcrypt.ErrEmptyInput)
}

func TestSampleConfig(t *testing.T) {
	sample := configcrypt.SampleConfig()
	assert.Contains(t, sample, "<config>")
	assert.Contains(t, sample, "</config>")
}
