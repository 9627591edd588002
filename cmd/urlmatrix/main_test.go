// main_test.go: Command line tests
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agilira/urlmatrix"
	"github.com/agilira/urlmatrix/configcrypt"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	for _, key := range []string{"URLMATRIX_DIMENSION", "URLMATRIX_FRAGMENTS", "URLMATRIX_NO_DECOYS", "URLMATRIX_LOG_LEVEL", "URLMATRIX_JSON_LOG"} {
		t.Setenv(key, "")
	}
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "urlmatrix "+version+"\n", out)
}

func TestEncode_Java(t *testing.T) {
	out, _, err := run(t, "", "encode", "example.com/path?x=1")
	require.NoError(t, err)
	assert.Contains(t, out, "// Matrix: 3x3, fragments: 4")
	assert.Contains(t, out, urlmatrix.MatrixDeclName)
	assert.Contains(t, out, urlmatrix.IndicesDeclName)
}

func TestEncode_JSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matrix.json")
	_, stderr, err := run(t, "", "encode", "-m", "4", "-f", "6", "--no-decoys", "--format", "json", "-o", path, "https://example.com/a/b")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Wrote 4x4 matrix (6 fragments)")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded struct {
		Matrix  [][]string `json:"matrix"`
		Version string     `json:"version"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Matrix, 4)
	assert.Equal(t, "2.0", decoded.Version)

	empty := 0
	for _, row := range decoded.Matrix {
		for _, cell := range row {
			if cell == "" {
				empty++
			}
		}
	}
	assert.Equal(t, 8, empty, "16 cells - 2 reserved - 6 fragments")
}

func TestEncode_SettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urlmatrix.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dimension: 5\nfragments: 3\n"), 0o600))

	out, _, err := run(t, "", "encode", "--config", path, "example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "// Matrix: 5x5, fragments: 3")

	// Flags win over the file
	out, _, err = run(t, "", "encode", "--config", path, "-f", "2", "example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "// Matrix: 5x5, fragments: 2")
}

func TestEncode_Errors(t *testing.T) {
	_, _, err := run(t, "", "encode", "-m", "2", "-f", "5", "example.com")
	assert.ErrorIs(t, err, urlmatrix.ErrInvalidFragmentCount)

	_, _, err = run(t, "", "encode", "--format", "xml", "example.com")
	assert.Error(t, err)

	_, _, err = run(t, "", "encode")
	assert.Error(t, err)
}

func TestConfig_RoundTrip(t *testing.T) {
	encrypted, _, err := run(t, "", "config", "encrypt", "--sample")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(encrypted))

	decrypted, _, err := run(t, encrypted, "config", "decrypt")
	require.NoError(t, err)
	assert.Equal(t, configcrypt.SampleConfig(), decrypted)
}

func TestConfig_CustomKeyFiles(t *testing.T) {
	dir := t.TempDir()
	plainPath := filepath.Join(dir, "config.xml")
	encPath := filepath.Join(dir, "config.enc")
	require.NoError(t, os.WriteFile(plainPath, []byte("<config><enabled>on</enabled></config>"), 0o600))

	const key = "00112233445566778899aabbccddeeff"
	_, _, err := run(t, "", "config", "encrypt", "-k", key, "-i", plainPath, "-o", encPath)
	require.NoError(t, err)

	out, _, err := run(t, "", "config", "decrypt", "-k", key, "-i", encPath)
	require.NoError(t, err)
	assert.Equal(t, "<config><enabled>on</enabled></config>", out)

	// The default key cannot read it
	_, _, err = run(t, "", "config", "decrypt", "-i", encPath)
	assert.Error(t, err)
}

func TestConfig_Passphrase(t *testing.T) {
	encrypted, _, err := run(t, "secret settings", "config", "encrypt", "--passphrase", "pw", "--salt", "s4lt")
	require.NoError(t, err)

	out, _, err := run(t, encrypted, "config", "decrypt", "--passphrase", "pw", "--salt", "s4lt")
	require.NoError(t, err)
	assert.Equal(t, "secret settings", out)

	_, _, err = run(t, "x", "config", "encrypt", "--passphrase", "pw")
	assert.Error(t, err, "--salt is required with --passphrase")
}

func TestConfig_BadHexKey(t *testing.T) {
	_, _, err := run(t, "data", "config", "encrypt", "-k", "xyz")
	assert.ErrorIs(t, err, configcrypt.ErrHexDecode)
}

func TestPatch(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Shield.java")
	require.NoError(t, os.WriteFile(src, []byte("class Shield {\n    // URL fragment matrix\n    private static final byte[][][][] __url_fragments = {};\n}\n"), 0o600))

	dst := filepath.Join(dir, "Patched.java")
	_, _, err := run(t, "", "patch", "--url", "https://example.com", "--file", src, "-o", dst)
	require.NoError(t, err)
	patched, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(patched), "(byte)0x68")

	original, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.NotContains(t, string(original), "(byte)0x68", "-o must leave the source untouched")

	_, stderr, err := run(t, "", "patch", "--url", "https://example.com", "--file", src)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Patched "+src)

	_, _, err = run(t, "", "patch", "--file", src)
	assert.Error(t, err, "--url is required")
}
