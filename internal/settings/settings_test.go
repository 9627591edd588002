// settings_test.go: Settings loading tests
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agilira/urlmatrix"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvDimension, EnvFragments, EnvNoDecoys, "URLMATRIX_LOG_LEVEL"} {
		t.Setenv(key, "")
	}
}

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "urlmatrix.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	s, err := Load("")
	require.NoError(t, err)
	if diff := cmp.Diff(Default(), s); diff != "" {
		t.Errorf("Load(\"\") mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, urlmatrix.DefaultConfig(), s.MatrixConfig())
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeSettings(t, `
dimension: 5
fragments: 9
noDecoys: true
output: UrlMatrix.java
format: json
`)
	s, err := Load(path)
	require.NoError(t, err)

	want := Settings{
		Dimension: 5,
		Fragments: 9,
		NoDecoys:  true,
		Output:    "UrlMatrix.java",
		Format:    FormatJSON,
		LogLevel:  "warn",
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, urlmatrix.MatrixConfig{Dimension: 5, FragmentCount: 9, Decoys: false}, s.MatrixConfig())
	require.NoError(t, s.Validate())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeSettings(t, "dimension: 5\nfragments: 9\n")
	t.Setenv(EnvDimension, "4")
	t.Setenv(EnvFragments, "6")
	t.Setenv(EnvNoDecoys, "true")
	t.Setenv("URLMATRIX_LOG_LEVEL", "debug")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Dimension)
	assert.Equal(t, 6, s.Fragments)
	assert.True(t, s.NoDecoys)
	assert.Equal(t, "debug", s.LogLevel)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeSettings(t, "dimension: [not, a, number]\n"))
	assert.Error(t, err)

	t.Setenv(EnvDimension, "three")
	_, err = Load("")
	assert.ErrorIs(t, err, ErrInvalidSettings)

	t.Setenv(EnvDimension, "")
	t.Setenv(EnvNoDecoys, "maybe")
	_, err = Load("")
	assert.ErrorIs(t, err, ErrInvalidSettings)
}

func TestValidate(t *testing.T) {
	s := Default()
	s.Format = "xml"
	assert.ErrorIs(t, s.Validate(), ErrInvalidSettings)

	s = Default()
	s.Format = "JSON"
	assert.NoError(t, s.Validate())

	s = Default()
	s.Dimension, s.Fragments = 2, 5
	assert.ErrorIs(t, s.Validate(), urlmatrix.ErrInvalidFragmentCount)
}
