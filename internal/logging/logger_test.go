// logger_test.go: Logger factory tests
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogLevel(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	assert.Equal(t, "warn", GetLogLevel())

	t.Setenv(EnvLogLevel, "trace")
	assert.Equal(t, "trace", GetLogLevel())
}

func TestNewLogger_TextPrefixed(t *testing.T) {
	t.Setenv(EnvJSONLog, "")
	var buf bytes.Buffer
	logger := NewLogger("urlmatrix.test", "info", &buf)

	logger.Debug("hidden")
	logger.Info("visible", "cells", 9)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.HasPrefix(out, Prefix), out)
	assert.Contains(t, out, "visible")
	assert.Contains(t, out, "cells=9")
	assert.Equal(t, hclog.Info, logger.GetLevel())
}

func TestNewLogger_JSON(t *testing.T) {
	t.Setenv(EnvJSONLog, "1")
	var buf bytes.Buffer
	logger := NewLogger("urlmatrix.test", "debug", &buf)
	logger.Debug("structured", "dimension", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "structured", entry["@message"])
	assert.Equal(t, "urlmatrix.test", entry["@module"])
	assert.EqualValues(t, 3, entry["dimension"])
}

func TestNewLogger_LevelFromEnv(t *testing.T) {
	t.Setenv(EnvJSONLog, "")
	t.Setenv(EnvLogLevel, "error")
	var buf bytes.Buffer
	logger := NewLogger("urlmatrix.test", "", &buf)
	logger.Warn("quiet")
	assert.Empty(t, buf.String())
}

func TestPrefixWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewPrefixWriter("> ", &buf)

	n, err := w.Write([]byte("first li"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Empty(t, buf.String(), "partial lines are held back")

	_, err = w.Write([]byte("ne\nsecond\nthi"))
	require.NoError(t, err)
	assert.Equal(t, "> first line\n> second\n", buf.String())

	_, err = w.Write([]byte("rd\n"))
	require.NoError(t, err)
	assert.Equal(t, "> first line\n> second\n> third\n", buf.String())
}
