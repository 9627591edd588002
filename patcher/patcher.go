// patcher.go: Replaces the URL fragment region of a host source file with a byte-array literal.
//
// The region starts at the Marker comment and ends at the first "};" after
// it. The replacement carries the raw UTF-8 bytes of the configuration URL,
// with no encryption, twice: a primary layer and a fallback layer.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package patcher

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	goerrors "github.com/agilira/go-errors"
)

// Marker is the comment that opens the patched region.
const Marker = "// URL fragment matrix"

// DeclName is the identifier of the generated array.
const DeclName = "__url_fragments"

const bytesPerLine = 8

var regionPattern = regexp.MustCompile(`(?s)` + regexp.QuoteMeta(Marker) + `.*?};`)

// Public standard errors, usable with errors.Is().
var (
	ErrMarkerNotFound = errors.New("patcher: marker region not found")
	ErrEmptyURL       = errors.New("patcher: url cannot be empty")
)

// Error codes for rich error handling
const (
	ErrCodeMarkerNotFound = "PATCHER_MARKER_NOT_FOUND"
	ErrCodeEmptyURL       = "PATCHER_EMPTY_URL"
	ErrCodeIO             = "PATCHER_IO"
)

// ByteArrayLiteral renders url as the replacement region:
//
//	// URL fragment matrix - generated, do not edit
//	private static final byte[][][][] __url_fragments = {
//	    // primary layer
//	    {{
//	        (byte)0x68, (byte)0x74, ...
//	    }},
//	    // fallback layer
//	    {{
//	        ...
//	    }}
//	};
func ByteArrayLiteral(url string) string {
	raw := []byte(url)
	lines := make([]string, 0, len(raw)/bytesPerLine+1)
	for start := 0; start < len(raw); start += bytesPerLine {
		end := min(start+bytesPerLine, len(raw))
		entries := make([]string, 0, end-start)
		for _, b := range raw[start:end] {
			entries = append(entries, fmt.Sprintf("(byte)0x%02X", b))
		}
		lines = append(lines, "            "+strings.Join(entries, ", "))
	}
	body := strings.Join(lines, ",\n")

	var sb strings.Builder
	sb.WriteString(Marker + " - generated, do not edit\n")
	fmt.Fprintf(&sb, "    private static final byte[][][][] %s = {\n", DeclName)
	sb.WriteString("        // primary layer\n")
	sb.WriteString("        {{\n" + body + "\n        }},\n")
	sb.WriteString("        // fallback layer\n")
	sb.WriteString("        {{\n" + body + "\n        }}\n")
	sb.WriteString("    };")
	return sb.String()
}

// Patch replaces every marker region of source with the literal for url.
func Patch(source, url string) (string, error) {
	if url == "" {
		richErr := goerrors.New(ErrCodeEmptyURL, "a URL is required")
		return "", fmt.Errorf("%w: %w", ErrEmptyURL, richErr)
	}
	if !regionPattern.MatchString(source) {
		richErr := goerrors.New(ErrCodeMarkerNotFound, fmt.Sprintf("no %q region terminated by \"};\"", Marker))
		return "", fmt.Errorf("%w: %w", ErrMarkerNotFound, richErr)
	}
	return regionPattern.ReplaceAllLiteralString(source, ByteArrayLiteral(url)), nil
}

// PatchFile patches the file at path in place.
func PatchFile(path, url string) error {
	info, err := os.Stat(path)
	if err != nil {
		return goerrors.Wrap(err, ErrCodeIO, "failed to stat source file")
	}
	source, err := os.ReadFile(path) // #nosec G304 -- path is supplied by the operator
	if err != nil {
		return goerrors.Wrap(err, ErrCodeIO, "failed to read source file")
	}
	patched, err := Patch(string(source), url)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(patched), info.Mode().Perm()); err != nil {
		return goerrors.Wrap(err, ErrCodeIO, "failed to write source file")
	}
	return nil
}
