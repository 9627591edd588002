// artifact.go: The assembled matrix bundle and its embeddable text rendering.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package urlmatrix

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Declaration names emitted by Render.
const (
	MatrixDeclName   = "URL_MATRIX"
	KeyPartsDeclName = "KEY_PARTS"
	IVPartsDeclName  = "IV_PARTS"
	IndicesDeclName  = "URL_FRAGMENT_INDICES"
)

const (
	headerTimeLayout = "2006-01-02 15:04:05"
	declIndent       = "        "
)

var literalEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`)

// Artifact is the immutable result of one Build.
type Artifact struct {
	Cells         [][]Cell
	KeyParts      [3]SecretPart
	IVParts       [3]SecretPart
	Indices       [][]Coord
	Dimension     int
	FragmentCount int
	Timestamp     int64
	Version       string
	GeneratedAt   time.Time
}

// Matrix returns the ciphertext grid.
func (a *Artifact) Matrix() [][]string {
	m := make([][]string, len(a.Cells))
	for i, row := range a.Cells {
		m[i] = make([]string, len(row))
		for j, cell := range row {
			m[i][j] = cell.Ciphertext
		}
	}
	return m
}

// Cell returns the cell at (row, col). It panics when out of range, like indexing.
func (a *Artifact) Cell(row, col int) Cell {
	return a.Cells[row][col]
}

// Render returns the artifact as four Java-style declarations (the ciphertext
// grid, the key parts, the IV parts and the fragment index table) preceded by
// a comment header. All string literals are escaped so the text can be spliced
// into a host source file verbatim.
func (a *Artifact) Render() string {
	var sb strings.Builder

	sb.WriteString("// Auto-generated URL matrix - do not edit\n")
	fmt.Fprintf(&sb, "// Generated: %s\n", a.GeneratedAt.Format(headerTimeLayout))
	fmt.Fprintf(&sb, "// Matrix: %dx%d, fragments: %d\n", a.Dimension, a.Dimension, a.FragmentCount)
	sb.WriteString("\n")

	sb.WriteString("// URL matrix\n")
	fmt.Fprintf(&sb, "private static final String[][] %s = new String[][] {\n", MatrixDeclName)
	matrix := a.Matrix()
	for i, row := range matrix {
		quoted := make([]string, len(row))
		for j, cell := range row {
			quoted[j] = quoteLiteral(cell)
		}
		sb.WriteString(declIndent + "{ " + strings.Join(quoted, ", ") + " }")
		writeSeparator(&sb, i, len(matrix))
	}
	sb.WriteString("};\n\n")

	sb.WriteString("// Key parts (obfuscated)\n")
	writeSecretParts(&sb, KeyPartsDeclName, a.KeyParts)
	sb.WriteString("\n")

	sb.WriteString("// IV parts (obfuscated)\n")
	writeSecretParts(&sb, IVPartsDeclName, a.IVParts)
	sb.WriteString("\n")

	sb.WriteString("// URL fragment indices (candidate positions per fragment)\n")
	fmt.Fprintf(&sb, "private static final int[][][] %s = new int[][][] {\n", IndicesDeclName)
	for i, candidates := range a.Indices {
		pairs := make([]string, len(candidates))
		for j, c := range candidates {
			pairs[j] = fmt.Sprintf("{ %d, %d }", c.Row, c.Col)
		}
		sb.WriteString(declIndent + "{ " + strings.Join(pairs, ", ") + " }")
		writeSeparator(&sb, i, len(a.Indices))
	}
	sb.WriteString("};")

	return sb.String()
}

// String implements fmt.Stringer with Render.
func (a *Artifact) String() string {
	return a.Render()
}

func writeSecretParts(sb *strings.Builder, name string, parts [3]SecretPart) {
	fmt.Fprintf(sb, "private static final Object[][] %s = new Object[][] {\n", name)
	for i, p := range parts {
		perm := make([]string, len(p.Permutation))
		for j, v := range p.Permutation {
			perm[j] = strconv.Itoa(v)
		}
		fmt.Fprintf(sb, "%s{ %s, new int[]{%s} }", declIndent, quoteLiteral(p.Scrambled), strings.Join(perm, ", "))
		writeSeparator(sb, i, len(parts))
	}
	sb.WriteString("};\n")
}

func writeSeparator(sb *strings.Builder, i, n int) {
	if i < n-1 {
		sb.WriteString(",")
	}
	sb.WriteString("\n")
}

func quoteLiteral(s string) string {
	return `"` + literalEscaper.Replace(s) + `"`
}

type artifactJSON struct {
	Matrix    [][]string  `json:"matrix"`
	KeyInfo   keyInfoJSON `json:"key_info"`
	Timestamp int64       `json:"timestamp"`
	Version   string      `json:"version"`
}

type keyInfoJSON struct {
	Key     [3]SecretPart `json:"key"`
	IV      [3]SecretPart `json:"iv"`
	Indices [][]Coord     `json:"indices"`
}

// MarshalJSON encodes the artifact as
// {"matrix", "key_info": {"key", "iv", "indices"}, "timestamp", "version"}
// for consumers that do not embed Java source.
func (a *Artifact) MarshalJSON() ([]byte, error) {
	return json.Marshal(artifactJSON{
		Matrix: a.Matrix(),
		KeyInfo: keyInfoJSON{
			Key:     a.KeyParts,
			IV:      a.IVParts,
			Indices: a.Indices,
		},
		Timestamp: a.Timestamp,
		Version:   a.Version,
	})
}
