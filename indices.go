// indices.go: Candidate coordinate lists hiding the true fragment positions.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package urlmatrix

import (
	"math/rand/v2"
	"slices"
	"strconv"
)

// Coord addresses one cell of the matrix.
type Coord struct {
	Row int
	Col int
}

// MarshalJSON renders the coordinate as a [row, col] pair.
func (c Coord) MarshalJSON() ([]byte, error) {
	return []byte("[" + strconv.Itoa(c.Row) + "," + strconv.Itoa(c.Col) + "]"), nil
}

// isReserved reports whether c is the metadata or the verification cell of an n x n grid.
func (c Coord) isReserved(n int) bool {
	return (c.Row == 0 && c.Col == 0) || (c.Row == n-1 && c.Col == n-1)
}

// FragmentPositions returns, in row-major order, the cells available to
// fragments and decoys (every cell but the two reserved ones).
func FragmentPositions(n int) []Coord {
	positions := make([]Coord, 0, n*n)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			c := Coord{Row: row, Col: col}
			if c.isReserved(n) {
				continue
			}
			positions = append(positions, c)
		}
	}
	return positions
}

// ScrambleIndices builds one candidate list per fragment.
//
// Each list holds the fragment's true coordinate trueCoords[k] plus one or two
// distinct non-reserved coordinates drawn by rejection sampling, in shuffled
// order. When the grid has too few non-reserved cells the number of extra
// entries is reduced accordingly (a 2x2 grid always yields pairs).
func ScrambleIndices(n int, trueCoords []Coord, r *rand.Rand) [][]Coord {
	if r == nil {
		r = newRand()
	}
	available := n*n - ReservedCells

	indices := make([][]Coord, 0, len(trueCoords))
	for _, actual := range trueCoords {
		candidates := []Coord{actual}

		extra := 1 + r.IntN(2)
		if extra > available-1 {
			extra = available - 1
		}
		for i := 0; i < extra; i++ {
			c := Coord{Row: r.IntN(n), Col: r.IntN(n)}
			for c.isReserved(n) || slices.Contains(candidates, c) {
				c = Coord{Row: r.IntN(n), Col: r.IntN(n)}
			}
			candidates = append(candidates, c)
		}

		r.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
		indices = append(indices, candidates)
	}
	return indices
}
