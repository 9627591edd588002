// config.go: Matrix configuration, validation and the package error taxonomy.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package urlmatrix

import (
	"errors"
	"fmt"

	goerrors "github.com/agilira/go-errors"
)

// Default matrix parameters.
const (
	// DefaultDimension is the default grid size (3x3).
	DefaultDimension = 3

	// DefaultFragmentCount is the default number of URL fragments.
	DefaultFragmentCount = 4

	// MinDimension is the smallest grid able to hold the two reserved cells.
	MinDimension = 2

	// MaxDimension bounds the grid size. Artifacts are meant to be embedded in
	// source files, so anything larger is almost certainly a mistake.
	MaxDimension = 32

	// ReservedCells is the number of cells holding metadata and verification.
	ReservedCells = 2
)

// Public standard errors, usable with errors.Is().
var (
	// ErrInvalidConfig is the parent of every configuration error.
	ErrInvalidConfig = errors.New("urlmatrix: invalid configuration")

	// ErrInvalidDimension is returned when the dimension is outside [MinDimension, MaxDimension].
	ErrInvalidDimension = errors.New("urlmatrix: invalid matrix dimension")

	// ErrInvalidFragmentCount is returned when the fragment count does not fit the grid.
	ErrInvalidFragmentCount = errors.New("urlmatrix: invalid fragment count")

	// ErrEmptyURL is returned when Build is called without a URL.
	ErrEmptyURL = errors.New("urlmatrix: url cannot be empty")
)

// Error codes for rich error handling
const (
	ErrCodeInvalidConfig = "URLMATRIX_INVALID_CONFIG"
	ErrCodeEmptyURL      = "URLMATRIX_EMPTY_URL"
	ErrCodeCellCipher    = "URLMATRIX_CELL_CIPHER"
)

// MatrixConfig controls the shape of the generated grid.
//
// Invariant: 1 <= FragmentCount <= Dimension*Dimension - ReservedCells.
type MatrixConfig struct {
	// Dimension is the side n of the n x n grid.
	Dimension int `yaml:"dimension" json:"dimension"`

	// FragmentCount is the number of cells carrying real URL fragments.
	FragmentCount int `yaml:"fragments" json:"fragments"`

	// Decoys fills the unused cells with encrypted fake fragments when true,
	// and with empty strings otherwise.
	Decoys bool `yaml:"decoys" json:"decoys"`
}

// DefaultConfig returns a 3x3 grid with four fragments and decoys enabled.
func DefaultConfig() MatrixConfig {
	return MatrixConfig{
		Dimension:     DefaultDimension,
		FragmentCount: DefaultFragmentCount,
		Decoys:        true,
	}
}

// UsableCells returns the number of cells available for fragments and decoys.
func (c MatrixConfig) UsableCells() int {
	return c.Dimension*c.Dimension - ReservedCells
}

// Validate checks the dimension/fragment-count combination.
//
// It must be called before any cell is populated; NewBuilder does so. The
// returned error wraps ErrInvalidConfig and one of ErrInvalidDimension or
// ErrInvalidFragmentCount.
func (c MatrixConfig) Validate() error {
	if c.Dimension < MinDimension || c.Dimension > MaxDimension {
		return configError(ErrInvalidDimension,
			fmt.Sprintf("dimension must be between %d and %d (got %d)", MinDimension, MaxDimension, c.Dimension))
	}
	if c.FragmentCount < 1 {
		return configError(ErrInvalidFragmentCount,
			fmt.Sprintf("fragment count must be positive (got %d)", c.FragmentCount))
	}
	if c.FragmentCount > c.UsableCells() {
		return configError(ErrInvalidFragmentCount,
			fmt.Sprintf("fragment count %d exceeds the %d usable cells of a %dx%d matrix",
				c.FragmentCount, c.UsableCells(), c.Dimension, c.Dimension))
	}
	return nil
}

func configError(sentinel error, msg string) error {
	richErr := goerrors.New(ErrCodeInvalidConfig, msg)
	return fmt.Errorf("%w: %w: %w", ErrInvalidConfig, sentinel, richErr)
}
