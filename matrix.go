// matrix.go: The matrix builder orchestrating fragmentation, derivation and encryption.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package urlmatrix

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	goerrors "github.com/agilira/go-errors"
	"github.com/agilira/go-timecache"
	"github.com/hashicorp/go-hclog"
)

// FormatVersion is written into the metadata and verification cells and the artifact.
const FormatVersion = "2.0"

// CellRole is the fixed purpose of a cell, decided by its position.
type CellRole int

const (
	RoleMetadata     CellRole = iota // (0,0)
	RoleVerification                 // (n-1,n-1)
	RoleFragment                     // first FragmentCount remaining cells, row-major
	RoleDecoy                        // everything else
)

func (r CellRole) String() string {
	switch r {
	case RoleMetadata:
		return "metadata"
	case RoleVerification:
		return "verification"
	case RoleFragment:
		return "fragment"
	case RoleDecoy:
		return "decoy"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Cell is one populated grid position.
type Cell struct {
	Coord
	Role CellRole

	// Fragment is the logical fragment index for RoleFragment cells, -1 otherwise.
	Fragment int

	// Method is the transform applied to the cell. It is meaningless when
	// Ciphertext is empty.
	Method Method

	// FellBack is set when Method failed and the cell holds plain base64.
	FellBack bool

	Ciphertext string
}

// MarshalJSON overrides the [row, col] encoding promoted from Coord.
func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Row        int    `json:"row"`
		Col        int    `json:"col"`
		Role       string `json:"role"`
		Fragment   int    `json:"fragment"`
		Method     string `json:"method,omitempty"`
		FellBack   bool   `json:"fell_back,omitempty"`
		Ciphertext string `json:"ciphertext"`
	}{
		Row:        c.Row,
		Col:        c.Col,
		Role:       c.Role.String(),
		Fragment:   c.Fragment,
		Method:     c.methodName(),
		FellBack:   c.FellBack,
		Ciphertext: c.Ciphertext,
	})
}

func (c Cell) methodName() string {
	if c.Ciphertext == "" {
		return ""
	}
	return c.Method.String()
}

type metadataPayload struct {
	Version   string `json:"v"`
	Timestamp int64  `json:"t"`
	Fragments int    `json:"f"`
	Checksum  string `json:"c"`
}

type verificationPayload struct {
	Hash    string `json:"h"`
	Version string `json:"v"`
}

// Builder populates matrices for a fixed configuration.
//
// A Builder owns its random source and is not safe for concurrent use; create
// one per goroutine.
type Builder struct {
	cfg    MatrixConfig
	logger hclog.Logger
	rng    *rand.Rand
	clock  func() time.Time
}

// Option customizes a Builder.
type Option func(*Builder)

// WithLogger sets the logger. Cell contents and secrets are never logged.
func WithLogger(logger hclog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithRand sets the random source used for every random choice, including
// the master secret. Intended for tests.
func WithRand(r *rand.Rand) Option {
	return func(b *Builder) {
		if r != nil {
			b.rng = r
		}
	}
}

// WithClock sets the time source of the metadata timestamp and artifact header.
func WithClock(clock func() time.Time) Option {
	return func(b *Builder) {
		if clock != nil {
			b.clock = clock
		}
	}
}

// NewBuilder validates cfg and returns a Builder.
//
// Example:
//
//	b, err := urlmatrix.NewBuilder(urlmatrix.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	artifact, err := b.Build("example.com/path?x=1")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(artifact.Render())
func NewBuilder(cfg MatrixConfig, opts ...Option) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b := &Builder{
		cfg:    cfg,
		logger: hclog.NewNullLogger(),
		clock:  timecache.CachedTime,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = newRand()
	}
	return b, nil
}

// Config returns the validated configuration.
func (b *Builder) Config() MatrixConfig {
	return b.cfg
}

// Build turns rawURL into a fully populated Artifact.
//
// A URL without an http(s) scheme is prefixed with https://. Every call uses
// a fresh master secret, so two builds of the same URL differ.
func (b *Builder) Build(rawURL string) (*Artifact, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		richErr := goerrors.New(ErrCodeEmptyURL, "a URL is required to build a matrix")
		return nil, fmt.Errorf("%w: %w", ErrEmptyURL, richErr)
	}
	url := NormalizeURL(rawURL)
	n := b.cfg.Dimension
	now := b.clock()

	master := GenerateMasterSecret(b.rng)
	fragments := Split(url, b.cfg.FragmentCount, b.rng)

	b.logger.Debug("building matrix",
		"dimension", n,
		"fragments", b.cfg.FragmentCount,
		"decoys", b.cfg.Decoys,
		"secret_fingerprint", master.Fingerprint())

	metadata, err := json.Marshal(metadataPayload{
		Version:   FormatVersion,
		Timestamp: now.Unix(),
		Fragments: b.cfg.FragmentCount,
		Checksum:  URLChecksum(url),
	})
	if err != nil {
		return nil, fmt.Errorf("urlmatrix: encoding metadata: %w", err)
	}
	verification, err := json.Marshal(verificationPayload{
		Hash:    URLHash(url),
		Version: FormatVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("urlmatrix: encoding verification: %w", err)
	}

	cells := make([][]Cell, n)
	fragmentCoords := make([]Coord, 0, len(fragments))
	fill := 0
	for row := 0; row < n; row++ {
		cells[row] = make([]Cell, n)
		for col := 0; col < n; col++ {
			cell := Cell{Coord: Coord{Row: row, Col: col}, Fragment: -1}

			var plaintext string
			switch {
			case row == 0 && col == 0:
				cell.Role, cell.Method = RoleMetadata, MethodAESBase64
				plaintext = string(metadata)
			case row == n-1 && col == n-1:
				cell.Role, cell.Method = RoleVerification, MethodAESHex
				plaintext = string(verification)
			case fill < len(fragments):
				cell.Role, cell.Fragment = RoleFragment, fill
				cell.Method = RandomMethod(b.rng)
				plaintext = fragments[fill]
				fragmentCoords = append(fragmentCoords, cell.Coord)
				fill++
			default:
				cell.Role = RoleDecoy
				fill++
				if !b.cfg.Decoys {
					cells[row][col] = cell
					continue
				}
				cell.Method = RandomMethod(b.rng)
				plaintext = GenerateDecoy(b.rng)
			}

			secret := DeriveSecret(master, row, col)
			cell.Ciphertext, cell.FellBack = EncryptCell(cell.Method, plaintext, secret.Key, secret.IV, b.rng)
			if cell.FellBack {
				b.logger.Warn("cipher method failed, cell stored as base64",
					"row", row, "col", col, "method", cell.Method.String(), "code", ErrCodeCellCipher)
			}
			b.logger.Trace("cell populated", "row", row, "col", col, "role", cell.Role.String(), "method", cell.Method.String())
			cells[row][col] = cell
		}
	}

	keyParts, ivParts := ObfuscateSecret(master, b.rng)
	indices := ScrambleIndices(n, fragmentCoords, b.rng)

	return &Artifact{
		Cells:         cells,
		KeyParts:      keyParts,
		IVParts:       ivParts,
		Indices:       indices,
		Dimension:     n,
		FragmentCount: b.cfg.FragmentCount,
		Timestamp:     now.Unix(),
		Version:       FormatVersion,
		GeneratedAt:   now,
	}, nil
}

// Build is a convenience wrapper creating a one-shot Builder for cfg.
func Build(rawURL string, cfg MatrixConfig, opts ...Option) (*Artifact, error) {
	b, err := NewBuilder(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return b.Build(rawURL)
}
