// Package urlmatrix turns a single URL into an obfuscated, non-linear matrix of
// independently encrypted cells that a cooperating decoder can reassemble.
//
// The package offers:
//   - URL fragmentation by characters, by semantic parts, or a mix of both
//   - Per-cell key/IV derivation from a random master secret and coordinates
//   - A pool of five cell transforms (AES-CBC base64/hex, XOR, reversed base64, substitution)
//   - Decoy fragments that dilute the real ones among noise
//   - Shuffled candidate index tables hiding the true fragment positions
//   - Split-and-permute obfuscation of the master key and IV
//   - Rendering of the result as embeddable Java-style declarations or JSON
//
// It does not decode matrices and makes no claim of cryptographic strength
// against an adversary holding this source: the goal is to raise the cost of
// casual static and dynamic analysis.
//
// # Quick Start
//
//	artifact, err := urlmatrix.Build("example.com/path?x=1", urlmatrix.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(artifact.Render())
//
// # Layout
//
// For an n x n matrix with f fragments:
//   - (0,0) holds {"v","t","f","c"} metadata encrypted with MethodAESBase64
//   - (n-1,n-1) holds {"h","v"} verification encrypted with MethodAESHex
//   - the first f other cells in row-major order hold fragments 0..f-1, each
//     with a random method
//   - the remaining cells hold decoys (or empty strings when decoys are off)
//
// Every cell uses its own key and IV:
//
//	secret := urlmatrix.DeriveSecret(master, row, col)
//
// # Error Handling
//
// Configuration errors are returned before any cell is populated and wrap
// ErrInvalidConfig:
//
//	_, err := urlmatrix.NewBuilder(urlmatrix.MatrixConfig{Dimension: 2, FragmentCount: 5})
//	if errors.Is(err, urlmatrix.ErrInvalidFragmentCount) {
//		// n*n - 2 < f
//	}
//
// Per-cell cipher failures never surface: the cell falls back to plain base64
// and the event is logged at WARN. Rich error details come from
// github.com/agilira/go-errors.
//
// # Logging
//
// Builders log through github.com/hashicorp/go-hclog; pass WithLogger to see
// per-build DEBUG and per-cell TRACE events. Secrets and cell plaintexts are
// never logged, only a fingerprint of the master secret.
//
// Copyright (c) 2025 AGILira
// Series: an AGLIra library
// SPDX-License-Identifier: MPL-2.0
package urlmatrix
