// prefix.go: Line-prefixing writer for human-readable log output.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package logging

import (
	"bytes"
	"io"
	"sync"
)

// Prefix marks every text-mode log line emitted by the tools.
const Prefix = "[urlmatrix] "

// PrefixWriter prepends a fixed prefix to every complete line written to it.
// Partial lines are held back until their newline arrives.
type PrefixWriter struct {
	mu      sync.Mutex
	prefix  []byte
	out     io.Writer
	pending bytes.Buffer
}

// NewPrefixWriter wraps out.
func NewPrefixWriter(prefix string, out io.Writer) *PrefixWriter {
	return &PrefixWriter{prefix: []byte(prefix), out: out}
}

// Write implements io.Writer.
func (w *PrefixWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending.Write(p)
	for {
		data := w.pending.Bytes()
		idx := bytes.IndexByte(data, '\n')
		if idx < 0 {
			return len(p), nil
		}
		line := make([]byte, 0, len(w.prefix)+idx+1)
		line = append(line, w.prefix...)
		line = append(line, data[:idx+1]...)
		w.pending.Next(idx + 1)
		if _, err := w.out.Write(line); err != nil {
			return 0, err
		}
	}
}
