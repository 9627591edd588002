// pool.go: Zeroing buffer pools for cell plaintexts and keystreams
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package urlmatrix

import (
	"sync"
)

const (
	smallBufferSize  = 64
	mediumBufferSize = 512
	largeBufferSize  = 4 * 1024
)

var (
	// Cells hold URL fragments and JSON headers, so almost everything fits the small pool
	smallBufferPool = sync.Pool{
		New: func() interface{} {
			buf := make([]byte, smallBufferSize)
			return &buf
		},
	}

	mediumBufferPool = sync.Pool{
		New: func() interface{} {
			buf := make([]byte, mediumBufferSize)
			return &buf
		},
	}

	largeBufferPool = sync.Pool{
		New: func() interface{} {
			buf := make([]byte, largeBufferSize)
			return &buf
		},
	}
)

// getBuffer retrieves a buffer of exactly size bytes from the matching pool
func getBuffer(size int) *[]byte {
	var buf *[]byte
	switch {
	case size <= smallBufferSize:
		buf = smallBufferPool.Get().(*[]byte)
	case size <= mediumBufferSize:
		buf = mediumBufferPool.Get().(*[]byte)
	case size <= largeBufferSize:
		buf = largeBufferPool.Get().(*[]byte)
	default:
		// Oversized requests bypass the pools
		b := make([]byte, size)
		return &b
	}
	*buf = (*buf)[:size]
	return buf
}

// clearBuffer zeroes buf; unrolled by 8 for buffers past one cache line
func clearBuffer(buf []byte) {
	if len(buf) <= 64 {
		for i := range buf {
			buf[i] = 0
		}
		return
	}

	i := 0
	for i < len(buf)-7 {
		buf[i] = 0
		buf[i+1] = 0
		buf[i+2] = 0
		buf[i+3] = 0
		buf[i+4] = 0
		buf[i+5] = 0
		buf[i+6] = 0
		buf[i+7] = 0
		i += 8
	}
	for i < len(buf) {
		buf[i] = 0
		i++
	}
}

// putBuffer wipes a buffer and returns it to its pool
func putBuffer(buf *[]byte) {
	if buf == nil {
		return
	}

	if len(*buf) > 0 {
		clearBuffer(*buf)
	}

	switch cap(*buf) {
	case smallBufferSize:
		smallBufferPool.Put(buf)
	case mediumBufferSize:
		mediumBufferPool.Put(buf)
	case largeBufferSize:
		largeBufferPool.Put(buf)
		// Non-standard sizes are dropped
	}
}
