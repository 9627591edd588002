// fragment.go: URL fragmentation strategies.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package urlmatrix

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"unicode/utf8"
)

// SplitStrategy selects how a URL is cut into fragments.
type SplitStrategy int

const (
	// SplitByCharacters cuts the URL into near-equal contiguous slices.
	SplitByCharacters SplitStrategy = iota
	// SplitBySegments cuts along scheme, authority, path and query.
	SplitBySegments
	// SplitMixed starts from the semantic parts and grows or shrinks the list.
	SplitMixed

	strategyCount
)

func (s SplitStrategy) String() string {
	switch s {
	case SplitByCharacters:
		return "characters"
	case SplitBySegments:
		return "segments"
	case SplitMixed:
		return "mixed"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// Split cuts url into exactly count fragments with a randomly chosen strategy.
//
// The concatenation of the returned fragments, in order, is always url. When
// count <= 1 the whole URL is returned as a single fragment.
func Split(url string, count int, r *rand.Rand) []string {
	if count <= 1 {
		return []string{url}
	}
	if r == nil {
		r = newRand()
	}
	return SplitWith(SplitStrategy(r.IntN(int(strategyCount))), url, count)
}

// SplitWith cuts url into exactly count fragments using strategy.
func SplitWith(strategy SplitStrategy, url string, count int) []string {
	if count <= 1 {
		return []string{url}
	}

	var parts []string
	switch strategy {
	case SplitBySegments:
		parts = splitBySegments(url, count)
	case SplitMixed:
		parts = splitMixed(url, count)
	default:
		parts = splitByCharacters(url, count)
	}
	return fitLength(parts, count)
}

// fitLength right-pads with empty strings and truncates to n entries.
func fitLength(parts []string, n int) []string {
	for len(parts) < n {
		parts = append(parts, "")
	}
	return parts[:n]
}

func splitByCharacters(url string, count int) []string {
	chunk := utf8.RuneCountInString(url) / count
	if chunk == 0 {
		return append([]string{url}, make([]string, count-1)...)
	}

	// Cut on rune boundaries while slicing the original bytes, so invalid
	// UTF-8 survives unchanged
	chunks := make([]string, 0, count)
	start, runes := 0, 0
	for offset := range url {
		if runes > 0 && runes%chunk == 0 && len(chunks) < count-1 {
			chunks = append(chunks, url[start:offset])
			start = offset
		}
		runes++
	}
	// The last slice absorbs the remainder
	return append(chunks, url[start:])
}

// urlParts holds the semantic components of a URL; concatenated they give it back.
type urlParts struct {
	scheme    string // "https://"
	authority string // "example.com"
	path      string // "/path" without the query
	query     string // "?x=1"
}

// parseURLParts splits url textually. ok is false when there is no scheme.
func parseURLParts(url string) (p urlParts, ok bool) {
	end := strings.Index(url, "://")
	if end <= 0 {
		return urlParts{}, false
	}
	p.scheme = url[:end+3]
	rest := url[end+3:]

	slash := strings.Index(rest, "/")
	if slash < 0 {
		p.authority = rest
		return p, true
	}
	p.authority = rest[:slash]
	path := rest[slash:]
	if q := strings.Index(path, "?"); q > 0 {
		p.path, p.query = path[:q], path[q:]
	} else {
		p.path = path
	}
	return p, true
}

func splitBySegments(url string, count int) []string {
	p, ok := parseURLParts(url)
	if !ok {
		return splitByCharacters(url, count)
	}
	fullPath := p.path + p.query

	switch count {
	case 2:
		if fullPath != "" {
			return []string{p.scheme + p.authority, fullPath}
		}
		return []string{p.scheme, p.authority}
	case 3:
		return []string{p.scheme, p.authority, fullPath}
	case 4:
		if dot := strings.Index(p.authority, "."); dot >= 0 {
			host, domain := p.authority[:dot], p.authority[dot:]
			if p.query != "" {
				return []string{p.scheme, host, domain + p.path, p.query}
			}
			return []string{p.scheme, host, domain, p.path}
		}
		if fullPath == "" {
			return splitByCharacters(url, count)
		}
		if p.query != "" {
			return []string{p.scheme, p.authority, p.path, p.query}
		}
		half := runeMidpoint(p.path)
		return []string{p.scheme, p.authority, p.path[:half], p.path[half:]}
	default:
		return splitByCharacters(url, count)
	}
}

func splitMixed(url string, count int) []string {
	p, ok := parseURLParts(url)
	if !ok {
		return splitByCharacters(url, count)
	}

	parts := []string{p.scheme, p.authority}
	if p.path != "" {
		parts = append(parts, p.path)
	}
	if p.query != "" {
		parts = append(parts, p.query)
	}

	for len(parts) < count {
		longest := 0
		for i, part := range parts {
			if utf8.RuneCountInString(part) > utf8.RuneCountInString(parts[longest]) {
				longest = i
			}
		}
		if utf8.RuneCountInString(parts[longest]) <= 1 {
			parts = append(parts, "")
			continue
		}
		mid := runeMidpoint(parts[longest])
		head, tail := parts[longest][:mid], parts[longest][mid:]
		parts[longest] = head
		parts = slices.Insert(parts, longest+1, tail)
	}

	for len(parts) > count {
		best, bestLen := 0, -1
		for i := 0; i < len(parts)-1; i++ {
			combined := utf8.RuneCountInString(parts[i]) + utf8.RuneCountInString(parts[i+1])
			if bestLen < 0 || combined < bestLen {
				best, bestLen = i, combined
			}
		}
		parts[best] += parts[best+1]
		parts = slices.Delete(parts, best+1, best+2)
	}
	return parts
}

// runeMidpoint returns the byte offset of the middle rune of s.
func runeMidpoint(s string) int {
	half := utf8.RuneCountInString(s) / 2
	offset := 0
	for i := 0; i < half; i++ {
		_, size := utf8.DecodeRuneInString(s[offset:])
		offset += size
	}
	return offset
}
