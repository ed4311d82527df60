// Package utils holds small pagination helpers for the HTTP layer.
package utils

import "strconv"

// AtoiDefault parses s as a decimal int and returns def when s is empty or
// not a valid int. Whitespace is not trimmed.
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// ClampPage bounds a 1-based page number and a page size. A size below 1
// becomes defSize; a size above maxSize becomes maxSize.
func ClampPage(page, size, defSize, maxSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defSize
	}
	if maxSize > 0 && size > maxSize {
		size = maxSize
	}
	return page, size
}

// TotalPages returns how many pages of size rows hold total rows.
func TotalPages(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
