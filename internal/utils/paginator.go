package utils

import (
	"errors"
	"strconv"
)

// Page describes one page of a paginated list. Numbers are 1-based.
type Page struct {
	Number     int
	Size       int
	Total      int64
	TotalPages int
}

// NewPage resolves the requested page (raw query value) against total items.
// Absent or non-numeric input means page 1; out-of-range numbers clamp to the
// first or last page. An empty list still has one (empty) page.
func NewPage(raw string, total int64, size int) Page {
	if size <= 0 {
		size = 1
	}
	totalPages := int((total + int64(size) - 1) / int64(size))
	if totalPages == 0 {
		totalPages = 1
	}

	number, err := strconv.Atoi(raw)
	if errors.Is(err, strconv.ErrRange) {
		// Too many digits: clamp by sign.
		if raw[0] == '-' {
			number = 1
		} else {
			number = totalPages
		}
	}
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	return Page{Number: number, Size: size, Total: total, TotalPages: totalPages}
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

func (p Page) HasPrevious() bool { return p.Number > 1 }
func (p Page) HasNext() bool     { return p.Number < p.TotalPages }
func (p Page) HasOtherPages() bool {
	return p.TotalPages > 1
}

func (p Page) PreviousNumber() int {
	if p.HasPrevious() {
		return p.Number - 1
	}
	return p.Number
}

func (p Page) NextNumber() int {
	if p.HasNext() {
		return p.Number + 1
	}
	return p.Number
}

// Slice returns the items of this page from an in-memory list.
func Slice[T any](items []T, p Page) []T {
	start := p.Offset()
	if start > len(items) {
		start = len(items)
	}
	end := start + p.Size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
