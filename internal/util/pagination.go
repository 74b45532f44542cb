package util

import (
	"errors"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 24
	MaxPageSize     = 100
)

var ErrInvalidDirection = errors.New("direction must be ASC or DESC")

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// Calculate converts a 0-based page into offset and limit.
func Calculate(page, size int) (offset int, limit int) {
	if page < 0 {
		page = 0
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page * size, size
}

type PageRequest struct {
	Page      int
	Size      int
	OrderBy   string
	Direction string
}

// WithDefaults fills an empty OrderBy and Direction.
func (p PageRequest) WithDefaults(orderBy, direction string) PageRequest {
	if p.OrderBy == "" {
		p.OrderBy = orderBy
	}
	if p.Direction == "" {
		p.Direction = direction
	}
	return p
}

// Desc normalizes Direction. An empty Direction means DESC; any other value
// besides ASC/DESC is rejected.
func (p PageRequest) Desc() (bool, error) {
	switch strings.ToUpper(p.Direction) {
	case "ASC":
		return false, nil
	case "DESC", "":
		return true, nil
	}
	return false, ErrInvalidDirection
}

type Page[T any] struct {
	Items []T
	Total int64
	Page  int
	Size  int
}

func (p Page[T]) TotalPages() int64 {
	if p.Size <= 0 {
		return 0
	}
	return (p.Total + int64(p.Size) - 1) / int64(p.Size)
}

func (p Page[T]) Meta() map[string]any {
	return map[string]any{
		"page":        p.Page,
		"size":        p.Size,
		"total":       p.Total,
		"total_pages": p.TotalPages(),
		"has_prev":    p.Page > 0,
		"has_next":    int64((p.Page+1)*p.Size) < p.Total,
	}
}

// MapPage converts the items of a page, keeping its counters.
func MapPage[T, U any](p Page[T], f func(T) U) Page[U] {
	out := make([]U, 0, len(p.Items))
	for _, it := range p.Items {
		out = append(out, f(it))
	}
	return Page[U]{Items: out, Total: p.Total, Page: p.Page, Size: p.Size}
}
