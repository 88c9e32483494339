// Package page holds the pagination request parsed from query strings and the
// paged response envelope returned by list endpoints.
package page

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultSize = 20
	MaxSize     = 100
	// MaxPage keeps Page*Size inside an int32 for any accepted size.
	MaxPage = math.MaxInt32 / MaxSize
)

type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Request is a zero-based page request.
type Request struct {
	Page      int
	Size      int
	SortBy    string
	Direction Direction
}

// Offset returns the row offset for SQL paging.
func (r Request) Offset() int {
	return r.Page * r.Size
}

// FromQuery reads page, size and sort (`field,dir`) from the query string. Unknown
// sort fields fall back to defaultSort; allowed maps the public field name to its
// column.
func FromQuery(q url.Values, defaultSort string, allowed map[string]string) Request {
	req := Request{
		Page:      0,
		Size:      DefaultSize,
		SortBy:    allowed[defaultSort],
		Direction: Asc,
	}

	if p, err := strconv.Atoi(q.Get("page")); err == nil && p >= 0 {
		req.Page = min(p, MaxPage)
	}
	if s, err := strconv.Atoi(q.Get("size")); err == nil && s > 0 {
		req.Size = s
	}
	if req.Size > MaxSize {
		req.Size = MaxSize
	}

	if sort := q.Get("sort"); sort != "" {
		parts := strings.SplitN(sort, ",", 2)
		if col, ok := allowed[strings.TrimSpace(parts[0])]; ok {
			req.SortBy = col
		}
		if len(parts) == 2 && strings.EqualFold(strings.TrimSpace(parts[1]), "desc") {
			req.Direction = Desc
		}
	}

	return req
}

// Page is the list envelope.
type Page[T any] struct {
	Content          []T   `json:"content"`
	TotalPages       int   `json:"totalPages"`
	TotalElements    int64 `json:"totalElements"`
	Number           int   `json:"number"`
	Size             int   `json:"size"`
	NumberOfElements int   `json:"numberOfElements"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
	Empty            bool  `json:"empty"`
}

// New builds a page from one slice of content and the total row count.
func New[T any](content []T, req Request, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}

	totalPages := 0
	if req.Size > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(req.Size)))
	}

	return Page[T]{
		Content:          content,
		TotalPages:       totalPages,
		TotalElements:    total,
		Number:           req.Page,
		Size:             req.Size,
		NumberOfElements: len(content),
		First:            req.Page == 0,
		Last:             req.Page+1 >= totalPages,
		Empty:            len(content) == 0,
	}
}

// Map converts page content while keeping the paging metadata.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, 0, len(p.Content))
	for _, item := range p.Content {
		out = append(out, fn(item))
	}
	return Page[U]{
		Content:          out,
		TotalPages:       p.TotalPages,
		TotalElements:    p.TotalElements,
		Number:           p.Number,
		Size:             p.Size,
		NumberOfElements: len(out),
		First:            p.First,
		Last:             p.Last,
		Empty:            len(out) == 0,
	}
}
