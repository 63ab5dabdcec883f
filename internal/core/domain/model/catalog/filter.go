package catalog

import "strings"

const (
	DefaultPageSize = 20
	MaxPageSize     = 200
)

// Filter narrows a catalog listing. Search matches code or name as a
// case-insensitive substring.
type Filter struct {
	Search string
	Limit  int
	Offset int
}

// Normalize trims the search term and clamps paging to sane bounds.
func (f Filter) Normalize() Filter {
	f.Search = strings.TrimSpace(f.Search)
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}
