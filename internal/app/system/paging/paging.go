// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/camphub/internal/app/system/normalize"
)

// DefaultLimit is the page size the public camp listing uses when the
// client does not supply one. It matches the 3x3 card grid the frontend
// renders.
const DefaultLimit = 9

// MaxLimit caps client-supplied page sizes so a single request cannot
// drag an unbounded result set out of the store.
const MaxLimit = 100

// Page holds parsed pagination parameters. Page is 1-based.
type Page struct {
	Page  int
	Limit int
}

// Skip returns the number of documents to skip for this page.
func (p Page) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// Parse extracts "page" and "limit" query parameters. Missing, zero,
// negative, or non-numeric values fall back to page 1 and DefaultLimit.
func Parse(r *http.Request) Page {
	return Page{
		Page:  parsePositive(r, "page", 1),
		Limit: min(parsePositive(r, "limit", DefaultLimit), MaxLimit),
	}
}

func parsePositive(r *http.Request, key string, def int) int {
	s := normalize.QueryParam(r.URL.Query().Get(key))
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// TotalPages returns the page count for total documents at the given
// limit: ceil(total/limit), and 0 when the collection is empty.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
