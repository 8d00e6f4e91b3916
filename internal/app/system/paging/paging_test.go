package paging

import (
	"net/http/httptest"
	"testing"
)

func TestParse_Defaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/camps/paginated", nil)
	p := Parse(r)
	if p.Page != 1 {
		t.Errorf("Page: got %d, want 1", p.Page)
	}
	if p.Limit != DefaultLimit {
		t.Errorf("Limit: got %d, want %d", p.Limit, DefaultLimit)
	}
}

func TestParse_Explicit(t *testing.T) {
	r := httptest.NewRequest("GET", "/camps/paginated?page=2&limit=9", nil)
	p := Parse(r)
	if p.Page != 2 || p.Limit != 9 {
		t.Errorf("got page=%d limit=%d, want 2/9", p.Page, p.Limit)
	}
	if p.Skip() != 9 {
		t.Errorf("Skip: got %d, want 9", p.Skip())
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"zero", "?page=0&limit=0"},
		{"negative", "?page=-3&limit=-1"},
		{"garbage", "?page=abc&limit=xyz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/camps/paginated"+tt.query, nil)
			p := Parse(r)
			if p.Page != 1 || p.Limit != DefaultLimit {
				t.Errorf("got page=%d limit=%d, want defaults", p.Page, p.Limit)
			}
		})
	}
}

func TestParse_LimitCapped(t *testing.T) {
	r := httptest.NewRequest("GET", "/camps/paginated?limit=5000", nil)
	if p := Parse(r); p.Limit != MaxLimit {
		t.Errorf("Limit: got %d, want %d", p.Limit, MaxLimit)
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 9, 0},
		{1, 9, 1},
		{9, 9, 1},
		{10, 9, 2},
		{20, 9, 3},
		{18, 9, 2},
		{100, 0, 0},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.limit); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}
