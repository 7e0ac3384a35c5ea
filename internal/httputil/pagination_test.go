package httputil

import (
	"net/http/httptest"
	"testing"
)

func TestParsePageLimit(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 20},
		{"explicit", "page=3&limit=50", 3, 50},
		{"limit capped", "limit=5000", 1, 100},
		{"zero page falls back", "page=0", 1, 20},
		{"negative limit falls back", "limit=-5", 1, 20},
		{"malformed falls back", "page=abc&limit=xyz", 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/favorites?"+tt.query, nil)
			page, limit := ParsePageLimit(r)
			if page != tt.wantPage || limit != tt.wantLimit {
				t.Errorf("ParsePageLimit() = (%d, %d), want (%d, %d)", page, limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	if got := Offset(1, 20); got != 0 {
		t.Errorf("Offset(1, 20) = %d, want 0", got)
	}
	if got := Offset(3, 20); got != 40 {
		t.Errorf("Offset(3, 20) = %d, want 40", got)
	}
}
