package search

import (
	"testing"

	"github.com/triply-cloud/poidex/internal/domain/search/result"
)

func makeResults(t *testing.T, n int) []result.Result {
	t.Helper()
	out := make([]result.Result, n)
	for i := 0; i < n; i++ {
		out[i] = result.New(mustPOI(t, string(rune('a'+i))), 1, float64(i*100), nil)
	}
	return out
}

func TestPage(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		offset  int
		limit   int
		wantLen int
		wantIDs []string
	}{
		{"all, no limit", 4, 0, 0, 4, []string{"a", "b", "c", "d"}},
		{"window", 4, 1, 2, 2, []string{"b", "c"}},
		{"tail without limit", 4, 2, 0, 2, []string{"c", "d"}},
		{"limit past end", 4, 3, 5, 1, []string{"d"}},
		{"offset at end", 4, 4, 0, 0, nil},
		{"offset beyond total", 4, 5, 2, 0, nil},
		{"empty input", 0, 0, 10, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := page(makeResults(t, tt.total), tt.offset, tt.limit)
			if len(got) != tt.wantLen {
				t.Fatalf("expected %d results, got %d", tt.wantLen, len(got))
			}
			for i, want := range tt.wantIDs {
				poi := got[i].POI()
				if poi.ID() != want {
					t.Errorf("position %d: expected %s, got %s", i, want, poi.ID())
				}
			}
		})
	}
}
