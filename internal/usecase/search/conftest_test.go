package search

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/triply-cloud/poidex/internal/catalog"
	"github.com/triply-cloud/poidex/internal/domain"
	"github.com/triply-cloud/poidex/internal/domain/category"
	"github.com/triply-cloud/poidex/internal/domain/search/request"
	"github.com/triply-cloud/poidex/internal/domain/search/sortmode"
	"github.com/triply-cloud/poidex/internal/repository/geoindex"
)

// --- Mocks ---

type mockSource struct {
	candidates []geoindex.Candidate
	err        error
	called     bool
}

func (m *mockSource) Candidates(
	_ context.Context, _, _, _ float64,
) ([]geoindex.Candidate, error) {
	m.called = true
	return m.candidates, m.err
}

type mockEncoder struct {
	vec    []float32
	err    error
	called int
}

func (m *mockEncoder) Encode(_ context.Context, _ string) (domain.EncodeResult, error) {
	m.called++
	if m.err != nil {
		return domain.EncodeResult{}, m.err
	}
	return domain.EncodeResult{Vector: m.vec}, nil
}

func mustPOI(t *testing.T, id string, cats ...string) domain.POI {
	t.Helper()
	if len(cats) == 0 {
		cats = []string{"cafe"}
	}
	poi, err := domain.NewPOI(id, "poi "+id, "", 30.5, 50.4, category.FromSlice(cats), "")
	if err != nil {
		t.Fatalf("NewPOI(%s): %v", id, err)
	}
	return poi
}

// buildCatalog registers ids with the given unit vectors.
func buildCatalog(t *testing.T, pois []domain.POI, vectors [][]float32) *catalog.Catalog {
	t.Helper()
	b := catalog.NewBuilder()
	for i, poi := range pois {
		if err := b.Add(poi, vectors[i]); err != nil {
			t.Fatalf("catalog add: %v", err)
		}
	}
	return b.Build()
}

func mustRequest(
	t *testing.T, radius float64, cats category.Set, query string,
	sort sortmode.Mode, offset, limit int,
) *request.Request {
	t.Helper()
	req, err := request.New(50.4, 30.5, radius, cats, query, sort, offset, limit)
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return &req
}

func newTestService(
	t *testing.T, source *mockSource, cat *catalog.Catalog, enc *mockEncoder, alpha float64,
) *Service {
	t.Helper()
	retriever := NewRetriever(source, cat, zap.NewNop())
	return New(retriever, enc, alpha, zap.NewNop())
}
