package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/triply-cloud/poidex/internal/domain"
	"github.com/triply-cloud/poidex/internal/domain/search/request"
	"github.com/triply-cloud/poidex/internal/domain/search/result"
	"github.com/triply-cloud/poidex/internal/metrics"
)

// Service is the ranking/query engine: retrieve → encode → score → rank → paginate.
// Each Search call is an independent, stateless pipeline invocation; a failure
// at any stage discards partial results.
type Service struct {
	retriever *Retriever
	encoder   Encoder
	alpha     float64
	logger    *zap.Logger
}

// New creates the search service. alpha is the semantic weight of the fused
// score, in [0,1].
func New(retriever *Retriever, encoder Encoder, alpha float64, logger *zap.Logger) *Service {
	return &Service{retriever: retriever, encoder: encoder, alpha: alpha, logger: logger}
}

// Search runs the full ranking pipeline for a validated request.
func (s *Service) Search(ctx context.Context, req *request.Request) ([]result.Result, error) {
	results, err := s.search(ctx, req)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.SearchRequestsTotal.WithLabelValues("ok").Inc()
	metrics.SearchResultsCount.Observe(float64(len(results)))
	return results, nil
}

func (s *Service) search(ctx context.Context, req *request.Request) ([]result.Result, error) {
	candidates, err := s.retriever.Retrieve(
		ctx, req.Lat(), req.Lon(), req.Radius(), req.Categories(),
	)
	if err != nil {
		return nil, err
	}

	// Encode once per query, never per candidate.
	var queryVec []float32
	if req.HasQuery() {
		enc, err := s.encoder.Encode(ctx, req.Query())
		if err != nil {
			return nil, fmt.Errorf("encode query: %w", err)
		}
		queryVec = enc.Vector
	}

	results := make([]result.Result, 0, len(candidates))
	for _, c := range candidates {
		var similarity *float64
		if queryVec != nil {
			sim, err := domain.Cosine(queryVec, c.vector)
			if err != nil {
				return nil, fmt.Errorf("similarity for %q: %w", c.poi.ID(), err)
			}
			similarity = &sim
		}

		score := Score(s.alpha, req.Radius(), c.distance, similarity)
		results = append(results, result.New(c.poi, score, c.distance, similarity))
	}

	rank(results, req.Sort())

	s.logger.Info("search completed",
		zap.Float64("lat", req.Lat()),
		zap.Float64("lon", req.Lon()),
		zap.Float64("radius", req.Radius()),
		zap.Strings("categories", req.Categories().Slice()),
		zap.Bool("has_query", req.HasQuery()),
		zap.Int("results", len(results)),
	)

	return page(results, req.Offset(), req.Limit()), nil
}
