package chi

import (
	"encoding/json"
	"net/http"

	"github.com/triply-cloud/poidex/internal/domain"
	"github.com/triply-cloud/poidex/internal/domain/search/result"
)

// Response status values.
const (
	statusOK             = "ok"
	statusInvalidRequest = "invalid_request"
	statusNotFound       = "not_found"
	statusError          = "error"
)

type poiJSON struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Lon          float64  `json:"lon"`
	Lat          float64  `json:"lat"`
	Categories   []string `json:"categories"`
	OpeningHours string   `json:"opening_hours,omitempty"`
}

type searchResultJSON struct {
	poiJSON
	Score      float64  `json:"score"`
	Distance   float64  `json:"distance"`
	Similarity *float64 `json:"similarity,omitempty"`
}

type searchResponse struct {
	Status string             `json:"status"`
	Points []searchResultJSON `json:"points"`
}

type placeResponse struct {
	Status string  `json:"status"`
	Point  poiJSON `json:"point"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type errorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

func poiToJSON(p domain.POI) poiJSON {
	return poiJSON{
		ID:           p.ID(),
		Name:         p.Name(),
		Description:  p.Description(),
		Lon:          p.Lon(),
		Lat:          p.Lat(),
		Categories:   p.Categories().Slice(),
		OpeningHours: p.OpeningHours(),
	}
}

func resultsToJSON(results []result.Result) []searchResultJSON {
	out := make([]searchResultJSON, len(results))
	for i := range results {
		r := &results[i]
		out[i] = searchResultJSON{
			poiJSON:    poiToJSON(r.POI()),
			Score:      r.Score(),
			Distance:   r.Distance(),
			Similarity: r.Similarity(),
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, httpStatus int, status, msg string) {
	writeJSON(w, httpStatus, errorResponse{Status: status, Error: msg})
}
