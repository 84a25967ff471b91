package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/godilite/pitch-validation/internal/models"
	"github.com/godilite/pitch-validation/internal/service"
)

const maxBodyBytes = 1 << 20

type scoreResponse struct {
	Success   bool                   `json:"success"`
	Score     models.ValidationScore `json:"score"`
	ExpiresIn int                    `json:"expires_in"`
}

func newScoreResponse(res service.AnalysisResult) scoreResponse {
	return scoreResponse{
		Success:   true,
		Score:     res.Score,
		ExpiresIn: int(math.Round(res.ExpiresIn.Seconds())),
	}
}

func decodeBody(w http.ResponseWriter, req *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, req.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is empty", service.ErrInvalidRequest)
		}
		return fmt.Errorf("%w: malformed JSON body: %v", service.ErrInvalidRequest, err)
	}
	return nil
}

// POST /analyze
func (rt *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body service.AnalyzeRequest
	if err := decodeBody(w, req, &body); err != nil {
		return err
	}
	res, err := rt.svc.Analyze(req.Context(), body)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, newScoreResponse(res))
	return nil
}

// GET /score/{pitchId}
func (rt *Router) handleScore(w http.ResponseWriter, req *http.Request) error {
	res, err := rt.svc.GetScore(req.Context(), chi.URLParam(req, "pitchId"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, newScoreResponse(res))
	return nil
}

// PUT /update/{pitchId}
func (rt *Router) handleUpdate(w http.ResponseWriter, req *http.Request) error {
	var body service.AnalyzeRequest
	if err := decodeBody(w, req, &body); err != nil {
		return err
	}
	res, err := rt.svc.Update(req.Context(), chi.URLParam(req, "pitchId"), body)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, newScoreResponse(res))
	return nil
}

// GET /recommendations/{pitchId}?category=&priority=&limit=
func (rt *Router) handleRecommendations(w http.ResponseWriter, req *http.Request) error {
	q := req.URL.Query()
	limit, err := intParam(q.Get("limit"), "limit")
	if err != nil {
		return err
	}
	res, err := rt.svc.GetRecommendations(req.Context(), chi.URLParam(req, "pitchId"), service.RecommendationFilter{
		Category: q.Get("category"),
		Priority: q.Get("priority"),
		Limit:    limit,
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		service.RecommendationsResult
	}{true, res})
	return nil
}

// GET /comparables/{pitchId}?genre=&budget_range=min,max&year_range=min,max&limit=&min_similarity=
func (rt *Router) handleComparables(w http.ResponseWriter, req *http.Request) error {
	q := req.URL.Query()
	query := service.ComparablesQuery{Genre: q.Get("genre")}

	var err error
	if query.BudgetRange, err = rangeParam(q.Get("budget_range"), "budget_range"); err != nil {
		return err
	}
	if query.YearRange, err = rangeParam(q.Get("year_range"), "year_range"); err != nil {
		return err
	}
	if query.Limit, err = intParam(q.Get("limit"), "limit"); err != nil {
		return err
	}
	if raw := q.Get("min_similarity"); raw != "" {
		floor, err := intParam(raw, "min_similarity")
		if err != nil {
			return err
		}
		query.MinSimilarity = &floor
	}

	res, err := rt.svc.GetComparables(req.Context(), chi.URLParam(req, "pitchId"), query)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		service.ComparablesResult
	}{true, res})
	return nil
}

// POST /benchmark
func (rt *Router) handleBenchmark(w http.ResponseWriter, req *http.Request) error {
	var body service.BenchmarkRequest
	if err := decodeBody(w, req, &body); err != nil {
		return err
	}
	res, err := rt.svc.Benchmark(req.Context(), body)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		service.BenchmarkReport
	}{true, res})
	return nil
}

// POST /realtime
func (rt *Router) handleRealtime(w http.ResponseWriter, req *http.Request) error {
	var body service.RealtimeRequest
	if err := decodeBody(w, req, &body); err != nil {
		return err
	}
	res, err := rt.svc.Realtime(req.Context(), body)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, struct {
		Success    bool                      `json:"success"`
		Validation models.RealTimeValidation `json:"validation"`
	}{true, res})
	return nil
}

// GET /progress/{pitchId}
func (rt *Router) handleProgress(w http.ResponseWriter, req *http.Request) error {
	res, err := rt.svc.GetProgress(req.Context(), chi.URLParam(req, "pitchId"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, struct {
		Success  bool                      `json:"success"`
		Progress models.ValidationProgress `json:"progress"`
	}{true, res})
	return nil
}

// GET /dashboard/{pitchId}
func (rt *Router) handleDashboard(w http.ResponseWriter, req *http.Request) error {
	res, err := rt.svc.GetDashboard(req.Context(), chi.URLParam(req, "pitchId"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, struct {
		Success   bool              `json:"success"`
		Dashboard service.Dashboard `json:"dashboard"`
	}{true, res})
	return nil
}

// POST /batch-analyze
// Body: {"pitches": [...]}. Pitches are decoded one by one by the service so
// a malformed entry is reported as a failed item.
func (rt *Router) handleBatch(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Pitches []json.RawMessage `json:"pitches"`
	}
	if err := decodeBody(w, req, &body); err != nil {
		return err
	}
	res, err := rt.svc.BatchAnalyzeJSON(req.Context(), body.Pitches)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		service.BatchResult
	}{true, res})
	return nil
}

func intParam(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", service.ErrInvalidRequest, name)
	}
	return v, nil
}

// rangeParam parses "min,max". An empty value disables the filter.
func rangeParam(raw, name string) (*service.Range, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: %s must be min,max", service.ErrInvalidRequest, name)
	}
	lo, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	hi, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return nil, fmt.Errorf("%w: %s must be numeric min,max", service.ErrInvalidRequest, name)
	}
	return &service.Range{Min: lo, Max: hi}, nil
}
