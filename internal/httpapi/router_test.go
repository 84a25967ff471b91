package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/godilite/pitch-validation/internal/engine"
	"github.com/godilite/pitch-validation/internal/models"
	"github.com/godilite/pitch-validation/internal/quickscore"
	"github.com/godilite/pitch-validation/internal/scorecache"
	"github.com/godilite/pitch-validation/internal/service"
	"github.com/godilite/pitch-validation/internal/service/mocks"
	"github.com/godilite/pitch-validation/pkg/cache"
)

const pitchJSON = `{
	"pitchId": %q,
	"title": "Northern Lights",
	"logline": "A stubborn mother must guide her family through a frozen wilderness after a blackout strands their town.",
	"synopsis": "When the storm begins, she must lead her family across the valley. However a rival fights her until the final night.",
	"genre": "Thriller",
	"budget": 20000000,
	"director": "Jane Doe",
	"cast": ["Actor A", "Actor B"]
}`

func newTestRouter(t *testing.T, opts Options) http.Handler {
	t.Helper()
	eng, err := engine.New(nil, engine.Reference{})
	require.NoError(t, err)
	svc := service.NewValidationService(scorecache.New(cache.NewMemory(100)), eng, quickscore.New(), zaptest.NewLogger(t))
	return NewRouter(svc, zaptest.NewLogger(t), opts)
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), rec.Body.String())
	}
	return rec, decoded
}

func analyze(t *testing.T, h http.Handler, pitchID string) map[string]any {
	t.Helper()
	rec, body := do(t, h, http.MethodPost, BasePath+"/analyze", fmt.Sprintf(pitchJSON, pitchID))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return body
}

func TestHealthAndMetrics(t *testing.T) {
	h := newTestRouter(t, Options{})

	rec, body := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])

	rec, _ = do(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pitchvalidation_http_requests_total")
}

func TestScoreLifecycle(t *testing.T) {
	h := newTestRouter(t, Options{})

	rec, body := do(t, h, http.MethodGet, BasePath+"/score/pitch-9", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "run analysis first")

	analyzed := analyze(t, h, "pitch-9")
	assert.Equal(t, true, analyzed["success"])
	assert.EqualValues(t, 3600, analyzed["expires_in"])

	rec, body = do(t, h, http.MethodGet, BasePath+"/score/pitch-9", "")
	require.Equal(t, http.StatusOK, rec.Code)
	score := body["score"].(map[string]any)
	assert.Equal(t, "pitch-9", score["pitchId"])
	assert.Equal(t, analyzed["score"].(map[string]any)["overallScore"], score["overallScore"])
}

func TestAnalyze_BadRequests(t *testing.T) {
	h := newTestRouter(t, Options{})

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "missing fields", body: `{"title":"Only"}`, want: "missing required field"},
		{name: "malformed json", body: `{"title":`, want: "malformed JSON"},
		{name: "empty body", body: ``, want: "empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := do(t, h, http.MethodPost, BasePath+"/analyze", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, false, body["success"])
			assert.Contains(t, body["error"], tt.want)
		})
	}
}

func TestAnalyze_ComputationFailureIs500(t *testing.T) {
	eng := &mocks.MockScoreEngine{
		ComputeFunc: func(models.Pitch, models.AnalysisOptions, time.Time) (models.ValidationScore, error) {
			return models.ValidationScore{}, errors.New("nan in weights")
		},
	}
	svc := service.NewValidationService(scorecache.New(cache.NewMemory(10)), eng, quickscore.New(), zaptest.NewLogger(t))
	h := NewRouter(svc, zaptest.NewLogger(t), Options{})

	rec, body := do(t, h, http.MethodPost, BasePath+"/analyze", fmt.Sprintf(pitchJSON, "p1"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "score computation failed", body["error"])
}

func TestUpdate(t *testing.T) {
	h := newTestRouter(t, Options{})
	analyze(t, h, "p1")

	rec, body := do(t, h, http.MethodPut, BasePath+"/update/p1", fmt.Sprintf(pitchJSON, "other"))
	require.Equal(t, http.StatusOK, rec.Code)
	score := body["score"].(map[string]any)
	assert.Equal(t, "p1", score["pitchId"])
	assert.EqualValues(t, 2, score["version"])
}

func TestRecommendationsAndComparables(t *testing.T) {
	h := newTestRouter(t, Options{})

	rec, _ := do(t, h, http.MethodGet, BasePath+"/recommendations/p1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	analyze(t, h, "p1")

	rec, body := do(t, h, http.MethodGet, BasePath+"/recommendations/p1?limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.LessOrEqual(t, len(body["recommendations"].([]any)), 2)

	rec, _ = do(t, h, http.MethodGet, BasePath+"/recommendations/p1?limit=two", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = do(t, h, http.MethodGet, BasePath+"/comparables/p1?min_similarity=-1&year_range=1990,2030&budget_range=0,1000000000", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "insights")
	assert.Contains(t, body, "comparables")

	rec, _ = do(t, h, http.MethodGet, BasePath+"/comparables/p1?budget_range=5", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestComparables_ExplicitZeroFloor(t *testing.T) {
	h := newTestRouter(t, Options{})
	analyze(t, h, "p1")

	count := func(query string) int {
		rec, body := do(t, h, http.MethodGet, BasePath+"/comparables/p1"+query, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		return len(body["comparables"].([]any))
	}

	zero := count("?min_similarity=0")
	assert.Equal(t, count("?min_similarity=-1"), zero)
	assert.GreaterOrEqual(t, zero, count(""))
	assert.Equal(t, 0, count("?min_similarity=101"))
}

func TestBenchmark(t *testing.T) {
	h := newTestRouter(t, Options{})

	rec, _ := do(t, h, http.MethodPost, BasePath+"/benchmark", `{"categories":["story"]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, h, http.MethodPost, BasePath+"/benchmark", `{"pitchId":"p1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, h, http.MethodPost, BasePath+"/benchmark", `{"pitchId":"p1","categories":["story"]}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	analyze(t, h, "p1")
	rec, body := do(t, h, http.MethodPost, BasePath+"/benchmark", `{"pitchId":"p1","categories":["story","market"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["benchmarks"], 2)
	assert.Contains(t, body, "overall_percentile")
	assert.Contains(t, body, "rating")
}

func TestRealtime(t *testing.T) {
	h := newTestRouter(t, Options{RealtimeRateLimit: 1, RealtimeRateBurst: 2})

	rec, body := do(t, h, http.MethodPost, BasePath+"/realtime", `{"pitchId":"p1","field":"title","content":"Nova"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	validation := body["validation"].(map[string]any)
	assert.GreaterOrEqual(t, validation["quickScore"].(float64), float64(70))

	rec, _ = do(t, h, http.MethodPost, BasePath+"/realtime", `{"pitchId":"p1","field":"poster","content":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = do(t, h, http.MethodPost, BasePath+"/realtime", `{"pitchId":"p1","field":"title","content":"Nova"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestRealtime_ContentTypes(t *testing.T) {
	h := newTestRouter(t, Options{})

	tests := []struct {
		name string
		body string
		code int
		want float64
	}{
		{"numeric budget", `{"field":"budget","content":5000000}`, http.StatusOK, 80},
		{"string budget", `{"field":"budget","content":"$5,000,000"}`, http.StatusOK, 80},
		{"exponent budget", `{"field":"budget","content":5e6}`, http.StatusOK, 80},
		{"null content", `{"field":"title","content":null}`, http.StatusOK, -1},
		{"boolean content", `{"field":"budget","content":true}`, http.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := do(t, h, http.MethodPost, BasePath+"/realtime", tt.body)
			require.Equal(t, tt.code, rec.Code, rec.Body.String())
			if tt.code != http.StatusOK {
				return
			}
			score := body["validation"].(map[string]any)["quickScore"].(float64)
			assert.GreaterOrEqual(t, score, float64(0))
			assert.LessOrEqual(t, score, float64(100))
			if tt.want >= 0 {
				assert.Equal(t, tt.want, score)
			}
		})
	}
}

func TestProgressAndDashboard(t *testing.T) {
	h := newTestRouter(t, Options{})

	rec, _ := do(t, h, http.MethodGet, BasePath+"/progress/p1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec, _ = do(t, h, http.MethodGet, BasePath+"/dashboard/p1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	analyze(t, h, "p1")

	rec, body := do(t, h, http.MethodGet, BasePath+"/progress/p1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	progress := body["progress"].(map[string]any)
	assert.Len(t, progress["scoreTrend"], 3)

	rec, body = do(t, h, http.MethodGet, BasePath+"/dashboard/p1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	dashboard := body["dashboard"].(map[string]any)
	assert.Len(t, dashboard["nextMilestones"], 2)
	assert.Contains(t, dashboard, "competitive_position")
}

func TestBatchAnalyze(t *testing.T) {
	h := newTestRouter(t, Options{})

	batch := func(n int) string {
		items := make([]string, n)
		for i := range items {
			items[i] = fmt.Sprintf(pitchJSON, fmt.Sprintf("b%d", i))
		}
		return `{"pitches":[` + strings.Join(items, ",") + `]}`
	}

	rec, _ := do(t, h, http.MethodPost, BasePath+"/batch-analyze", `{"pitches":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, h, http.MethodPost, BasePath+"/batch-analyze", batch(11))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body := do(t, h, http.MethodPost, BasePath+"/batch-analyze", batch(10))
	require.Equal(t, http.StatusOK, rec.Code)
	results := body["results"].([]any)
	assert.Equal(t, 10, len(results)+int(body["failed_count"].(float64)))
	assert.Contains(t, body, "summary")
}

func TestBatchAnalyze_MalformedItem(t *testing.T) {
	h := newTestRouter(t, Options{})

	payload := `{"pitches":[` +
		fmt.Sprintf(pitchJSON, "good") + `,` +
		`{"pitchId":"bad","title":"Broke","genre":"Drama","budget":"five million"}` + `,` +
		`42` +
		`]}`

	rec, body := do(t, h, http.MethodPost, BasePath+"/batch-analyze", payload)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	results := body["results"].([]any)
	require.Len(t, results, 1)
	assert.Equal(t, "good", results[0].(map[string]any)["pitchId"])

	assert.EqualValues(t, 2, body["failed_count"])
	failed := body["failed"].([]any)
	require.Len(t, failed, 2)
	first := failed[0].(map[string]any)
	assert.EqualValues(t, 1, first["index"])
	assert.Equal(t, "bad", first["pitchId"])
	assert.Contains(t, first["error"], "malformed pitch")
	assert.EqualValues(t, 2, failed[1].(map[string]any)["index"])
	assert.NotEmpty(t, failed[1].(map[string]any)["pitchId"])

	rec, _ = do(t, h, http.MethodPost, BasePath+"/batch-analyze", `{"pitches":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: title", service.ErrMissingRequiredField), http.StatusBadRequest},
		{service.ErrInvalidRequest, http.StatusBadRequest},
		{fmt.Errorf("%w: p1", service.ErrNotFound), http.StatusNotFound},
		{service.ErrComputationFailure, http.StatusInternalServerError},
		{service.ErrStorageFailure, http.StatusInternalServerError},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{context.Canceled, statusClientClosedRequest},
		{errors.New("anything"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestRequestIDHeader(t *testing.T) {
	h := newTestRouter(t, Options{})
	rec, _ := do(t, h, http.MethodGet, "/health", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
