package mocks

import (
	"context"
	"errors"

	"github.com/godilite/pitch-validation/internal/models"
	"github.com/godilite/pitch-validation/internal/service"
)

// MockValidator is a mock implementation of the Validator interface for
// testing the transport layer. It uses function-based mocking for flexibility.
type MockValidator struct {
	AnalyzeFunc            func(ctx context.Context, req service.AnalyzeRequest) (service.AnalysisResult, error)
	UpdateFunc             func(ctx context.Context, pitchID string, req service.AnalyzeRequest) (service.AnalysisResult, error)
	GetScoreFunc           func(ctx context.Context, pitchID string) (service.AnalysisResult, error)
	GetRecommendationsFunc func(ctx context.Context, pitchID string, f service.RecommendationFilter) (service.RecommendationsResult, error)
	GetComparablesFunc     func(ctx context.Context, pitchID string, q service.ComparablesQuery) (service.ComparablesResult, error)
	BenchmarkFunc          func(ctx context.Context, req service.BenchmarkRequest) (service.BenchmarkReport, error)
	RealtimeFunc           func(ctx context.Context, req service.RealtimeRequest) (models.RealTimeValidation, error)
	GetProgressFunc        func(ctx context.Context, pitchID string) (models.ValidationProgress, error)
	GetDashboardFunc       func(ctx context.Context, pitchID string) (service.Dashboard, error)
	BatchAnalyzeFunc       func(ctx context.Context, pitches []models.Pitch) (service.BatchResult, error)
}

var errNotImplemented = errors.New("mock function not implemented")

func (m *MockValidator) Analyze(ctx context.Context, req service.AnalyzeRequest) (service.AnalysisResult, error) {
	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, req)
	}
	return service.AnalysisResult{}, errNotImplemented
}

func (m *MockValidator) Update(ctx context.Context, pitchID string, req service.AnalyzeRequest) (service.AnalysisResult, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, pitchID, req)
	}
	return service.AnalysisResult{}, errNotImplemented
}

func (m *MockValidator) GetScore(ctx context.Context, pitchID string) (service.AnalysisResult, error) {
	if m.GetScoreFunc != nil {
		return m.GetScoreFunc(ctx, pitchID)
	}
	return service.AnalysisResult{}, errNotImplemented
}

func (m *MockValidator) GetRecommendations(ctx context.Context, pitchID string, f service.RecommendationFilter) (service.RecommendationsResult, error) {
	if m.GetRecommendationsFunc != nil {
		return m.GetRecommendationsFunc(ctx, pitchID, f)
	}
	return service.RecommendationsResult{}, errNotImplemented
}

func (m *MockValidator) GetComparables(ctx context.Context, pitchID string, q service.ComparablesQuery) (service.ComparablesResult, error) {
	if m.GetComparablesFunc != nil {
		return m.GetComparablesFunc(ctx, pitchID, q)
	}
	return service.ComparablesResult{}, errNotImplemented
}

func (m *MockValidator) Benchmark(ctx context.Context, req service.BenchmarkRequest) (service.BenchmarkReport, error) {
	if m.BenchmarkFunc != nil {
		return m.BenchmarkFunc(ctx, req)
	}
	return service.BenchmarkReport{}, errNotImplemented
}

func (m *MockValidator) Realtime(ctx context.Context, req service.RealtimeRequest) (models.RealTimeValidation, error) {
	if m.RealtimeFunc != nil {
		return m.RealtimeFunc(ctx, req)
	}
	return models.RealTimeValidation{}, errNotImplemented
}

func (m *MockValidator) GetProgress(ctx context.Context, pitchID string) (models.ValidationProgress, error) {
	if m.GetProgressFunc != nil {
		return m.GetProgressFunc(ctx, pitchID)
	}
	return models.ValidationProgress{}, errNotImplemented
}

func (m *MockValidator) GetDashboard(ctx context.Context, pitchID string) (service.Dashboard, error) {
	if m.GetDashboardFunc != nil {
		return m.GetDashboardFunc(ctx, pitchID)
	}
	return service.Dashboard{}, errNotImplemented
}

func (m *MockValidator) BatchAnalyze(ctx context.Context, pitches []models.Pitch) (service.BatchResult, error) {
	if m.BatchAnalyzeFunc != nil {
		return m.BatchAnalyzeFunc(ctx, pitches)
	}
	return service.BatchResult{}, errNotImplemented
}
