package grpc

import (
	"context"

	"github.com/godilite/pitch-validation/internal/models"
	"github.com/godilite/pitch-validation/internal/service"
)

// Validator is the service surface the gRPC handlers need.
type Validator interface {
	Analyze(ctx context.Context, req service.AnalyzeRequest) (service.AnalysisResult, error)
	Update(ctx context.Context, pitchID string, req service.AnalyzeRequest) (service.AnalysisResult, error)
	GetScore(ctx context.Context, pitchID string) (service.AnalysisResult, error)
	GetRecommendations(ctx context.Context, pitchID string, f service.RecommendationFilter) (service.RecommendationsResult, error)
	GetComparables(ctx context.Context, pitchID string, q service.ComparablesQuery) (service.ComparablesResult, error)
	Benchmark(ctx context.Context, req service.BenchmarkRequest) (service.BenchmarkReport, error)
	Realtime(ctx context.Context, req service.RealtimeRequest) (models.RealTimeValidation, error)
	GetProgress(ctx context.Context, pitchID string) (models.ValidationProgress, error)
	GetDashboard(ctx context.Context, pitchID string) (service.Dashboard, error)
	BatchAnalyze(ctx context.Context, pitches []models.Pitch) (service.BatchResult, error)
}
