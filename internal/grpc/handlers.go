package grpc

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/godilite/pitch-validation/internal/models"
	"github.com/godilite/pitch-validation/internal/service"
)

const defaultGRPCTimeout = 30 * time.Second

type Handlers struct {
	validator Validator
	logger    *zap.Logger
	timeout   time.Duration
}

// NewHandlers initializes the gRPC handlers.
func NewHandlers(validator Validator, logger *zap.Logger, timeout time.Duration) *Handlers {
	if validator == nil {
		panic("nil Validator provided to NewHandlers")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = defaultGRPCTimeout
	}
	return &Handlers{
		validator: validator,
		logger:    logger.Named("grpc-handler"),
		timeout:   timeout,
	}
}

func (h *Handlers) handleError(ctx context.Context, op string, err error) error {
	switch ctx.Err() {
	case context.Canceled:
		h.logger.Warn("request canceled", zap.String("op", op))
		return status.Error(codes.Canceled, "request canceled")
	case context.DeadlineExceeded:
		h.logger.Warn("request timeout", zap.String("op", op))
		return status.Error(codes.DeadlineExceeded, "request timed out")
	}

	switch {
	case errors.Is(err, service.ErrMissingRequiredField), errors.Is(err, service.ErrInvalidRequest):
		h.logger.Debug("invalid request", zap.String("op", op), zap.Error(err))
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrNotFound):
		h.logger.Info("no cached score", zap.String("op", op))
		return status.Error(codes.NotFound, service.ErrNotFound.Error())
	case errors.Is(err, service.ErrStorageFailure):
		h.logger.Error("storage failure", zap.String("op", op), zap.Error(err))
		return status.Error(codes.Internal, "storage failure")
	case errors.Is(err, service.ErrComputationFailure):
		h.logger.Error("computation failure", zap.String("op", op), zap.Error(err))
		return status.Error(codes.Internal, "score computation failed")
	default:
		h.logger.Error("unexpected error", zap.String("op", op), zap.Error(err))
		return status.Errorf(codes.Internal, "%s failed", op)
	}
}

func toScoreResponse(res service.AnalysisResult) *ScoreResponse {
	return &ScoreResponse{
		Score:            res.Score,
		ExpiresInSeconds: int64(math.Round(res.ExpiresIn.Seconds())),
	}
}

func (h *Handlers) Analyze(ctx context.Context, req *service.AnalyzeRequest) (*ScoreResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	res, err := h.validator.Analyze(ctx, *req)
	if err != nil {
		return nil, h.handleError(ctx, "Analyze", err)
	}
	return toScoreResponse(res), nil
}

func (h *Handlers) GetScore(ctx context.Context, req *PitchRequest) (*ScoreResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	res, err := h.validator.GetScore(ctx, req.PitchID)
	if err != nil {
		return nil, h.handleError(ctx, "GetScore", err)
	}
	return toScoreResponse(res), nil
}

func (h *Handlers) Update(ctx context.Context, req *UpdateRequest) (*ScoreResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	res, err := h.validator.Update(ctx, req.PitchID, req.Pitch)
	if err != nil {
		return nil, h.handleError(ctx, "Update", err)
	}
	return toScoreResponse(res), nil
}

func (h *Handlers) GetRecommendations(ctx context.Context, req *RecommendationsRequest) (*service.RecommendationsResult, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	res, err := h.validator.GetRecommendations(ctx, req.PitchID, service.RecommendationFilter{
		Category: req.Category,
		Priority: req.Priority,
		Limit:    req.Limit,
	})
	if err != nil {
		return nil, h.handleError(ctx, "GetRecommendations", err)
	}
	return &res, nil
}

func (h *Handlers) GetComparables(ctx context.Context, req *ComparablesRequest) (*service.ComparablesResult, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	res, err := h.validator.GetComparables(ctx, req.PitchID, service.ComparablesQuery{
		Genre:         req.Genre,
		BudgetRange:   req.BudgetRange,
		YearRange:     req.YearRange,
		Limit:         req.Limit,
		MinSimilarity: req.MinSimilarity,
	})
	if err != nil {
		return nil, h.handleError(ctx, "GetComparables", err)
	}
	return &res, nil
}

func (h *Handlers) Benchmark(ctx context.Context, req *service.BenchmarkRequest) (*service.BenchmarkReport, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	res, err := h.validator.Benchmark(ctx, *req)
	if err != nil {
		return nil, h.handleError(ctx, "Benchmark", err)
	}
	return &res, nil
}

func (h *Handlers) Realtime(ctx context.Context, req *service.RealtimeRequest) (*models.RealTimeValidation, error) {
	res, err := h.validator.Realtime(ctx, *req)
	if err != nil {
		return nil, h.handleError(ctx, "Realtime", err)
	}
	return &res, nil
}

func (h *Handlers) GetProgress(ctx context.Context, req *PitchRequest) (*models.ValidationProgress, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	res, err := h.validator.GetProgress(ctx, req.PitchID)
	if err != nil {
		return nil, h.handleError(ctx, "GetProgress", err)
	}
	return &res, nil
}

func (h *Handlers) GetDashboard(ctx context.Context, req *PitchRequest) (*service.Dashboard, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	res, err := h.validator.GetDashboard(ctx, req.PitchID)
	if err != nil {
		return nil, h.handleError(ctx, "GetDashboard", err)
	}
	return &res, nil
}

func (h *Handlers) BatchAnalyze(ctx context.Context, req *BatchRequest) (*service.BatchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	res, err := h.validator.BatchAnalyze(ctx, req.Pitches)
	if err != nil {
		return nil, h.handleError(ctx, "BatchAnalyze", err)
	}
	return &res, nil
}
