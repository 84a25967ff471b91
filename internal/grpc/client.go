package grpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/godilite/pitch-validation/internal/models"
	"github.com/godilite/pitch-validation/internal/service"
)

// Client calls the Validation service over an existing connection using the
// JSON codec.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) invoke(ctx context.Context, method string, in, out any, opts ...grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...)
}

func (c *Client) Analyze(ctx context.Context, in *service.AnalyzeRequest, opts ...grpc.CallOption) (*ScoreResponse, error) {
	out := new(ScoreResponse)
	if err := c.invoke(ctx, "Analyze", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetScore(ctx context.Context, in *PitchRequest, opts ...grpc.CallOption) (*ScoreResponse, error) {
	out := new(ScoreResponse)
	if err := c.invoke(ctx, "GetScore", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Update(ctx context.Context, in *UpdateRequest, opts ...grpc.CallOption) (*ScoreResponse, error) {
	out := new(ScoreResponse)
	if err := c.invoke(ctx, "Update", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetRecommendations(ctx context.Context, in *RecommendationsRequest, opts ...grpc.CallOption) (*service.RecommendationsResult, error) {
	out := new(service.RecommendationsResult)
	if err := c.invoke(ctx, "GetRecommendations", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetComparables(ctx context.Context, in *ComparablesRequest, opts ...grpc.CallOption) (*service.ComparablesResult, error) {
	out := new(service.ComparablesResult)
	if err := c.invoke(ctx, "GetComparables", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Benchmark(ctx context.Context, in *service.BenchmarkRequest, opts ...grpc.CallOption) (*service.BenchmarkReport, error) {
	out := new(service.BenchmarkReport)
	if err := c.invoke(ctx, "Benchmark", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Realtime(ctx context.Context, in *service.RealtimeRequest, opts ...grpc.CallOption) (*models.RealTimeValidation, error) {
	out := new(models.RealTimeValidation)
	if err := c.invoke(ctx, "Realtime", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProgress(ctx context.Context, in *PitchRequest, opts ...grpc.CallOption) (*models.ValidationProgress, error) {
	out := new(models.ValidationProgress)
	if err := c.invoke(ctx, "GetProgress", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetDashboard(ctx context.Context, in *PitchRequest, opts ...grpc.CallOption) (*service.Dashboard, error) {
	out := new(service.Dashboard)
	if err := c.invoke(ctx, "GetDashboard", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) BatchAnalyze(ctx context.Context, in *BatchRequest, opts ...grpc.CallOption) (*service.BatchResult, error) {
	out := new(service.BatchResult)
	if err := c.invoke(ctx, "BatchAnalyze", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
