package grpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/godilite/pitch-validation/internal/models"
	"github.com/godilite/pitch-validation/internal/service"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "pitchvalidation.v1.Validation"

// ValidationServer is implemented by Handlers.
type ValidationServer interface {
	Analyze(context.Context, *service.AnalyzeRequest) (*ScoreResponse, error)
	GetScore(context.Context, *PitchRequest) (*ScoreResponse, error)
	Update(context.Context, *UpdateRequest) (*ScoreResponse, error)
	GetRecommendations(context.Context, *RecommendationsRequest) (*service.RecommendationsResult, error)
	GetComparables(context.Context, *ComparablesRequest) (*service.ComparablesResult, error)
	Benchmark(context.Context, *service.BenchmarkRequest) (*service.BenchmarkReport, error)
	Realtime(context.Context, *service.RealtimeRequest) (*models.RealTimeValidation, error)
	GetProgress(context.Context, *PitchRequest) (*models.ValidationProgress, error)
	GetDashboard(context.Context, *PitchRequest) (*service.Dashboard, error)
	BatchAnalyze(context.Context, *BatchRequest) (*service.BatchResult, error)
}

func unary[Req, Resp any](name string, call func(ValidationServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(ValidationServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + name}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(*Req))
			})
		},
	}
}

// ServiceDesc describes the Validation service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ValidationServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Analyze", ValidationServer.Analyze),
		unary("GetScore", ValidationServer.GetScore),
		unary("Update", ValidationServer.Update),
		unary("GetRecommendations", ValidationServer.GetRecommendations),
		unary("GetComparables", ValidationServer.GetComparables),
		unary("Benchmark", ValidationServer.Benchmark),
		unary("Realtime", ValidationServer.Realtime),
		unary("GetProgress", ValidationServer.GetProgress),
		unary("GetDashboard", ValidationServer.GetDashboard),
		unary("BatchAnalyze", ValidationServer.BatchAnalyze),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pitchvalidation/v1/validation",
}

// RegisterValidationServer registers srv on s.
func RegisterValidationServer(s grpc.ServiceRegistrar, srv ValidationServer) {
	s.RegisterService(&ServiceDesc, srv)
}
