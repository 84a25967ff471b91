package server

import (
	"context"
	"runtime/debug"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// LoggingInterceptor logs each unary call with its duration and status code.
func LoggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()

		clientAddr := "unknown"
		if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
			clientAddr = p.Addr.String()
		}

		resp, err := handler(ctx, req)
		duration := time.Since(start)

		st, _ := status.FromError(err)
		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("client_addr", clientAddr),
			zap.Duration("duration", duration),
			zap.String("status_code", st.Code().String()),
		}
		switch st.Code() {
		case codes.OK:
			logger.Info("gRPC request completed", fields...)
		case codes.InvalidArgument, codes.NotFound, codes.Canceled:
			logger.Warn("gRPC request rejected", append(fields, zap.String("status_message", st.Message()))...)
		default:
			logger.Error("gRPC request failed", append(fields, zap.String("status_message", st.Message()))...)
		}

		return resp, err
	}
}

// RecoveryInterceptor converts a handler panic into codes.Internal.
func RecoveryInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("gRPC handler panic",
					zap.String("method", info.FullMethod),
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()))
				err = status.Error(codes.Internal, "internal error")
			}
		}()
		return handler(ctx, req)
	}
}
