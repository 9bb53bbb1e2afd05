package service

import (
	"context"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// myErrorCodeToGRPCCode maps MyError codes to gRPC status codes.
func myErrorCodeToGRPCCode(code string) codes.Code {
	switch code {
	case ErrBadParameter:
		return codes.InvalidArgument
	case ErrNotFound:
		return codes.NotFound
	case ErrServiceUnavailable, ErrRegistryUnavailable:
		return codes.Unavailable
	case ErrInternalServerError:
		return codes.Internal
	default:
		return codes.Unknown
	}
}

// MyErrorToGRPC converts an error to a gRPC status error. MyError is mapped to the corresponding gRPC code and
// message; errors that already carry a status are returned as-is; anything else becomes codes.Internal.
func MyErrorToGRPC(err error) error {
	if err == nil {
		return nil
	}
	if myErr := ToMyError(err); myErr != nil {
		return status.Error(myErrorCodeToGRPCCode(myErr.Code), myErr.Message)
	}
	if s, ok := status.FromError(err); ok && s.Code() != codes.Unknown {
		return s.Err()
	}
	return status.Error(codes.Internal, "internal error")
}

// MyErrorToGRPCInterceptor returns a unary server interceptor that converts handler
// errors to gRPC status errors and logs all errors for diagnostics.
func MyErrorToGRPCInterceptor(logger log.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err != nil {
			if myErr := ToMyError(err); myErr != nil {
				level.Info(logger).Log(
					"msg", "gRPC handler error",
					"method", info.FullMethod,
					"error_code", myErr.Code,
					"error_message", myErr.Message,
					"error", err,
				)
			} else {
				level.Error(logger).Log(
					"msg", "gRPC handler error",
					"method", info.FullMethod,
					"err", err,
				)
			}
			err = MyErrorToGRPC(err)
		}
		return resp, err
	}
}
