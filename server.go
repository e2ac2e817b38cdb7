package qfilter

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"google.golang.org/grpc"

	"github.com/hugr-lab/qfilter/auth"
	"github.com/hugr-lab/qfilter/flight"
)

// NewServer registers the filtering Flight service on grpcServer.
//
// Returns an error wrapping ErrInvalidConfig if config is invalid.
// Does NOT start the gRPC server: the caller controls its lifecycle.
//
//	config := qfilter.ServerConfig{Catalog: cat, Auth: qfilter.BearerAuth(check)}
//	grpcServer := grpc.NewServer(qfilter.ServerOptions(config)...)
//	if err := qfilter.NewServer(grpcServer, config); err != nil {
//	    log.Fatal(err)
//	}
//	lis, _ := net.Listen("tcp", ":50051")
//	grpcServer.Serve(lis)
func NewServer(grpcServer *grpc.Server, config ServerConfig) error {
	if err := validateConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	allocator := config.Allocator
	if allocator == nil {
		allocator = memory.DefaultAllocator
	}
	logger := newLogger(config)

	flightServer := flight.NewServer(config.Catalog, allocator, logger, config.MaxLimit)
	flight.RegisterFlightServer(grpcServer, flightServer)

	logger.Info("Flight filter server registered",
		"has_auth", config.Auth != nil,
		"max_message_size", config.MaxMessageSize,
		"max_limit", config.MaxLimit,
	)
	return nil
}

func newLogger(config ServerConfig) *slog.Logger {
	if config.Logger != nil {
		return config.Logger
	}
	if config.LogLevel != nil {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: *config.LogLevel}))
	}
	return slog.Default()
}

// validateConfig checks that required ServerConfig fields are valid.
func validateConfig(config ServerConfig) error {
	if config.Catalog == nil {
		return fmt.Errorf("catalog is required")
	}
	if config.MaxMessageSize < 0 {
		return fmt.Errorf("max message size must not be negative, got %d", config.MaxMessageSize)
	}
	if config.MaxLimit < 0 {
		return fmt.Errorf("max limit must not be negative, got %d", config.MaxLimit)
	}
	return nil
}

// ServerOptions returns gRPC server options for config: authentication
// interceptors when Auth is set and message size limits.
func ServerOptions(config ServerConfig) []grpc.ServerOption {
	var opts []grpc.ServerOption
	if config.Auth != nil {
		opts = append(opts,
			grpc.UnaryInterceptor(auth.UnaryServerInterceptor(config.Auth)),
			grpc.StreamInterceptor(auth.StreamServerInterceptor(config.Auth)),
		)
	}
	if config.MaxMessageSize > 0 {
		opts = append(opts,
			grpc.MaxRecvMsgSize(config.MaxMessageSize),
			grpc.MaxSendMsgSize(config.MaxMessageSize),
		)
	}
	return opts
}
