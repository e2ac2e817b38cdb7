package flight

import (
	"context"
	"log/slog"

	"google.golang.org/grpc/metadata"

	"github.com/hugr-lab/qfilter/auth"
)

// HeaderTraceID is the gRPC metadata header for a client-supplied trace identifier.
const HeaderTraceID = "qfilter-trace-id"

// requestLogger returns the server logger annotated with the RPC method,
// the caller identity and trace ID when present.
func (s *Server) requestLogger(ctx context.Context, method string) *slog.Logger {
	args := []any{"method", method}
	if identity := auth.IdentityFromContext(ctx); identity != "" {
		args = append(args, "identity", identity)
	}
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(HeaderTraceID); len(values) > 0 && values[0] != "" {
			args = append(args, "trace_id", values[0])
		}
	}
	return s.logger.With(args...)
}
