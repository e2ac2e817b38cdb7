package qfilter

import (
	"errors"
	"log/slog"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hugr-lab/qfilter/auth"
	"github.com/hugr-lab/qfilter/catalog"
)

// ServerConfig contains configuration for the filtering Flight server.
type ServerConfig struct {
	// Catalog provides the tables served.
	// REQUIRED: MUST NOT be nil.
	Catalog catalog.Catalog

	// Auth validates bearer tokens.
	// OPTIONAL: If nil, all requests are allowed.
	// Only enforced on servers created with ServerOptions.
	Auth auth.Authenticator

	// Allocator for Arrow memory management.
	// OPTIONAL: Uses memory.DefaultAllocator if nil.
	Allocator memory.Allocator

	// Logger for internal logging.
	// OPTIONAL: Uses slog.Default() if nil.
	// If LogLevel is set and Logger is nil, a text logger with that level
	// writing to stderr is created.
	Logger *slog.Logger

	// LogLevel sets the logging level of the created logger.
	// OPTIONAL: Ignored when Logger is provided.
	LogLevel *slog.Level

	// MaxMessageSize sets maximum gRPC message size in bytes.
	// OPTIONAL: If 0, uses gRPC default (4MB).
	MaxMessageSize int

	// MaxLimit caps the rows of a paged request.
	// OPTIONAL: If 0, uses query.MaxLimit.
	MaxLimit int
}

// Standard errors returned by the qfilter package.
var (
	// ErrUnauthorized indicates authentication failed.
	// Return it from an Authenticator for invalid tokens.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidConfig indicates ServerConfig validation failed.
	ErrInvalidConfig = errors.New("invalid server config")
)
