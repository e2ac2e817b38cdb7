// Package flight serves catalog tables over Arrow Flight with filter sets
// carried in tickets.
package flight

import (
	"log/slog"

	"github.com/apache/arrow-go/v18/arrow/flight"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"google.golang.org/grpc"

	"github.com/hugr-lab/qfilter/arrowq"
	"github.com/hugr-lab/qfilter/catalog"
	"github.com/hugr-lab/qfilter/query"
)

// Server implements the Flight service handlers.
// Embeds BaseFlightServer so unimplemented RPCs return Unimplemented.
type Server struct {
	flight.BaseFlightServer

	catalog   catalog.Catalog
	allocator memory.Allocator
	logger    *slog.Logger
	maxLimit  int
}

// NewServer creates a Flight server over cat. maxLimit caps paged requests;
// zero means query.MaxLimit.
func NewServer(cat catalog.Catalog, allocator memory.Allocator, logger *slog.Logger, maxLimit int) *Server {
	if allocator == nil {
		allocator = memory.DefaultAllocator
	}
	if logger == nil {
		logger = slog.Default()
	}
	if maxLimit <= 0 {
		maxLimit = query.MaxLimit
	}
	return &Server{
		catalog:   cat,
		allocator: allocator,
		logger:    logger,
		maxLimit:  maxLimit,
	}
}

// RegisterFlightServer registers the Flight service on grpcServer.
func RegisterFlightServer(grpcServer *grpc.Server, flightServer *Server) {
	flight.RegisterFlightServiceServer(grpcServer, flightServer)
}

// apply folds the ticket filters and page onto table.
func (s *Server) apply(table *arrowq.Table, td *TicketData) (*arrowq.Table, error) {
	set, err := td.FilterSet()
	if err != nil {
		return nil, err
	}
	opts := []query.Option{query.WithMaxLimit(s.maxLimit), query.WithLogger(s.logger)}
	if td.Page != nil {
		opts = append(opts, query.WithPage(*td.Page))
	}
	return query.Query(table, set, opts...)
}
