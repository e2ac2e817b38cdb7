package flight

import (
	"context"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/flight"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hugr-lab/qfilter/query"
)

// GetFlightInfo returns the schema, row count and ticket of a table view.
//
// A PATH descriptor names a table: [table_name].
// A CMD descriptor holds a table name and a filter query string, e.g.
// "users?age__gte=18&name__like=A%25&_order=name&_limit=10".
// The filters are validated against the table before the ticket is issued,
// so DoGet on the returned ticket does not fail on bad filters.
func (s *Server) GetFlightInfo(ctx context.Context, desc *flight.FlightDescriptor) (*flight.FlightInfo, error) {
	logger := s.requestLogger(ctx, "GetFlightInfo")

	var name string
	req := query.Request{}
	switch desc.GetType() {
	case flight.DescriptorPATH:
		path := desc.GetPath()
		if len(path) != 1 {
			return nil, status.Error(codes.InvalidArgument, "path must contain exactly 1 element: [table_name]")
		}
		name = path[0]
	case flight.DescriptorCMD:
		var rawQuery string
		name, rawQuery, _ = strings.Cut(string(desc.GetCmd()), "?")
		parsed, err := query.ParseRequest(rawQuery)
		if err != nil {
			logger.Debug("Invalid filter command", "error", err)
			return nil, statusFromError(err)
		}
		req = parsed
	default:
		return nil, status.Error(codes.InvalidArgument, "descriptor must be PATH or CMD type")
	}
	if name == "" {
		return nil, status.Error(codes.InvalidArgument, "table name cannot be empty")
	}
	logger = logger.With("table", name)

	table, err := s.catalog.Table(ctx, name)
	if err != nil {
		logger.Error("Failed to get table from catalog", "error", err)
		return nil, status.Errorf(codes.Internal, "failed to get table: %v", err)
	}
	if table == nil {
		return nil, status.Errorf(codes.NotFound, "table not found: %s", name)
	}

	ticket, err := EncodeTicket(name, req.Filters, req.Page)
	if err != nil {
		return nil, statusFromError(err)
	}
	td, err := DecodeTicket(ticket)
	if err != nil {
		return nil, statusFromError(err)
	}
	view, err := s.apply(table, td)
	if err != nil {
		logger.Debug("Filters rejected", "filters", req.Filters.String(), "error", err)
		return nil, statusFromError(err)
	}

	info, err := s.flightInfo(ctx, view, desc, ticket)
	if err != nil {
		return nil, statusFromError(err)
	}
	logger.Debug("GetFlightInfo successful",
		"filters", req.Filters.Len(),
		"total_records", info.TotalRecords,
	)
	return info, nil
}
