package flight

import (
	"context"

	"github.com/apache/arrow-go/v18/arrow/flight"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hugr-lab/qfilter/arrowq"
	"github.com/hugr-lab/qfilter/filter"
)

// ListFlights returns one FlightInfo per catalog table, carrying the table
// schema, its row count and a ticket for the unfiltered table.
// Criteria are ignored.
func (s *Server) ListFlights(_ *flight.Criteria, stream flight.FlightService_ListFlightsServer) error {
	ctx := stream.Context()
	logger := s.requestLogger(ctx, "ListFlights")

	tables, err := s.catalog.Tables(ctx)
	if err != nil {
		logger.Error("Failed to list tables", "error", err)
		return status.Errorf(codes.Internal, "failed to list tables: %v", err)
	}

	for _, table := range tables {
		ticket, err := EncodeTicket(table.Name(), filter.Set{}, nil)
		if err != nil {
			return status.Errorf(codes.Internal, "failed to encode ticket: %v", err)
		}
		info, err := s.flightInfo(ctx, table, &flight.FlightDescriptor{
			Type: flight.DescriptorPATH,
			Path: []string{table.Name()},
		}, ticket)
		if err != nil {
			return statusFromError(err)
		}
		if err := stream.Send(info); err != nil {
			logger.Error("Failed to send FlightInfo", "error", err)
			return status.Errorf(codes.Internal, "failed to send flight info: %v", err)
		}
	}

	logger.Debug("ListFlights completed", "tables", len(tables))
	return nil
}

// flightInfo describes a (possibly filtered) table view.
func (s *Server) flightInfo(ctx context.Context, view *arrowq.Table, desc *flight.FlightDescriptor, ticket []byte) (*flight.FlightInfo, error) {
	count, err := view.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &flight.FlightInfo{
		Schema:           flight.SerializeSchema(view.Schema(), s.allocator),
		FlightDescriptor: desc,
		Endpoint: []*flight.FlightEndpoint{
			{Ticket: &flight.Ticket{Ticket: ticket}},
		},
		TotalRecords: int64(count),
		TotalBytes:   -1,
	}, nil
}
