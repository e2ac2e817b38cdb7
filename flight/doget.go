package flight

import (
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/flight"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hugr-lab/qfilter/internal/recovery"
)

// DoGet streams the rows of a table selected by the ticket filters.
//
// The handler:
//  1. Decodes the ticket (InvalidArgument on failure)
//  2. Looks up the table in the catalog (NotFound when missing)
//  3. Applies the filter set and page (InvalidArgument on unknown fields,
//     operators or unconvertible values)
//  4. Scans the filtered table under panic recovery
//  5. Streams record batches using Arrow IPC, stopping on cancellation
func (s *Server) DoGet(ticket *flight.Ticket, stream flight.FlightService_DoGetServer) error {
	ctx := stream.Context()
	logger := s.requestLogger(ctx, "DoGet")

	td, err := DecodeTicket(ticket.GetTicket())
	if err != nil {
		logger.Error("Failed to decode ticket", "error", err)
		return status.Errorf(codes.InvalidArgument, "invalid ticket: %v", err)
	}
	logger = logger.With("table", td.Table)

	table, err := s.catalog.Table(ctx, td.Table)
	if err != nil {
		logger.Error("Failed to get table from catalog", "error", err)
		return status.Errorf(codes.Internal, "failed to get table: %v", err)
	}
	if table == nil {
		return status.Errorf(codes.NotFound, "table not found: %s", td.Table)
	}

	view, err := s.apply(table, td)
	if err != nil {
		logger.Debug("Filters rejected", "error", err)
		return statusFromError(err)
	}

	reader, err := recovery.RecoverToValue(logger, "Scan", func() (array.RecordReader, error) {
		return view.Scan(ctx)
	})
	if err != nil {
		logger.Error("Table scan failed", "error", err)
		return statusFromError(err)
	}
	defer reader.Release()

	writer := flight.NewRecordWriter(stream, ipc.WithSchema(reader.Schema()), ipc.WithAllocator(s.allocator))
	defer writer.Close()

	batches := 0
	rows := int64(0)
	for reader.Next() {
		select {
		case <-ctx.Done():
			logger.Debug("DoGet cancelled by client", "batches_sent", batches, "rows_sent", rows)
			return status.Error(codes.Canceled, "request cancelled")
		default:
		}

		record := reader.Record()
		if err := writer.Write(record); err != nil {
			logger.Error("Failed to write record batch", "batch", batches+1, "error", err)
			return status.Errorf(codes.Internal, "failed to write batch %d: %v", batches+1, err)
		}
		batches++
		rows += record.NumRows()
	}
	if err := reader.Err(); err != nil {
		logger.Error("RecordReader error during iteration", "batch", batches, "error", err)
		return status.Errorf(codes.Internal, "scan error after batch %d: %v", batches, err)
	}

	logger.Debug("DoGet completed",
		"filters", view.Predicate(),
		"batches_sent", batches,
		"total_rows", rows,
	)
	return nil
}
