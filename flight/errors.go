package flight

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hugr-lab/qfilter/filter"
	"github.com/hugr-lab/qfilter/query"
)

// invalidArgument lists the errors caused by the request rather than the server.
var invalidArgument = []error{
	ErrInvalidTicket,
	filter.ErrUnknownOperator,
	filter.ErrInvalidOperand,
	filter.ErrInvalidKey,
	query.ErrUnknownField,
	query.ErrUnsupportedType,
	query.ErrConversion,
	query.ErrPagingUnsupported,
	query.ErrInvalidRequest,
}

// statusFromError converts err to a gRPC status error.
// Status errors pass through unchanged.
func statusFromError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	for _, target := range invalidArgument {
		if errors.Is(err, target) {
			return status.Error(codes.InvalidArgument, err.Error())
		}
	}
	return status.Error(codes.Internal, err.Error())
}
