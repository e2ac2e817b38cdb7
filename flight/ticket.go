package flight

import (
	"errors"
	"fmt"

	"github.com/hugr-lab/qfilter/filter"
	"github.com/hugr-lab/qfilter/internal/msgpack"
	"github.com/hugr-lab/qfilter/query"
)

// ErrInvalidTicket is returned for tickets that cannot be decoded.
var ErrInvalidTicket = errors.New("invalid ticket")

// TicketData is the decoded content of a Flight ticket.
// Tickets are opaque to clients: they are obtained from ListFlights or
// GetFlightInfo and passed back unchanged to DoGet.
type TicketData struct {
	// Table is the catalog table name.
	Table string `msgpack:"table"`

	// Filters is the filter set encoded with filter.Encode. Empty means unfiltered.
	Filters []byte `msgpack:"filters,omitempty"`

	// Page is the optional paging request.
	Page *query.Page `msgpack:"page,omitempty"`
}

// EncodeTicket creates a ticket for table filtered by set and paged by page.
// page may be nil.
func EncodeTicket(table string, set filter.Set, page *query.Page) ([]byte, error) {
	if table == "" {
		return nil, fmt.Errorf("%w: table name cannot be empty", ErrInvalidTicket)
	}
	filters, err := filter.Encode(set)
	if err != nil {
		return nil, fmt.Errorf("failed to encode ticket filters: %w", err)
	}
	data, err := msgpack.Encode(TicketData{Table: table, Filters: filters, Page: page})
	if err != nil {
		return nil, fmt.Errorf("failed to encode ticket: %w", err)
	}
	return data, nil
}

// DecodeTicket parses an opaque ticket.
func DecodeTicket(ticket []byte) (*TicketData, error) {
	if len(ticket) == 0 {
		return nil, fmt.Errorf("%w: ticket cannot be empty", ErrInvalidTicket)
	}
	var td TicketData
	if err := msgpack.Decode(ticket, &td); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTicket, err)
	}
	if td.Table == "" {
		return nil, fmt.Errorf("%w: decoded ticket has empty table name", ErrInvalidTicket)
	}
	return &td, nil
}

// FilterSet decodes the ticket filters, revalidating every clause.
func (td *TicketData) FilterSet() (filter.Set, error) {
	if len(td.Filters) == 0 {
		return filter.Set{}, nil
	}
	set, err := filter.Decode(td.Filters)
	if err != nil {
		return filter.Set{}, fmt.Errorf("%w: %v", ErrInvalidTicket, err)
	}
	return set, nil
}
