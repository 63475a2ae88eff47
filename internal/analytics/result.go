package analytics

import "errors"

// ErrorKind classifies why a metric could not be produced. These are expected
// outcomes (new listings, illiquid options, short history), not faults.
type ErrorKind int

const (
	KindNoData ErrorKind = iota + 1
	KindInsufficientHistory
	KindReferenceUnavailable
	KindEmptyChain
	KindMissingFields
)

func (k ErrorKind) String() string {
	switch k {
	case KindNoData:
		return "no_data"
	case KindInsufficientHistory:
		return "insufficient_history"
	case KindReferenceUnavailable:
		return "reference_unavailable"
	case KindEmptyChain:
		return "empty_chain"
	case KindMissingFields:
		return "missing_fields"
	default:
		return "unknown"
	}
}

// Error is the tagged failure returned by every engine function.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches on kind so callers can compare against the sentinels below even
// when the message carries extra detail.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrNoHistoricalData    = &Error{Kind: KindNoData, Message: "No historical data available"}
	ErrNoOptionsData       = &Error{Kind: KindNoData, Message: "No options data available"}
	ErrNoExpirations       = &Error{Kind: KindNoData, Message: "No options expiration dates available"}
	ErrEmptyChain          = &Error{Kind: KindEmptyChain, Message: "Option chain is empty"}
	ErrMissingColumns      = &Error{Kind: KindMissingFields, Message: "Option chain is missing required columns"}
	ErrCurrentPriceMissing = &Error{Kind: KindReferenceUnavailable, Message: "Could not get current stock price"}
	ErrInsufficientHistory = &Error{Kind: KindInsufficientHistory, Message: "Insufficient price history"}
)

// Unavailable is the wire shape of an analytics Error: a normal result
// carrying the reason instead of the metrics.
type Unavailable struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// AsUnavailable reports whether err is an analytics Error and, if so, its
// result shape.
func AsUnavailable(err error) (Unavailable, bool) {
	var ae *Error
	if !errors.As(err, &ae) {
		return Unavailable{}, false
	}
	return Unavailable{Error: ae.Message, Kind: ae.Kind.String()}, true
}
