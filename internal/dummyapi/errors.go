package dummyapi

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorKind int

const (
	// TransportFailure is a failure before a status was obtained, or a body
	// that could not be parsed at all.
	TransportFailure ErrorKind = iota + 1
	// RateLimited is a 429 from the server or a request refused by the
	// client side rate limiter.
	RateLimited
	// HttpFailure is any other non-2xx status.
	HttpFailure
)

func (k ErrorKind) String() string {
	switch k {
	case TransportFailure:
		return "transport_failure"
	case RateLimited:
		return "rate_limited"
	case HttpFailure:
		return "http_failure"
	default:
		return fmt.Sprintf("error_kind(%d)", int(k))
	}
}

// FetchError is the error returned by every Client call that did not
// complete with a usable 2xx response.
type FetchError struct {
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case RateLimited:
		if e.StatusCode == 0 {
			return "rate limited before sending"
		}
		return fmt.Sprintf("rate limited (%d)", e.StatusCode)
	case HttpFailure:
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	if e.Err == nil {
		return "transport failure"
	}
	return e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the FetchError in err's chain, or 0 when there
// is none.
func KindOf(err error) ErrorKind {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Kind
	}
	return 0
}

var errMalformedBody = errors.New("malformed response body: not valid JSON")

// ErrNoEmployeeData is wrapped by Envelope.Employees for envelopes that do
// not carry a list of employees.
var ErrNoEmployeeData = errors.New("no employee data")

func noEmployeeData(problems ...string) error {
	return fmt.Errorf("%w: %s", ErrNoEmployeeData, strings.Join(problems, "; "))
}
