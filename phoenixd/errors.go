package phoenixd

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	ErrInvalidURL             = errors.New("invalid url")
	ErrTransport              = errors.New("transport error")
	ErrNotFound               = errors.New("not found")
	ErrInvoiceCreationFailed  = errors.New("could not create invoice")
	ErrInvoiceLookupFailed    = errors.New("could not find invoice")
	ErrPaymentExecutionFailed = errors.New("could not execute payment")
	ErrPaymentLookupFailed    = errors.New("could not get outgoing payment")
	ErrNodeInfoFailed         = errors.New("could not get node info")
)

// Error is returned by every Client operation. Kind is one of the
// sentinels above; Err is the underlying cause, if any.
type Error struct {
	Op         string
	Kind       error
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	msg := "phoenixd " + e.Op + ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(op string, kind error, cause error) *Error {
	return &Error{Op: op, Kind: kind, Err: cause}
}

// failure builds a *Failed error carrying the response that could not be
// interpreted.
func failure(op string, kind error, res *Response, cause error) *Error {
	e := &Error{Op: op, Kind: kind, Err: cause}
	if res != nil {
		e.StatusCode = res.StatusCode
		e.Body = string(res.Body)
	}
	return e
}
