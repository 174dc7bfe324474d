package purpleair

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedDocument = errors.New("malformed document")
	ErrMissingResults    = errors.New("results missing or not an array")
	ErrMissingField      = errors.New("required field missing")
	ErrStatsNotString    = errors.New("stats is not a string")
	ErrMalformedStats    = errors.New("stats is not valid json")
	ErrInvalidStats      = errors.New("stats value missing or not a number")
)

// DecodeError is returned when a provider response cannot be decoded. Kind is
// one of the Err* sentinels above.
type DecodeError struct {
	Kind  error
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	msg := "decode failed"
	if e.Kind != nil {
		msg = e.Kind.Error()
	}
	if e.Field != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Field)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Err.Error())
	}
	return msg
}

func (e *DecodeError) Unwrap() []error {
	errs := []error{}
	for _, err := range []error{e.Kind, e.Err} {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// FetchError is returned when the provider could not be reached or did not
// answer with a usable body.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("request to %s failed, expected status code 200 but got %d", e.URL, e.StatusCode)
	}
	if e.Err == nil {
		return fmt.Sprintf("request to %s failed", e.URL)
	}
	return fmt.Sprintf("request to %s failed: %s", e.URL, e.Err.Error())
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func decodeError(kind error, field string, err error) error {
	return &DecodeError{Kind: kind, Field: field, Err: err}
}
