package domain

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

var (
	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidState indicates an operation was called when its precondition
	// does not hold, e.g. paging older items of an empty timeline.
	ErrInvalidState = errors.New("invalid state")

	// ErrOrderViolation indicates a sequence that is not strictly descending
	// by id.
	ErrOrderViolation = errors.New("timeline order violated")
)

// ErrorKind classifies fetch failures at the fetcher boundary.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNetwork
	KindAuth
	KindRateLimited
	KindTimeout
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindRateLimited:
		return "rate limited"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// FetchError is returned by page fetchers.
type FetchError struct {
	Kind ErrorKind
	Op   string
	Err  error

	// RetryAfter is the server-suggested wait for KindRateLimited, if known.
	RetryAfter time.Duration
}

func (e *FetchError) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError wraps err with a kind and operation name.
func NewFetchError(kind ErrorKind, op string, err error) *FetchError {
	return &FetchError{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the first FetchError in err's chain. Context
// deadlines and network timeouts count as KindTimeout; any other error is
// KindUnknown.
func KindOf(err error) ErrorKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return KindTimeout
	}
	if errors.Is(err, ErrUnauthorized) {
		return KindAuth
	}
	return KindUnknown
}

// AsFetchError normalizes err into a *FetchError, keeping an existing one.
// It returns nil for a nil err.
func AsFetchError(op string, err error) *FetchError {
	if err == nil {
		return nil
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return NewFetchError(KindOf(err), op, err)
}

// InvalidState wraps ErrInvalidState with a description of the violated
// precondition.
func InvalidState(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
}
