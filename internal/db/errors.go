package db

import "errors"

var (
	ErrAcquire = errors.New("acquire connection")
	ErrQuery   = errors.New("query failed")
)

// AcquireError is returned when no connection could be checked out of the
// pool: network failure, rejected credentials, or exhaustion/timeout.
type AcquireError struct {
	Err error
}

func (e *AcquireError) Error() string { return ErrAcquire.Error() + ": " + e.Err.Error() }

func (e *AcquireError) Unwrap() error { return e.Err }

func (e *AcquireError) Is(target error) bool { return target == ErrAcquire }

// QueryError is returned when a connection was obtained but the statement
// failed.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return ErrQuery.Error() + " (" + e.Query + "): " + e.Err.Error()
}

func (e *QueryError) Unwrap() error { return e.Err }

func (e *QueryError) Is(target error) bool { return target == ErrQuery }
