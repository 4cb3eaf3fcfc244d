package service

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// The messages of these errors are returned to clients as is.
var (
	ErrValidation = errors.New("Query is required and must be a string")
	ErrForbidden  = errors.New("Dangerous operations are not allowed")
)

// ExecutionError wraps a failure to acquire a connection for, or run, a
// user query.
type ExecutionError struct {
	Err error
}

func (e *ExecutionError) Error() string { return engineMessage(e.Err) }
func (e *ExecutionError) Unwrap() error { return e.Err }

// IntrospectionError wraps a failed catalog query. The whole listing is
// discarded when one occurs.
type IntrospectionError struct {
	Err error
}

func (e *IntrospectionError) Error() string { return engineMessage(e.Err) }
func (e *IntrospectionError) Unwrap() error { return e.Err }

// engineMessage drops the "ERROR: ... (SQLSTATE ...)" decoration so the
// server's own message is what reaches the client.
func engineMessage(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Message
	}
	return err.Error()
}
