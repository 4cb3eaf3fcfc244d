package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"querytool/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

// fakePool exposes a testutil.FakePool as a Pool.
type fakePool struct {
	*testutil.FakePool
}

func (p fakePool) Acquire(ctx context.Context) (Conn, error) {
	conn, err := p.FakePool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// countingPool records how many database/sql connections were handed out.
type countingPool struct {
	db       *sql.DB
	acquired int
	err      error
}

func (p *countingPool) Conn(ctx context.Context) (*sql.Conn, error) {
	p.acquired++
	if p.err != nil {
		return nil, p.err
	}
	return p.db.Conn(ctx)
}

func newMockPool(t *testing.T) (*countingPool, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &countingPool{db: db}, mock
}

// requireReleased fails when a connection is still checked out of the pool.
func requireReleased(t *testing.T, p *countingPool) {
	t.Helper()
	require.Zero(t, p.db.Stats().InUse, "connection was not released")
}

var errPoolExhausted = errors.New("timeout exceeded when trying to connect")
