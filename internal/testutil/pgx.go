package testutil

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Result scripts what a FakeConn returns for one statement.
type Result struct {
	Fields  []pgconn.FieldDescription
	Rows    [][]any
	Tag     string
	Err     error // returned by Query
	IterErr error // surfaced by Rows.Err after iteration
}

// Column builds a field description for a column of the given type OID.
func Column(name string, oid uint32) pgconn.FieldDescription {
	return pgconn.FieldDescription{Name: name, DataTypeOID: oid}
}

// FakePool counts acquisitions and releases of its single FakeConn.
type FakePool struct {
	Conn       *FakeConn
	AcquireErr error
	Acquired   int
}

func NewFakePool(results map[string]Result) *FakePool {
	p := &FakePool{}
	p.Conn = &FakeConn{pool: p, Results: results}
	return p
}

func (p *FakePool) Acquire(ctx context.Context) (*FakeConn, error) {
	p.Acquired++
	if p.AcquireErr != nil {
		return nil, p.AcquireErr
	}
	return p.Conn, nil
}

// Released reports how many acquired connections were given back.
func (p *FakePool) Released() int {
	return p.Conn.released
}

type FakeConn struct {
	pool     *FakePool
	Results  map[string]Result
	Queries  []string
	Args     [][]any
	released int
}

func (c *FakeConn) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	c.Queries = append(c.Queries, sql)
	c.Args = append(c.Args, args)

	res, ok := c.Results[sql]
	if !ok {
		return nil, &pgconn.PgError{Severity: "ERROR", Code: "42601", Message: "unexpected statement: " + sql}
	}
	if res.Err != nil {
		return nil, res.Err
	}
	return &fakeRows{res: res, pos: -1}, nil
}

func (c *FakeConn) Release() {
	c.released++
}

// fakeRows implements pgx.Rows over a scripted Result.
type fakeRows struct {
	res    Result
	pos    int
	closed bool
	err    error
}

func (r *fakeRows) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.err = r.res.IterErr
}

func (r *fakeRows) Err() error { return r.err }

func (r *fakeRows) CommandTag() pgconn.CommandTag {
	if !r.closed || r.err != nil {
		return pgconn.CommandTag{}
	}
	return pgconn.NewCommandTag(r.res.Tag)
}

func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return r.res.Fields }

func (r *fakeRows) Next() bool {
	if r.closed {
		return false
	}
	r.pos++
	if r.pos >= len(r.res.Rows) {
		r.Close()
		return false
	}
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	return errors.New("fake rows support Values only")
}

func (r *fakeRows) Values() ([]any, error) {
	return r.res.Rows[r.pos], nil
}

func (r *fakeRows) RawValues() [][]byte { return nil }

func (r *fakeRows) Conn() *pgx.Conn { return nil }
