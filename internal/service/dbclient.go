package service

import (
	"context"
	"database/sql"

	"querytool/internal/model"

	"github.com/jackc/pgx/v5"
)

// Pool hands out native connections for user statements. Every acquired
// Conn must be released exactly once.
type Pool interface {
	Acquire(ctx context.Context) (Conn, error)
}

// Conn is satisfied by *pgxpool.Conn.
type Conn interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Release()
}

// ConnPool hands out database/sql connections for catalog queries. Callers
// must Close every connection they receive. *sql.DB satisfies it.
type ConnPool interface {
	Conn(ctx context.Context) (*sql.Conn, error)
}

type QueryExecutor interface {
	Execute(ctx context.Context, req model.QueryRequest) (*model.QueryResult, error)
}

type SchemaIntrospector interface {
	ListSchema(ctx context.Context) (*model.SchemaResult, error)
}
