package service

import (
	"context"
	"database/sql"
	"log/slog"

	"querytool/internal/model"
)

const tablesQuery = `
	SELECT table_schema, table_name
	FROM information_schema.tables
	WHERE table_schema NOT IN ('pg_catalog', 'information_schema', 'pg_toast')
	  AND table_type = 'BASE TABLE'
	ORDER BY table_schema, table_name;
`

const columnsQuery = `
	SELECT column_name, data_type, is_nullable, column_default
	FROM information_schema.columns
	WHERE table_schema = $1 AND table_name = $2
	ORDER BY ordinal_position;
`

// Introspector builds the schema/table/column tree from the catalog with one
// query for the tables and one per table for its columns.
type Introspector struct {
	pool   ConnPool
	logger *slog.Logger
}

func NewIntrospector(pool ConnPool, logger *slog.Logger) *Introspector {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Introspector{pool: pool, logger: logger}
}

// ListSchema returns every user table ordered by schema then name. Any
// failed catalog query discards the whole listing.
func (i *Introspector) ListSchema(ctx context.Context) (*model.SchemaResult, error) {
	conn, err := i.pool.Conn(ctx)
	if err != nil {
		return nil, &IntrospectionError{Err: err}
	}
	defer func() { _ = conn.Close() }()

	tables, err := listTables(ctx, conn)
	if err != nil {
		return nil, &IntrospectionError{Err: err}
	}

	for idx := range tables {
		t := &tables[idx]
		columns, err := listColumns(ctx, conn, t.TableSchema, t.TableName)
		if err != nil {
			return nil, &IntrospectionError{Err: err}
		}
		t.Columns = columns
	}

	i.logger.Debug("listed schema", slog.Int("tables", len(tables)))

	return &model.SchemaResult{Success: true, Tables: tables}, nil
}

func listTables(ctx context.Context, conn *sql.Conn) ([]model.TableInfo, error) {
	rows, err := conn.QueryContext(ctx, tablesQuery)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	tables := []model.TableInfo{}
	for rows.Next() {
		var t model.TableInfo
		if err := rows.Scan(&t.TableSchema, &t.TableName); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

func listColumns(ctx context.Context, conn *sql.Conn, schema, table string) ([]model.TableColumn, error) {
	rows, err := conn.QueryContext(ctx, columnsQuery, schema, table)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	columns := []model.TableColumn{}
	for rows.Next() {
		var col model.TableColumn
		var def sql.NullString
		if err := rows.Scan(&col.ColumnName, &col.DataType, &col.IsNullable, &def); err != nil {
			return nil, err
		}
		if def.Valid {
			col.ColumnDefault = &def.String
		}
		columns = append(columns, col)
	}
	return columns, rows.Err()
}
