package service

import (
	"context"
	"database/sql/driver"
	"fmt"
	"log/slog"

	"querytool/helper"
	"querytool/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Executor runs ad hoc SQL typed by the user. Statements are sent verbatim
// over the simple query protocol, so multi-statement input is accepted.
type Executor struct {
	pool   Pool
	logger *slog.Logger
}

func NewExecutor(pool Pool, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Executor{pool: pool, logger: logger}
}

// Execute validates and filters req before running it exactly once on a
// dedicated connection. Invalid or dangerous queries never acquire one.
func (e *Executor) Execute(ctx context.Context, req model.QueryRequest) (*model.QueryResult, error) {
	query, ok := req.Query.(string)
	if !ok || query == "" {
		return nil, ErrValidation
	}

	if helper.IsDangerous(query) {
		e.logger.Warn("rejected dangerous query", slog.String("query", query))
		return nil, ErrForbidden
	}

	conn, err := e.pool.Acquire(ctx)
	if err != nil {
		return nil, &ExecutionError{Err: err}
	}
	defer conn.Release()

	e.logger.Debug("executing query", slog.String("query", query))

	rows, err := conn.Query(ctx, query, pgx.QueryExecModeSimpleProtocol)
	if err != nil {
		return nil, &ExecutionError{Err: err}
	}
	defer rows.Close()

	result, err := collectResult(rows)
	if err != nil {
		return nil, &ExecutionError{Err: err}
	}
	return result, nil
}

// collectResult copies the first result set into a QueryResult. Rows are
// keyed by column name; on duplicate names the rightmost column wins.
func collectResult(rows pgx.Rows) (*model.QueryResult, error) {
	descs := rows.FieldDescriptions()
	fields := make([]model.Field, len(descs))
	for i, fd := range descs {
		fields[i] = model.Field{Name: fd.Name, DataTypeID: fd.DataTypeOID}
	}

	results := []map[string]any{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}

		row := make(map[string]any, len(fields))
		for i, f := range fields {
			row[f.Name] = normalizeValue(values[i])
		}
		results = append(results, row)
	}

	// The command tag is only complete once the rows are closed.
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &model.QueryResult{
		Success:  true,
		RowCount: rowCount(rows.CommandTag()),
		Rows:     results,
		Fields:   fields,
	}, nil
}

// rowCount reports the count carried by the command tag ("SELECT 3",
// "INSERT 0 2", "UPDATE 5"), or nil for tags without one ("CREATE TABLE").
func rowCount(tag pgconn.CommandTag) *int64 {
	s := tag.String()
	if s == "" {
		return nil
	}
	if last := s[len(s)-1]; last < '0' || last > '9' {
		return nil
	}
	n := tag.RowsAffected()
	return &n
}

// normalizeValue renders decoded values the way they read in SQL: pgtype
// values through their text form and uuids in canonical notation.
func normalizeValue(v any) any {
	switch x := v.(type) {
	case [16]byte:
		return fmt.Sprintf("%x-%x-%x-%x-%x", x[0:4], x[4:6], x[6:8], x[8:10], x[10:16])
	case driver.Valuer:
		value, err := x.Value()
		if err != nil {
			return v
		}
		return value
	}
	return v
}
