package model

// QueryRequest carries the raw SQL typed by the user. Query stays untyped so
// that a non-string value can be rejected rather than fail decoding.
type QueryRequest struct {
	Query any `json:"query"`
}

type Field struct {
	Name       string `json:"name"`
	DataTypeID uint32 `json:"dataTypeID"`
}

// QueryResult is the success envelope of the query endpoint. RowCount is nil
// when the statement produced no result set.
type QueryResult struct {
	Success  bool             `json:"success"`
	RowCount *int64           `json:"rowCount"`
	Rows     []map[string]any `json:"rows"`
	Fields   []Field          `json:"fields"`
}
