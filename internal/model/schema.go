package model

type TableColumn struct {
	ColumnName    string  `json:"column_name"`
	DataType      string  `json:"data_type"`
	IsNullable    string  `json:"is_nullable"` // "YES" or "NO"
	ColumnDefault *string `json:"column_default"`
}

type TableInfo struct {
	TableSchema string        `json:"table_schema"`
	TableName   string        `json:"table_name"`
	Columns     []TableColumn `json:"columns"`
}

type SchemaResult struct {
	Success bool        `json:"success"`
	Tables  []TableInfo `json:"tables"`
}
