package db

import "fmt"

// Manager defines the operations the transfer engine needs from a database.
// One implementation exists per supported engine; each acquires a dedicated
// connection per operation and releases it before returning.
type Manager interface {
	Connect(cfg Config) error
	Close() error

	// CheckConnection runs a trivial liveness query. Failure is reported as
	// a (false, message) result, never as an error.
	CheckConnection() (bool, string)

	TableExists(table string) (bool, error)
	ListTables() ([]string, error)

	// TableColumns returns column names in ordinal position order. When
	// includeID is false a column literally named "id" is dropped; if no
	// such column exists this is a no-op.
	TableColumns(table string, includeID bool) ([]string, error)

	// ColumnTypes maps column names to their catalog data types.
	ColumnTypes(table string) (map[string]string, error)

	// ClearTable deletes all rows and restarts the primary key sequence at 1.
	ClearTable(table string) error

	InsertRow(table string, columns []string, values []any) error

	// FetchRows reads every row of the table in ordinal column order.
	FetchRows(table string) ([]string, [][]any, error)

	CreateTable(table Table) error
}

// NewManager returns the manager for the given engine name.
func NewManager(engine string) (Manager, error) {
	switch engine {
	case "postgres", "postgresql":
		return &PostgresManager{}, nil
	case "mysql":
		return &MySQLManager{}, nil
	default:
		return nil, fmt.Errorf("unsupported database engine: %s", engine)
	}
}
