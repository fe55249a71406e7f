package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLManager handles MySQL database operations
type MySQLManager struct {
	DB *sql.DB
}

func (m *MySQLManager) log(format string, args ...interface{}) {
	fmt.Printf("[mysql] "+format+"\n", args...)
}

func (m *MySQLManager) logSQL(operation, sql string) {
	fmt.Printf("[mysql] %s:\n%s\n", operation, sql)
}

// quoteIdent backtick-quotes a MySQL identifier.
func quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (m *MySQLManager) Connect(cfg Config) error {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return err
	}
	m.DB = db
	return nil
}

func (m *MySQLManager) Close() error {
	if m.DB == nil {
		return nil
	}
	return m.DB.Close()
}

func (m *MySQLManager) withConn(fn func(ctx context.Context, conn *sql.Conn) error) error {
	if m.DB == nil {
		return errors.New("no database connection")
	}
	ctx := context.Background()
	conn, err := m.DB.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	return fn(ctx, conn)
}

func (m *MySQLManager) CheckConnection() (bool, string) {
	err := m.withConn(func(ctx context.Context, conn *sql.Conn) error {
		var one int
		return conn.QueryRowContext(ctx, "SELECT 1").Scan(&one)
	})
	if err != nil {
		return false, fmt.Sprintf("database connection failed: %v", err)
	}
	return true, "database connection successful"
}

func (m *MySQLManager) TableExists(table string) (bool, error) {
	var count int
	err := m.withConn(func(ctx context.Context, conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, `
			SELECT COUNT(*)
			FROM information_schema.tables
			WHERE table_schema = DATABASE()
			AND table_name = ?
		`, table).Scan(&count)
	})
	if err != nil {
		return false, fmt.Errorf("checking if table %s exists: %v", table, err)
	}
	return count > 0, nil
}

func (m *MySQLManager) ListTables() ([]string, error) {
	var tables []string
	err := m.withConn(func(ctx context.Context, conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, `
			SELECT table_name
			FROM information_schema.tables
			WHERE table_schema = DATABASE()
			AND table_type = 'BASE TABLE'
			ORDER BY table_name
		`)
		if err != nil {
			return fmt.Errorf("querying tables: %v", err)
		}
		defer rows.Close()

		for rows.Next() {
			var tableName string
			if err := rows.Scan(&tableName); err != nil {
				return fmt.Errorf("scanning table name: %v", err)
			}
			tables = append(tables, tableName)
		}
		return rows.Err()
	})
	return tables, err
}

func (m *MySQLManager) TableColumns(table string, includeID bool) ([]string, error) {
	var columns []string
	err := m.withConn(func(ctx context.Context, conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, `
			SELECT column_name
			FROM information_schema.columns
			WHERE table_schema = DATABASE()
			AND table_name = ?
			ORDER BY ordinal_position
		`, table)
		if err != nil {
			return fmt.Errorf("querying columns: %v", err)
		}
		defer rows.Close()

		for rows.Next() {
			var colName string
			if err := rows.Scan(&colName); err != nil {
				return fmt.Errorf("scanning column name: %v", err)
			}
			if !includeID && colName == "id" {
				continue
			}
			columns = append(columns, colName)
		}
		return rows.Err()
	})
	return columns, err
}

func (m *MySQLManager) ColumnTypes(table string) (map[string]string, error) {
	types := make(map[string]string)
	err := m.withConn(func(ctx context.Context, conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, `
			SELECT column_name, data_type
			FROM information_schema.columns
			WHERE table_schema = DATABASE()
			AND table_name = ?
			ORDER BY ordinal_position
		`, table)
		if err != nil {
			return fmt.Errorf("querying column types: %v", err)
		}
		defer rows.Close()

		for rows.Next() {
			var colName, dataType string
			if err := rows.Scan(&colName, &dataType); err != nil {
				return fmt.Errorf("scanning column type: %v", err)
			}
			types[colName] = dataType
		}
		return rows.Err()
	})
	return types, err
}

// ClearTable deletes every row and resets AUTO_INCREMENT to 1.
func (m *MySQLManager) ClearTable(table string) error {
	return m.withConn(func(ctx context.Context, conn *sql.Conn) error {
		deleteSQL := fmt.Sprintf("DELETE FROM %s", quoteIdent(table))
		m.logSQL("Clear Table", deleteSQL)
		if _, err := conn.ExecContext(ctx, deleteSQL); err != nil {
			return fmt.Errorf("clearing table %s: %v", table, err)
		}

		resetSQL := fmt.Sprintf("ALTER TABLE %s AUTO_INCREMENT = 1", quoteIdent(table))
		if _, err := conn.ExecContext(ctx, resetSQL); err != nil {
			m.log("Warning: failed to reset auto increment for %s: %v", table, err)
		}
		return nil
	})
}

func (m *MySQLManager) InsertRow(table string, columns []string, values []any) error {
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = quoteIdent(col)
		placeholders[i] = "?"
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "))

	return m.withConn(func(ctx context.Context, conn *sql.Conn) error {
		if _, err := conn.ExecContext(ctx, query, values...); err != nil {
			return fmt.Errorf("inserting into %s: %v", table, err)
		}
		return nil
	})
}

func (m *MySQLManager) FetchRows(table string) ([]string, [][]any, error) {
	columns, err := m.TableColumns(table, true)
	if err != nil {
		return nil, nil, err
	}
	types, err := m.ColumnTypes(table)
	if err != nil {
		return nil, nil, err
	}

	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = quoteIdent(col)
	}
	query := fmt.Sprintf("SELECT %s FROM %s",
		strings.Join(quoted, ", "),
		quoteIdent(table))

	var result [][]any
	err = m.withConn(func(ctx context.Context, conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query)
		if err != nil {
			return fmt.Errorf("querying data: %v", err)
		}
		defer rows.Close()

		for rows.Next() {
			values := make([]any, len(columns))
			valuePtrs := make([]any, len(columns))
			for i := range values {
				valuePtrs[i] = &values[i]
			}
			if err := rows.Scan(valuePtrs...); err != nil {
				return fmt.Errorf("scanning row: %v", err)
			}
			for i, val := range values {
				values[i] = normalizeValue(val, types[columns[i]])
			}
			result = append(result, values)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, nil, err
	}
	return columns, result, nil
}

// mysqlType maps the generic column types used in schema definitions to their
// MySQL equivalents.
func mysqlType(colType string) string {
	lower := strings.ToLower(colType)
	switch {
	case lower == "serial":
		return "INT NOT NULL AUTO_INCREMENT"
	case lower == "boolean" || lower == "bool":
		return "TINYINT(1)"
	case lower == "timestamp":
		return "DATETIME"
	case strings.HasPrefix(lower, "numeric"):
		return "DECIMAL" + strings.TrimPrefix(lower, "numeric")
	default:
		return colType
	}
}

func (m *MySQLManager) CreateTable(table Table) error {
	var columnDefs []string
	var primaryKeys []string
	var foreignKeys []string

	for _, col := range table.Columns {
		colDef := quoteIdent(col.Name) + " " + mysqlType(col.Type)
		if !col.Nullable && col.Type != "serial" {
			colDef += " NOT NULL"
		}
		if col.Default != "" {
			colDef += " DEFAULT " + mysqlDefault(col.Default)
		}
		if col.IsUnique && !col.IsPrimary {
			colDef += " UNIQUE"
		}
		columnDefs = append(columnDefs, colDef)

		if col.IsPrimary {
			primaryKeys = append(primaryKeys, quoteIdent(col.Name))
		}
		if col.ForeignKey != nil {
			foreignKeys = append(foreignKeys, fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s(%s)",
				quoteIdent(col.Name),
				quoteIdent(col.ForeignKey.Table),
				quoteIdent(col.ForeignKey.Column)))
		}
	}

	if len(primaryKeys) > 0 {
		columnDefs = append(columnDefs,
			fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(primaryKeys, ", ")))
	}
	columnDefs = append(columnDefs, foreignKeys...)

	createSQL := fmt.Sprintf("CREATE TABLE %s (\n  %s\n)",
		quoteIdent(table.Name),
		strings.Join(columnDefs, ",\n  "))

	m.logSQL("Create Table", createSQL)

	return m.withConn(func(ctx context.Context, conn *sql.Conn) error {
		if _, err := conn.ExecContext(ctx, createSQL); err != nil {
			return fmt.Errorf("creating table %s: %v", table.Name, err)
		}
		return nil
	})
}

// mysqlDefault rewrites Postgres-flavored default expressions.
func mysqlDefault(def string) string {
	switch strings.ToLower(def) {
	case "true":
		return "1"
	case "false":
		return "0"
	default:
		return def
	}
}
