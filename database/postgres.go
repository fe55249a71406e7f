package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
	_ "github.com/lib/pq"
)

type PostgresManager struct {
	DB *sql.DB
}

func (p *PostgresManager) log(format string, args ...interface{}) {
	fmt.Printf("[postgres] "+format+"\n", args...)
}

func (p *PostgresManager) logSQL(operation, sql string) {
	fmt.Printf("[postgres] %s:\n%s\n", operation, sql)
}

func (p *PostgresManager) Connect(cfg Config) error {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return err
	}
	p.DB = db
	return nil
}

func (p *PostgresManager) Close() error {
	if p.DB == nil {
		return nil
	}
	return p.DB.Close()
}

// withConn acquires a dedicated connection for one unit of work and releases
// it on every exit path.
func (p *PostgresManager) withConn(fn func(ctx context.Context, conn *sql.Conn) error) error {
	if p.DB == nil {
		return errors.New("no database connection")
	}
	ctx := context.Background()
	conn, err := p.DB.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	return fn(ctx, conn)
}

func (p *PostgresManager) CheckConnection() (bool, string) {
	err := p.withConn(func(ctx context.Context, conn *sql.Conn) error {
		var one int
		return conn.QueryRowContext(ctx, "SELECT 1").Scan(&one)
	})
	if err != nil {
		return false, fmt.Sprintf("database connection failed: %v", err)
	}
	return true, "database connection successful"
}

func (p *PostgresManager) TableExists(table string) (bool, error) {
	var exists bool
	err := p.withConn(func(ctx context.Context, conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, `
			SELECT EXISTS (
				SELECT FROM information_schema.tables
				WHERE table_schema = 'public'
				AND table_name = $1
			)
		`, table).Scan(&exists)
	})
	if err != nil {
		return false, fmt.Errorf("checking if table %s exists: %v", table, err)
	}
	return exists, nil
}

func (p *PostgresManager) ListTables() ([]string, error) {
	var tables []string
	err := p.withConn(func(ctx context.Context, conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, `
			SELECT table_name
			FROM information_schema.tables
			WHERE table_schema = 'public'
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

func (p *PostgresManager) TableColumns(table string, includeID bool) ([]string, error) {
	var columns []string
	err := p.withConn(func(ctx context.Context, conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, `
			SELECT column_name
			FROM information_schema.columns
			WHERE table_schema = 'public'
			AND table_name = $1
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

func (p *PostgresManager) ColumnTypes(table string) (map[string]string, error) {
	types := make(map[string]string)
	err := p.withConn(func(ctx context.Context, conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, `
			SELECT column_name, data_type
			FROM information_schema.columns
			WHERE table_schema = 'public'
			AND table_name = $1
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

// ClearTable deletes every row and restarts the id sequence at 1, trying the
// conventional <table>_id_seq name first and falling back to a catalog lookup.
func (p *PostgresManager) ClearTable(table string) error {
	return p.withConn(func(ctx context.Context, conn *sql.Conn) error {
		deleteSQL := fmt.Sprintf("DELETE FROM %s", pq.QuoteIdentifier(table))
		p.logSQL("Clear Table", deleteSQL)
		if _, err := conn.ExecContext(ctx, deleteSQL); err != nil {
			return fmt.Errorf("clearing table %s: %v", table, err)
		}

		restartSQL := fmt.Sprintf("ALTER SEQUENCE %s RESTART WITH 1",
			pq.QuoteIdentifier(table+"_id_seq"))
		if _, err := conn.ExecContext(ctx, restartSQL); err != nil {
			altSQL := "SELECT setval(pg_get_serial_sequence($1, 'id'), 1, false)"
			if _, altErr := conn.ExecContext(ctx, altSQL, table); altErr != nil {
				// Tables without a serial id column have no sequence to reset.
				p.log("Warning: failed to reset sequence for %s: %v", table, err)
			}
		}
		return nil
	})
}

func (p *PostgresManager) InsertRow(table string, columns []string, values []any) error {
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = pq.QuoteIdentifier(col)
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		pq.QuoteIdentifier(table),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "))

	return p.withConn(func(ctx context.Context, conn *sql.Conn) error {
		if _, err := conn.ExecContext(ctx, query, values...); err != nil {
			return fmt.Errorf("inserting into %s: %v", table, err)
		}
		return nil
	})
}

func (p *PostgresManager) FetchRows(table string) ([]string, [][]any, error) {
	columns, err := p.TableColumns(table, true)
	if err != nil {
		return nil, nil, err
	}
	types, err := p.ColumnTypes(table)
	if err != nil {
		return nil, nil, err
	}

	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = pq.QuoteIdentifier(col)
	}
	query := fmt.Sprintf("SELECT %s FROM %s",
		strings.Join(quoted, ", "),
		pq.QuoteIdentifier(table))

	var result [][]any
	err = p.withConn(func(ctx context.Context, conn *sql.Conn) error {
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

// normalizeValue converts driver-level scan results into plain scalars using
// the catalog data type. numeric and decimal columns come back as []byte and
// are converted to float64, a deliberate precision trade-off.
func normalizeValue(value any, columnType string) any {
	b, ok := value.([]byte)
	if !ok {
		return value
	}

	s := string(b)
	colType := strings.ToLower(columnType)

	switch {
	case strings.Contains(colType, "int"):
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
	case strings.Contains(colType, "numeric"),
		strings.Contains(colType, "decimal"),
		strings.Contains(colType, "real"),
		strings.Contains(colType, "double"),
		strings.Contains(colType, "float"):
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	case colType == "boolean" || colType == "bool":
		if s == "true" || s == "t" || s == "1" {
			return true
		}
		if s == "false" || s == "f" || s == "0" {
			return false
		}
	}
	return s
}

// CreateTable creates a table from a schema definition, including primary key,
// unique and foreign key constraints.
func (p *PostgresManager) CreateTable(table Table) error {
	var columnDefs []string
	var primaryKeys []string

	for _, col := range table.Columns {
		colDef := pq.QuoteIdentifier(col.Name) + " " + col.Type
		if !col.Nullable {
			colDef += " NOT NULL"
		}
		if col.Default != "" {
			colDef += " DEFAULT " + col.Default
		}
		if col.IsUnique && !col.IsPrimary {
			colDef += " UNIQUE"
		}
		if col.ForeignKey != nil {
			colDef += fmt.Sprintf(" REFERENCES %s(%s)",
				pq.QuoteIdentifier(col.ForeignKey.Table),
				pq.QuoteIdentifier(col.ForeignKey.Column))
		}
		columnDefs = append(columnDefs, colDef)

		if col.IsPrimary {
			primaryKeys = append(primaryKeys, pq.QuoteIdentifier(col.Name))
		}
	}

	if len(primaryKeys) > 0 {
		columnDefs = append(columnDefs,
			fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(primaryKeys, ", ")))
	}

	createSQL := fmt.Sprintf("CREATE TABLE %s (\n  %s\n)",
		pq.QuoteIdentifier(table.Name),
		strings.Join(columnDefs, ",\n  "))

	p.logSQL("Create Table", createSQL)

	return p.withConn(func(ctx context.Context, conn *sql.Conn) error {
		if _, err := conn.ExecContext(ctx, createSQL); err != nil {
			return fmt.Errorf("creating table %s: %v", table.Name, err)
		}
		return nil
	})
}
