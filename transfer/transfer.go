// Package transfer orchestrates validated, destructive data transfers
// between flat files and database tables.
package transfer

import (
	"fmt"
	"os"

	db "github.com/bcre/dbmanager/database"
	"github.com/bcre/dbmanager/fileformat"
)

// Engine moves data between tabular files and database tables. Confirm is
// called before overwriting an existing export destination; callers supply an
// interactive prompt or a stub for scripted use.
type Engine struct {
	Store   db.Manager
	Confirm func(path string) bool
}

// New returns an engine that overwrites export destinations without asking.
func New(store db.Manager) *Engine {
	return &Engine{
		Store:   store,
		Confirm: func(string) bool { return true },
	}
}

// Import validates the file against the target table, then wipes the table
// and loads every row. Validation short-circuits on the first failure; the
// table is only cleared once all checks pass. The clear and the inserts are
// not wrapped in a transaction, so a mid-load failure leaves the rows
// inserted so far in place.
func (e *Engine) Import(filePath, tableName string) (string, error) {
	if _, err := os.Stat(filePath); err != nil {
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, filePath)
	}

	format, err := fileformat.Detect(filePath)
	if err != nil {
		return "", err
	}

	exists, err := e.Store.TableExists(tableName)
	if err != nil {
		return "", &OperationError{Op: "import", Err: err}
	}
	if !exists {
		return "", fmt.Errorf("%w: %s", ErrTableNotFound, tableName)
	}

	header, rows, err := fileformat.ReadRows(filePath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHeaderUnreadable, err)
	}
	if len(header) == 0 {
		return "", ErrHeaderUnreadable
	}

	hasID := false
	for _, col := range header {
		if col == "id" {
			hasID = true
			break
		}
	}

	tableColumns, err := e.Store.TableColumns(tableName, hasID)
	if err != nil {
		return "", &OperationError{Op: "import", Err: err}
	}

	if !sameSet(header, tableColumns) {
		return "", &SchemaMismatchError{Expected: tableColumns, Found: header}
	}

	if format == fileformat.CSV {
		types, err := e.Store.ColumnTypes(tableName)
		if err != nil {
			return "", &OperationError{Op: "import", Err: err}
		}
		for _, row := range rows {
			for i, col := range row.Columns {
				if s, ok := row.Values[i].(string); ok {
					row.Values[i] = convertValue(s, types[col])
				}
			}
		}
	}

	if err := e.Store.ClearTable(tableName); err != nil {
		return "", &OperationError{Op: "import", Err: err}
	}

	for _, row := range rows {
		if err := e.Store.InsertRow(tableName, row.Columns, row.Values); err != nil {
			return "", &OperationError{Op: "import", Err: err}
		}
	}

	return fmt.Sprintf("Successfully imported %s to %s", filePath, tableName), nil
}

// Export reads the whole table in column order and writes it to the file.
// When the destination already exists the Confirm callback decides whether to
// overwrite; declining yields a cancellation result, not an error.
func (e *Engine) Export(tableName, filePath string) (string, error) {
	format, err := fileformat.Detect(filePath)
	if err != nil {
		return "", err
	}

	exists, err := e.Store.TableExists(tableName)
	if err != nil {
		return "", &OperationError{Op: "export", Err: err}
	}
	if !exists {
		return "", fmt.Errorf("%w: %s", ErrTableNotFound, tableName)
	}

	if _, err := os.Stat(filePath); err == nil {
		if e.Confirm == nil || !e.Confirm(filePath) {
			return "Export cancelled", nil
		}
	}

	columns, rows, err := e.Store.FetchRows(tableName)
	if err != nil {
		return "", &OperationError{Op: "export", Err: err}
	}

	switch format {
	case fileformat.CSV:
		err = fileformat.WriteCSV(filePath, columns, rows)
	default:
		err = fileformat.WriteJSON(filePath, columns, rows)
	}
	if err != nil {
		return "", &OperationError{Op: "export", Err: err}
	}

	return fmt.Sprintf("Successfully exported %s to %s", tableName, filePath), nil
}

// sameSet reports whether two column lists contain the same names,
// ignoring order.
func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int, len(a))
	for _, s := range a {
		seen[s]++
	}
	for _, s := range b {
		if seen[s] == 0 {
			return false
		}
		seen[s]--
	}
	return true
}
