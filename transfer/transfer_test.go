package transfer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	db "github.com/bcre/dbmanager/database"
	"github.com/bcre/dbmanager/fileformat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory db.Manager keeping rows as name/value maps.
type fakeStore struct {
	columns map[string][]string          // table -> columns in ordinal order
	types   map[string]map[string]string // table -> column -> data type
	data    map[string][]map[string]any

	cleared []string
	calls   []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		columns: map[string][]string{
			"realtors": {"id", "name", "email"},
		},
		types: map[string]map[string]string{
			"realtors": {"id": "integer", "name": "character varying", "email": "character varying"},
		},
		data: map[string][]map[string]any{},
	}
}

func (f *fakeStore) Connect(db.Config) error          { return nil }
func (f *fakeStore) Close() error                     { return nil }
func (f *fakeStore) CheckConnection() (bool, string)  { return true, "ok" }
func (f *fakeStore) CreateTable(db.Table) error       { return nil }
func (f *fakeStore) ListTables() ([]string, error)    { return nil, nil }

func (f *fakeStore) TableExists(table string) (bool, error) {
	f.calls = append(f.calls, "TableExists")
	_, ok := f.columns[table]
	return ok, nil
}

func (f *fakeStore) TableColumns(table string, includeID bool) ([]string, error) {
	f.calls = append(f.calls, "TableColumns")
	var columns []string
	for _, col := range f.columns[table] {
		if !includeID && col == "id" {
			continue
		}
		columns = append(columns, col)
	}
	return columns, nil
}

func (f *fakeStore) ColumnTypes(table string) (map[string]string, error) {
	return f.types[table], nil
}

func (f *fakeStore) ClearTable(table string) error {
	f.cleared = append(f.cleared, table)
	f.data[table] = nil
	return nil
}

func (f *fakeStore) InsertRow(table string, columns []string, values []any) error {
	row := make(map[string]any, len(columns))
	for i, col := range columns {
		row[col] = values[i]
	}
	f.data[table] = append(f.data[table], row)
	return nil
}

func (f *fakeStore) FetchRows(table string) ([]string, [][]any, error) {
	columns := f.columns[table]
	var rows [][]any
	for _, stored := range f.data[table] {
		row := make([]any, len(columns))
		for i, col := range columns {
			row[i] = stored[col]
		}
		rows = append(rows, row)
	}
	return columns, rows, nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestImportRejectsMissingFile(t *testing.T) {
	store := newFakeStore()
	eng := New(store)

	_, err := eng.Import(filepath.Join(t.TempDir(), "missing.csv"), "realtors")
	assert.ErrorIs(t, err, ErrFileNotFound)
	assert.Empty(t, store.calls)
}

func TestImportRejectsUnsupportedExtension(t *testing.T) {
	store := newFakeStore()
	eng := New(store)

	path := writeFile(t, t.TempDir(), "r.txt", "id,name,email\n")
	_, err := eng.Import(path, "realtors")
	assert.Error(t, err)
	assert.Empty(t, store.calls, "no table access before format validation")
	assert.Empty(t, store.cleared)
}

func TestImportRejectsMissingTable(t *testing.T) {
	store := newFakeStore()
	eng := New(store)

	path := writeFile(t, t.TempDir(), "r.csv", "id,name,email\n1,Alice,a@example.com\n")
	_, err := eng.Import(path, "nonexistent")
	assert.ErrorIs(t, err, ErrTableNotFound)
	assert.Empty(t, store.cleared, "missing table must not clear anything")
}

func TestImportRejectsEmptyJSONArray(t *testing.T) {
	store := newFakeStore()
	eng := New(store)

	path := writeFile(t, t.TempDir(), "r.json", "[]")
	_, err := eng.Import(path, "realtors")
	assert.ErrorIs(t, err, ErrHeaderUnreadable)
	assert.Empty(t, store.cleared)
}

func TestImportSchemaMismatch(t *testing.T) {
	store := newFakeStore()
	store.data["realtors"] = []map[string]any{{"id": int64(1), "name": "Old", "email": "old@example.com"}}
	eng := New(store)

	path := writeFile(t, t.TempDir(), "r.csv", "name,email,extra\nAlice,a@example.com,x\n")
	_, err := eng.Import(path, "realtors")

	var mismatch *SchemaMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, []string{"name", "email"}, mismatch.Expected)
	assert.Equal(t, []string{"name", "email", "extra"}, mismatch.Found)

	assert.Empty(t, store.cleared, "mismatch must not mutate the table")
	assert.Len(t, store.data["realtors"], 1, "existing rows untouched")
}

func TestImportWithoutIDColumn(t *testing.T) {
	store := newFakeStore()
	eng := New(store)

	path := writeFile(t, t.TempDir(), "r.csv", "name,email\nAlice,a@example.com\nBob,b@example.com\n")
	result, err := eng.Import(path, "realtors")
	require.NoError(t, err)
	assert.Contains(t, result, "Successfully imported")

	assert.Equal(t, []string{"realtors"}, store.cleared)
	require.Len(t, store.data["realtors"], 2)
	assert.Equal(t, "Alice", store.data["realtors"][0]["name"])
	_, hasID := store.data["realtors"][0]["id"]
	assert.False(t, hasID)
}

func TestImportCSVConvertsValuesByColumnType(t *testing.T) {
	store := newFakeStore()
	eng := New(store)

	path := writeFile(t, t.TempDir(), "r.csv", "id,name,email\n7,Alice,NULL\n")
	_, err := eng.Import(path, "realtors")
	require.NoError(t, err)

	row := store.data["realtors"][0]
	assert.Equal(t, int64(7), row["id"])
	assert.Nil(t, row["email"])
}

func TestImportJSONWithID(t *testing.T) {
	store := newFakeStore()
	eng := New(store)

	path := writeFile(t, t.TempDir(), "r.json",
		`[{"id": 1, "name": "Alice", "email": "a@example.com"}]`)
	_, err := eng.Import(path, "realtors")
	require.NoError(t, err)

	require.Len(t, store.data["realtors"], 1)
	assert.Equal(t, int64(1), store.data["realtors"][0]["id"])
}

func TestExportRejectsMissingTable(t *testing.T) {
	store := newFakeStore()
	eng := New(store)

	_, err := eng.Export("nonexistent", filepath.Join(t.TempDir(), "out.csv"))
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestExportRejectsUnsupportedExtension(t *testing.T) {
	store := newFakeStore()
	eng := New(store)

	_, err := eng.Export("realtors", filepath.Join(t.TempDir(), "out.txt"))
	assert.Error(t, err)
	assert.Empty(t, store.calls, "extension check comes before table access")
}

func TestExportDeclinedConfirmationLeavesFile(t *testing.T) {
	store := newFakeStore()
	store.data["realtors"] = []map[string]any{{"id": int64(1), "name": "Alice", "email": "a@example.com"}}

	dir := t.TempDir()
	path := writeFile(t, dir, "out.csv", "original content\n")

	eng := New(store)
	eng.Confirm = func(string) bool { return false }

	result, err := eng.Export("realtors", path)
	require.NoError(t, err, "declining is a result, not an error")
	assert.Equal(t, "Export cancelled", result)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original content\n", string(data))
}

func TestExportConfirmedOverwrite(t *testing.T) {
	store := newFakeStore()
	store.data["realtors"] = []map[string]any{{"id": int64(1), "name": "Alice", "email": "a@example.com"}}

	dir := t.TempDir()
	path := writeFile(t, dir, "out.csv", "stale\n")

	asked := ""
	eng := New(store)
	eng.Confirm = func(p string) bool {
		asked = p
		return true
	}

	result, err := eng.Export("realtors", path)
	require.NoError(t, err)
	assert.Contains(t, result, "Successfully exported")
	assert.Equal(t, path, asked)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id,name,email\n1,Alice,a@example.com\n", string(data))
}

func TestImportExportRoundTripCSV(t *testing.T) {
	store := newFakeStore()
	eng := New(store)
	dir := t.TempDir()

	source := "id,name,email\n1,Alice,a@example.com\n2,Bob,b@example.com\n"
	inPath := writeFile(t, dir, "in.csv", source)

	_, err := eng.Import(inPath, "realtors")
	require.NoError(t, err)

	outPath := filepath.Join(dir, "out.csv")
	_, err = eng.Export("realtors", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, source, string(data))
}

func TestImportExportRoundTripJSON(t *testing.T) {
	store := newFakeStore()
	eng := New(store)
	dir := t.TempDir()

	inPath := writeFile(t, dir, "in.json",
		`[{"id": 1, "name": "Alice", "email": "a@example.com"}, {"id": 2, "name": "Bob", "email": null}]`)

	_, err := eng.Import(inPath, "realtors")
	require.NoError(t, err)

	outPath := filepath.Join(dir, "out.json")
	_, err = eng.Export("realtors", outPath)
	require.NoError(t, err)

	header, rows, err := readBack(outPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "email"}, header)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(2), rows[1][0])
	assert.Nil(t, rows[1][2])
}

func TestStorageErrorIsWrapped(t *testing.T) {
	store := newFakeStore()
	eng := New(store)
	eng.Store = &failingStore{fakeStore: store}

	path := writeFile(t, t.TempDir(), "r.csv", "id,name,email\n1,Alice,a@example.com\n")
	_, err := eng.Import(path, "realtors")

	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "import", opErr.Op)
	assert.ErrorIs(t, err, errInsertBoom)
}

var errInsertBoom = errors.New("insert failed")

type failingStore struct {
	*fakeStore
}

func (f *failingStore) InsertRow(string, []string, []any) error {
	return errInsertBoom
}

// readBack decodes an exported JSON file back into header and row values for
// round-trip comparison.
func readBack(path string) ([]string, [][]any, error) {
	header, rows, err := fileformat.ReadRows(path)
	if err != nil {
		return nil, nil, err
	}
	values := make([][]any, len(rows))
	for i, row := range rows {
		values[i] = row.Values
	}
	return header, values, nil
}
