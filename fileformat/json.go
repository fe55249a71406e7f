package fileformat

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// decodeRecords parses a top-level JSON array of objects, preserving each
// object's key order as it appears in the document.
func decodeRecords(r io.Reader) ([]Row, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("reading JSON: %v", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, errors.New("expected a top-level JSON array")
	}

	var rows []Row
	for dec.More() {
		row, err := decodeRecord(dec)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("reading JSON: %v", err)
	}
	return rows, nil
}

func decodeRecord(dec *json.Decoder) (Row, error) {
	tok, err := dec.Token()
	if err != nil {
		return Row{}, fmt.Errorf("reading JSON record: %v", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return Row{}, errors.New("expected a JSON object per record")
	}

	var row Row
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Row{}, fmt.Errorf("reading JSON key: %v", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return Row{}, errors.New("expected a string object key")
		}

		var raw any
		if err := dec.Decode(&raw); err != nil {
			return Row{}, fmt.Errorf("reading value for %q: %v", key, err)
		}

		row.Columns = append(row.Columns, key)
		row.Values = append(row.Values, normalizeJSONValue(raw))
	}

	if _, err := dec.Token(); err != nil {
		return Row{}, fmt.Errorf("reading JSON record: %v", err)
	}
	return row, nil
}

// normalizeJSONValue resolves json.Number into int64 where the value has no
// fractional part, float64 otherwise.
func normalizeJSONValue(value any) any {
	num, ok := value.(json.Number)
	if !ok {
		return value
	}
	if i, err := num.Int64(); err == nil {
		return i
	}
	if f, err := num.Float64(); err == nil {
		return f
	}
	return num.String()
}

// record marshals one row as a JSON object with keys in header order.
type record struct {
	columns []string
	values  []any
}

func (r record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(coerceJSONValue(r.values[i]))
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// coerceJSONValue applies the serialization rules for JSON output: dates and
// timestamps become ISO-8601 strings, raw byte values become strings.
func coerceJSONValue(value any) any {
	switch v := value.(type) {
	case time.Time:
		return v.Format(time.RFC3339)
	case []byte:
		return string(v)
	default:
		return value
	}
}

// WriteJSON writes all rows as a single JSON array with 4-space indentation,
// keeping keys in header order.
func WriteJSON(path string, header []string, rows [][]any) error {
	records := make([]record, len(rows))
	for i, row := range rows {
		records[i] = record{columns: header, values: row}
	}

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding JSON: %v", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing JSON file: %v", err)
	}
	return nil
}
