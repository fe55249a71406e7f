// Package fileformat reads and writes tabular data as CSV or JSON files,
// normalizing both to an ordered header plus ordered rows.
package fileformat

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
)

// ErrUnsupportedFormat is returned for any extension other than .csv or .json.
var ErrUnsupportedFormat = errors.New("only CSV and JSON files are supported")

// Detect determines the file format from the extension, case-insensitively.
func Detect(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return CSV, nil
	case ".json":
		return JSON, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// Row is one record with its column order preserved. Columns and Values are
// parallel slices.
type Row struct {
	Columns []string
	Values  []any
}

// ReadHeaders returns the column names of a tabular file: the first line of a
// CSV, or the key set of the first record of a JSON array. An empty JSON
// array yields an empty header.
func ReadHeaders(path string) ([]string, error) {
	format, err := Detect(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %v", err)
	}
	defer file.Close()

	switch format {
	case CSV:
		header, err := csv.NewReader(file).Read()
		if err != nil {
			return nil, fmt.Errorf("reading CSV header: %v", err)
		}
		return header, nil
	default:
		rows, err := decodeRecords(file)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return nil, nil
		}
		return rows[0].Columns, nil
	}
}

// ReadRows reads the whole file into the row model. CSV values are strings;
// JSON values are decoded scalars.
func ReadRows(path string) ([]string, []Row, error) {
	format, err := Detect(path)
	if err != nil {
		return nil, nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading file: %v", err)
	}
	defer file.Close()

	switch format {
	case CSV:
		reader := csv.NewReader(file)
		records, err := reader.ReadAll()
		if err != nil {
			return nil, nil, fmt.Errorf("reading CSV records: %v", err)
		}
		if len(records) == 0 {
			return nil, nil, nil
		}
		header := records[0]
		rows := make([]Row, 0, len(records)-1)
		for _, record := range records[1:] {
			values := make([]any, len(record))
			for i, field := range record {
				values[i] = field
			}
			rows = append(rows, Row{Columns: header, Values: values})
		}
		return header, rows, nil
	default:
		rows, err := decodeRecords(file)
		if err != nil {
			return nil, nil, err
		}
		if len(rows) == 0 {
			return nil, nil, nil
		}
		return rows[0].Columns, rows, nil
	}
}

// WriteCSV writes the header followed by one line per row. Nil values are
// written as NULL, timestamps as ISO-8601.
func WriteCSV(path string, header []string, rows [][]any) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %v", err)
	}

	for _, row := range rows {
		record := make([]string, len(row))
		for i, val := range row {
			record[i] = formatCSVValue(val)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("writing CSV row: %v", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatCSVValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case time.Time:
		return v.Format(time.RFC3339)
	case []byte:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
