package transfer

import (
	"strconv"
	"strings"
	"time"
)

// convertValue turns a CSV field into a typed value for the given catalog
// column type. Empty fields and the NULL marker become nil; anything that
// fails to parse falls back to the raw string and is left for the database
// to coerce.
func convertValue(value string, columnType string) any {
	if value == "" || value == "NULL" || value == "null" {
		return nil
	}

	colType := strings.ToLower(columnType)

	if strings.Contains(colType, "time") || strings.Contains(colType, "date") {
		if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
			return t
		}
		if t, err := time.Parse("2006-01-02 15:04:05", value); err == nil {
			return t
		}
		if t, err := time.Parse("2006-01-02", value); err == nil {
			return t
		}
	}

	if colType == "boolean" || colType == "bool" || colType == "tinyint" {
		switch strings.ToLower(value) {
		case "true", "t", "yes", "y", "1":
			return true
		case "false", "f", "no", "n", "0":
			return false
		}
	}

	if strings.Contains(colType, "int") || strings.Contains(colType, "serial") {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}

	if strings.Contains(colType, "float") || strings.Contains(colType, "numeric") ||
		strings.Contains(colType, "decimal") || strings.Contains(colType, "double") ||
		strings.Contains(colType, "real") {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}

	return value
}
