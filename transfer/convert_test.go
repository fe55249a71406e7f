package transfer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConvertValue(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		columnType string
		want       any
	}{
		{"empty is null", "", "text", nil},
		{"NULL marker", "NULL", "integer", nil},
		{"lowercase null", "null", "text", nil},
		{"integer", "42", "integer", int64(42)},
		{"bigint", "9000000000", "bigint", int64(9000000000)},
		{"numeric", "4.5", "numeric", 4.5},
		{"double", "2.25", "double precision", 2.25},
		{"bool true", "true", "boolean", true},
		{"bool f", "f", "boolean", false},
		{"text stays text", "hello", "text", "hello"},
		{"numeric-looking text", "42", "character varying", "42"},
		{"bad int falls back", "abc", "integer", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, convertValue(tt.value, tt.columnType))
		})
	}
}

func TestConvertValueTimestamps(t *testing.T) {
	got := convertValue("2024-03-15T09:30:00Z", "timestamp without time zone")
	want := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, want, got)

	got = convertValue("2024-03-15", "date")
	want = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, want, got)

	got = convertValue("2024-03-15 09:30:00", "timestamp without time zone")
	want = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, want, got)
}
