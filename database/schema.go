package db

type Column struct {
	Name       string      `json:"name"`
	Type       string      `json:"type"` // database type (e.g. text, integer, timestamp)
	Nullable   bool        `json:"nullable"`
	Default    string      `json:"default,omitempty"`
	IsPrimary  bool        `json:"isPrimary"`
	IsUnique   bool        `json:"isUnique"`
	ForeignKey *ForeignKey `json:"foreignKey,omitempty"`
}

type ForeignKey struct {
	Table  string `json:"table"`  // referenced table
	Column string `json:"column"` // referenced column
}

type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}
