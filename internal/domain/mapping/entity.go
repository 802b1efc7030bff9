package mapping

import "time"

// MappingType records how a column mapping was established.
type MappingType string

const (
	MappingExact  MappingType = "exact"
	MappingFuzzy  MappingType = "fuzzy"
	MappingManual MappingType = "manual"
)

// ColumnMapping binds one spreadsheet column header to one canonical
// database field inside a configuration.
type ColumnMapping struct {
	ID              int64
	ConfigID        int64
	DatabaseField   string
	ExcelColumnName string
	ConfidenceScore float64
	MappingType     MappingType
	DisplayOrder    int
}

// ImportFileConfig is a named, reusable mapping profile for
// variable-format imports.
type ImportFileConfig struct {
	ID          int64
	Name        string
	Description string
	FileType    string
	IsActive    bool
	Mappings    []ColumnMapping
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
