package mapping

import "github.com/levanminhduc/LuongHoaThoNew-sub004/internal/pkg/validator"

type SaveConfigRequest struct {
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	FileType    string               `json:"file_type"`
	Mappings    []SaveMappingRequest `json:"mappings"`
}

type SaveMappingRequest struct {
	DatabaseField   string      `json:"database_field"`
	ExcelColumnName string      `json:"excel_column_name"`
	ConfidenceScore float64     `json:"confidence_score"`
	MappingType     MappingType `json:"mapping_type"`
	DisplayOrder    int         `json:"display_order"`
}

func (r *SaveConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if len(r.Mappings) == 0 {
		errs = append(errs, validator.ValidationError{Field: "mappings", Message: "at least one mapping is required"})
	}
	for _, m := range r.Mappings {
		if validator.IsEmpty(m.DatabaseField) || validator.IsEmpty(m.ExcelColumnName) {
			errs = append(errs, validator.ValidationError{Field: "mappings", Message: "database_field and excel_column_name are required"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DetectRequest asks the resolver to propose mappings for raw headers.
type DetectRequest struct {
	Headers  []string `json:"headers"`
	FileType string   `json:"file_type"`
}

// ProposedMapping is one ranked auto-detection result the admin may accept
// or override before the import runs.
type ProposedMapping struct {
	DatabaseField   string      `json:"database_field"`
	ExcelColumnName string      `json:"excel_column_name"`
	ConfidenceScore float64     `json:"confidence_score"`
	MappingType     MappingType `json:"mapping_type"`
}
