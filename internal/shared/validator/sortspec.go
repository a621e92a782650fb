package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// sortSpecRegex matches "field[,asc|desc[,nullsfirst|nullslast]]"
	// e.g. age,desc / username,asc,nullslast
	sortSpecRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*(,(?i:asc|desc)(,(?i:nullsfirst|nullslast))?)?$`)
)

// ValidateSortSpec validates a single sort parameter value
// Which fields are sortable is decided by each domain
func ValidateSortSpec(fl validator.FieldLevel) bool {
	return sortSpecRegex.MatchString(fl.Field().String())
}
