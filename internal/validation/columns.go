package validation

import (
	"sort"

	apperrors "arcli/internal/errors"
	"arcli/pkg/contracts/domain"
)

// RequireColumns verifies that the table schema contains every required
// column. It returns a schema error naming all missing columns, sorted for
// stable messages, or nil when the schema is complete.
func RequireColumns(table domain.Table, required []string) error {
	present := table.ColumnSet()

	var missing []string
	for _, col := range required {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}

	if len(missing) == 0 {
		return nil
	}

	sort.Strings(missing)
	return apperrors.NewSchemaError(missing)
}

// MissingColumns returns the required columns absent from the table, in
// required-list order. Unlike RequireColumns it never errors; callers use it
// to report partial schemas as data.
func MissingColumns(table domain.Table, required []string) []string {
	present := table.ColumnSet()

	var missing []string
	for _, col := range required {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}
