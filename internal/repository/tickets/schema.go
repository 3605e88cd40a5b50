package tickets

import (
	"fmt"
	"sort"
	"strings"
)

// SchemaError reports required columns missing from an input file.
// It is fatal: the batch must not start processing rows without them.
type SchemaError struct {
	// Role names the input the error refers to ("daily tickets" or
	// "NMS history").
	Role string
	// Missing lists the physical column names that were not found.
	Missing []string
}

// Error renders all missing columns in one message.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required columns: %s", e.Role, strings.Join(e.Missing, ", "))
}

// columnKey normalizes a header cell for comparison.
func columnKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// resolveColumns maps the required physical column names to header indexes.
// Matching is case-insensitive and ignores surrounding whitespace; on a
// duplicate header the first occurrence wins. When any column is absent a
// SchemaError listing every missing name is returned.
func resolveColumns(role string, header []string, required []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		key := columnKey(name)
		if _, ok := index[key]; !ok {
			index[key] = i
		}
	}

	resolved := make(map[string]int, len(required))

	var missing []string

	for _, name := range required {
		position, ok := index[columnKey(name)]
		if !ok {
			missing = append(missing, name)
			continue
		}

		resolved[name] = position
	}

	if len(missing) > 0 {
		sort.Strings(missing)

		return nil, &SchemaError{Role: role, Missing: missing}
	}

	return resolved, nil
}

// field returns the record value at the given index, or an empty string for
// short rows. Ragged rows are a data error recovered to null, not a reason
// to abort.
func field(record []string, index int) string {
	if index < 0 || index >= len(record) {
		return ""
	}

	return record[index]
}
