package dataset

import (
	"fmt"
	"strings"
)

// ParseError reports an upload that could not be read as tabular data.
type ParseError struct {
	Table string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("error reading %s table: %v", e.Table, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SchemaError reports required columns missing from an uploaded table. When
// AnyOf is set, any one of Columns would have satisfied the requirement;
// otherwise all of them are required.
type SchemaError struct {
	Table   string
	Columns []string
	AnyOf   bool
}

func (e *SchemaError) Error() string {
	sep := " and "
	if e.AnyOf {
		sep = " or "
	}
	return fmt.Sprintf("%s table must contain %s", e.Table, quoteJoin(e.Columns, sep))
}

func quoteJoin(cols []string, sep string) string {
	quoted := make([]string, 0, len(cols))
	for _, col := range cols {
		quoted = append(quoted, "'"+col+"'")
	}
	return strings.Join(quoted, sep)
}
