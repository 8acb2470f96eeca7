package contract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/huangsam/speedreport/schema"
)

// ErrTableNotFound is wrapped by StorageError when a table does not exist.
var ErrTableNotFound = errors.New("table not found")

// StorageError reports a failed store operation.
type StorageError struct {
	Op    string           // Operation such as "read", "replace", "columns"
	Table schema.TableName // Empty for connection-level failures
	Err   error
}

func (e *StorageError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Table, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// SchemaMismatchError reports required columns missing from a table or file.
type SchemaMismatchError struct {
	Table   string
	Missing []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("%s is missing required columns: %s", e.Table, strings.Join(e.Missing, ", "))
}

// InputFormatError reports an input file that cannot be turned into a table.
type InputFormatError struct {
	Path   string
	Reason string
	Err    error
}

func (e *InputFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("input %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("input %s: %s", e.Path, e.Reason)
}

func (e *InputFormatError) Unwrap() error { return e.Err }

// IsTableNotFound reports whether err means the table does not exist.
func IsTableNotFound(err error) bool {
	return errors.Is(err, ErrTableNotFound)
}
