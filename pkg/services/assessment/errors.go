package assessment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
)

// ErrorKind is the closed set of input failures the pipeline reports.
type ErrorKind string

const (
	KindEmptyDataset   ErrorKind = "empty_dataset"
	KindMissingColumn  ErrorKind = "missing_column"
	KindNoValidRecords ErrorKind = "no_valid_records"
)

var (
	ErrEmptyDataset   = errors.New("uploaded file contains no data")
	ErrMissingColumn  = errors.New("required financial columns not found")
	ErrNoValidRecords = errors.New("no valid numeric records after cleaning revenue and expense columns")

	// ErrNonFiniteMetrics is a defect, not an input kind: the aggregates overflowed.
	ErrNonFiniteMetrics = errors.New("financial metrics are not finite")
)

// MissingColumnError reports mandatory roles that could not be resolved.
type MissingColumnError struct {
	Roles     []domain.Role
	Available []string
}

func (e *MissingColumnError) Error() string {
	roles := make([]string, 0, len(e.Roles))
	for _, r := range e.Roles {
		roles = append(roles, string(r))
	}
	return fmt.Sprintf("%s: missing %s; available columns: [%s]",
		ErrMissingColumn, strings.Join(roles, ", "), strings.Join(e.Available, ", "))
}

func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

// KindOf maps err to its kind. Errors outside the taxonomy yield an empty kind
// and must be treated as defects by the caller.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyDataset):
		return KindEmptyDataset
	case errors.Is(err, ErrMissingColumn):
		return KindMissingColumn
	case errors.Is(err, ErrNoValidRecords):
		return KindNoValidRecords
	default:
		return ""
	}
}
