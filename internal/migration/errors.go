package migration

import (
	"errors"
	"fmt"
)

var (
	// ErrNameMismatch means a record's det_name differs from its file stem.
	ErrNameMismatch = errors.New("detector name does not match file name")

	// ErrMissingRecommendedVoltage means the vendor gave no recommended
	// voltage. Some vendors omit the depletion voltage, but all of them must
	// provide the recommended one.
	ErrMissingRecommendedVoltage = errors.New("vendor recommended voltage is missing")

	// ErrBadDate means the delivery date is not DD-MM-YYYY.
	ErrBadDate = errors.New("delivery date is not DD-MM-YYYY")

	// ErrMissingField means a field the migration relies on is absent.
	ErrMissingField = errors.New("required field is missing")

	// ErrSameDir is returned when output would land in the input directory.
	ErrSameDir = errors.New("output directory must differ from input directory")
)

// RecordError ties a migration failure to the detector it happened on.
type RecordError struct {
	Name string
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("migrate %s: %v", e.Name, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }
