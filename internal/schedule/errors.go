package schedule

import (
	"fmt"

	"github.com/waktusolat/solat-api/internal/model"
)

// NotFoundError means the store has no records for the zone and month.
type NotFoundError struct {
	Zone   string
	Period model.NormalizedPeriod
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("No data found for zone: %s for %s/%d", e.Zone, e.Period.Abbrev(), e.Period.Year)
}

// ServerError covers store failures and data that breaks the month invariants.
type ServerError struct {
	Zone   string
	Period model.NormalizedPeriod
	Err    error
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("schedule %s %d-%02d: %v", e.Zone, e.Period.Year, int(e.Period.Month), e.Err)
}

func (e *ServerError) Unwrap() error { return e.Err }
