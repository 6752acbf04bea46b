package donation

import (
	"fmt"

	"food-donation-api-server/internal/models"
)

// BackwardTransitionError is returned when a requested status is ordered
// before the donation's current status.
type BackwardTransitionError struct {
	From models.Status
	To   models.Status
}

func (e *BackwardTransitionError) Error() string {
	return fmt.Sprintf("cannot move status backwards from %s to %s", e.From, e.To)
}

// InvalidTimestampError is returned when a date/time field in the payload
// cannot be parsed.
type InvalidTimestampError struct {
	Field string
	Value string
}

func (e *InvalidTimestampError) Error() string {
	return fmt.Sprintf("invalid timestamp for %s: %q", e.Field, e.Value)
}
