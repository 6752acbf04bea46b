package models

import (
	"fmt"
	"strings"
)

// Status is one step of the donation lifecycle. The lifecycle is a strict
// forward progression; ordering between statuses is defined by the explicit
// rank table below, never by declaration order.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusScheduled Status = "SCHEDULED"
	StatusPickedUp  Status = "PICKED_UP"
	StatusInTransit Status = "IN_TRANSIT"
	StatusDelivered Status = "DELIVERED"
	StatusCompleted Status = "COMPLETED"
)

// statusRank defines the total ordering of the lifecycle.
var statusRank = map[Status]int{
	StatusPending:   0,
	StatusConfirmed: 1,
	StatusScheduled: 2,
	StatusPickedUp:  3,
	StatusInTransit: 4,
	StatusDelivered: 5,
	StatusCompleted: 6,
}

var statusDisplayName = map[Status]string{
	StatusPending:   "Pending",
	StatusConfirmed: "Confirmed",
	StatusScheduled: "Scheduled",
	StatusPickedUp:  "Picked Up",
	StatusInTransit: "In Transit",
	StatusDelivered: "Delivered",
	StatusCompleted: "Completed",
}

// InvalidStatusError is returned when a string does not name any lifecycle status.
type InvalidStatusError struct {
	Value string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid donation status: %q", e.Value)
}

// ParseStatus parses a status name case-insensitively.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := statusRank[status]; !ok {
		return "", &InvalidStatusError{Value: s}
	}
	return status, nil
}

// Rank returns the position of the status in the lifecycle ordering.
func (s Status) Rank() int {
	return statusRank[s]
}

// Before reports whether s is ordered strictly before other.
func (s Status) Before(other Status) bool {
	return statusRank[s] < statusRank[other]
}

// DisplayName returns the human-readable form, e.g. "Picked Up".
func (s Status) DisplayName() string {
	if name, ok := statusDisplayName[s]; ok {
		return name
	}
	return string(s)
}

// AllStatuses returns every status in lifecycle order.
func AllStatuses() []Status {
	return []Status{
		StatusPending,
		StatusConfirmed,
		StatusScheduled,
		StatusPickedUp,
		StatusInTransit,
		StatusDelivered,
		StatusCompleted,
	}
}
