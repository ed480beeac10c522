package models

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// SOSStatus is the lifecycle state of an SOS alert.
type SOSStatus string

// Supported SOS statuses.
const (
	SOSStatusOpen         SOSStatus = "open"
	SOSStatusAcknowledged SOSStatus = "acknowledged"
	SOSStatusClosed       SOSStatus = "closed"
)

// ErrUnknownStatus is returned by ParseSOSStatus for values outside the enumeration.
var ErrUnknownStatus = errors.New("unknown sos status")

// sosTransitions lists, for each status, the statuses it may move to.
var sosTransitions = map[SOSStatus][]SOSStatus{
	SOSStatusOpen:         {SOSStatusAcknowledged, SOSStatusClosed},
	SOSStatusAcknowledged: {SOSStatusOpen, SOSStatusClosed},
	SOSStatusClosed:       {},
}

// ParseSOSStatus converts a raw string into an SOSStatus.
func ParseSOSStatus(raw string) (SOSStatus, error) {
	status := SOSStatus(raw)
	if _, ok := sosTransitions[status]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
	}

	return status, nil
}

// CanTransitionTo reports whether an alert in status s may be moved to next.
// Setting the current status again is always allowed.
func (s SOSStatus) CanTransitionTo(next SOSStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range sosTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// AllowedFrom returns the statuses an alert may hold to be moved to s, s itself included.
func (s SOSStatus) AllowedFrom() []SOSStatus {
	from := []SOSStatus{s}
	for status, targets := range sosTransitions {
		if status != s && slices.Contains(targets, s) {
			from = append(from, status)
		}
	}
	slices.Sort(from)

	return from
}

// SOS is an emergency alert submitted by a (possibly anonymous) user.
type SOS struct {
	ID             string         `json:"_id"`
	UserID         *string        `json:"userId"`
	Message        string         `json:"message"`
	Location       Point          `json:"location"`
	Status         SOSStatus      `json:"status"`
	Metadata       map[string]any `json:"metadata"`
	AcknowledgedBy *string        `json:"acknowledgedBy,omitempty"`
	AcknowledgedAt *time.Time     `json:"acknowledgedAt,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
}
