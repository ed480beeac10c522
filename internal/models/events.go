package models

import "time"

// Realtime event names exchanged with connected clients.
const (
	EventSOSAlert        = "sosAlert"
	EventSOSUpdate       = "sosUpdate"
	EventSOSAcknowledged = "sosAcknowledged"
	EventAckSOS          = "ackSos"
	EventError           = "error"
)

// AlertEvent is broadcast when a new SOS alert is stored.
type AlertEvent struct {
	ID        string    `json:"id"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// UpdateEvent is broadcast whenever the status of an alert changes.
type UpdateEvent struct {
	ID     string    `json:"id"`
	Status SOSStatus `json:"status"`
}

// AckEvent is broadcast once a volunteer acknowledgement has been persisted.
type AckEvent struct {
	SOSID       string `json:"sosId"`
	VolunteerID string `json:"volunteerId"`
}

// ErrorEvent is sent back to a single client whose inbound event was rejected.
type ErrorEvent struct {
	Msg string `json:"msg"`
}

// NewAlertEvent builds the broadcast payload for a freshly created alert.
func NewAlertEvent(sos *SOS) AlertEvent {
	return AlertEvent{
		ID:        sos.ID,
		Lat:       sos.Location.Lat(),
		Lng:       sos.Location.Lng(),
		Message:   sos.Message,
		CreatedAt: sos.CreatedAt,
	}
}
