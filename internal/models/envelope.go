package models

const (
	EventReceived = "received"
	EventResponse = "response"
)

// EventEnvelope is the message the device event stream carries.
type EventEnvelope struct {
	Type         string                `json:"type"`
	Notification *ReceivedNotification `json:"notification,omitempty"`
	Response     *NotificationResponse `json:"response,omitempty"`
}
