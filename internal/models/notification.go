package models

import "encoding/json"

// ReceivedNotification is the payload of a notification delivered to the app.
type ReceivedNotification struct {
	Identifier string                 `json:"identifier,omitempty"`
	Title      string                 `json:"title"`
	Body       string                 `json:"body"`
	Data       map[string]interface{} `json:"data,omitempty"`
}

// DataJSON renders Data the way the view shows it.
func (n ReceivedNotification) DataJSON() string {
	if n.Data == nil {
		return "{}"
	}
	raw, err := json.Marshal(n.Data)
	if err != nil {
		return "{}"
	}
	return string(raw)
}

// NotificationResponse is produced when the user interacts with a notification.
type NotificationResponse struct {
	ActionIdentifier string               `json:"action_identifier"`
	Notification     ReceivedNotification `json:"notification"`
}

// HandlerConfig decides how a notification received in the foreground is presented.
type HandlerConfig struct {
	ShouldShowAlert bool
	ShouldPlaySound bool
	ShouldSetBadge  bool
}

// DefaultHandlerConfig shows the alert and plays a sound without touching the badge.
func DefaultHandlerConfig() HandlerConfig {
	return HandlerConfig{
		ShouldShowAlert: true,
		ShouldPlaySound: true,
		ShouldSetBadge:  false,
	}
}
