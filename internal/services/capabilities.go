package services

import (
	"context"

	"github.com/CyberwizD/Distributed-Notification-System/services/push_demo/internal/models"
)

// Device describes the hardware the app runs on.
type Device interface {
	IsDevice() bool
	Platform() string
}

// Permissions queries and requests the notification permission.
type Permissions interface {
	GetPermissions(ctx context.Context) (models.PermissionStatus, error)
	RequestPermissions(ctx context.Context) (models.PermissionStatus, error)
}

// TokenIssuer obtains a push token scoped to a project from the managed push service.
type TokenIssuer interface {
	GetPushToken(ctx context.Context, projectID string) (string, error)
}

// ChannelConfigurer creates or updates a notification channel.
type ChannelConfigurer interface {
	SetNotificationChannel(ctx context.Context, id string, channel models.Channel) error
}

// Subscription releases a registered listener.
type Subscription interface {
	Remove()
}

// EventSource delivers notification events to listeners.
type EventSource interface {
	AddReceivedListener(fn func(models.ReceivedNotification)) Subscription
	AddResponseListener(fn func(models.NotificationResponse)) Subscription
}

// UI surfaces blocking alerts and transient toasts to the user.
type UI interface {
	Alert(message string)
	Toast(message string, length models.ToastLength)
}

// Presenter displays a notification received in the foreground.
type Presenter interface {
	Present(notification models.ReceivedNotification, showAlert, playSound, setBadge bool)
}

// PushSender hands a message to the push relay.
type PushSender interface {
	Send(ctx context.Context, msg models.PushMessage) error
}

// ProjectIDResolver yields the project identifier from build configuration.
type ProjectIDResolver interface {
	ResolveProjectID() (string, bool)
}
