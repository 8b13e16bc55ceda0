package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/CyberwizD/Distributed-Notification-System/services/push_demo/internal/models"
	"github.com/CyberwizD/Distributed-Notification-System/services/push_demo/pkg/metrics"
)

var (
	ErrUnsupportedEnvironment = errors.New("must use physical device for push notifications")
	ErrPermissionDenied       = errors.New("failed to get push token for push notification")
	ErrMissingProjectID       = errors.New("project ID not found")
	ErrAlreadyRequested       = errors.New("push token already requested")
)

const (
	msgPhysicalDevice = "Must use physical device for Push Notifications"
	msgPermission     = "Failed to get push token for push notification!"
	msgSending        = "Sending Push Notification..."
)

// Capabilities bundles what the device runtime provides to the client.
type Capabilities struct {
	Device      Device
	Permissions Permissions
	Tokens      TokenIssuer
	Channels    ChannelConfigurer
	Events      EventSource
	UI          UI
	Presenter   Presenter
}

// NotificationClient acquires a push token, surfaces incoming notifications
// and sends the test message on demand.
type NotificationClient struct {
	caps     Capabilities
	sender   PushSender
	build    ProjectIDResolver
	handler  models.HandlerConfig
	view     *View
	metrics  *metrics.Metrics
	logger   *slog.Logger
	platform string

	requested atomic.Bool

	mu      sync.Mutex
	subs    []Subscription
	mounted bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewNotificationClient(
	caps Capabilities,
	sender PushSender,
	build ProjectIDResolver,
	handler models.HandlerConfig,
	metrics *metrics.Metrics,
	logger *slog.Logger,
) *NotificationClient {
	platform, _ := models.NormalizePlatform(caps.Device.Platform())
	return &NotificationClient{
		caps:     caps,
		sender:   sender,
		build:    build,
		handler:  handler,
		view:     NewView(),
		metrics:  metrics,
		logger:   logger,
		platform: platform,
	}
}

// View exposes the state the screen renders.
func (c *NotificationClient) View() *View {
	return c.view
}

// Mount subscribes both listeners and starts token acquisition in the
// background. The acquisition result only ever lands in the view.
func (c *NotificationClient) Mount(ctx context.Context) error {
	c.mu.Lock()
	if c.mounted {
		c.mu.Unlock()
		return errors.New("notification client already mounted")
	}
	c.mounted = true
	ctx, c.cancel = context.WithCancel(ctx)
	c.mu.Unlock()

	c.logger.Info("registering for push notifications")
	c.Subscribe()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		token, err := c.AcquireToken(ctx)
		if err != nil {
			c.logger.Warn("push token not acquired", slog.Any("error", err))
			return
		}
		c.logger.Info("push token ready", slog.String("token", token))
	}()
	return nil
}

// Unmount releases every listener exactly once and stops the pending acquisition.
func (c *NotificationClient) Unmount() {
	c.mu.Lock()
	subs := c.subs
	c.subs = nil
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()

	for _, sub := range subs {
		sub.Remove()
	}
	if cancel != nil {
		cancel()
	}
	c.wg.Wait()
}

// Subscribe registers the received and response listeners. They stay active
// until Unmount.
func (c *NotificationClient) Subscribe() {
	received := c.caps.Events.AddReceivedListener(c.handleReceived)
	response := c.caps.Events.AddResponseListener(c.handleResponse)

	c.mu.Lock()
	c.subs = append(c.subs, received, response)
	c.mu.Unlock()
}

func (c *NotificationClient) handleReceived(n models.ReceivedNotification) {
	c.view.setNotification(n)
	c.metrics.IncReceived()
	c.logger.Info("notification received",
		slog.String("identifier", n.Identifier),
		slog.String("title", n.Title),
	)
	if c.caps.Presenter != nil {
		c.caps.Presenter.Present(n, c.handler.ShouldShowAlert, c.handler.ShouldPlaySound, c.handler.ShouldSetBadge)
	}
}

func (c *NotificationClient) handleResponse(r models.NotificationResponse) {
	c.metrics.IncResponse()
	c.logger.Info("notification response",
		slog.String("action", r.ActionIdentifier),
		slog.String("identifier", r.Notification.Identifier),
		slog.String("title", r.Notification.Title),
	)
}

// AcquireToken runs the registration flow once. Environment and permission
// failures alert the user and return an error with no token. Project id and
// issuance failures degrade: the error text is returned, and shown, in place
// of the token.
func (c *NotificationClient) AcquireToken(ctx context.Context) (string, error) {
	if !c.requested.CompareAndSwap(false, true) {
		return "", ErrAlreadyRequested
	}
	c.view.setToken("", models.TokenPending)

	if models.UsesChannels(c.platform) {
		if err := c.caps.Channels.SetNotificationChannel(ctx, models.DefaultChannelID, models.DefaultChannel()); err != nil {
			return c.abort("error", fmt.Errorf("configure default channel: %w", err))
		}
	}

	if !c.caps.Device.IsDevice() {
		c.caps.UI.Alert(msgPhysicalDevice)
		return c.abort("unsupported", ErrUnsupportedEnvironment)
	}

	status, err := c.caps.Permissions.GetPermissions(ctx)
	if err != nil {
		return c.abort("error", fmt.Errorf("get permissions: %w", err))
	}
	if !status.Granted() {
		status, err = c.caps.Permissions.RequestPermissions(ctx)
		if err != nil {
			return c.abort("error", fmt.Errorf("request permissions: %w", err))
		}
	}
	if !status.Granted() {
		c.caps.UI.Alert(msgPermission)
		if c.platform == models.PlatformAndroid {
			c.caps.UI.Toast(msgPermission, models.ToastLong)
		}
		return c.abort("denied", ErrPermissionDenied)
	}

	projectID, ok := c.build.ResolveProjectID()
	if !ok {
		return c.degrade(ErrMissingProjectID), nil
	}

	token, err := c.caps.Tokens.GetPushToken(ctx, projectID)
	if err != nil {
		return c.degrade(err), nil
	}

	c.view.setToken(token, models.TokenSet)
	c.metrics.IncTokenOutcome("set")
	c.logger.Info("push token issued", slog.String("project_id", projectID), slog.String("token", token))
	return token, nil
}

func (c *NotificationClient) abort(outcome string, err error) (string, error) {
	c.view.setToken("", models.TokenUnset)
	c.metrics.IncTokenOutcome(outcome)
	return "", err
}

func (c *NotificationClient) degrade(err error) string {
	text := err.Error()
	if text == "" {
		text = "push token unavailable"
	}
	c.view.setToken(text, models.TokenDegraded)
	c.metrics.IncTokenOutcome("degraded")
	c.logger.Warn("push token degraded", slog.String("error", text))
	return text
}

// SendTestNotification posts the fixed test message to token without
// validating it. Delivery failures are swallowed here and only logged.
func (c *NotificationClient) SendTestNotification(ctx context.Context, token string) {
	c.caps.UI.Toast(msgSending, models.ToastShort)
	c.logger.Info("sending push notification", slog.String("to", token))

	if err := c.sender.Send(ctx, models.TestMessage(token)); err != nil {
		c.metrics.IncSend("failed")
		c.logger.Warn("push relay delivery failed", slog.String("to", token), slog.Any("error", err))
		return
	}
	c.metrics.IncSend("sent")
}

// SendToCurrentToken sends to whatever value the view holds right now.
func (c *NotificationClient) SendToCurrentToken(ctx context.Context) {
	c.SendTestNotification(ctx, c.view.Token().Value)
}
