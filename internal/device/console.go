package device

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/CyberwizD/Distributed-Notification-System/services/push_demo/internal/models"
)

// Console renders alerts, toasts and notification banners as terminal lines.
type Console struct {
	mu     sync.Mutex
	out    io.Writer
	logger *slog.Logger
	badge  int
}

func NewConsole(out io.Writer, logger *slog.Logger) *Console {
	return &Console{out: out, logger: logger}
}

func (c *Console) Alert(message string) {
	c.printf("[alert] %s\n", message)
	c.logger.Warn("alert shown", slog.String("message", message))
}

func (c *Console) Toast(message string, length models.ToastLength) {
	c.printf("[toast:%s] %s\n", length, message)
}

func (c *Console) Present(n models.ReceivedNotification, showAlert, playSound, setBadge bool) {
	if setBadge {
		c.mu.Lock()
		c.badge++
		c.mu.Unlock()
	}
	if playSound {
		c.printf("\a")
	}
	if showAlert {
		c.printf("[notification] %s: %s\n", n.Title, n.Body)
	}
}

// Badge is the number shown on the app icon.
func (c *Console) Badge() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.badge
}

func (c *Console) printf(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

// Channels records notification channels by id.
type Channels struct {
	mu       sync.Mutex
	channels map[string]models.Channel
	logger   *slog.Logger
}

func NewChannels(logger *slog.Logger) *Channels {
	return &Channels{channels: map[string]models.Channel{}, logger: logger}
}

func (c *Channels) SetNotificationChannel(_ context.Context, id string, channel models.Channel) error {
	if id == "" {
		return fmt.Errorf("channel id is required")
	}
	c.mu.Lock()
	c.channels[id] = channel
	c.mu.Unlock()
	c.logger.Debug("notification channel set", slog.String("id", id), slog.Int("importance", int(channel.Importance)))
	return nil
}

func (c *Channels) Get(id string) (models.Channel, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch, ok := c.channels[id]
	return ch, ok
}
