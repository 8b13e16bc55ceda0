package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/CyberwizD/Distributed-Notification-System/services/push_demo/internal/models"
)

// RelaySender posts messages to the hosted push relay.
type RelaySender struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

func NewRelaySender(endpoint string, timeout time.Duration, logger *slog.Logger) *RelaySender {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RelaySender{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Send issues exactly one POST. The relay's answer is not parsed; only
// transport errors and error statuses are reported.
func (r *RelaySender) Send(ctx context.Context, msg models.PushMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip, deflate")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("relay: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	r.logger.Debug("relay answered", slog.Int("status", resp.StatusCode))
	if resp.StatusCode >= 400 {
		return fmt.Errorf("relay: received status %d", resp.StatusCode)
	}
	return nil
}
