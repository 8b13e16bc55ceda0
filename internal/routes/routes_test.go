package routes

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/CyberwizD/Distributed-Notification-System/services/push_demo/internal/consumer"
	"github.com/CyberwizD/Distributed-Notification-System/services/push_demo/internal/device"
	"github.com/CyberwizD/Distributed-Notification-System/services/push_demo/internal/models"
	"github.com/CyberwizD/Distributed-Notification-System/services/push_demo/internal/services"
	"github.com/CyberwizD/Distributed-Notification-System/services/push_demo/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	sent []models.PushMessage
}

func (s *recordingSender) Send(_ context.Context, msg models.PushMessage) error {
	s.sent = append(s.sent, msg)
	return nil
}

type project string

func (p project) ResolveProjectID() (string, bool) { return string(p), p != "" }

type fixture struct {
	client    *services.NotificationClient
	listeners *consumer.Listeners
	sender    *recordingSender
	router    http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	prompter, err := device.NewPrompter("grant", nil, nil)
	require.NoError(t, err)

	listeners := consumer.NewListeners()
	console := device.NewConsole(io.Discard, log)
	sender := &recordingSender{}
	m := metrics.New()
	client := services.NewNotificationClient(services.Capabilities{
		Device:      device.NewInfo(models.PlatformAndroid, true),
		Permissions: device.NewPermissionManager(device.NewMemoryGrants(), prompter, "inst-1", "push_demo", log),
		Tokens:      device.NewIssuer(device.NewMemoryRegistry(), "inst-1", log),
		Channels:    device.NewChannels(log),
		Events:      listeners,
		UI:          console,
		Presenter:   console,
	}, sender, project("proj-1"), models.DefaultHandlerConfig(), m, log)

	return &fixture{
		client:    client,
		listeners: listeners,
		sender:    sender,
		router:    NewRouter(client, m, time.Now()),
	}
}

func (f *fixture) do(method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestScreenEndToEnd(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.client.Mount(context.Background()))
	defer f.client.Unmount()

	require.Eventually(t, func() bool {
		return f.client.View().Token().State == models.TokenSet
	}, time.Second, 5*time.Millisecond)
	token := f.client.View().Token().Value

	f.listeners.EmitReceived(models.ReceivedNotification{
		Title: "T",
		Body:  "B",
		Data:  map[string]interface{}{"x": 1},
	})

	rec := f.do(http.MethodGet, "/state")
	require.Equal(t, http.StatusOK, rec.Code)
	var snap services.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, token, snap.Token.Value)
	require.NotNil(t, snap.Notification)
	assert.Equal(t, "T", snap.Notification.Title)
	assert.Equal(t, "B", snap.Notification.Body)

	page := f.do(http.MethodGet, "/").Body.String()
	assert.Contains(t, page, "Your Expo push token:\n"+token+"\n")
	assert.Contains(t, page, "Title: T\n")
	assert.Contains(t, page, "Body: B\n")
	assert.Contains(t, page, `Data: {"x":1}`)

	rec = f.do(http.MethodPost, "/send")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, f.sender.sent, 1)
	assert.Equal(t, token, f.sender.sent[0].To)
	assert.Equal(t, "default", f.sender.sent[0].ChannelID)
}

func TestUnmountLeavesNoListeners(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.client.Mount(context.Background()))
	assert.Equal(t, 2, f.listeners.Active())

	f.client.Unmount()
	assert.Zero(t, f.listeners.Active())
}

func TestRenderEmptyScreen(t *testing.T) {
	page := Render(services.Snapshot{Token: models.PushToken{State: models.TokenUnset}})
	assert.Equal(t,
		"Your Expo push token:\n\n\nTitle: \nBody: \nData: \n\n[ Press to Send Notification ]  POST /send\n",
		page)
}

func TestHealthAndMetrics(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)

	f.do(http.MethodPost, "/send")
	rec = f.do(http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `push_demo_test_sends_total{result="sent"} 1`)
}
