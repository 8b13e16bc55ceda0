package services

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/CyberwizD/Distributed-Notification-System/services/push_demo/internal/models"
	"github.com/CyberwizD/Distributed-Notification-System/services/push_demo/pkg/metrics"
)

type fakeDevice struct {
	physical bool
	platform string
}

func (d fakeDevice) IsDevice() bool   { return d.physical }
func (d fakeDevice) Platform() string { return d.platform }

type fakePermissions struct {
	mu       sync.Mutex
	current  models.PermissionStatus
	answer   models.PermissionStatus
	gets     int
	requests int
}

func (p *fakePermissions) GetPermissions(context.Context) (models.PermissionStatus, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gets++
	return p.current, nil
}

func (p *fakePermissions) RequestPermissions(context.Context) (models.PermissionStatus, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests++
	p.current = p.answer
	return p.answer, nil
}

type fakeIssuer struct {
	mu         sync.Mutex
	token      string
	err        error
	projectIDs []string
}

func (i *fakeIssuer) GetPushToken(_ context.Context, projectID string) (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.projectIDs = append(i.projectIDs, projectID)
	return i.token, i.err
}

func (i *fakeIssuer) calls() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.projectIDs)
}

type fakeChannels struct {
	mu       sync.Mutex
	channels map[string]models.Channel
}

func (c *fakeChannels) SetNotificationChannel(_ context.Context, id string, ch models.Channel) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.channels == nil {
		c.channels = map[string]models.Channel{}
	}
	c.channels[id] = ch
	return nil
}

type fakeSub struct {
	mu      sync.Mutex
	removed int
}

func (s *fakeSub) Remove() {
	s.mu.Lock()
	s.removed++
	s.mu.Unlock()
}

func (s *fakeSub) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removed
}

type fakeEvents struct {
	mu        sync.Mutex
	received  []func(models.ReceivedNotification)
	responses []func(models.NotificationResponse)
	subs      []*fakeSub
}

func (e *fakeEvents) AddReceivedListener(fn func(models.ReceivedNotification)) Subscription {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.received = append(e.received, fn)
	sub := &fakeSub{}
	e.subs = append(e.subs, sub)
	return sub
}

func (e *fakeEvents) AddResponseListener(fn func(models.NotificationResponse)) Subscription {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.responses = append(e.responses, fn)
	sub := &fakeSub{}
	e.subs = append(e.subs, sub)
	return sub
}

func (e *fakeEvents) emitReceived(n models.ReceivedNotification) {
	e.mu.Lock()
	listeners := append([]func(models.ReceivedNotification){}, e.received...)
	e.mu.Unlock()
	for _, fn := range listeners {
		fn(n)
	}
}

func (e *fakeEvents) emitResponse(r models.NotificationResponse) {
	e.mu.Lock()
	listeners := append([]func(models.NotificationResponse){}, e.responses...)
	e.mu.Unlock()
	for _, fn := range listeners {
		fn(r)
	}
}

type fakeUI struct {
	mu     sync.Mutex
	alerts []string
	toasts []string
}

func (u *fakeUI) Alert(message string) {
	u.mu.Lock()
	u.alerts = append(u.alerts, message)
	u.mu.Unlock()
}

func (u *fakeUI) Toast(message string, length models.ToastLength) {
	u.mu.Lock()
	u.toasts = append(u.toasts, message+"|"+length.String())
	u.mu.Unlock()
}

type presented struct {
	notification models.ReceivedNotification
	alert        bool
	sound        bool
	badge        bool
}

type fakePresenter struct {
	mu    sync.Mutex
	shown []presented
}

func (p *fakePresenter) Present(n models.ReceivedNotification, alert, sound, badge bool) {
	p.mu.Lock()
	p.shown = append(p.shown, presented{n, alert, sound, badge})
	p.mu.Unlock()
}

type fakeSender struct {
	mu   sync.Mutex
	sent []models.PushMessage
	err  error
}

func (s *fakeSender) Send(_ context.Context, msg models.PushMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return s.err
}

type staticProject string

func (p staticProject) ResolveProjectID() (string, bool) {
	return string(p), p != ""
}

type harness struct {
	device    fakeDevice
	perms     *fakePermissions
	issuer    *fakeIssuer
	channels  *fakeChannels
	events    *fakeEvents
	ui        *fakeUI
	presenter *fakePresenter
	sender    *fakeSender
	metrics   *metrics.Metrics
}

func newHarness() *harness {
	return &harness{
		device:    fakeDevice{physical: true, platform: models.PlatformAndroid},
		perms:     &fakePermissions{current: models.PermissionGranted, answer: models.PermissionGranted},
		issuer:    &fakeIssuer{token: "TOK123"},
		channels:  &fakeChannels{},
		events:    &fakeEvents{},
		ui:        &fakeUI{},
		presenter: &fakePresenter{},
		sender:    &fakeSender{},
		metrics:   metrics.New(),
	}
}

func (h *harness) client(project string) *NotificationClient {
	return NewNotificationClient(Capabilities{
		Device:      h.device,
		Permissions: h.perms,
		Tokens:      h.issuer,
		Channels:    h.channels,
		Events:      h.events,
		UI:          h.ui,
		Presenter:   h.presenter,
	}, h.sender, staticProject(project), models.DefaultHandlerConfig(), h.metrics, discardLogger())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
