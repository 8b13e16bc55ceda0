package device

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/CyberwizD/Distributed-Notification-System/services/push_demo/internal/models"
)

// GrantStore persists the permission answer per installation.
type GrantStore interface {
	Load(ctx context.Context, installationID string) (string, bool, error)
	Save(ctx context.Context, installationID, status string) error
}

// MemoryGrants is a GrantStore that forgets everything on restart.
type MemoryGrants struct {
	mu     sync.Mutex
	grants map[string]string
}

func NewMemoryGrants() *MemoryGrants {
	return &MemoryGrants{grants: map[string]string{}}
}

func (m *MemoryGrants) Load(_ context.Context, installationID string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	status, ok := m.grants[installationID]
	return status, ok, nil
}

func (m *MemoryGrants) Save(_ context.Context, installationID, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.grants[installationID] = status
	return nil
}

// Prompter answers the interactive permission dialog.
type Prompter interface {
	Ask(ctx context.Context, question string) (bool, error)
}

// NewPrompter returns a prompter for mode "grant", "deny" or "ask". "ask"
// reads a y/n answer from in after writing the question to out.
func NewPrompter(mode string, in io.Reader, out io.Writer) (Prompter, error) {
	switch mode {
	case "grant":
		return fixedAnswer(true), nil
	case "deny":
		return fixedAnswer(false), nil
	case "ask":
		return &linePrompter{in: bufio.NewReader(in), out: out}, nil
	default:
		return nil, fmt.Errorf("unknown permission prompt mode %q", mode)
	}
}

type fixedAnswer bool

func (f fixedAnswer) Ask(context.Context, string) (bool, error) {
	return bool(f), nil
}

type linePrompter struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
}

func (p *linePrompter) Ask(ctx context.Context, question string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, "%s [y/N] ", question)

	type answer struct {
		line string
		err  error
	}
	done := make(chan answer, 1)
	go func() {
		line, err := p.in.ReadString('\n')
		done <- answer{line, err}
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case a := <-done:
		if a.err != nil && a.err != io.EOF {
			return false, a.err
		}
		switch strings.ToLower(strings.TrimSpace(a.line)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	}
}

// PermissionManager implements the notification permission query and dialog.
type PermissionManager struct {
	store          GrantStore
	prompter       Prompter
	installationID string
	appName        string
	logger         *slog.Logger
}

func NewPermissionManager(store GrantStore, prompter Prompter, installationID, appName string, logger *slog.Logger) *PermissionManager {
	return &PermissionManager{
		store:          store,
		prompter:       prompter,
		installationID: installationID,
		appName:        appName,
		logger:         logger,
	}
}

func (m *PermissionManager) GetPermissions(ctx context.Context) (models.PermissionStatus, error) {
	status, ok, err := m.store.Load(ctx, m.installationID)
	if err != nil {
		return models.PermissionUndetermined, fmt.Errorf("load permission: %w", err)
	}
	if !ok {
		return models.PermissionUndetermined, nil
	}
	return models.PermissionStatus(status), nil
}

// RequestPermissions shows the dialog only while the answer is undetermined,
// the way the OS stops asking once the user decided.
func (m *PermissionManager) RequestPermissions(ctx context.Context) (models.PermissionStatus, error) {
	current, err := m.GetPermissions(ctx)
	if err != nil {
		return current, err
	}
	if current != models.PermissionUndetermined {
		m.logger.Debug("permission already decided", slog.String("status", string(current)))
		return current, nil
	}

	allowed, err := m.prompter.Ask(ctx, fmt.Sprintf("Allow %q to send you notifications?", m.appName))
	if err != nil {
		return models.PermissionUndetermined, fmt.Errorf("permission prompt: %w", err)
	}
	status := models.PermissionDenied
	if allowed {
		status = models.PermissionGranted
	}
	if err := m.store.Save(ctx, m.installationID, string(status)); err != nil {
		return status, fmt.Errorf("save permission: %w", err)
	}
	m.logger.Info("permission answered", slog.String("status", string(status)))
	return status, nil
}
