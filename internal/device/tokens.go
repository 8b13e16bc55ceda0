package device

import (
	"context"
	"encoding/base64"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Registry keeps one token per project and installation.
type Registry interface {
	Register(ctx context.Context, projectID, installationID, candidate string) (string, error)
}

// MemoryRegistry is a Registry living only as long as the process.
type MemoryRegistry struct {
	mu     sync.Mutex
	tokens map[string]string
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{tokens: map[string]string{}}
}

func (r *MemoryRegistry) Register(_ context.Context, projectID, installationID, candidate string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := projectID + ":" + installationID
	if existing, ok := r.tokens[key]; ok {
		return existing, nil
	}
	r.tokens[key] = candidate
	return candidate, nil
}

// Issuer plays the managed push service handing out Expo push tokens.
type Issuer struct {
	registry       Registry
	installationID string
	logger         *slog.Logger
}

func NewIssuer(registry Registry, installationID string, logger *slog.Logger) *Issuer {
	return &Issuer{
		registry:       registry,
		installationID: installationID,
		logger:         logger,
	}
}

func (i *Issuer) GetPushToken(ctx context.Context, projectID string) (string, error) {
	token, err := i.registry.Register(ctx, projectID, i.installationID, newPushToken())
	if err != nil {
		return "", err
	}
	i.logger.Debug("push token registered",
		slog.String("project_id", projectID),
		slog.String("installation_id", i.installationID),
	)
	return token, nil
}

func newPushToken() string {
	id := uuid.New()
	return "ExponentPushToken[" + base64.RawURLEncoding.EncodeToString(id[:]) + "]"
}
