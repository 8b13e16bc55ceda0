// Package device emulates the runtime a mobile app gets from its phone: the
// hardware description, the permission dialog, notification channels, the
// managed push token service and on-screen alerts.
package device

import (
	"fmt"

	"github.com/CyberwizD/Distributed-Notification-System/services/push_demo/internal/models"
	"github.com/google/uuid"
)

// Info describes the emulated hardware.
type Info struct {
	platform string
	physical bool
}

func NewInfo(platform string, physical bool) Info {
	p, _ := models.NormalizePlatform(platform)
	return Info{platform: p, physical: physical}
}

func (i Info) IsDevice() bool   { return i.physical }
func (i Info) Platform() string { return i.platform }

// InstallationID returns raw when it is a valid UUID and a fresh one when raw is empty.
func InstallationID(raw string) (string, error) {
	if raw == "" {
		return uuid.NewString(), nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid installation id %q: %w", raw, err)
	}
	return id.String(), nil
}
