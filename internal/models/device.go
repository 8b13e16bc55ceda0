package models

import "strings"

const (
	PlatformAndroid = "android"
	PlatformIOS     = "ios"
	PlatformWeb     = "web"
)

// NormalizePlatform lower-cases a platform name and reports whether it is known.
func NormalizePlatform(platform string) (string, bool) {
	p := strings.ToLower(strings.TrimSpace(platform))
	switch p {
	case PlatformAndroid, PlatformIOS, PlatformWeb:
		return p, true
	default:
		return p, false
	}
}

// UsesChannels reports whether the platform groups notifications into channels.
func UsesChannels(platform string) bool {
	p, _ := NormalizePlatform(platform)
	return p == PlatformAndroid
}

// Importance levels for a notification channel.
type Importance int

const (
	ImportanceDefault Importance = 3
	ImportanceHigh    Importance = 4
	ImportanceMax     Importance = 5
)

// Channel configures how notifications posted to it behave on the device.
type Channel struct {
	Name             string     `json:"name"`
	Importance       Importance `json:"importance"`
	VibrationPattern []int      `json:"vibration_pattern,omitempty"`
	LightColor       string     `json:"light_color,omitempty"`
}

// DefaultChannelID is the channel both registration and the test message use.
const DefaultChannelID = "default"

// DefaultChannel returns the channel registered before asking for a token.
func DefaultChannel() Channel {
	return Channel{
		Name:             DefaultChannelID,
		Importance:       ImportanceMax,
		VibrationPattern: []int{0, 250, 250, 250},
		LightColor:       "#FF231F7C",
	}
}

// ToastLength controls how long a toast stays on screen.
type ToastLength int

const (
	ToastShort ToastLength = iota
	ToastLong
)

func (l ToastLength) String() string {
	if l == ToastLong {
		return "long"
	}
	return "short"
}
