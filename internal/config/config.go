package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds push demo configuration loaded from the environment.
type Config struct {
	AppName               string
	LogLevel              string
	LogFormat             string
	HTTPPort              string
	BuildConfigPath       string
	ProjectID             string
	DevicePlatform        string
	IsPhysicalDevice      bool
	PermissionPrompt      string
	InstallationID        string
	RelayEndpoint         string
	RelayTimeout          time.Duration
	RedisURL              string
	TokenTTL              time.Duration
	DatabaseURL           string
	PermissionTable       string
	RabbitURL             string
	EventQueue            string
	ConnectMaxAttempts    int
	ConnectInitialBackoff time.Duration
	ConnectMaxBackoff     time.Duration
	ShowAlert             bool
	PlaySound             bool
	SetBadge              bool
}

// Load loads configuration and performs basic validation.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppName:               getEnv("APP_NAME", "push_demo"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogFormat:             getEnv("LOG_FORMAT", "text"),
		HTTPPort:              getEnv("HTTP_PORT", "8083"),
		BuildConfigPath:       getEnv("BUILD_CONFIG_PATH", "app.yaml"),
		ProjectID:             getEnv("EXPO_PROJECT_ID", ""),
		DevicePlatform:        strings.ToLower(getEnv("DEVICE_PLATFORM", "android")),
		IsPhysicalDevice:      getEnvAsBool("IS_PHYSICAL_DEVICE", true),
		PermissionPrompt:      strings.ToLower(getEnv("PERMISSION_PROMPT", "ask")),
		InstallationID:        getEnv("INSTALLATION_ID", ""),
		RelayEndpoint:         getEnv("RELAY_ENDPOINT", "https://exp.host/--/api/v2/push/send?useFcmV1=true"),
		RelayTimeout:          getEnvAsDuration("RELAY_TIMEOUT", 10*time.Second),
		RedisURL:              getEnv("REDIS_URL", ""),
		TokenTTL:              getEnvAsDuration("TOKEN_TTL", 0),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		PermissionTable:       getEnv("PERMISSION_TABLE", "permission_grants"),
		RabbitURL:             getEnv("RABBITMQ_URL", ""),
		EventQueue:            getEnv("EVENT_QUEUE", "device.events"),
		ConnectMaxAttempts:    getEnvAsInt("CONNECT_MAX_ATTEMPTS", 4),
		ConnectInitialBackoff: getEnvAsDuration("CONNECT_INITIAL_BACKOFF", time.Second),
		ConnectMaxBackoff:     getEnvAsDuration("CONNECT_MAX_BACKOFF", 15*time.Second),
		ShowAlert:             getEnvAsBool("SHOW_ALERT", true),
		PlaySound:             getEnvAsBool("PLAY_SOUND", true),
		SetBadge:              getEnvAsBool("SET_BADGE", false),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var problems []string
	switch c.DevicePlatform {
	case "android", "ios", "web":
	default:
		problems = append(problems, fmt.Sprintf("DEVICE_PLATFORM=%q", c.DevicePlatform))
	}
	switch c.PermissionPrompt {
	case "ask", "grant", "deny":
	default:
		problems = append(problems, fmt.Sprintf("PERMISSION_PROMPT=%q", c.PermissionPrompt))
	}
	if c.RelayEndpoint == "" {
		problems = append(problems, "RELAY_ENDPOINT is empty")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %v", problems)
	}
	return nil
}

func getEnv(key, def string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	return value
}

func getEnvAsInt(key string, def int) int {
	if value, ok := os.LookupEnv(key); ok {
		i, err := strconv.Atoi(value)
		if err != nil {
			log.Printf("invalid int for %s, using default %d: %v", key, def, err)
			return def
		}
		return i
	}
	return def
}

func getEnvAsBool(key string, def bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(value)
		if err != nil {
			log.Printf("invalid bool for %s, using default %t: %v", key, def, err)
			return def
		}
		return b
	}
	return def
}

func getEnvAsDuration(key string, def time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(value)
		if err != nil {
			log.Printf("invalid duration for %s, using default %s: %v", key, def, err)
			return def
		}
		return d
	}
	return def
}
