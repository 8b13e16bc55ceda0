package routes

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/CyberwizD/Distributed-Notification-System/services/push_demo/internal/services"
	"github.com/CyberwizD/Distributed-Notification-System/services/push_demo/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// Screen is the part of the notification client the view surface drives.
type Screen interface {
	View() *services.View
	SendToCurrentToken(ctx context.Context)
}

// NewRouter wires the view, the send action and the health/metrics endpoints.
func NewRouter(screen Screen, metrics *metrics.Metrics, started time.Time) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, Render(screen.View().Snapshot()))
	})
	r.GET("/state", func(c *gin.Context) {
		c.JSON(http.StatusOK, screen.View().Snapshot())
	})
	r.POST("/send", func(c *gin.Context) {
		screen.SendToCurrentToken(c.Request.Context())
		c.JSON(http.StatusAccepted, gin.H{
			"success": true,
			"message": "sending push notification",
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "push demo healthy",
			"meta": gin.H{
				"uptime_seconds": int(time.Since(started).Seconds()),
				"timestamp":      time.Now().UTC(),
			},
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	return r
}

// Render lays the snapshot out as the app screen.
func Render(s services.Snapshot) string {
	var title, body, data string
	if s.Notification != nil {
		title = s.Notification.Title
		body = s.Notification.Body
		data = s.Notification.DataJSON()
	}

	var b strings.Builder
	b.WriteString("Your Expo push token:\n")
	fmt.Fprintf(&b, "%s\n\n", s.Token.Value)
	fmt.Fprintf(&b, "Title: %s\n", title)
	fmt.Fprintf(&b, "Body: %s\n", body)
	fmt.Fprintf(&b, "Data: %s\n\n", data)
	b.WriteString("[ Press to Send Notification ]  POST /send\n")
	return b.String()
}
