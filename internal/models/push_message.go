package models

const (
	TestMessageTitle = "My firsth push notification"
	TestMessageBody  = "This is the first push notification thru expo"
)

// PushMessage is the body accepted by the push relay.
type PushMessage struct {
	To        string `json:"to"`
	Sound     string `json:"sound"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	ChannelID string `json:"channelId"`
}

// TestMessage builds the fixed test message addressed to token as-is.
func TestMessage(token string) PushMessage {
	return PushMessage{
		To:        token,
		Sound:     "default",
		Title:     TestMessageTitle,
		Body:      TestMessageBody,
		ChannelID: DefaultChannelID,
	}
}
