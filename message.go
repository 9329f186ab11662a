package pushover

import (
	"encoding/json"
	"strings"
)

// Message is a text-only notification sent with [Client.SendMessage].
//
// Build one with [MessageBuilder]; a hand-assembled Message is sent as is and
// left to the API to judge.
type Message struct {
	// AppToken is the application API token, serialized as "token".
	AppToken string
	// UserKey is the user or group key, serialized as "user".
	UserKey string
	Message string

	Title    string
	URL      string
	URLTitle string
	// Priority is nil when the API default applies.
	Priority *Priority
	Sound    Sound
	// Timestamp is a unix time in seconds; zero means "when received".
	Timestamp int64
	// Devices limits delivery to the named devices.
	Devices []string
	// TTL is a lifetime in seconds after which the message is deleted; zero means none.
	TTL int
	// Emergency is non-nil only when Priority is PriorityEmergency.
	Emergency *Emergency
}

type messagePayload struct {
	Token     string    `json:"token"`
	User      string    `json:"user"`
	Message   string    `json:"message"`
	Title     string    `json:"title,omitempty"`
	URL       string    `json:"url,omitempty"`
	URLTitle  string    `json:"url_title,omitempty"`
	Priority  *Priority `json:"priority,omitempty"`
	Sound     Sound     `json:"sound,omitempty"`
	Timestamp int64     `json:"timestamp,omitempty"`
	Device    string    `json:"device,omitempty"`
	TTL       int       `json:"ttl,omitempty"`
	Retry     int       `json:"retry,omitempty"`
	Expire    int       `json:"expire,omitempty"`
}

// MarshalJSON encodes the message in the messages endpoint's field names,
// omitting every unset optional field.
func (m Message) MarshalJSON() ([]byte, error) {
	payload := messagePayload{
		Token:     m.AppToken,
		User:      m.UserKey,
		Message:   m.Message,
		Title:     m.Title,
		URL:       m.URL,
		URLTitle:  m.URLTitle,
		Priority:  m.Priority,
		Sound:     m.Sound,
		Timestamp: m.Timestamp,
		Device:    joinDevices(m.Devices),
		TTL:       m.TTL,
	}

	if m.Emergency != nil && m.Priority != nil && *m.Priority == PriorityEmergency {
		payload.Retry = m.Emergency.Retry
		payload.Expire = m.Emergency.Expire
	}

	return json.Marshal(payload)
}

func joinDevices(devices []string) string {
	return strings.Join(devices, ",")
}
