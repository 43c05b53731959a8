package amqp

import (
	"encoding/json"
	"time"
)

const (
	EventLogin  = "login"
	EventLogout = "logout"
)

// ActivityMessage records one session event. Consumers only need the event
// name and the session id; the login name is included for the login event
// so audit trails do not have to resolve it.
type ActivityMessage struct {
	Event     string    `json:"event"`
	SessionID string    `json:"session_id"`
	Login     string    `json:"login,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLoginMessage(sessionID, login string) *ActivityMessage {
	return &ActivityMessage{
		Event:     EventLogin,
		SessionID: sessionID,
		Login:     login,
		Timestamp: time.Now(),
	}
}

func NewLogoutMessage(sessionID string) *ActivityMessage {
	return &ActivityMessage{
		Event:     EventLogout,
		SessionID: sessionID,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ActivityMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ActivityMessageFromJSON creates a message from JSON bytes
func ActivityMessageFromJSON(data []byte) (*ActivityMessage, error) {
	var msg ActivityMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
