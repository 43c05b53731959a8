package amqp

import "testing"

func TestActivityMessageRoundTrip(t *testing.T) {
	msg := NewLoginMessage("sid-1", "alice")

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("to json: %v", err)
	}
	got, err := ActivityMessageFromJSON(data)
	if err != nil {
		t.Fatalf("from json: %v", err)
	}
	if got.Event != EventLogin || got.SessionID != "sid-1" || got.Login != "alice" {
		t.Fatalf("round trip lost data: %+v", got)
	}
	if got.Timestamp.IsZero() {
		t.Fatalf("timestamp not set")
	}
}

func TestLogoutMessageOmitsLogin(t *testing.T) {
	data, err := NewLogoutMessage("sid-1").ToJSON()
	if err != nil {
		t.Fatalf("to json: %v", err)
	}
	got, err := ActivityMessageFromJSON(data)
	if err != nil {
		t.Fatalf("from json: %v", err)
	}
	if got.Event != EventLogout || got.Login != "" {
		t.Fatalf("logout message = %+v", got)
	}
}

func TestActivityMessageFromJSONInvalid(t *testing.T) {
	if _, err := ActivityMessageFromJSON([]byte("not json")); err == nil {
		t.Fatalf("expected error for invalid payload")
	}
}
