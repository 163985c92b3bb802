package sse

import (
	"testing"
	"time"

	"github.com/qrally/qrally/internal/model"
	"github.com/qrally/qrally/internal/testutil"
)

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "single line data",
			eventName: "scan_started",
			data:      `{"decoded_text":"CP01"}`,
			expected:  "event: scan_started\ndata: {\"decoded_text\":\"CP01\"}\n\n",
		},
		{
			name:      "multi-line data",
			eventName: "scan_succeeded",
			data:      "line1\nline2",
			expected:  "event: scan_succeeded\ndata: line1\ndata: line2\n\n",
		},
		{
			name:      "empty data",
			eventName: "ping",
			data:      "",
			expected:  "event: ping\ndata: \n\n",
		},
		{
			name:      "data with carriage returns",
			eventName: "test",
			data:      "line1\r\nline2",
			expected:  "event: test\ndata: line1\ndata: line2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatSSEMessage(tt.eventName, tt.data)
			if string(result) != tt.expected {
				t.Errorf("formatSSEMessage(%q, %q)\ngot:  %q\nwant: %q",
					tt.eventName, tt.data, string(result), tt.expected)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "single line",
			input:    "hello",
			expected: []string{"hello"},
		},
		{
			name:     "two lines",
			input:    "line1\nline2",
			expected: []string{"line1", "line2"},
		},
		{
			name:     "trailing newline",
			input:    "line1\n",
			expected: []string{"line1"},
		},
		{
			name:     "empty string",
			input:    "",
			expected: []string{""},
		},
		{
			name:     "crlf line endings",
			input:    "line1\r\nline2\r\n",
			expected: []string{"line1", "line2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitLines(tt.input)
			if len(result) != len(tt.expected) {
				t.Errorf("splitLines(%q) returned %d lines, want %d",
					tt.input, len(result), len(tt.expected))
				return
			}
			for i, line := range result {
				if line != tt.expected[i] {
					t.Errorf("splitLines(%q)[%d] = %q, want %q",
						tt.input, i, line, tt.expected[i])
				}
			}
		})
	}
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := NewHub("user1", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	// Create a client
	client := NewClient(hub, "user1")
	hub.Register(client)

	// Give the hub time to process registration
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 1 {
		t.Errorf("ClientCount() = %d, want 1", hub.ClientCount())
	}

	// Broadcast a message
	hub.BroadcastEvent("scan_started", "test data")

	// Client should receive the message
	select {
	case msg := <-client.send:
		expected := "event: scan_started\ndata: test data\n\n"
		if string(msg) != expected {
			t.Errorf("client received %q, want %q", string(msg), expected)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("client did not receive message")
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub("user1", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, "user1")
	hub.Register(client)

	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 1 {
		t.Errorf("ClientCount() = %d, want 1", hub.ClientCount())
	}

	hub.Unregister(client)
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d after unregister, want 0", hub.ClientCount())
	}
}

func TestHub_BroadcastToMultipleClients(t *testing.T) {
	hub := NewHub("user1", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	// One user with several open tabs
	client1 := NewClient(hub, "user1")
	client2 := NewClient(hub, "user1")
	client3 := NewClient(hub, "user1")

	hub.Register(client1)
	hub.Register(client2)
	hub.Register(client3)

	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 3 {
		t.Errorf("ClientCount() = %d, want 3", hub.ClientCount())
	}

	// Broadcast a message
	hub.BroadcastEvent("update", "data")

	// All clients should receive the message
	for i, client := range []*Client{client1, client2, client3} {
		select {
		case msg := <-client.send:
			expected := "event: update\ndata: data\n\n"
			if string(msg) != expected {
				t.Errorf("client %d received %q, want %q", i+1, string(msg), expected)
			}
		case <-time.After(100 * time.Millisecond):
			t.Errorf("client %d did not receive message", i+1)
		}
	}
}

func TestHubManager_GetOrCreateHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	// Get or create a hub
	hub1 := manager.GetOrCreateHub("alice")
	if hub1 == nil {
		t.Fatal("GetOrCreateHub returned nil")
	}

	// Getting again should return the same hub
	hub2 := manager.GetOrCreateHub("alice")
	if hub1 != hub2 {
		t.Error("GetOrCreateHub returned different hub for same user")
	}

	// Different user should return different hub
	hub3 := manager.GetOrCreateHub("bob")
	if hub3 == hub1 {
		t.Error("GetOrCreateHub returned same hub for different user")
	}

	// Clean up
	manager.RemoveHub("alice")
	manager.RemoveHub("bob")
}

func TestHubManager_GetHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	// GetHub on non-existent hub should return nil
	hub := manager.GetHub("nobody")
	if hub != nil {
		t.Error("GetHub returned non-nil for non-existent hub")
	}

	// Create a hub then get it
	created := manager.GetOrCreateHub("alice")
	got := manager.GetHub("alice")
	if got != created {
		t.Error("GetHub returned different hub than GetOrCreateHub")
	}

	manager.RemoveHub("alice")
}

func TestHubManager_RemoveHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	manager.GetOrCreateHub("alice")
	manager.RemoveHub("alice")

	// Hub should be gone
	got := manager.GetHub("alice")
	if got != nil {
		t.Error("Hub still exists after RemoveHub")
	}

	// Removing non-existent hub should not panic
	manager.RemoveHub("nobody")
}

func TestHubManager_CleanupEmptyHubs(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	// Create a hub with no clients
	manager.GetOrCreateHub(model.UserID("idle"))

	// Create a hub with a client
	hub2 := manager.GetOrCreateHub(model.UserID("active"))
	client := NewClient(hub2, "active")
	hub2.Register(client)
	time.Sleep(10 * time.Millisecond)

	// Cleanup empty hubs
	manager.CleanupEmptyHubs()

	// Empty hub should be gone
	if manager.GetHub("idle") != nil {
		t.Error("Empty hub still exists after cleanup")
	}

	// Active hub should still exist
	if manager.GetHub("active") == nil {
		t.Error("Active hub was removed during cleanup")
	}

	manager.RemoveHub("active")
}
