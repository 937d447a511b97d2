package chatapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/groupgrid/connections-tracker/internal/platform/logging"
)

func TestClient_ListMessagesBefore(t *testing.T) {
	t.Parallel()

	var gotPath, gotQuery, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"m2","channel_id":"c1","guild_id":"g1","content":"Puzzle #5","timestamp":"2024-03-01T10:00:00Z","author":{"id":"u1"}},
			{"id":"m1","channel_id":"c1","guild_id":"g1","content":"hello","timestamp":"2024-03-01T09:00:00Z","author":{"id":"u2","bot":true}}
		]`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		Token:   "token-1",
		Logger:  logging.NewNop(),
	})

	messages, err := client.ListMessagesBefore(t.Context(), "c1", "m3", 50)
	if err != nil {
		t.Fatalf("list messages failed: %v", err)
	}

	if gotPath != "/channels/c1/messages" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotQuery != "before=m3&limit=50" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
	if gotAuth != "Bot token-1" {
		t.Fatalf("unexpected authorization header %q", gotAuth)
	}

	if len(messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(messages))
	}
	if messages[0].MessageID != "m2" || messages[0].AuthorID != "u1" || messages[0].Bot {
		t.Fatalf("unexpected first message: %+v", messages[0])
	}
	if messages[0].Timestamp.IsZero() {
		t.Fatalf("expected timestamp to be parsed")
	}
	if !messages[1].Bot {
		t.Fatalf("expected second message to carry the bot flag")
	}
}

func TestClient_ListMessagesBefore_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		MaxRetries: 2,
		Logger:     logging.NewNop(),
	})

	messages, err := client.ListMessagesBefore(t.Context(), "c1", "", 10)
	if err != nil {
		t.Fatalf("list messages failed: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("got %d messages, want 0", len(messages))
	}
	if attempts != 2 {
		t.Fatalf("got %d attempts, want 2", attempts)
	}
}

func TestClient_ListMessagesBefore_DoesNotRetryClientError(t *testing.T) {
	t.Parallel()

	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		MaxRetries: 3,
		Logger:     logging.NewNop(),
	})

	if _, err := client.ListMessagesBefore(t.Context(), "c1", "", 10); err == nil {
		t.Fatalf("expected an error on status 403")
	}
	if attempts != 1 {
		t.Fatalf("got %d attempts, want 1", attempts)
	}
}
