package discord

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/rentlab/lotclone/internal/chat"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestSession(t *testing.T, rt roundTripFunc) *discordgo.Session {
	t.Helper()
	s, err := discordgo.New("Bot test-token")
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	if rt != nil {
		s.Client = &http.Client{Transport: rt}
	}
	return s
}

func jsonResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Status:     "200 OK",
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestSendMessageWithButtons_PostsOneActionRow(t *testing.T) {
	var gotPath string
	var gotBody []byte
	s := newTestSession(t, func(req *http.Request) (*http.Response, error) {
		gotPath = req.URL.Path
		var err error
		gotBody, err = io.ReadAll(req.Body)
		if err != nil {
			t.Fatalf("failed to read request body: %v", err)
		}
		return jsonResponse(`{"id":"42","channel_id":"chan-1"}`), nil
	})

	c := &Client{session: s, pending: make(map[string]string)}
	messageID, err := c.SendMessageWithButtons("chan-1", "Предпросмотр", []chat.Button{
		{Action: "lotclone:create", Label: "Создать"},
		{Action: "lotclone:cancel", Label: "Отмена", Danger: true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if messageID != "42" {
		t.Fatalf("expected message id 42, got %q", messageID)
	}
	if !strings.HasSuffix(gotPath, "/channels/chan-1/messages") {
		t.Fatalf("unexpected request path: %s", gotPath)
	}

	var payload struct {
		Content    string `json:"content"`
		Components []struct {
			Type       int `json:"type"`
			Components []struct {
				Type     int    `json:"type"`
				Label    string `json:"label"`
				Style    int    `json:"style"`
				CustomID string `json:"custom_id"`
			} `json:"components"`
		} `json:"components"`
	}
	if err := json.Unmarshal(gotBody, &payload); err != nil {
		t.Fatalf("failed to decode request body: %v", err)
	}
	if payload.Content != "Предпросмотр" {
		t.Fatalf("unexpected content: %q", payload.Content)
	}
	if len(payload.Components) != 1 || len(payload.Components[0].Components) != 2 {
		t.Fatalf("unexpected component layout: %+v", payload.Components)
	}
	buttons := payload.Components[0].Components
	if buttons[0].CustomID != "lotclone:create" || buttons[1].CustomID != "lotclone:cancel" {
		t.Fatalf("unexpected custom ids: %+v", buttons)
	}
	if buttons[0].Style != int(discordgo.PrimaryButton) || buttons[1].Style != int(discordgo.DangerButton) {
		t.Fatalf("unexpected button styles: %+v", buttons)
	}
}

func TestEditMessage_StripsComponents(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody []byte
	s := newTestSession(t, func(req *http.Request) (*http.Response, error) {
		gotMethod = req.Method
		gotPath = req.URL.Path
		var err error
		gotBody, err = io.ReadAll(req.Body)
		if err != nil {
			t.Fatalf("failed to read request body: %v", err)
		}
		return jsonResponse(`{"id":"msg-7","channel_id":"chan-1"}`), nil
	})

	c := &Client{session: s, pending: make(map[string]string)}
	if err := c.EditMessage("chan-1", "msg-7", "Действие отменено."); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodPatch {
		t.Fatalf("expected PATCH, got %s", gotMethod)
	}
	if !strings.HasSuffix(gotPath, "/channels/chan-1/messages/msg-7") {
		t.Fatalf("unexpected request path: %s", gotPath)
	}

	var payload struct {
		Content    *string            `json:"content"`
		Components *[]json.RawMessage `json:"components"`
	}
	if err := json.Unmarshal(gotBody, &payload); err != nil {
		t.Fatalf("failed to decode request body: %v", err)
	}
	if payload.Content == nil || *payload.Content != "Действие отменено." {
		t.Fatalf("unexpected content: %v", payload.Content)
	}
	if payload.Components == nil || len(*payload.Components) != 0 {
		t.Fatalf("expected an explicit empty components list, got %v", payload.Components)
	}
}

func TestUpsertGuildCommands_CreatesMissingCommand(t *testing.T) {
	var calls []string
	s := newTestSession(t, func(req *http.Request) (*http.Response, error) {
		calls = append(calls, req.Method+" "+req.URL.Path)
		switch req.Method {
		case http.MethodGet:
			return jsonResponse(`[]`), nil
		case http.MethodPost:
			body, err := io.ReadAll(req.Body)
			if err != nil {
				t.Fatalf("failed to read request body: %v", err)
			}
			var payload struct {
				Name        string `json:"name"`
				Description string `json:"description"`
			}
			if err := json.Unmarshal(body, &payload); err != nil {
				t.Fatalf("failed to decode request body: %v", err)
			}
			if payload.Name != "lotclone" || payload.Description == "" {
				t.Fatalf("unexpected create payload: %+v", payload)
			}
			return jsonResponse(`{"id":"cmd-1","name":"lotclone","description":"x"}`), nil
		}
		t.Fatalf("unexpected request: %s %s", req.Method, req.URL.Path)
		return nil, nil
	})
	s.State.Application = &discordgo.Application{ID: "app-1"}

	c := &Client{session: s, pending: make(map[string]string)}
	err := c.UpsertGuildCommands("guild-1", []chat.CommandDefinition{
		{Name: "lotclone", Description: "копии лота"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(calls) != 2 {
		t.Fatalf("expected list then create, got %+v", calls)
	}
	for _, call := range calls {
		if !strings.Contains(call, "/applications/app-1/guilds/guild-1/commands") {
			t.Fatalf("unexpected endpoint: %s", call)
		}
	}
}

func TestUpsertGuildCommands_SkipsUnchangedCommand(t *testing.T) {
	var calls []string
	s := newTestSession(t, func(req *http.Request) (*http.Response, error) {
		calls = append(calls, req.Method+" "+req.URL.Path)
		if req.Method == http.MethodGet {
			return jsonResponse(`[{"id":"cmd-1","name":"lotclone","description":"копии лота"}]`), nil
		}
		t.Fatalf("unexpected request: %s %s", req.Method, req.URL.Path)
		return nil, nil
	})
	s.State.Application = &discordgo.Application{ID: "app-1"}

	c := &Client{session: s, pending: make(map[string]string)}
	err := c.UpsertGuildCommands("guild-1", []chat.CommandDefinition{
		{Name: "lotclone", Description: "копии лота"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(calls) != 1 {
		t.Fatalf("expected a single list call, got %+v", calls)
	}
}

func TestPendingStateLifecycle(t *testing.T) {
	c := &Client{pending: make(map[string]string)}

	if got := c.Pending("chan-1", "user-1"); got != "" {
		t.Fatalf("expected empty pending state, got %q", got)
	}

	c.SetPending("chan-1", "user-1", "lotclone:wait_lots")
	c.SetPending("chan-1", "user-2", "lotclone:wait_durations")

	if got := c.Pending("chan-1", "user-1"); got != "lotclone:wait_lots" {
		t.Fatalf("unexpected pending state: %q", got)
	}
	if got := c.Pending("chan-1", "user-2"); got != "lotclone:wait_durations" {
		t.Fatalf("unexpected pending state for second user: %q", got)
	}

	c.ClearPending("chan-1", "user-1")
	if got := c.Pending("chan-1", "user-1"); got != "" {
		t.Fatalf("expected cleared state, got %q", got)
	}
	if got := c.Pending("chan-1", "user-2"); got != "lotclone:wait_durations" {
		t.Fatal("clearing one key must not affect another")
	}
}
