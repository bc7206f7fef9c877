package discord

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

// roundTripFunc intercepts Discord REST calls
type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// testContext wires a fake museum API and a Discord session whose REST
// calls are captured instead of sent.
type testContext struct {
	Server    *httptest.Server
	Mux       *http.ServeMux
	APIClient *APIClient
	Session   *discordgo.Session

	mu    sync.Mutex
	edits []discordgo.WebhookEdit
}

func setupTestContext(t *testing.T) *testContext {
	t.Helper()
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	session, err := discordgo.New("Bot test-token")
	require.NoError(t, err)

	tc := &testContext{
		Server:    server,
		Mux:       mux,
		APIClient: NewAPIClient(server.URL, "test-api-key"),
		Session:   session,
	}
	tc.APIClient.http.RetryWaitMin = 0
	tc.APIClient.http.RetryWaitMax = 0

	session.Client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.Method == http.MethodPatch {
			var edit discordgo.WebhookEdit
			if err := json.NewDecoder(req.Body).Decode(&edit); err == nil {
				tc.mu.Lock()
				tc.edits = append(tc.edits, edit)
				tc.mu.Unlock()
			}
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewBufferString("{}")),
			Header:     make(http.Header),
		}, nil
	})}

	return tc
}

// lastEmbed returns the most recent embed sent as an interaction edit
func (tc *testContext) lastEmbed(t *testing.T) *discordgo.MessageEmbed {
	t.Helper()
	tc.mu.Lock()
	defer tc.mu.Unlock()
	for n := len(tc.edits) - 1; n >= 0; n-- {
		if e := tc.edits[n].Embeds; e != nil && len(*e) > 0 {
			return (*e)[0]
		}
	}
	t.Fatal("no embed was sent")
	return nil
}

// lastContent returns the most recent plain-text interaction edit
func (tc *testContext) lastContent(t *testing.T) string {
	t.Helper()
	tc.mu.Lock()
	defer tc.mu.Unlock()
	for n := len(tc.edits) - 1; n >= 0; n-- {
		if c := tc.edits[n].Content; c != nil {
			return *c
		}
	}
	t.Fatal("no content was sent")
	return ""
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// interaction builds a slash command invocation from user 123
func interaction(name string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:    "interaction-1",
			AppID: "app-1",
			Token: "token-1",
			Type:  discordgo.InteractionApplicationCommand,
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: opts,
			},
			Member: &discordgo.Member{
				User: &discordgo.User{ID: "123", Username: "Tester"},
			},
		},
	}
}

func strOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name: name, Type: discordgo.ApplicationCommandOptionString, Value: value,
	}
}

func intOpt(name string, value int) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name: name, Type: discordgo.ApplicationCommandOptionInteger, Value: float64(value),
	}
}
