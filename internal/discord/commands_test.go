package discord

import (
	"errors"
	"net/http"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestFormatFriendlyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not found", &APIError{Status: http.StatusNotFound, Message: "Crop not found"}, "🔍 Crop not found"},
		{"conflict", &APIError{Status: http.StatusConflict, Message: "This seed has already been adopted"}, "⚠️ This seed has already been adopted"},
		{"bad request", &APIError{Status: http.StatusBadRequest, Message: "Unsupported payment method"}, "✏️ Unsupported payment method"},
		{"rate limited", &APIError{Status: http.StatusTooManyRequests, Message: "Too many requests"}, MsgSlowDown},
		{"server error", &APIError{Status: http.StatusInternalServerError, Message: "Something went wrong"}, MsgGenericError},
		{"transport", errors.New("dial tcp: connection refused"), MsgAPIUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatFriendlyError(tt.err))
		})
	}
}

func TestCommandsEqual(t *testing.T) {
	build := func() []*discordgo.ApplicationCommand {
		var cmds []*discordgo.ApplicationCommand
		for _, f := range []func() (*discordgo.ApplicationCommand, CommandHandler){
			PingCommand, CatalogCommand, AdoptCommand,
		} {
			cmd, _ := f()
			cmds = append(cmds, cmd)
		}
		return cmds
	}

	assert.True(t, commandsEqual(build(), build()))

	changed := build()
	changed[1].Description = "Something else"
	assert.False(t, commandsEqual(build(), changed))

	fewer := build()[:2]
	assert.False(t, commandsEqual(build(), fewer))

	choice := build()
	choice[2].Options[1].Choices = choice[2].Options[1].Choices[:2]
	assert.False(t, commandsEqual(build(), choice))
}

func TestRegistry_HandleCountsCommands(t *testing.T) {
	tc := setupTestContext(t)
	r := NewCommandRegistry()
	cmd, _ := PingCommand()

	called := 0
	r.Register(cmd, func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		called++
	})

	before := commandCounter.Load()
	r.Handle(tc.Session, interaction("ping"), tc.APIClient)
	r.Handle(tc.Session, interaction("unknown"), tc.APIClient)

	assert.Equal(t, 1, called)
	assert.Equal(t, before+1, commandCounter.Load())
	assert.False(t, lastCommandTime().IsZero())
}

func TestRegistry_IgnoresNonCommands(t *testing.T) {
	tc := setupTestContext(t)
	r := NewCommandRegistry()
	cmd, _ := PingCommand()
	called := false
	r.Register(cmd, func(*discordgo.Session, *discordgo.InteractionCreate, *APIClient) { called = true })

	i := interaction("ping")
	i.Type = discordgo.InteractionPing
	r.Handle(tc.Session, i, tc.APIClient)
	assert.False(t, called)
}
