// Package chat is the narrow messaging surface the replication workflow
// talks to. Implementations live under external/.
package chat

import "context"

// CommandDefinition describes one chat command the bot registers on startup.
type CommandDefinition struct {
	Name        string
	Description string
}

// Button is one inline action attached to a message. Action is an opaque
// identifier delivered back in ButtonEvent.
type Button struct {
	Action string
	Label  string
	Danger bool
}

type CommandEvent struct {
	ChannelID   string
	UserID      string
	CommandName string
	// Respond posts the visible reply to the command.
	Respond func(content string) error
}

type MessageEvent struct {
	ChannelID string
	UserID    string
	Text      string
}

type ButtonEvent struct {
	ChannelID string
	UserID    string
	MessageID string
	Action    string
	// RespondNotice delivers a short notice only the clicking user sees.
	RespondNotice func(content string) error
}

type Client interface {
	Connect(ctx context.Context) error
	Close() error
	Run() error

	UpsertGuildCommands(guildID string, defs []CommandDefinition) error
	RegisterCommandHandler(handler func(CommandEvent))
	RegisterMessageHandler(handler func(MessageEvent))
	RegisterButtonHandler(handler func(ButtonEvent))

	SendMessage(channelID, content string) error
	SendMessageWithButtons(channelID, content string, buttons []Button) (messageID string, err error)
	EditMessage(channelID, messageID, content string) error

	// Pending-state tags route a conversation's next plain message back to
	// the workflow step waiting for it.
	SetPending(channelID, userID, state string)
	Pending(channelID, userID string) string
	ClearPending(channelID, userID string)
}
