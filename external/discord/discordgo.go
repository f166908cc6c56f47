package discord

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/rentlab/lotclone/internal/chat"
)

type Client struct {
	session *discordgo.Session
	token   string
	guildID string

	mu      sync.Mutex
	pending map[string]string
}

func NewClient(token, guildID string) chat.Client {
	return &Client{
		token:   token,
		guildID: guildID,
		pending: make(map[string]string),
	}
}

func (c *Client) Connect(ctx context.Context) error {
	_ = ctx
	s, err := discordgo.New("Bot " + c.token)
	if err != nil {
		return err
	}
	c.session = s
	s.Identify.Intents = discordgo.MakeIntent(discordgo.IntentsGuildMessages | discordgo.IntentMessageContent)
	return s.Open()
}

func (c *Client) Close() error {
	if c.session != nil {
		return c.session.Close()
	}
	return nil
}

func (c *Client) Run() error {
	select {}
}

func (c *Client) UpsertGuildCommands(guildID string, defs []chat.CommandDefinition) error {
	appID := c.applicationID()
	if appID == "" {
		return fmt.Errorf("discord application id is not available")
	}
	existing, err := c.session.ApplicationCommands(appID, guildID)
	if err != nil {
		return err
	}
	existingByName := make(map[string]*discordgo.ApplicationCommand, len(existing))
	for _, cmd := range existing {
		if cmd == nil || cmd.Name == "" {
			continue
		}
		existingByName[cmd.Name] = cmd
	}
	for _, def := range defs {
		if err := c.upsertGuildCommand(appID, guildID, def, existingByName); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) upsertGuildCommand(appID, guildID string, def chat.CommandDefinition, existingByName map[string]*discordgo.ApplicationCommand) error {
	if def.Name == "" {
		return nil
	}
	payload := &discordgo.ApplicationCommand{
		Name:        def.Name,
		Description: def.Description,
	}
	cmd, ok := existingByName[def.Name]
	if !ok {
		_, err := c.session.ApplicationCommandCreate(appID, guildID, payload)
		return err
	}
	if cmd.Description == def.Description {
		return nil
	}
	_, err := c.session.ApplicationCommandEdit(appID, guildID, cmd.ID, payload)
	return err
}

func (c *Client) RegisterCommandHandler(handler func(chat.CommandEvent)) {
	c.session.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		if ic == nil || ic.Type != discordgo.InteractionApplicationCommand {
			return
		}
		if c.guildID != "" && ic.GuildID != c.guildID {
			return
		}
		data := ic.ApplicationCommandData()
		if data.Name == "" {
			return
		}
		userID := interactionUserID(ic)
		if userID == "" {
			return
		}
		slog.Info("command interaction received", "guild_id", ic.GuildID, "channel_id", ic.ChannelID, "command", data.Name, "user_id", userID)
		handler(chat.CommandEvent{
			ChannelID:   ic.ChannelID,
			UserID:      userID,
			CommandName: data.Name,
			Respond: func(content string) error {
				return s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
					Type: discordgo.InteractionResponseChannelMessageWithSource,
					Data: &discordgo.InteractionResponseData{
						Content: content,
					},
				})
			},
		})
	})
}

func (c *Client) RegisterMessageHandler(handler func(chat.MessageEvent)) {
	c.session.AddHandler(func(s *discordgo.Session, mc *discordgo.MessageCreate) {
		if mc == nil || mc.Author == nil || mc.Author.Bot {
			return
		}
		if c.guildID != "" && mc.GuildID != "" && mc.GuildID != c.guildID {
			return
		}
		if mc.Content == "" {
			return
		}
		handler(chat.MessageEvent{
			ChannelID: mc.ChannelID,
			UserID:    mc.Author.ID,
			Text:      mc.Content,
		})
	})
}

func (c *Client) RegisterButtonHandler(handler func(chat.ButtonEvent)) {
	c.session.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		if ic == nil || ic.Type != discordgo.InteractionMessageComponent {
			return
		}
		if c.guildID != "" && ic.GuildID != "" && ic.GuildID != c.guildID {
			return
		}
		data := ic.MessageComponentData()
		if data.CustomID == "" {
			return
		}
		userID := interactionUserID(ic)
		if userID == "" {
			return
		}
		// Ack immediately so a long batch can outlive the interaction window.
		if err := s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredMessageUpdate,
		}); err != nil {
			slog.Warn("failed to ack component interaction", "error", err, "custom_id", data.CustomID)
		}
		messageID := ""
		if ic.Message != nil {
			messageID = ic.Message.ID
		}
		slog.Info("component interaction received", "guild_id", ic.GuildID, "channel_id", ic.ChannelID, "custom_id", data.CustomID, "user_id", userID)
		handler(chat.ButtonEvent{
			ChannelID: ic.ChannelID,
			UserID:    userID,
			MessageID: messageID,
			Action:    data.CustomID,
			RespondNotice: func(content string) error {
				_, err := s.FollowupMessageCreate(ic.Interaction, true, &discordgo.WebhookParams{
					Content: content,
					Flags:   discordgo.MessageFlagsEphemeral,
				})
				return err
			},
		})
	})
}

func interactionUserID(ic *discordgo.InteractionCreate) string {
	if ic.Member != nil && ic.Member.User != nil {
		return ic.Member.User.ID
	}
	if ic.User != nil {
		return ic.User.ID
	}
	return ""
}

func (c *Client) SendMessage(channelID, content string) error {
	_, err := c.session.ChannelMessageSend(channelID, content)
	return err
}

func (c *Client) SendMessageWithButtons(channelID, content string, buttons []chat.Button) (string, error) {
	row := discordgo.ActionsRow{}
	for _, b := range buttons {
		style := discordgo.PrimaryButton
		if b.Danger {
			style = discordgo.DangerButton
		}
		row.Components = append(row.Components, discordgo.Button{
			Label:    b.Label,
			Style:    style,
			CustomID: b.Action,
		})
	}
	msg, err := c.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:    content,
		Components: []discordgo.MessageComponent{row},
	})
	if err != nil {
		return "", err
	}
	return msg.ID, nil
}

// EditMessage rewrites a message's content and strips its buttons.
func (c *Client) EditMessage(channelID, messageID, content string) error {
	edit := discordgo.NewMessageEdit(channelID, messageID)
	edit.SetContent(content)
	components := []discordgo.MessageComponent{}
	edit.Components = &components
	_, err := c.session.ChannelMessageEditComplex(edit)
	return err
}

func pendingKey(channelID, userID string) string {
	return channelID + ":" + userID
}

func (c *Client) SetPending(channelID, userID, state string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending[pendingKey(channelID, userID)] = state
}

func (c *Client) Pending(channelID, userID string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending[pendingKey(channelID, userID)]
}

func (c *Client) ClearPending(channelID, userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, pendingKey(channelID, userID))
}

func (c *Client) applicationID() string {
	if c.session == nil || c.session.State == nil {
		return ""
	}
	if c.session.State.Application != nil && c.session.State.Application.ID != "" {
		return c.session.State.Application.ID
	}
	if c.session.State.User != nil {
		return c.session.State.User.ID
	}
	return ""
}
