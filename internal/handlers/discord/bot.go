package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/inspired/internal/services/inspiration"
	"github.com/KirkDiggler/inspired/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
)

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	service    inspiration.Service
	messaging  messaging.Service
	config     *Config
	logger     *slog.Logger
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// GMRoleID is the role allowed to reactivate and grant inspiration
	GMRoleID string

	// Inspiration service
	Service inspiration.Service

	// Messaging service for flavor lines
	Messaging messaging.Service

	Logger *slog.Logger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.Service == nil {
		return nil, errors.New("inspiration service cannot be nil")
	}

	if cfg.Messaging == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:    session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		service:    cfg.Service,
		messaging:  cfg.Messaging,
		config:     cfg,
		logger:     logger.With("component", "discord"),
	}

	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	for _, cmd := range []CommandHandler{
		NewRollCommand(b.service, b.messaging, b.logger),
		NewInspirationCommand(b.service, b.config.GMRoleID, b.logger),
	} {
		if err := b.RegisterCommand(cmd); err != nil {
			return err
		}
	}

	b.logger.Info("bot is running")
	return nil
}

// Stop removes the registered commands and closes the Discord connection
func (b *Bot) Stop() error {
	appID := b.appID()

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.logger.Warn("failed to delete command", "command", cmdName, "id", cmdID, "error", err)
		} else {
			b.logger.Info("deleted command", "command", cmdName, "id", cmdID)
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord, for the configured guild or globally
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.logger.Info("registered command",
		"command", cmd.GetName(),
		"id", createdCmd.ID,
		"guild_id", b.config.GuildID)

	return nil
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	return b.session.State.User.ID
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	// discordgo runs handlers on their own goroutines without recovering
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("interaction handler panicked",
				"interaction_id", i.ID,
				"panic", r)
		}
	}()

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if h, ok := b.commands[name]; ok {
			if err := h.Handle(s, i); err != nil {
				b.logger.Error("failed to handle command", "command", name, "error", err)
			}
		}
	case discordgo.InteractionMessageComponent:
		if err := b.handleComponentInteraction(s, i); err != nil {
			b.logger.Error("failed to handle component interaction",
				"custom_id", i.MessageComponentData().CustomID,
				"error", err)
		}
	}
}

// handleComponentInteraction handles inspiration button clicks
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	customID := i.MessageComponentData().CustomID

	mode, messageID, ok := parseButtonID(customID)
	if !ok {
		return RespondWithError(s, i, fmt.Sprintf("Unknown button: %s", customID))
	}

	return b.handleInspirationButton(s, i, mode, messageID)
}

// handleInspirationButton checks what the clicking user is offered and applies it
func (b *Bot) handleInspirationButton(s *discordgo.Session, i *discordgo.InteractionCreate, mode inspiration.Mode, messageID string) error {
	ctx := context.Background()
	userID, _ := interactionUser(i)
	gm := isGM(i.Member, b.config.GMRoleID)

	state, err := b.service.GetInspirationState(ctx, &inspiration.GetInspirationStateInput{
		MessageID:  messageID,
		ViewerID:   userID,
		ViewerIsGM: gm,
	})
	if err != nil {
		b.logger.Error("failed to get inspiration state", "message_id", messageID, "error", err)
		return RespondWithError(s, i, "Failed to look up that roll.")
	}
	if state.Message == nil {
		return RespondWithEphemeralMessage(s, i, "That roll is no longer available.")
	}

	switch {
	case mode == inspiration.ModeConsume && !state.State.CanConsume():
		return RespondWithEphemeralMessage(s, i, "Only the roller can use their inspiration, and only while they have it.")
	case mode == inspiration.ModeReactivate && !state.State.CanReactivate():
		return RespondWithEphemeralMessage(s, i, "Only the GM can give inspiration back, and only to someone without it.")
	}

	output, err := b.service.UseInspiration(ctx, &inspiration.UseInspirationInput{
		MessageID: messageID,
		UserID:    userID,
		IsGM:      gm,
		Mode:      mode,
	})
	if err != nil {
		var inspirationErr inspiration.InspirationError
		if errors.As(err, &inspirationErr) {
			return RespondWithEphemeralMessage(s, i, inspirationErr.Error())
		}
		b.logger.Error("failed to use inspiration", "message_id", messageID, "mode", mode, "error", err)
		return RespondWithError(s, i, "Failed to reroll, try again in a moment.")
	}

	embed := renderRerollEmbed(output)
	flavor, err := b.messaging.GetInspirationMessage(ctx, &messaging.GetInspirationMessageInput{
		Reactivated: mode == inspiration.ModeReactivate,
		Before:      output.PreviousTotal,
		After:       output.Message.Roll.Total(),
	})
	if err != nil {
		b.logger.Warn("failed to get inspiration message", "error", err)
	} else {
		appendFlavor(embed, flavor.Message)
	}

	return UpdateWithEmbed(s, i,
		embed,
		inspirationButtons(output.Message.ID, output.Message.Roll))
}
