package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/inspired/internal/services/inspiration"
	"github.com/bwmarrin/discordgo"
)

// InspirationCommand handles the /inspiration command
type InspirationCommand struct {
	BaseCommand
	service  inspiration.Service
	gmRoleID string
	logger   *slog.Logger
}

// NewInspirationCommand creates a new inspiration command handler
func NewInspirationCommand(service inspiration.Service, gmRoleID string, logger *slog.Logger) *InspirationCommand {
	userOption := []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "player",
			Description: "The player",
			Required:    true,
		},
	}

	return &InspirationCommand{
		BaseCommand: BaseCommand{
			Name:        "inspiration",
			Description: "Inspiration bookkeeping",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "status",
					Description: "Show who holds inspiration",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "grant",
					Description: "Give a player inspiration (GM only)",
					Options:     userOption,
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "revoke",
					Description: "Take a player's inspiration away (GM only)",
					Options:     userOption,
				},
			},
		},
		service:  service,
		gmRoleID: gmRoleID,
		logger:   logger,
	}
}

// Handle processes a Discord interaction for the inspiration command
func (c *InspirationCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	sub := data.Options[0]
	switch sub.Name {
	case "status":
		return c.handleStatus(s, i)
	case "grant", "revoke":
		if len(sub.Options) == 0 {
			return RespondWithError(s, i, "Pick a player.")
		}
		return c.handleSet(s, i, sub.Options[0].UserValue(s), sub.Name == "grant")
	default:
		return errors.New("unknown subcommand")
	}
}

func (c *InspirationCommand) handleStatus(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	output, err := c.service.ListInspired(context.Background())
	if err != nil {
		c.logger.Error("failed to list inspired actors", "error", err)
		return RespondWithError(s, i, "Failed to look up inspiration.")
	}

	return RespondWithEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "Inspiration",
		Description: renderInspiredList(output.Actors),
		Color:       colorInspire,
	}, nil)
}

func (c *InspirationCommand) handleSet(s *discordgo.Session, i *discordgo.InteractionCreate, user *discordgo.User, grant bool) error {
	if user == nil {
		return RespondWithError(s, i, "Pick a player.")
	}

	output, err := c.service.SetInspiration(context.Background(), &inspiration.SetInspirationInput{
		ActorID:     user.ID,
		ActorName:   user.Username,
		Inspiration: grant,
		IsGM:        isGM(i.Member, c.gmRoleID),
	})
	if err != nil {
		if errors.Is(err, inspiration.ErrNotGM) {
			return RespondWithError(s, i, "Only the GM can change inspiration.")
		}
		c.logger.Error("failed to set inspiration", "actor_id", user.ID, "error", err)
		return RespondWithError(s, i, "Failed to change inspiration.")
	}

	verb := "lost"
	if output.Actor.Inspiration {
		verb = "has"
	}
	return RespondWithEmbed(s, i, &discordgo.MessageEmbed{
		Description: fmt.Sprintf("<@%s> %s inspiration.", output.Actor.ID, verb),
		Color:       colorInspire,
	}, nil)
}
