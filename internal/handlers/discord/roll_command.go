package discord

import (
	"context"
	"errors"
	"log/slog"

	"github.com/KirkDiggler/inspired/internal/roll"
	"github.com/KirkDiggler/inspired/internal/services/inspiration"
	"github.com/KirkDiggler/inspired/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
)

// RollCommand handles the /roll command
type RollCommand struct {
	BaseCommand
	service   inspiration.Service
	messaging messaging.Service
	logger    *slog.Logger
}

// NewRollCommand creates a new roll command handler
func NewRollCommand(service inspiration.Service, messagingService messaging.Service, logger *slog.Logger) *RollCommand {
	return &RollCommand{
		BaseCommand: BaseCommand{
			Name:        "roll",
			Description: "Roll dice, e.g. 1d20+5",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "formula",
					Description: "Dice formula such as 1d20+5 or 2d20kh1",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "flavor",
					Description: "What the roll is for",
				},
			},
		},
		service:   service,
		messaging: messagingService,
		logger:    logger,
	}
}

// Handle processes a Discord interaction for the roll command
func (c *RollCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name {
		return nil
	}

	var formula, flavor string
	for _, opt := range data.Options {
		switch opt.Name {
		case "formula":
			formula = opt.StringValue()
		case "flavor":
			flavor = opt.StringValue()
		}
	}

	userID, username := interactionUser(i)

	ctx := context.Background()

	output, err := c.service.Roll(ctx, &inspiration.RollInput{
		ChannelID:  i.ChannelID,
		AuthorID:   userID,
		AuthorName: username,
		Formula:    formula,
		Flavor:     flavor,
	})
	if err != nil {
		var formulaErr *roll.FormulaError
		if errors.As(err, &formulaErr) {
			return RespondWithError(s, i, formulaErr.Error())
		}
		c.logger.Error("failed to roll", "formula", formula, "error", err)
		return RespondWithError(s, i, "Failed to roll, try again in a moment.")
	}

	embed := renderRollEmbed(output.Message, username)
	flavorOutput, err := c.messaging.GetRollMessage(ctx, &messaging.GetRollMessageInput{
		Roll: output.Message.Roll,
	})
	if err != nil {
		c.logger.Warn("failed to get roll message", "error", err)
	} else {
		appendFlavor(embed, flavorOutput.Message)
	}

	return RespondWithEmbed(s, i,
		embed,
		inspirationButtons(output.Message.ID, output.Message.Roll))
}
