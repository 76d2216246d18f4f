package discord

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KirkDiggler/inspired/internal/models"
	"github.com/KirkDiggler/inspired/internal/roll"
	"github.com/KirkDiggler/inspired/internal/services/inspiration"
	"github.com/bwmarrin/discordgo"
)

// Button ID prefixes, followed by ":" and the message ID
const (
	ButtonConsumeInspiration    = "inspire_consume"
	ButtonReactivateInspiration = "inspire_reactivate"
)

// buttonID builds the custom ID of an inspiration button
func buttonID(mode inspiration.Mode, messageID string) string {
	switch mode {
	case inspiration.ModeReactivate:
		return ButtonReactivateInspiration + ":" + messageID
	default:
		return ButtonConsumeInspiration + ":" + messageID
	}
}

// parseButtonID splits an inspiration button custom ID into its mode and message ID
func parseButtonID(customID string) (inspiration.Mode, string, bool) {
	prefix, messageID, ok := strings.Cut(customID, ":")
	if !ok || messageID == "" {
		return "", "", false
	}

	switch prefix {
	case ButtonConsumeInspiration:
		return inspiration.ModeConsume, messageID, true
	case ButtonReactivateInspiration:
		return inspiration.ModeReactivate, messageID, true
	default:
		return "", "", false
	}
}

// inspirationButtons offers both inspiration actions when the roll has a d20.
// Who may press which is decided when the button is clicked.
func inspirationButtons(messageID string, r *roll.Roll) []discordgo.MessageComponent {
	hasD20 := false
	for _, d := range roll.Flatten(r) {
		if d.Faces == 20 && d.Number > 0 {
			hasD20 = true
			break
		}
	}
	if !hasD20 {
		return nil
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Use inspiration",
					Style:    discordgo.PrimaryButton,
					CustomID: buttonID(inspiration.ModeConsume, messageID),
					Emoji: &discordgo.ComponentEmoji{
						Name: "✨",
					},
				},
				discordgo.Button{
					Label:    "GM: give it back",
					Style:    discordgo.SecondaryButton,
					CustomID: buttonID(inspiration.ModeReactivate, messageID),
					Emoji: &discordgo.ComponentEmoji{
						Name: "🎭",
					},
				},
			},
		},
	}
}

// describeRoll renders every term of r with its results, striking through
// results that do not count
func describeRoll(r *roll.Roll) string {
	if r == nil {
		return ""
	}
	return describeTerms(r.Terms)
}

func describeTerms(terms []roll.Term) string {
	parts := make([]string, 0, len(terms))
	for _, term := range terms {
		switch t := term.(type) {
		case *roll.Dice:
			parts = append(parts, describeDice(t))
		case *roll.Group:
			parts = append(parts, "("+describeTerms(t.Terms)+")")
		default:
			parts = append(parts, term.Formula())
		}
	}
	return strings.Join(parts, " ")
}

func describeDice(d *roll.Dice) string {
	if !d.Evaluated() || len(d.Results) == 0 {
		return d.Formula()
	}

	values := make([]string, len(d.Results))
	for i, r := range d.Results {
		values[i] = strconv.Itoa(r.Value)
		if !r.Counts() {
			values[i] = "~~" + values[i] + "~~"
		}
	}
	return fmt.Sprintf("%s [%s]", d.Formula(), strings.Join(values, ", "))
}

// renderRollEmbed renders a rolled message
func renderRollEmbed(msg *models.Message, authorName string) *discordgo.MessageEmbed {
	title := fmt.Sprintf("%s rolled %d", authorName, msg.Roll.Total())
	if msg.Flavor != "" {
		title = fmt.Sprintf("%s: %s", title, msg.Flavor)
	}

	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: describeRoll(msg.Roll),
		Color:       colorRoll,
	}

	if msg.InspirationUsed > 0 {
		embed.Color = colorInspire
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Rerolled with inspiration %d time(s)", msg.InspirationUsed),
		}
	}

	return embed
}

// renderRerollEmbed renders a message after inspiration changed its roll
func renderRerollEmbed(output *inspiration.UseInspirationOutput) *discordgo.MessageEmbed {
	name := output.Actor.Name
	if name == "" {
		name = fmt.Sprintf("<@%s>", output.Actor.ID)
	}

	embed := renderRollEmbed(output.Message, name)

	if output.Display != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Kept from the first roll",
			Value:  describeRoll(output.Display),
			Inline: true,
		})
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "New dice",
		Value:  strconv.Itoa(output.Fresh),
		Inline: true,
	})

	return embed
}

// appendFlavor adds a flavor line under the roll description
func appendFlavor(embed *discordgo.MessageEmbed, line string) {
	if line == "" {
		return
	}
	embed.Description = fmt.Sprintf("%s\n\n*%s*", embed.Description, line)
}

// renderInspiredList lists the actors holding inspiration
func renderInspiredList(actors []*models.Actor) string {
	if len(actors) == 0 {
		return "Nobody is inspired right now."
	}

	var b strings.Builder
	for _, actor := range actors {
		fmt.Fprintf(&b, "✨ <@%s>", actor.ID)
		if actor.Name != "" {
			fmt.Fprintf(&b, " (%s)", actor.Name)
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
