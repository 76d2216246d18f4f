package message

import "github.com/KirkDiggler/inspired/internal/models"

type SaveMessageInput struct {
	Message *models.Message
}

type UpdateMessageInput struct {
	Message *models.Message

	// ExpectedInspirationUsed is the stored reroll count the update applies to
	ExpectedInspirationUsed int
}

type GetMessageInput struct {
	MessageID string
}

type GetMessagesByChannelInput struct {
	ChannelID string

	// Limit caps the number of messages returned; zero means all
	Limit int
}

type GetMessagesByChannelOutput struct {
	Messages []*models.Message
}

type DeleteMessageInput struct {
	MessageID string
}
