package message

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/inspired/internal/repositories/message Repository

import (
	"context"

	"github.com/KirkDiggler/inspired/internal/models"
)

// Repository defines the interface for rolled message persistence
type Repository interface {
	// SaveMessage persists a message
	SaveMessage(ctx context.Context, input *SaveMessageInput) error

	// UpdateMessage replaces a message unless it was rerolled since it was read
	UpdateMessage(ctx context.Context, input *UpdateMessageInput) error

	// GetMessage retrieves a message by ID
	GetMessage(ctx context.Context, input *GetMessageInput) (*models.Message, error)

	// GetMessagesByChannel retrieves the most recent messages of a channel, newest first
	GetMessagesByChannel(ctx context.Context, input *GetMessagesByChannelInput) (*GetMessagesByChannelOutput, error)

	// DeleteMessage removes a message
	DeleteMessage(ctx context.Context, input *DeleteMessageInput) error
}
