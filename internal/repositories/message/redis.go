package message

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/inspired/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	messageKeyPrefix         = "message:"
	channelMessagesKeyPrefix = "channel:messages:"
)

// ErrMessageNotFound is returned when a message is not found
var ErrMessageNotFound = errors.New("message not found")

// ErrMessageChanged is returned when a message was rerolled since it was read
var ErrMessageChanged = errors.New("message changed")

// maxTxRetries bounds optimistic transaction retries
const maxTxRetries = 5

// Config holds configuration for the Redis message repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed message repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// SaveMessage persists a message and indexes it under its channel
func (r *redisRepository) SaveMessage(ctx context.Context, input *SaveMessageInput) error {
	if input == nil || input.Message == nil {
		return errors.New("input and message cannot be nil")
	}

	msg := input.Message
	if msg.ID == "" {
		return errors.New("message ID cannot be empty")
	}

	messageJSON, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	pipe := r.client.TxPipeline()

	messageKey := fmt.Sprintf("%s%s", messageKeyPrefix, msg.ID)
	pipe.Set(ctx, messageKey, messageJSON, 0)

	if msg.ChannelID != "" {
		channelKey := fmt.Sprintf("%s%s", channelMessagesKeyPrefix, msg.ChannelID)
		pipe.ZAdd(ctx, channelKey, redis.Z{
			Score:  float64(msg.CreatedAt.UnixNano()),
			Member: msg.ID,
		})
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}

	return nil
}

// UpdateMessage replaces a stored message, provided it has not been rerolled
// since the caller read it
func (r *redisRepository) UpdateMessage(ctx context.Context, input *UpdateMessageInput) error {
	if input == nil || input.Message == nil {
		return errors.New("input and message cannot be nil")
	}

	msg := input.Message
	if msg.ID == "" {
		return errors.New("message ID cannot be empty")
	}

	messageJSON, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	messageKey := fmt.Sprintf("%s%s", messageKeyPrefix, msg.ID)
	txf := func(tx *redis.Tx) error {
		storedJSON, err := tx.Get(ctx, messageKey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrMessageNotFound
			}
			return err
		}

		var stored models.Message
		if err := json.Unmarshal([]byte(storedJSON), &stored); err != nil {
			return fmt.Errorf("failed to unmarshal message: %w", err)
		}
		if stored.InspirationUsed != input.ExpectedInspirationUsed {
			return ErrMessageChanged
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, messageKey, messageJSON, 0)
			return nil
		})
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := r.client.Watch(ctx, txf, messageKey)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, redis.TxFailedErr):
			continue
		case errors.Is(err, ErrMessageNotFound), errors.Is(err, ErrMessageChanged):
			return err
		default:
			return fmt.Errorf("failed to update message: %w", err)
		}
	}

	return ErrMessageChanged
}

// GetMessage retrieves a message by ID from Redis
func (r *redisRepository) GetMessage(ctx context.Context, input *GetMessageInput) (*models.Message, error) {
	if input == nil || input.MessageID == "" {
		return nil, errors.New("input and message ID cannot be empty")
	}

	messageKey := fmt.Sprintf("%s%s", messageKeyPrefix, input.MessageID)
	messageJSON, err := r.client.Get(ctx, messageKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	var msg models.Message
	if err := json.Unmarshal([]byte(messageJSON), &msg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message: %w", err)
	}

	return &msg, nil
}

// GetMessagesByChannel retrieves the most recent messages of a channel, newest first
func (r *redisRepository) GetMessagesByChannel(ctx context.Context, input *GetMessagesByChannelInput) (*GetMessagesByChannelOutput, error) {
	if input == nil || input.ChannelID == "" {
		return nil, errors.New("input and channel ID cannot be empty")
	}

	stop := int64(-1)
	if input.Limit > 0 {
		stop = int64(input.Limit - 1)
	}

	channelKey := fmt.Sprintf("%s%s", channelMessagesKeyPrefix, input.ChannelID)
	messageIDs, err := r.client.ZRevRange(ctx, channelKey, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get channel messages: %w", err)
	}

	if len(messageIDs) == 0 {
		return &GetMessagesByChannelOutput{
			Messages: []*models.Message{},
		}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(messageIDs))
	for i, id := range messageIDs {
		cmds[i] = pipe.Get(ctx, fmt.Sprintf("%s%s", messageKeyPrefix, id))
	}

	// redis.Nil for a message deleted after the range read is handled per command
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get channel messages: %w", err)
	}

	messages := make([]*models.Message, 0, len(messageIDs))
	for i, cmd := range cmds {
		messageJSON, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("failed to get message %s: %w", messageIDs[i], err)
		}

		var msg models.Message
		if err := json.Unmarshal([]byte(messageJSON), &msg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal message %s: %w", messageIDs[i], err)
		}
		messages = append(messages, &msg)
	}

	return &GetMessagesByChannelOutput{
		Messages: messages,
	}, nil
}

// DeleteMessage removes a message and its channel index entry
func (r *redisRepository) DeleteMessage(ctx context.Context, input *DeleteMessageInput) error {
	if input == nil || input.MessageID == "" {
		return errors.New("input and message ID cannot be empty")
	}

	msg, err := r.GetMessage(ctx, &GetMessageInput{MessageID: input.MessageID})
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, fmt.Sprintf("%s%s", messageKeyPrefix, input.MessageID))
	if msg.ChannelID != "" {
		pipe.ZRem(ctx, fmt.Sprintf("%s%s", channelMessagesKeyPrefix, msg.ChannelID), input.MessageID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	return nil
}
