package actor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/KirkDiggler/inspired/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	actorKeyPrefix = "actor:"

	// Set of actor IDs holding inspiration
	inspiredActorsKey = "actors:inspired"
)

// ErrActorNotFound is returned when an actor is not found
var ErrActorNotFound = errors.New("actor not found")

// ErrInspirationChanged is returned when the stored flag no longer holds the expected value
var ErrInspirationChanged = errors.New("actor inspiration changed")

// maxTxRetries bounds optimistic transaction retries
const maxTxRetries = 5

// Config holds configuration for the Redis actor repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed actor repository
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

// SaveActor persists an actor and keeps the inspired set in step with its flag
func (r *redisRepository) SaveActor(ctx context.Context, input *SaveActorInput) error {
	if input == nil || input.Actor == nil {
		return errors.New("input and actor cannot be nil")
	}

	actor := input.Actor
	if actor.ID == "" {
		return errors.New("actor ID cannot be empty")
	}

	actorJSON, err := json.Marshal(actor)
	if err != nil {
		return fmt.Errorf("failed to marshal actor: %w", err)
	}

	pipe := r.client.TxPipeline()

	actorKey := fmt.Sprintf("%s%s", actorKeyPrefix, actor.ID)
	pipe.Set(ctx, actorKey, actorJSON, 0)

	if actor.Inspiration {
		pipe.SAdd(ctx, inspiredActorsKey, actor.ID)
	} else {
		pipe.SRem(ctx, inspiredActorsKey, actor.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save actor: %w", err)
	}

	return nil
}

// UpdateInspiration flips an actor's inspiration flag if it still holds the
// expected value. Concurrent callers expecting the same value see exactly one
// success; the rest get ErrInspirationChanged.
func (r *redisRepository) UpdateInspiration(ctx context.Context, input *UpdateInspirationInput) (*models.Actor, error) {
	if input == nil || input.ActorID == "" {
		return nil, errors.New("input and actor ID cannot be empty")
	}

	actorKey := fmt.Sprintf("%s%s", actorKeyPrefix, input.ActorID)

	var updated *models.Actor
	txf := func(tx *redis.Tx) error {
		actorJSON, err := tx.Get(ctx, actorKey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrActorNotFound
			}
			return err
		}

		var actor models.Actor
		if err := json.Unmarshal([]byte(actorJSON), &actor); err != nil {
			return fmt.Errorf("failed to unmarshal actor: %w", err)
		}
		if actor.Inspiration != input.Expected {
			return ErrInspirationChanged
		}

		actor.Inspiration = input.Inspiration
		actor.UpdatedAt = input.UpdatedAt
		data, err := json.Marshal(&actor)
		if err != nil {
			return fmt.Errorf("failed to marshal actor: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, actorKey, data, 0)
			if actor.Inspiration {
				pipe.SAdd(ctx, inspiredActorsKey, actor.ID)
			} else {
				pipe.SRem(ctx, inspiredActorsKey, actor.ID)
			}
			return nil
		})
		if err != nil {
			return err
		}

		updated = &actor
		return nil
	}

	for i := 0; i < maxTxRetries; i++ {
		err := r.client.Watch(ctx, txf, actorKey)
		switch {
		case err == nil:
			return updated, nil
		case errors.Is(err, redis.TxFailedErr):
			continue
		case errors.Is(err, ErrActorNotFound), errors.Is(err, ErrInspirationChanged):
			return nil, err
		default:
			return nil, fmt.Errorf("failed to update actor: %w", err)
		}
	}

	return nil, ErrInspirationChanged
}

// GetActor retrieves an actor by ID from Redis
func (r *redisRepository) GetActor(ctx context.Context, input *GetActorInput) (*models.Actor, error) {
	if input == nil || input.ActorID == "" {
		return nil, errors.New("input and actor ID cannot be empty")
	}

	actorKey := fmt.Sprintf("%s%s", actorKeyPrefix, input.ActorID)
	actorJSON, err := r.client.Get(ctx, actorKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrActorNotFound
		}
		return nil, fmt.Errorf("failed to get actor: %w", err)
	}

	var actor models.Actor
	if err := json.Unmarshal([]byte(actorJSON), &actor); err != nil {
		return nil, fmt.Errorf("failed to unmarshal actor: %w", err)
	}

	return &actor, nil
}

// GetInspiredActors retrieves all actors holding inspiration, ordered by name
func (r *redisRepository) GetInspiredActors(ctx context.Context) (*GetInspiredActorsOutput, error) {
	actorIDs, err := r.client.SMembers(ctx, inspiredActorsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get inspired actor IDs: %w", err)
	}

	if len(actorIDs) == 0 {
		return &GetInspiredActorsOutput{
			Actors: []*models.Actor{},
		}, nil
	}

	pipe := r.client.Pipeline()
	actorCommands := make(map[string]*redis.StringCmd, len(actorIDs))
	for _, actorID := range actorIDs {
		actorCommands[actorID] = pipe.Get(ctx, fmt.Sprintf("%s%s", actorKeyPrefix, actorID))
	}

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get actors: %w", err)
	}

	actors := make([]*models.Actor, 0, len(actorIDs))
	for actorID, cmd := range actorCommands {
		actorJSON, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("failed to get actor %s: %w", actorID, err)
		}

		var actor models.Actor
		if err := json.Unmarshal([]byte(actorJSON), &actor); err != nil {
			return nil, fmt.Errorf("failed to unmarshal actor %s: %w", actorID, err)
		}
		actors = append(actors, &actor)
	}

	sort.Slice(actors, func(i, j int) bool {
		if actors[i].Name == actors[j].Name {
			return actors[i].ID < actors[j].ID
		}
		return actors[i].Name < actors[j].Name
	})

	return &GetInspiredActorsOutput{
		Actors: actors,
	}, nil
}
