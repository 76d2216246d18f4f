package inspiration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KirkDiggler/inspired/internal/common/clock"
	"github.com/KirkDiggler/inspired/internal/common/uuid"
	"github.com/KirkDiggler/inspired/internal/dice"
	"github.com/KirkDiggler/inspired/internal/metrics"
	"github.com/KirkDiggler/inspired/internal/models"
	actorRepo "github.com/KirkDiggler/inspired/internal/repositories/actor"
	messageRepo "github.com/KirkDiggler/inspired/internal/repositories/message"
	"github.com/KirkDiggler/inspired/internal/roll"
)

// Config holds configuration for the inspiration service
type Config struct {
	// MessageRepo stores rolled messages
	MessageRepo messageRepo.Repository

	// ActorRepo stores actor inspiration
	ActorRepo actorRepo.Repository

	// Mutator rerolls messages reusing their faces
	Mutator *roll.Mutator

	// Parser turns formulas into rolls
	Parser roll.Parser

	// Roller rolls the faces of new rolls
	Roller dice.Roller

	Clock         clock.Clock
	UUIDGenerator uuid.Generator

	// Async evaluates new rolls on the asynchronous path
	Async bool

	Logger *slog.Logger
}

// service implements the Service interface
type service struct {
	messageRepo   messageRepo.Repository
	actorRepo     actorRepo.Repository
	mutator       *roll.Mutator
	parser        roll.Parser
	roller        dice.Roller
	clock         clock.Clock
	uuidGenerator uuid.Generator
	async         bool
	logger        *slog.Logger
}

// New creates a new inspiration service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.MessageRepo == nil {
		return nil, ErrNilMessageRepo
	}
	if cfg.ActorRepo == nil {
		return nil, ErrNilActorRepo
	}
	if cfg.Mutator == nil {
		return nil, ErrNilMutator
	}
	if cfg.Parser == nil {
		return nil, ErrNilParser
	}
	if cfg.Roller == nil {
		return nil, ErrNilRoller
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		messageRepo:   cfg.MessageRepo,
		actorRepo:     cfg.ActorRepo,
		mutator:       cfg.Mutator,
		parser:        cfg.Parser,
		roller:        cfg.Roller,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		async:         cfg.Async,
		logger:        logger.With("service", "inspiration"),
	}, nil
}

// Roll parses and evaluates a formula and stores it as a message
func (s *service) Roll(ctx context.Context, input *RollInput) (*RollOutput, error) {
	if input == nil || input.AuthorID == "" || input.ChannelID == "" {
		return nil, ErrInvalidInput
	}

	parsed, err := s.parser.Parse(input.Formula)
	if err != nil {
		metrics.RecordRoll(metrics.OutcomeError)
		return nil, err
	}

	evaluated, err := parsed.Evaluate(ctx, roll.Options{
		Resolver: roll.ResolverFromContext(ctx, s.roller),
		Async:    s.async,
	})
	if err != nil {
		metrics.RecordRoll(metrics.OutcomeError)
		return nil, fmt.Errorf("failed to evaluate roll: %w", err)
	}

	now := s.clock.Now()
	if _, err := s.ensureActor(ctx, input.AuthorID, input.AuthorName, now); err != nil {
		metrics.RecordRoll(metrics.OutcomeError)
		return nil, err
	}

	msg := &models.Message{
		ID:        s.uuidGenerator.NewID(),
		ChannelID: input.ChannelID,
		AuthorID:  input.AuthorID,
		Flavor:    input.Flavor,
		Roll:      evaluated,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.messageRepo.SaveMessage(ctx, &messageRepo.SaveMessageInput{
		Message: msg,
	}); err != nil {
		metrics.RecordRoll(metrics.OutcomeError)
		return nil, fmt.Errorf("failed to save message: %w", err)
	}

	metrics.RecordRoll(metrics.OutcomeSuccess)
	s.logger.InfoContext(ctx, "rolled",
		"message_id", msg.ID,
		"author_id", msg.AuthorID,
		"formula", evaluated.Formula(),
		"total", evaluated.Total())

	return &RollOutput{
		Message: msg,
	}, nil
}

// GetInspirationState reports what a viewer is offered on a rolled message
func (s *service) GetInspirationState(ctx context.Context, input *GetInspirationStateInput) (*GetInspirationStateOutput, error) {
	if input == nil || input.MessageID == "" {
		return nil, ErrInvalidInput
	}

	msg, err := s.getMessage(ctx, input.MessageID)
	if err != nil {
		if errors.Is(err, ErrMessageNotFound) {
			return &GetInspirationStateOutput{}, nil
		}
		return nil, err
	}

	output := &GetInspirationStateOutput{
		Message: msg,
	}

	if !hasRerollableD20(msg.Roll) {
		return output, nil
	}

	var role models.InspirationRole
	switch {
	case input.ViewerIsGM:
		role = models.InspirationRoleGM
	case input.ViewerID != "" && input.ViewerID == msg.AuthorID:
		role = models.InspirationRolePlayer
	default:
		return output, nil
	}

	actor, err := s.getActor(ctx, msg.AuthorID)
	if err != nil {
		if errors.Is(err, ErrActorNotFound) {
			return output, nil
		}
		return nil, err
	}

	output.State = &models.InspirationState{
		Role:           role,
		HasInspiration: actor.Inspiration,
	}
	return output, nil
}

// UseInspiration rerolls the first d20 of a message. Consuming keeps the highest
// die and spends the author's inspiration; reactivating keeps the lowest and
// gives it back.
func (s *service) UseInspiration(ctx context.Context, input *UseInspirationInput) (*UseInspirationOutput, error) {
	if input == nil || input.MessageID == "" || input.UserID == "" {
		return nil, ErrInvalidInput
	}

	var keep roll.ModifierKind
	var mode string
	switch input.Mode {
	case ModeConsume:
		keep, mode = roll.KeepHighest, metrics.ModeConsume
	case ModeReactivate:
		keep, mode = roll.KeepLowest, metrics.ModeReactivate
	default:
		return nil, ErrInvalidMode
	}

	msg, err := s.getMessage(ctx, input.MessageID)
	if err != nil {
		return nil, err
	}

	actor, err := s.getActor(ctx, msg.AuthorID)
	if err != nil {
		return nil, err
	}

	switch input.Mode {
	case ModeConsume:
		if input.UserID != msg.AuthorID {
			return nil, ErrNotAuthor
		}
		if !actor.Inspiration {
			return nil, ErrNoInspiration
		}
	case ModeReactivate:
		if !input.IsGM {
			return nil, ErrNotGM
		}
		if actor.Inspiration {
			return nil, ErrAlreadyInspired
		}
	}

	template, err := advantageTemplate(msg.Roll, keep)
	if err != nil {
		return nil, err
	}

	previousTotal := msg.Roll.Total()

	start := time.Now()
	mod, err := s.mutator.ModifyRoll(ctx, msg.Roll, roll.FromRoll(template))
	if err != nil {
		metrics.RecordMutation(mode, metrics.OutcomeError, time.Since(start))
		return nil, fmt.Errorf("failed to reroll: %w", err)
	}

	now := s.clock.Now()
	inspired := input.Mode == ModeReactivate

	// Claim the flag first so a double click spends inspiration once.
	actor, err = s.actorRepo.UpdateInspiration(ctx, &actorRepo.UpdateInspirationInput{
		ActorID:     actor.ID,
		Expected:    !inspired,
		Inspiration: inspired,
		UpdatedAt:   now,
	})
	if err != nil {
		metrics.RecordMutation(mode, metrics.OutcomeError, time.Since(start))
		if errors.Is(err, actorRepo.ErrInspirationChanged) {
			if inspired {
				return nil, ErrAlreadyInspired
			}
			return nil, ErrNoInspiration
		}
		return nil, fmt.Errorf("failed to update actor: %w", err)
	}

	usedBefore := msg.InspirationUsed
	msg.Roll = mod.Result
	msg.InspirationUsed++
	msg.UpdatedAt = now

	if err := s.messageRepo.UpdateMessage(ctx, &messageRepo.UpdateMessageInput{
		Message:                 msg,
		ExpectedInspirationUsed: usedBefore,
	}); err != nil {
		metrics.RecordMutation(mode, metrics.OutcomeError, time.Since(start))
		s.releaseInspiration(ctx, actor, !inspired, now)
		if errors.Is(err, messageRepo.ErrMessageChanged) {
			return nil, ErrRerollConflict
		}
		return nil, fmt.Errorf("failed to save message: %w", err)
	}

	metrics.RecordMutation(mode, metrics.OutcomeSuccess, time.Since(start))
	metrics.RecordMutationDice(mod.Reused, mod.Fresh, mod.Leftover)

	s.logger.InfoContext(ctx, "inspiration used",
		"message_id", msg.ID,
		"actor_id", actor.ID,
		"mode", input.Mode,
		"formula", msg.Roll.Formula(),
		"total", msg.Roll.Total())

	return &UseInspirationOutput{
		Message:       msg,
		Actor:         actor,
		Display:       mod.Display,
		PreviousTotal: previousTotal,
		Reused:        mod.Reused,
		Fresh:         mod.Fresh,
		Leftover:      mod.Leftover,
	}, nil
}

// SetInspiration grants or removes an actor's inspiration
func (s *service) SetInspiration(ctx context.Context, input *SetInspirationInput) (*SetInspirationOutput, error) {
	if input == nil || input.ActorID == "" {
		return nil, ErrInvalidInput
	}
	if !input.IsGM {
		return nil, ErrNotGM
	}

	actor, err := s.getActor(ctx, input.ActorID)
	if err != nil && !errors.Is(err, ErrActorNotFound) {
		return nil, err
	}

	if actor == nil {
		actor = &models.Actor{
			ID:   input.ActorID,
			Name: input.ActorName,
		}
	} else if actor.Inspiration == input.Inspiration {
		return &SetInspirationOutput{
			Actor: actor,
		}, nil
	}

	now := s.clock.Now()
	actor.Inspiration = input.Inspiration
	actor.UpdatedAt = now

	if err := s.actorRepo.SaveActor(ctx, &actorRepo.SaveActorInput{
		Actor: actor,
	}); err != nil {
		return nil, fmt.Errorf("failed to save actor: %w", err)
	}

	s.logger.InfoContext(ctx, "inspiration set",
		"actor_id", actor.ID,
		"inspiration", actor.Inspiration)

	return &SetInspirationOutput{
		Actor: actor,
	}, nil
}

// ListInspired returns the actors holding inspiration
func (s *service) ListInspired(ctx context.Context) (*ListInspiredOutput, error) {
	output, err := s.actorRepo.GetInspiredActors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list inspired actors: %w", err)
	}

	return &ListInspiredOutput{
		Actors: output.Actors,
	}, nil
}

func (s *service) getMessage(ctx context.Context, messageID string) (*models.Message, error) {
	msg, err := s.messageRepo.GetMessage(ctx, &messageRepo.GetMessageInput{
		MessageID: messageID,
	})
	if err != nil {
		if errors.Is(err, messageRepo.ErrMessageNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return msg, nil
}

func (s *service) getActor(ctx context.Context, actorID string) (*models.Actor, error) {
	actor, err := s.actorRepo.GetActor(ctx, &actorRepo.GetActorInput{
		ActorID: actorID,
	})
	if err != nil {
		if errors.Is(err, actorRepo.ErrActorNotFound) {
			return nil, ErrActorNotFound
		}
		return nil, fmt.Errorf("failed to get actor: %w", err)
	}
	return actor, nil
}

// releaseInspiration gives back a flag claimed for a reroll that was not saved
func (s *service) releaseInspiration(ctx context.Context, actor *models.Actor, inspiration bool, now time.Time) {
	restored, err := s.actorRepo.UpdateInspiration(ctx, &actorRepo.UpdateInspirationInput{
		ActorID:     actor.ID,
		Expected:    actor.Inspiration,
		Inspiration: inspiration,
		UpdatedAt:   now,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to restore inspiration",
			"actor_id", actor.ID,
			"inspiration", inspiration,
			"error", err)
		return
	}
	*actor = *restored
}

// ensureActor returns the actor, creating it without inspiration when unknown
// and refreshing its name when it changed
func (s *service) ensureActor(ctx context.Context, actorID, name string, now time.Time) (*models.Actor, error) {
	actor, err := s.getActor(ctx, actorID)
	if err != nil && !errors.Is(err, ErrActorNotFound) {
		return nil, err
	}

	if actor != nil && (name == "" || actor.Name == name) {
		return actor, nil
	}

	if actor == nil {
		actor = &models.Actor{
			ID: actorID,
		}
	}
	if name != "" {
		actor.Name = name
	}
	actor.UpdatedAt = now

	if err := s.actorRepo.SaveActor(ctx, &actorRepo.SaveActorInput{
		Actor: actor,
	}); err != nil {
		return nil, fmt.Errorf("failed to save actor: %w", err)
	}

	return actor, nil
}
