package inspiration

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	clockMocks "github.com/KirkDiggler/inspired/internal/common/clock/mocks"
	uuidMocks "github.com/KirkDiggler/inspired/internal/common/uuid/mocks"
	diceMocks "github.com/KirkDiggler/inspired/internal/dice/mocks"
	"github.com/KirkDiggler/inspired/internal/formula"
	"github.com/KirkDiggler/inspired/internal/models"
	actorRepo "github.com/KirkDiggler/inspired/internal/repositories/actor"
	actorMocks "github.com/KirkDiggler/inspired/internal/repositories/actor/mocks"
	messageRepo "github.com/KirkDiggler/inspired/internal/repositories/message"
	messageMocks "github.com/KirkDiggler/inspired/internal/repositories/message/mocks"
	"github.com/KirkDiggler/inspired/internal/roll"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type InspirationServiceTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockRoller      *diceMocks.MockRoller
	mockMessageRepo *messageMocks.MockRepository
	mockActorRepo   *actorMocks.MockRepository
	mockClock       *clockMocks.MockClock
	mockUUID        *uuidMocks.MockGenerator
	mutator         *roll.Mutator
	service         Service
	ctx             context.Context

	// Test data
	testTime      time.Time
	testMessageID string
	testChannelID string
	testAuthorID  string
	testGMID      string

	// Reusable test fixtures
	rolledMessage   *models.Message
	inspiredActor   *models.Actor
	uninspiredActor *models.Actor
}

func (s *InspirationServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRoller = diceMocks.NewMockRoller(s.mockCtrl)
	s.mockMessageRepo = messageMocks.NewMockRepository(s.mockCtrl)
	s.mockActorRepo = actorMocks.NewMockRepository(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockGenerator(s.mockCtrl)

	s.ctx = context.Background()

	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.testMessageID = "test-message-id"
	s.testChannelID = "test-channel-id"
	s.testAuthorID = "test-author-id"
	s.testGMID = "test-gm-id"

	createdAt := s.testTime.Add(-time.Minute)
	s.rolledMessage = &models.Message{
		ID:        s.testMessageID,
		ChannelID: s.testChannelID,
		AuthorID:  s.testAuthorID,
		Roll: roll.New(
			roll.ResolvedDice(1, 20, []roll.Result{{Value: 12, Active: true}}),
			roll.Plus(),
			&roll.Number{Value: 5},
		),
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	s.inspiredActor = &models.Actor{
		ID:          s.testAuthorID,
		Name:        "Brielle",
		Inspiration: true,
		UpdatedAt:   createdAt,
	}
	s.uninspiredActor = &models.Actor{
		ID:        s.testAuthorID,
		Name:      "Brielle",
		UpdatedAt: createdAt,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	mutator, err := roll.NewMutator(&roll.MutatorConfig{
		Parser: formula.New(),
		Roller: s.mockRoller,
		Logger: logger,
	})
	s.Require().NoError(err)
	s.mutator = mutator

	svc, err := New(&Config{
		MessageRepo:   s.mockMessageRepo,
		ActorRepo:     s.mockActorRepo,
		Mutator:       s.mutator,
		Parser:        formula.New(),
		Roller:        s.mockRoller,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
		Logger:        logger,
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *InspirationServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestInspirationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InspirationServiceTestSuite))
}

func (s *InspirationServiceTestSuite) expectMessage(msg *models.Message) {
	s.mockMessageRepo.EXPECT().
		GetMessage(gomock.Any(), &messageRepo.GetMessageInput{MessageID: s.testMessageID}).
		Return(msg, nil)
}

func (s *InspirationServiceTestSuite) expectActor(actor *models.Actor) {
	s.mockActorRepo.EXPECT().
		GetActor(gomock.Any(), &actorRepo.GetActorInput{ActorID: s.testAuthorID}).
		Return(actor, nil)
}

// expectClaim expects the author's inspiration flag to be set to inspired
func (s *InspirationServiceTestSuite) expectClaim(inspired bool) {
	s.mockActorRepo.EXPECT().
		UpdateInspiration(gomock.Any(), &actorRepo.UpdateInspirationInput{
			ActorID:     s.testAuthorID,
			Expected:    !inspired,
			Inspiration: inspired,
			UpdatedAt:   s.testTime,
		}).
		Return(&models.Actor{
			ID:          s.testAuthorID,
			Name:        "Brielle",
			Inspiration: inspired,
			UpdatedAt:   s.testTime,
		}, nil)
}

func (s *InspirationServiceTestSuite) TestNew_Validation() {
	valid := func() *Config {
		return &Config{
			MessageRepo:   s.mockMessageRepo,
			ActorRepo:     s.mockActorRepo,
			Mutator:       s.mutator,
			Parser:        formula.New(),
			Roller:        s.mockRoller,
			Clock:         s.mockClock,
			UUIDGenerator: s.mockUUID,
		}
	}

	tests := []struct {
		name    string
		mutate  func(cfg *Config) *Config
		wantErr error
	}{
		{name: "nil config", mutate: func(*Config) *Config { return nil }, wantErr: ErrNilConfig},
		{name: "message repo", mutate: func(c *Config) *Config { c.MessageRepo = nil; return c }, wantErr: ErrNilMessageRepo},
		{name: "actor repo", mutate: func(c *Config) *Config { c.ActorRepo = nil; return c }, wantErr: ErrNilActorRepo},
		{name: "mutator", mutate: func(c *Config) *Config { c.Mutator = nil; return c }, wantErr: ErrNilMutator},
		{name: "parser", mutate: func(c *Config) *Config { c.Parser = nil; return c }, wantErr: ErrNilParser},
		{name: "roller", mutate: func(c *Config) *Config { c.Roller = nil; return c }, wantErr: ErrNilRoller},
		{name: "clock", mutate: func(c *Config) *Config { c.Clock = nil; return c }, wantErr: ErrNilClock},
		{name: "uuid", mutate: func(c *Config) *Config { c.UUIDGenerator = nil; return c }, wantErr: ErrNilUUIDGenerator},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			svc, err := New(tt.mutate(valid()))
			s.ErrorIs(err, tt.wantErr)
			s.Nil(svc)
		})
	}
}

func (s *InspirationServiceTestSuite) TestRoll_HappyPath() {
	s.mockRoller.EXPECT().Roll(20).Return(12)
	s.mockClock.EXPECT().Now().Return(s.testTime)
	s.mockActorRepo.EXPECT().
		GetActor(gomock.Any(), &actorRepo.GetActorInput{ActorID: s.testAuthorID}).
		Return(nil, actorRepo.ErrActorNotFound)
	s.mockActorRepo.EXPECT().
		SaveActor(gomock.Any(), &actorRepo.SaveActorInput{
			Actor: &models.Actor{
				ID:        s.testAuthorID,
				Name:      "Brielle",
				UpdatedAt: s.testTime,
			},
		}).
		Return(nil)
	s.mockUUID.EXPECT().NewID().Return(s.testMessageID)

	var saved *models.Message
	s.mockMessageRepo.EXPECT().
		SaveMessage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *messageRepo.SaveMessageInput) error {
			saved = input.Message
			return nil
		})

	output, err := s.service.Roll(s.ctx, &RollInput{
		ChannelID:  s.testChannelID,
		AuthorID:   s.testAuthorID,
		AuthorName: "Brielle",
		Formula:    "1d20+5",
		Flavor:     "perception",
	})

	s.Require().NoError(err)
	s.Require().NotNil(output)
	s.Same(saved, output.Message)
	s.Equal(s.testMessageID, output.Message.ID)
	s.Equal(s.testChannelID, output.Message.ChannelID)
	s.Equal("perception", output.Message.Flavor)
	s.Equal("1d20 + 5", output.Message.Roll.Formula())
	s.Equal(17, output.Message.Roll.Total())
	s.Equal(s.testTime, output.Message.CreatedAt)
}

func (s *InspirationServiceTestSuite) TestRoll_KnownActorIsNotRewritten() {
	s.mockRoller.EXPECT().Roll(6).Return(4).Times(2)
	s.mockClock.EXPECT().Now().Return(s.testTime)
	s.expectActor(s.inspiredActor)
	s.mockUUID.EXPECT().NewID().Return(s.testMessageID)
	s.mockMessageRepo.EXPECT().SaveMessage(gomock.Any(), gomock.Any()).Return(nil)

	output, err := s.service.Roll(s.ctx, &RollInput{
		ChannelID:  s.testChannelID,
		AuthorID:   s.testAuthorID,
		AuthorName: "Brielle",
		Formula:    "2d6",
	})

	s.Require().NoError(err)
	s.Equal(8, output.Message.Roll.Total())
}

func (s *InspirationServiceTestSuite) TestRoll_InsideMutationReusesItsFaces() {
	stack := roll.NewOverrideStack(s.mockRoller)
	pool := roll.NewPool()
	pool.Add(20, 9)
	frame := stack.Push(pool)
	ctx := roll.WithStack(s.ctx, stack)

	s.mockClock.EXPECT().Now().Return(s.testTime)
	s.expectActor(s.inspiredActor)
	s.mockUUID.EXPECT().NewID().Return(s.testMessageID)
	s.mockMessageRepo.EXPECT().SaveMessage(gomock.Any(), gomock.Any()).Return(nil)

	output, err := s.service.Roll(ctx, &RollInput{
		ChannelID:  s.testChannelID,
		AuthorID:   s.testAuthorID,
		AuthorName: "Brielle",
		Formula:    "1d20",
	})

	s.Require().NoError(err)
	s.Equal(9, output.Message.Roll.Total())
	s.NoError(stack.Pop(frame))
}

func (s *InspirationServiceTestSuite) TestRoll_InvalidFormula() {
	output, err := s.service.Roll(s.ctx, &RollInput{
		ChannelID: s.testChannelID,
		AuthorID:  s.testAuthorID,
		Formula:   "1d20 * 2",
	})

	var formulaErr *roll.FormulaError
	s.Require().True(errors.As(err, &formulaErr))
	s.Equal(5, formulaErr.Pos)
	s.Nil(output)
}

func (s *InspirationServiceTestSuite) TestRoll_InvalidInput() {
	_, err := s.service.Roll(s.ctx, &RollInput{Formula: "1d20"})
	s.ErrorIs(err, ErrInvalidInput)
}

func (s *InspirationServiceTestSuite) TestRoll_SaveMessageError() {
	expectedError := errors.New("redis down")

	s.mockRoller.EXPECT().Roll(20).Return(3)
	s.mockClock.EXPECT().Now().Return(s.testTime)
	s.expectActor(s.uninspiredActor)
	s.mockUUID.EXPECT().NewID().Return(s.testMessageID)
	s.mockMessageRepo.EXPECT().SaveMessage(gomock.Any(), gomock.Any()).Return(expectedError)

	output, err := s.service.Roll(s.ctx, &RollInput{
		ChannelID: s.testChannelID,
		AuthorID:  s.testAuthorID,
		Formula:   "1d20",
	})

	s.ErrorIs(err, expectedError)
	s.Nil(output)
}

func (s *InspirationServiceTestSuite) TestUseInspiration_ConsumeRerollsLowest() {
	s.expectMessage(s.rolledMessage)
	s.expectActor(s.inspiredActor)
	s.mockRoller.EXPECT().Roll(20).Return(17)
	s.mockClock.EXPECT().Now().Return(s.testTime)
	s.expectClaim(false)
	s.mockMessageRepo.EXPECT().
		UpdateMessage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *messageRepo.UpdateMessageInput) error {
			s.Equal(0, input.ExpectedInspirationUsed)
			s.Equal(1, input.Message.InspirationUsed)
			return nil
		})

	output, err := s.service.UseInspiration(s.ctx, &UseInspirationInput{
		MessageID: s.testMessageID,
		UserID:    s.testAuthorID,
		Mode:      ModeConsume,
	})

	s.Require().NoError(err)
	s.Require().NotNil(output)

	s.Equal("2d20kh1 + 5", output.Message.Roll.Formula())
	s.Equal(22, output.Message.Roll.Total())
	s.Equal(17, output.PreviousTotal)
	s.Equal([]int{12, 17}, roll.Flatten(output.Message.Roll)[0].Values())
	s.Equal(1, output.Message.InspirationUsed)
	s.Equal(s.testTime, output.Message.UpdatedAt)
	s.False(output.Actor.Inspiration)

	s.Require().NotNil(output.Display)
	s.Equal("1d20", output.Display.Formula())
	s.Equal(12, output.Display.Total())
	s.Equal(1, output.Reused)
	s.Equal(1, output.Fresh)
	s.Equal(0, output.Leftover)
}

func (s *InspirationServiceTestSuite) TestUseInspiration_ConsumeKeepsBetterOldDie() {
	s.expectMessage(s.rolledMessage)
	s.expectActor(s.inspiredActor)
	s.mockRoller.EXPECT().Roll(20).Return(3)
	s.mockClock.EXPECT().Now().Return(s.testTime)
	s.expectClaim(false)
	s.mockMessageRepo.EXPECT().UpdateMessage(gomock.Any(), gomock.Any()).Return(nil)

	output, err := s.service.UseInspiration(s.ctx, &UseInspirationInput{
		MessageID: s.testMessageID,
		UserID:    s.testAuthorID,
		Mode:      ModeConsume,
	})

	s.Require().NoError(err)
	s.Equal(17, output.Message.Roll.Total())
}

func (s *InspirationServiceTestSuite) TestUseInspiration_ReactivateRerollsHighest() {
	s.expectMessage(s.rolledMessage)
	s.expectActor(s.uninspiredActor)
	s.mockRoller.EXPECT().Roll(20).Return(3)
	s.mockClock.EXPECT().Now().Return(s.testTime)
	s.expectClaim(true)
	s.mockMessageRepo.EXPECT().UpdateMessage(gomock.Any(), gomock.Any()).Return(nil)

	output, err := s.service.UseInspiration(s.ctx, &UseInspirationInput{
		MessageID: s.testMessageID,
		UserID:    s.testGMID,
		IsGM:      true,
		Mode:      ModeReactivate,
	})

	s.Require().NoError(err)
	s.Equal("2d20kl1 + 5", output.Message.Roll.Formula())
	s.Equal(8, output.Message.Roll.Total())
	s.True(output.Actor.Inspiration)
}

func (s *InspirationServiceTestSuite) TestUseInspiration_SecondRerollReusesBothDice() {
	s.rolledMessage.Roll = roll.New(roll.ResolvedDice(2, 20, []roll.Result{
		{Value: 5, Discarded: true},
		{Value: 14, Active: true},
	}))

	s.expectMessage(s.rolledMessage)
	s.expectActor(s.uninspiredActor)
	s.mockRoller.EXPECT().Roll(20).Return(9)
	s.mockClock.EXPECT().Now().Return(s.testTime)
	s.expectClaim(true)
	s.mockMessageRepo.EXPECT().UpdateMessage(gomock.Any(), gomock.Any()).Return(nil)

	output, err := s.service.UseInspiration(s.ctx, &UseInspirationInput{
		MessageID: s.testMessageID,
		UserID:    s.testGMID,
		IsGM:      true,
		Mode:      ModeReactivate,
	})

	s.Require().NoError(err)
	s.Equal("3d20kl1", output.Message.Roll.Formula())
	s.Equal([]int{5, 14, 9}, roll.Flatten(output.Message.Roll)[0].Values())
	s.Equal(5, output.Message.Roll.Total())
	s.Equal(2, output.Reused)
	s.Equal(1, output.Fresh)
}

func (s *InspirationServiceTestSuite) TestUseInspiration_PermissionErrors() {
	tests := []struct {
		name    string
		actor   *models.Actor
		input   *UseInspirationInput
		wantErr error
	}{
		{
			name:    "consume by someone else",
			actor:   s.inspiredActor,
			input:   &UseInspirationInput{MessageID: s.testMessageID, UserID: "someone-else", Mode: ModeConsume},
			wantErr: ErrNotAuthor,
		},
		{
			name:    "consume without inspiration",
			actor:   s.uninspiredActor,
			input:   &UseInspirationInput{MessageID: s.testMessageID, UserID: s.testAuthorID, Mode: ModeConsume},
			wantErr: ErrNoInspiration,
		},
		{
			name:    "reactivate by a player",
			actor:   s.uninspiredActor,
			input:   &UseInspirationInput{MessageID: s.testMessageID, UserID: s.testAuthorID, Mode: ModeReactivate},
			wantErr: ErrNotGM,
		},
		{
			name:    "reactivate while inspired",
			actor:   s.inspiredActor,
			input:   &UseInspirationInput{MessageID: s.testMessageID, UserID: s.testGMID, IsGM: true, Mode: ModeReactivate},
			wantErr: ErrAlreadyInspired,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.expectMessage(s.rolledMessage)
			s.expectActor(tt.actor)

			output, err := s.service.UseInspiration(s.ctx, tt.input)
			s.ErrorIs(err, tt.wantErr)
			s.Nil(output)
		})
	}
}

func (s *InspirationServiceTestSuite) TestUseInspiration_NoD20() {
	s.rolledMessage.Roll = roll.New(roll.ResolvedDice(1, 6, []roll.Result{{Value: 4, Active: true}}))
	s.expectMessage(s.rolledMessage)
	s.expectActor(s.inspiredActor)

	_, err := s.service.UseInspiration(s.ctx, &UseInspirationInput{
		MessageID: s.testMessageID,
		UserID:    s.testAuthorID,
		Mode:      ModeConsume,
	})

	s.ErrorIs(err, ErrNoD20)
}

func (s *InspirationServiceTestSuite) TestUseInspiration_MessageNotFound() {
	s.mockMessageRepo.EXPECT().
		GetMessage(gomock.Any(), &messageRepo.GetMessageInput{MessageID: s.testMessageID}).
		Return(nil, messageRepo.ErrMessageNotFound)

	_, err := s.service.UseInspiration(s.ctx, &UseInspirationInput{
		MessageID: s.testMessageID,
		UserID:    s.testAuthorID,
		Mode:      ModeConsume,
	})

	s.ErrorIs(err, ErrMessageNotFound)
}

func (s *InspirationServiceTestSuite) TestUseInspiration_InvalidMode() {
	_, err := s.service.UseInspiration(s.ctx, &UseInspirationInput{
		MessageID: s.testMessageID,
		UserID:    s.testAuthorID,
		Mode:      "double",
	})

	s.ErrorIs(err, ErrInvalidMode)
}

func (s *InspirationServiceTestSuite) TestUseInspiration_SaveMessageErrorRestoresInspiration() {
	expectedError := errors.New("redis down")

	s.expectMessage(s.rolledMessage)
	s.expectActor(s.inspiredActor)
	s.mockRoller.EXPECT().Roll(20).Return(17)
	s.mockClock.EXPECT().Now().Return(s.testTime)
	s.expectClaim(false)
	s.mockMessageRepo.EXPECT().UpdateMessage(gomock.Any(), gomock.Any()).Return(expectedError)
	s.mockActorRepo.EXPECT().
		UpdateInspiration(gomock.Any(), &actorRepo.UpdateInspirationInput{
			ActorID:     s.testAuthorID,
			Expected:    false,
			Inspiration: true,
			UpdatedAt:   s.testTime,
		}).
		Return(s.inspiredActor, nil)

	output, err := s.service.UseInspiration(s.ctx, &UseInspirationInput{
		MessageID: s.testMessageID,
		UserID:    s.testAuthorID,
		Mode:      ModeConsume,
	})

	s.ErrorIs(err, expectedError)
	s.Nil(output)
}

func (s *InspirationServiceTestSuite) TestUseInspiration_DoubleClickSpendsOnce() {
	// The second click read the actor before the first one claimed the flag.
	s.expectMessage(s.rolledMessage)
	s.expectActor(s.inspiredActor)
	s.mockRoller.EXPECT().Roll(20).Return(17)
	s.mockClock.EXPECT().Now().Return(s.testTime)
	s.mockActorRepo.EXPECT().
		UpdateInspiration(gomock.Any(), gomock.Any()).
		Return(nil, actorRepo.ErrInspirationChanged)

	output, err := s.service.UseInspiration(s.ctx, &UseInspirationInput{
		MessageID: s.testMessageID,
		UserID:    s.testAuthorID,
		Mode:      ModeConsume,
	})

	s.ErrorIs(err, ErrNoInspiration)
	s.Nil(output)
}

func (s *InspirationServiceTestSuite) TestUseInspiration_ReactivateRaceReportsInspired() {
	s.expectMessage(s.rolledMessage)
	s.expectActor(s.uninspiredActor)
	s.mockRoller.EXPECT().Roll(20).Return(3)
	s.mockClock.EXPECT().Now().Return(s.testTime)
	s.mockActorRepo.EXPECT().
		UpdateInspiration(gomock.Any(), gomock.Any()).
		Return(nil, actorRepo.ErrInspirationChanged)

	_, err := s.service.UseInspiration(s.ctx, &UseInspirationInput{
		MessageID: s.testMessageID,
		UserID:    s.testGMID,
		IsGM:      true,
		Mode:      ModeReactivate,
	})

	s.ErrorIs(err, ErrAlreadyInspired)
}

func (s *InspirationServiceTestSuite) TestUseInspiration_MessageRerolledMeanwhile() {
	s.expectMessage(s.rolledMessage)
	s.expectActor(s.inspiredActor)
	s.mockRoller.EXPECT().Roll(20).Return(17)
	s.mockClock.EXPECT().Now().Return(s.testTime)
	s.expectClaim(false)
	s.mockMessageRepo.EXPECT().
		UpdateMessage(gomock.Any(), gomock.Any()).
		Return(messageRepo.ErrMessageChanged)
	s.mockActorRepo.EXPECT().
		UpdateInspiration(gomock.Any(), &actorRepo.UpdateInspirationInput{
			ActorID:     s.testAuthorID,
			Expected:    false,
			Inspiration: true,
			UpdatedAt:   s.testTime,
		}).
		Return(s.inspiredActor, nil)

	_, err := s.service.UseInspiration(s.ctx, &UseInspirationInput{
		MessageID: s.testMessageID,
		UserID:    s.testAuthorID,
		Mode:      ModeConsume,
	})

	s.ErrorIs(err, ErrRerollConflict)
}

func (s *InspirationServiceTestSuite) TestGetInspirationState() {
	tests := []struct {
		name      string
		input     *GetInspirationStateInput
		actor     *models.Actor
		wantState *models.InspirationState
	}{
		{
			name:      "author with inspiration",
			input:     &GetInspirationStateInput{MessageID: s.testMessageID, ViewerID: s.testAuthorID},
			actor:     s.inspiredActor,
			wantState: &models.InspirationState{Role: models.InspirationRolePlayer, HasInspiration: true},
		},
		{
			name:      "author without inspiration",
			input:     &GetInspirationStateInput{MessageID: s.testMessageID, ViewerID: s.testAuthorID},
			actor:     s.uninspiredActor,
			wantState: &models.InspirationState{Role: models.InspirationRolePlayer},
		},
		{
			name:      "gm",
			input:     &GetInspirationStateInput{MessageID: s.testMessageID, ViewerID: s.testGMID, ViewerIsGM: true},
			actor:     s.uninspiredActor,
			wantState: &models.InspirationState{Role: models.InspirationRoleGM},
		},
		{
			name:  "bystander",
			input: &GetInspirationStateInput{MessageID: s.testMessageID, ViewerID: "someone-else"},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.expectMessage(s.rolledMessage)
			if tt.actor != nil {
				s.expectActor(tt.actor)
			}

			output, err := s.service.GetInspirationState(s.ctx, tt.input)
			s.Require().NoError(err)
			s.Same(s.rolledMessage, output.Message)
			s.Equal(tt.wantState, output.State)
		})
	}
}

func (s *InspirationServiceTestSuite) TestGetInspirationState_Offers() {
	s.expectMessage(s.rolledMessage)
	s.expectActor(s.inspiredActor)

	output, err := s.service.GetInspirationState(s.ctx, &GetInspirationStateInput{
		MessageID: s.testMessageID,
		ViewerID:  s.testAuthorID,
	})

	s.Require().NoError(err)
	s.True(output.State.CanConsume())
	s.False(output.State.CanReactivate())
}

func (s *InspirationServiceTestSuite) TestGetInspirationState_NothingToOffer() {
	s.Run("message missing", func() {
		s.mockMessageRepo.EXPECT().
			GetMessage(gomock.Any(), gomock.Any()).
			Return(nil, messageRepo.ErrMessageNotFound)

		output, err := s.service.GetInspirationState(s.ctx, &GetInspirationStateInput{MessageID: s.testMessageID})
		s.Require().NoError(err)
		s.Nil(output.State)
		s.Nil(output.Message)
	})

	s.Run("no d20", func() {
		msg := *s.rolledMessage
		msg.Roll = roll.New(&roll.Number{Value: 3})
		s.expectMessage(&msg)

		output, err := s.service.GetInspirationState(s.ctx, &GetInspirationStateInput{
			MessageID: s.testMessageID,
			ViewerID:  s.testAuthorID,
		})
		s.Require().NoError(err)
		s.Nil(output.State)
	})

	s.Run("actor missing", func() {
		s.expectMessage(s.rolledMessage)
		s.mockActorRepo.EXPECT().
			GetActor(gomock.Any(), gomock.Any()).
			Return(nil, actorRepo.ErrActorNotFound)

		output, err := s.service.GetInspirationState(s.ctx, &GetInspirationStateInput{
			MessageID: s.testMessageID,
			ViewerID:  s.testAuthorID,
		})
		s.Require().NoError(err)
		s.Nil(output.State)
	})
}

func (s *InspirationServiceTestSuite) TestSetInspiration_GrantsNewActor() {
	s.mockActorRepo.EXPECT().
		GetActor(gomock.Any(), &actorRepo.GetActorInput{ActorID: s.testAuthorID}).
		Return(nil, actorRepo.ErrActorNotFound)
	s.mockClock.EXPECT().Now().Return(s.testTime)
	s.mockActorRepo.EXPECT().
		SaveActor(gomock.Any(), &actorRepo.SaveActorInput{
			Actor: &models.Actor{
				ID:          s.testAuthorID,
				Name:        "Brielle",
				Inspiration: true,
				UpdatedAt:   s.testTime,
			},
		}).
		Return(nil)

	output, err := s.service.SetInspiration(s.ctx, &SetInspirationInput{
		ActorID:     s.testAuthorID,
		ActorName:   "Brielle",
		Inspiration: true,
		IsGM:        true,
	})

	s.Require().NoError(err)
	s.True(output.Actor.Inspiration)
}

func (s *InspirationServiceTestSuite) TestSetInspiration_Unchanged() {
	s.expectActor(s.inspiredActor)

	output, err := s.service.SetInspiration(s.ctx, &SetInspirationInput{
		ActorID:     s.testAuthorID,
		Inspiration: true,
		IsGM:        true,
	})

	s.Require().NoError(err)
	s.Same(s.inspiredActor, output.Actor)
}

func (s *InspirationServiceTestSuite) TestSetInspiration_RequiresGM() {
	_, err := s.service.SetInspiration(s.ctx, &SetInspirationInput{
		ActorID:     s.testAuthorID,
		Inspiration: true,
	})

	s.ErrorIs(err, ErrNotGM)
}

func (s *InspirationServiceTestSuite) TestListInspired() {
	s.mockActorRepo.EXPECT().
		GetInspiredActors(gomock.Any()).
		Return(&actorRepo.GetInspiredActorsOutput{Actors: []*models.Actor{s.inspiredActor}}, nil)

	output, err := s.service.ListInspired(s.ctx)

	s.Require().NoError(err)
	s.Equal([]*models.Actor{s.inspiredActor}, output.Actors)
}
