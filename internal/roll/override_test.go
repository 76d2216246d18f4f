package roll

import (
	"context"
	"testing"

	"github.com/KirkDiggler/inspired/internal/dice/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OverrideStackTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockRoller *mocks.MockRoller
	stack      *OverrideStack
}

func (s *OverrideStackTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRoller = mocks.NewMockRoller(s.mockCtrl)
	s.stack = NewOverrideStack(s.mockRoller)
}

func TestOverrideStackTestSuite(t *testing.T) {
	suite.Run(t, new(OverrideStackTestSuite))
}

func (s *OverrideStackTestSuite) TestBuildPoolKeepsRollOrder() {
	old := New(
		ResolvedDice(2, 20, []Result{{Value: 4, Active: false, Discarded: true}, {Value: 17, Active: true}}),
		Plus(),
		NewGroup(ResolvedDice(1, 6, active(3)), Plus(), ResolvedDice(1, 20, active(2))),
	)

	pool := BuildPool(old)

	s.Equal(4, pool.Len())
	s.Equal([]int{6, 20}, pool.Faces())
	s.Equal([]int{4, 17, 2}, pool.Remaining(20))
	s.Equal([]int{3}, pool.Remaining(6))
}

func (s *OverrideStackTestSuite) TestBuildPoolWithoutDice() {
	pool := BuildPool(New(&Number{Value: 3}))

	s.Equal(0, pool.Len())
	s.Empty(pool.Faces())
}

func (s *OverrideStackTestSuite) TestPoolTakeIsFIFO() {
	pool := NewPool()
	pool.Add(20, 4)
	pool.Add(20, 17)

	v, ok := pool.Take(20)
	s.True(ok)
	s.Equal(4, v)

	v, ok = pool.Take(20)
	s.True(ok)
	s.Equal(17, v)

	_, ok = pool.Take(20)
	s.False(ok)
	s.Empty(pool.Faces())
}

func (s *OverrideStackTestSuite) TestResolveFaceWithoutFrameUsesRoller() {
	s.mockRoller.EXPECT().Roll(20).Return(11)

	s.Equal(11, s.stack.ResolveFace(20))
}

func (s *OverrideStackTestSuite) TestResolveFacePrefersPool() {
	pool := NewPool()
	pool.Add(20, 9)
	frame := s.stack.Push(pool)

	s.Equal(9, s.stack.ResolveFace(20))

	s.mockRoller.EXPECT().Roll(20).Return(15)
	s.Equal(15, s.stack.ResolveFace(20))

	s.mockRoller.EXPECT().Roll(6).Return(2)
	s.Equal(2, s.stack.ResolveFace(6))

	faces, collected := frame.Collected()
	s.Equal([]int{20}, faces)
	s.Equal([]Result{{Value: 9, Active: true}}, collected[20])
	s.Equal(2, frame.Fresh())
	s.NoError(s.stack.Pop(frame))
}

func (s *OverrideStackTestSuite) TestOnlyTopFrameIsVisible() {
	outerPool := NewPool()
	outerPool.Add(20, 12)
	outer := s.stack.Push(outerPool)

	innerPool := NewPool()
	innerPool.Add(20, 3)
	inner := s.stack.Push(innerPool)
	s.Equal(2, s.stack.Depth())

	s.Equal(3, s.stack.ResolveFace(20))
	s.NoError(s.stack.Pop(inner))

	s.Equal(12, s.stack.ResolveFace(20))
	s.NoError(s.stack.Pop(outer))
	s.Equal(0, s.stack.Depth())
}

func (s *OverrideStackTestSuite) TestPopOutOfOrderRemovesFrame() {
	outerPool := NewPool()
	outerPool.Add(20, 12)
	outer := s.stack.Push(outerPool)
	inner := s.stack.Push(NewPool())

	s.ErrorIs(s.stack.Pop(outer), ErrStackDiscipline)
	s.Equal(1, s.stack.Depth())

	s.NoError(s.stack.Pop(inner))
	s.ErrorIs(s.stack.Pop(outer), ErrStackDiscipline)
	s.Equal(0, s.stack.Depth())

	s.mockRoller.EXPECT().Roll(20).Return(5)
	s.Equal(5, s.stack.ResolveFace(20))
}

func (s *OverrideStackTestSuite) TestStackTravelsInContext() {
	ctx := context.Background()
	_, ok := StackFromContext(ctx)
	s.False(ok)
	s.Equal(RollerResolver{Roller: s.mockRoller}, ResolverFromContext(ctx, s.mockRoller))

	ctx = WithStack(ctx, s.stack)
	stack, ok := StackFromContext(ctx)
	s.True(ok)
	s.Same(s.stack, stack)
	s.Same(s.stack, ResolverFromContext(ctx, s.mockRoller))

	_, ok = StackFromContext(WithStack(context.Background(), nil))
	s.False(ok)
}

func (s *OverrideStackTestSuite) TestEvaluateThroughStack() {
	pool := NewPool()
	pool.Add(20, 9)
	frame := s.stack.Push(pool)
	defer func() { s.NoError(s.stack.Pop(frame)) }()

	s.mockRoller.EXPECT().Roll(20).Return(15)

	evaluated, err := New(NewDice(2, 20, Modifier{Kind: KeepHighest, Count: 1})).
		Evaluate(context.Background(), Options{Resolver: s.stack})
	s.Require().NoError(err)

	s.Equal([]int{9, 15}, Flatten(evaluated)[0].Values())
	s.Equal(15, evaluated.Total())
}

func (s *OverrideStackTestSuite) TestBatchPassesEvaluatedTermsThrough() {
	done := ResolvedDice(1, 6, active(4))
	pending := NewDice(1, 8)
	s.mockRoller.EXPECT().Roll(8).Return(5).Times(2)

	for _, async := range []bool{false, true} {
		batch, err := EvaluateBatch(context.Background(), []Term{done, Plus(), pending}, Options{Resolver: s.stack, Async: async})
		s.Require().NoError(err)

		s.Len(batch.Results, 3)
		s.Same(done, batch.Results[0])
		s.True(batch.Results[2].Evaluated())
		s.Len(batch.Fresh, 1)
		s.Same(batch.Results[2], batch.Fresh[0])
		s.Equal([]int{5}, batch.Fresh[0].(*Dice).Values())
		s.False(pending.Evaluated())
	}
}

func (s *OverrideStackTestSuite) TestAsyncBatchConsumesPoolInFormulaOrder() {
	pool := NewPool()
	pool.Add(20, 4)
	pool.Add(20, 17)
	pool.Add(20, 2)
	frame := s.stack.Push(pool)
	defer func() { s.NoError(s.stack.Pop(frame)) }()

	terms := []Term{NewDice(1, 20), Plus(), NewGroup(NewDice(1, 20)), Plus(), NewDice(1, 20)}
	batch, err := EvaluateBatch(context.Background(), terms, Options{Resolver: s.stack, Async: true})
	s.Require().NoError(err)

	got := Flatten(New(batch.Results...))
	s.Require().Len(got, 3)
	s.Equal([]int{4}, got[0].Values())
	s.Equal([]int{17}, got[1].Values())
	s.Equal([]int{2}, got[2].Values())
	s.Len(batch.Fresh, 3)
}

func (s *OverrideStackTestSuite) TestAsyncBatchHonoursCancellation() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := EvaluateBatch(ctx, []Term{NewDice(1, 20)}, Options{Resolver: s.stack, Async: true})
	s.ErrorIs(err, context.Canceled)
}
