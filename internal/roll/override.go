package roll

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/inspired/internal/dice"
)

// FaceResolver produces the face value of a single die during evaluation
type FaceResolver interface {
	ResolveFace(faces int) int
}

// RollerResolver resolves every face from a dice roller
type RollerResolver struct {
	Roller dice.Roller
}

// ResolveFace implements FaceResolver
func (r RollerResolver) ResolveFace(faces int) int {
	return r.Roller.Roll(faces)
}

// Frame is one pushed override context: a pool and the results it handed out
type Frame struct {
	pool      *Pool
	collected map[int][]Result
	fresh     int
}

// Collected returns the pool satisfied results per face count, faces ascending
func (f *Frame) Collected() ([]int, map[int][]Result) {
	faces := make([]int, 0, len(f.collected))
	out := make(map[int][]Result, len(f.collected))
	for face, results := range f.collected {
		faces = append(faces, face)
		out[face] = append([]Result(nil), results...)
	}
	sort.Ints(faces)
	return faces, out
}

// Fresh counts the faces that fell through to the fallback roller
func (f *Frame) Fresh() int {
	return f.fresh
}

// Pool returns the frame's pool
func (f *Frame) Pool() *Pool {
	return f.pool
}

// OverrideStack intercepts face resolution while a frame is pushed.
// Only the top frame is visible. A stack belongs to one call chain and travels
// in its context, so unrelated requests never see each other's frames.
type OverrideStack struct {
	mu       sync.Mutex
	frames   []*Frame
	fallback dice.Roller
}

// NewOverrideStack creates an empty stack falling back to roller
func NewOverrideStack(fallback dice.Roller) *OverrideStack {
	return &OverrideStack{fallback: fallback}
}

type stackContextKey struct{}

// WithStack returns a copy of ctx carrying stack
func WithStack(ctx context.Context, stack *OverrideStack) context.Context {
	return context.WithValue(ctx, stackContextKey{}, stack)
}

// StackFromContext returns the stack carried by ctx
func StackFromContext(ctx context.Context) (*OverrideStack, bool) {
	stack, ok := ctx.Value(stackContextKey{}).(*OverrideStack)
	return stack, ok && stack != nil
}

// ResolverFromContext resolves through the stack carried by ctx, so a roll made
// inside a mutation reuses its faces. Without one it resolves from roller.
func ResolverFromContext(ctx context.Context, roller dice.Roller) FaceResolver {
	if stack, ok := StackFromContext(ctx); ok {
		return stack
	}
	return RollerResolver{Roller: roller}
}

// Push installs a new top frame over pool
func (s *OverrideStack) Push(pool *Pool) *Frame {
	if pool == nil {
		pool = NewPool()
	}
	frame := &Frame{
		pool:      pool,
		collected: make(map[int][]Result),
	}

	s.mu.Lock()
	s.frames = append(s.frames, frame)
	s.mu.Unlock()

	return frame
}

// Pop removes frame. A frame that is not on top is still removed so its pool
// can not leak into later resolutions, and ErrStackDiscipline is returned.
func (s *OverrideStack) Pop(frame *Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.frames)
	if n > 0 && s.frames[n-1] == frame {
		s.frames[n-1] = nil
		s.frames = s.frames[:n-1]
		return nil
	}

	for i, f := range s.frames {
		if f == frame {
			copy(s.frames[i:], s.frames[i+1:])
			s.frames[n-1] = nil
			s.frames = s.frames[:n-1]
			break
		}
	}
	return ErrStackDiscipline
}

// Depth returns the number of pushed frames
func (s *OverrideStack) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

// ResolveFace prefers a pooled value from the top frame and falls back to the roller
func (s *OverrideStack) ResolveFace(faces int) int {
	s.mu.Lock()
	var top *Frame
	if n := len(s.frames); n > 0 {
		top = s.frames[n-1]
	}
	if top != nil {
		if value, ok := top.pool.Take(faces); ok {
			// Only pool satisfied values are collected for display.
			top.collected[faces] = append(top.collected[faces], Result{Value: value, Active: true})
			s.mu.Unlock()
			return value
		}
		top.fresh++
	}
	s.mu.Unlock()

	return s.fallback.Roll(faces)
}
