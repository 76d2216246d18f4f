package roll

import (
	"context"
	"errors"
	"log/slog"

	"github.com/KirkDiggler/inspired/internal/dice"
)

// Parser turns a formula into an unevaluated roll
type Parser interface {
	Parse(formula string) (*Roll, error)
}

// Spec describes the roll a mutation should produce
type Spec interface {
	resolve(ctx context.Context, parser Parser) (*Roll, error)
}

type formulaSpec string

func (s formulaSpec) resolve(_ context.Context, parser Parser) (*Roll, error) {
	return parser.Parse(string(s))
}

type rollSpec struct {
	roll *Roll
}

func (s rollSpec) resolve(context.Context, Parser) (*Roll, error) {
	if s.roll == nil {
		return nil, ErrNilRoll
	}
	return s.roll, nil
}

// FactoryFunc builds the new roll. It may block on the host.
type FactoryFunc func(ctx context.Context) (*Roll, error)

func (f FactoryFunc) resolve(ctx context.Context, _ Parser) (*Roll, error) {
	r, err := f(ctx)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrNilRoll
	}
	return r, nil
}

// Formula specifies the new roll as dice notation
func Formula(formula string) Spec { return formulaSpec(formula) }

// FromRoll specifies a ready made roll
func FromRoll(r *Roll) Spec { return rollSpec{roll: r} }

// Factory specifies a function producing the new roll
func Factory(fn func(ctx context.Context) (*Roll, error)) Spec { return FactoryFunc(fn) }

// MutatorConfig holds configuration for the mutator
type MutatorConfig struct {
	// Parser resolves formula specs
	Parser Parser

	// Roller is the fallback source when the pool can not satisfy a face
	Roller dice.Roller

	// Async evaluates new rolls on the asynchronous path
	Async bool

	Logger *slog.Logger
}

// Modification is the outcome of ModifyRoll
type Modification struct {
	// Result is the evaluated new roll including reconciled leftovers
	Result *Roll

	// Display is built from the pool satisfied faces, nil when none were
	Display *Roll

	// Reused counts faces taken from the old roll
	Reused int

	// Fresh counts faces rolled by the fallback source
	Fresh int

	// Leftover counts old faces appended as discarded dice
	Leftover int
}

// Mutator re-evaluates rolls under a new formula, reusing the faces already rolled
type Mutator struct {
	parser Parser
	roller dice.Roller
	async  bool
	logger *slog.Logger
}

// NewMutator creates a new mutator
func NewMutator(cfg *MutatorConfig) (*Mutator, error) {
	if cfg == nil {
		return nil, Error("config cannot be nil")
	}
	if cfg.Parser == nil {
		return nil, ErrNilParser
	}

	if cfg.Roller == nil {
		return nil, ErrNilRoller
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Mutator{
		parser: cfg.Parser,
		roller: cfg.Roller,
		async:  cfg.Async,
		logger: logger,
	}, nil
}

// ModifyRoll evaluates spec while reusing the faces of old. Faces of old the new
// roll does not consume are appended to the result as discarded dice, so every
// face of old is still present afterwards. old is never modified.
//
// Each call chain gets its own override stack. A mutation started from a
// factory spec finds its parent's stack in ctx and nests on top of it.
func (m *Mutator) ModifyRoll(ctx context.Context, old *Roll, spec Spec) (mod *Modification, err error) {
	if spec == nil {
		return nil, ErrNilSpec
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// An empty frame still hides any outer pool from a passthrough evaluation.
	pool := NewPool()
	passthrough := !HasEvaluatedDice(old)
	if !passthrough {
		pool = BuildPool(old)
	}

	stack, ok := StackFromContext(ctx)
	if !ok {
		stack = NewOverrideStack(m.roller)
		ctx = WithStack(ctx, stack)
	}

	frame := stack.Push(pool)
	defer func() {
		if popErr := stack.Pop(frame); popErr != nil {
			m.logger.Error("override frame was not on top of the stack",
				"error", popErr,
				"depth", stack.Depth())
			mod, err = nil, errors.Join(err, popErr)
		}
	}()

	// Once the frame is pushed the mutation runs to completion.
	ctx = context.WithoutCancel(ctx)

	result, err := m.resolveSpec(ctx, stack, spec)
	if err != nil {
		return nil, err
	}
	if passthrough {
		return &Modification{Result: result, Fresh: frame.Fresh()}, nil
	}

	faces, collected := frame.Collected()
	display, err := m.buildDisplay(ctx, stack, faces, collected)
	if err != nil {
		return nil, err
	}

	reused := 0
	for _, results := range collected {
		reused += len(results)
	}

	leftover := frame.Pool().Len()
	result = reconcile(result, frame.Pool())

	m.logger.Debug("modified roll",
		"old", old.Formula(),
		"new", result.Formula(),
		"reused", reused,
		"fresh", frame.Fresh(),
		"leftover", leftover)

	return &Modification{
		Result:   result,
		Display:  display,
		Reused:   reused,
		Fresh:    frame.Fresh(),
		Leftover: leftover,
	}, nil
}

// resolveSpec turns spec into a roll and evaluates it if it is still pending
func (m *Mutator) resolveSpec(ctx context.Context, stack *OverrideStack, spec Spec) (*Roll, error) {
	r, err := spec.resolve(ctx, m.parser)
	if err != nil {
		return nil, err
	}
	if r.Evaluated() {
		return r.Clone(), nil
	}
	return r.Evaluate(ctx, Options{
		Resolver: stack,
		Async:    m.async,
	})
}

func (m *Mutator) buildDisplay(ctx context.Context, stack *OverrideStack, faces []int, collected map[int][]Result) (*Roll, error) {
	if len(faces) == 0 {
		return nil, nil
	}

	var terms []Term
	for _, face := range faces {
		active := 0
		for _, r := range collected[face] {
			if r.Active {
				active++
			}
		}
		if len(terms) > 0 {
			terms = append(terms, Plus())
		}
		terms = append(terms, ResolvedDice(active, face, collected[face]))
	}

	batch, err := EvaluateBatch(ctx, terms, Options{Resolver: stack, Async: m.async})
	if err != nil {
		return nil, err
	}
	return &Roll{Terms: batch.Results}, nil
}

// reconcile appends the unconsumed pool values as zero count discarded dice
func reconcile(result *Roll, pool *Pool) *Roll {
	faces := pool.Faces()
	if len(faces) == 0 {
		return result
	}

	terms := append([]Term(nil), result.Terms...)
	for _, face := range faces {
		values := pool.Remaining(face)
		results := make([]Result, len(values))
		for i, v := range values {
			results[i] = Result{Value: v, Active: false, Discarded: true}
		}
		if len(terms) > 0 {
			terms = append(terms, Plus())
		}
		terms = append(terms, ResolvedDice(0, face, results))
	}
	return &Roll{Terms: terms}
}
