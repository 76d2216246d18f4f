package roll

import (
	"context"
	"errors"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Options control how pending terms are resolved
type Options struct {
	// Resolver produces die faces. Required when a dice term is pending.
	Resolver FaceResolver

	// Async evaluates pending terms off the caller's goroutine and waits for them
	Async bool
}

// Batch is the outcome of evaluating a sequence of terms
type Batch struct {
	// Results holds every term in its original position
	Results []Term

	// Fresh holds the terms evaluated by this batch, in formula order
	Fresh []Term
}

// Evaluate resolves every pending term of a copy of r
func (r *Roll) Evaluate(ctx context.Context, opts Options) (*Roll, error) {
	if r == nil {
		return nil, ErrNilRoll
	}
	if err := checkOperators(r.Terms); err != nil {
		return nil, err
	}

	batch, err := EvaluateBatch(ctx, r.Clone().Terms, opts)
	if err != nil {
		return nil, err
	}
	return &Roll{Terms: batch.Results}, nil
}

// EvaluateBatch evaluates the pending terms and passes evaluated ones through.
// The asynchronous path is taken when opts.Async is set or a term requires it.
// Pending terms are started in formula order, one at a time, so pooled faces are
// consumed in the same order on both paths.
func EvaluateBatch(ctx context.Context, terms []Term, opts Options) (*Batch, error) {
	results := make([]Term, len(terms))
	var pending []int
	for i, t := range terms {
		if t.Evaluated() {
			results[i] = t
			continue
		}
		pending = append(pending, i)
	}

	if opts.Async || requiresAsync(terms) {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(1)
		for _, i := range pending {
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return &EvaluationError{Term: terms[i].Formula(), Err: err}
				}
				evaluated, err := evaluateTerm(gctx, terms[i], opts)
				if err != nil {
					return err
				}
				results[i] = evaluated
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for _, i := range pending {
			evaluated, err := evaluateTerm(ctx, terms[i], opts)
			if err != nil {
				return nil, err
			}
			results[i] = evaluated
		}
	}

	fresh := make([]Term, 0, len(pending))
	for _, i := range pending {
		fresh = append(fresh, results[i])
	}

	return &Batch{
		Results: results,
		Fresh:   fresh,
	}, nil
}

func evaluateTerm(ctx context.Context, t Term, opts Options) (Term, error) {
	var (
		out Term
		err error
	)

	switch v := t.(type) {
	case *Dice:
		out, err = evaluateDice(v, opts.Resolver)
	case *Group:
		var batch *Batch
		batch, err = EvaluateBatch(ctx, v.Terms, opts)
		if err == nil {
			out = &Group{Terms: batch.Results}
		}
	case *Opaque:
		var value int
		value, err = v.Custom.Evaluate(ctx)
		if err == nil {
			out = &Opaque{Custom: v.Custom, Async: v.Async, value: value, evaluated: true}
		}
	case *Operator, *Number:
		out = t
	}

	if err != nil {
		var evalErr *EvaluationError
		if errors.As(err, &evalErr) {
			return nil, err
		}
		return nil, &EvaluationError{Term: t.Formula(), Err: err}
	}
	return out, nil
}

func evaluateDice(d *Dice, resolver FaceResolver) (*Dice, error) {
	if d.Faces < 1 || d.Faces > MaxFaces {
		return nil, ErrInvalidFaces
	}
	if d.Number < 0 || d.Number > MaxDice {
		return nil, ErrInvalidCount
	}
	if resolver == nil {
		return nil, ErrNilResolver
	}

	out := &Dice{
		Number:    d.Number,
		Faces:     d.Faces,
		Modifiers: append([]Modifier(nil), d.Modifiers...),
		Results:   make([]Result, 0, d.Number),
		evaluated: true,
	}
	for i := 0; i < d.Number; i++ {
		out.Results = append(out.Results, Result{
			Value:  resolver.ResolveFace(d.Faces),
			Active: true,
		})
	}
	applyModifiers(out)

	return out, nil
}

// applyModifiers discards results in modifier order. Ties favour the earlier die.
func applyModifiers(d *Dice) {
	for _, m := range d.Modifiers {
		var counting []int
		for i, r := range d.Results {
			if r.Counts() {
				counting = append(counting, i)
			}
		}

		highestFirst := m.Kind == KeepHighest || m.Kind == DropHighest
		sort.SliceStable(counting, func(a, b int) bool {
			va, vb := d.Results[counting[a]].Value, d.Results[counting[b]].Value
			if highestFirst {
				return va > vb
			}
			return va < vb
		})

		n := m.Count
		if n < 0 {
			n = 0
		}
		if n > len(counting) {
			n = len(counting)
		}

		var discard []int
		switch m.Kind {
		case KeepHighest, KeepLowest:
			discard = counting[n:]
		case DropHighest, DropLowest:
			discard = counting[:n]
		}
		for _, i := range discard {
			d.Results[i].Active = false
			d.Results[i].Discarded = true
		}
	}
}

func requiresAsync(terms []Term) bool {
	for _, t := range terms {
		switch v := t.(type) {
		case *Opaque:
			if v.Async && !v.evaluated {
				return true
			}
		case *Group:
			if requiresAsync(v.Terms) {
				return true
			}
		case *Operator, *Dice, *Number:
		}
	}
	return false
}

func checkOperators(terms []Term) error {
	for _, t := range terms {
		switch v := t.(type) {
		case *Operator:
			if v.Op != "+" && v.Op != "-" {
				return &EvaluationError{Term: v.Op, Err: ErrInvalidOperator}
			}
		case *Group:
			if err := checkOperators(v.Terms); err != nil {
				return err
			}
		case *Dice, *Number, *Opaque:
		}
	}
	return nil
}
