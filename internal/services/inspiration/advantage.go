package inspiration

import (
	"github.com/KirkDiggler/inspired/internal/roll"
)

// advantageTemplate returns an unevaluated copy of r whose first d20 term rolls
// one more die and keeps the highest (or lowest) as many dice as were active.
// Zero count dice left over from earlier rerolls are dropped.
func advantageTemplate(r *roll.Roll, keep roll.ModifierKind) (*roll.Roll, error) {
	if r == nil {
		return nil, ErrNoD20
	}

	replaced := false
	terms, err := unroll(r.Terms, keep, &replaced)
	if err != nil {
		return nil, err
	}
	if !replaced {
		return nil, ErrNoD20
	}
	return roll.New(terms...), nil
}

func unroll(terms []roll.Term, keep roll.ModifierKind, replaced *bool) ([]roll.Term, error) {
	out := make([]roll.Term, 0, len(terms))
	var op *roll.Operator

	for _, term := range terms {
		var next roll.Term
		switch t := term.(type) {
		case *roll.Operator:
			op = &roll.Operator{Op: t.Op}
			continue
		case *roll.Number:
			next = &roll.Number{Value: t.Value}
		case *roll.Group:
			inner, err := unroll(t.Terms, keep, replaced)
			if err != nil {
				return nil, err
			}
			next = roll.NewGroup(inner...)
		case *roll.Dice:
			if t.Number == 0 {
				op = nil
				continue
			}
			if t.Faces == 20 && !*replaced {
				if t.Number >= roll.MaxDice {
					return nil, ErrTooManyDice
				}
				*replaced = true
				next = roll.NewDice(t.Number+1, 20, roll.Modifier{Kind: keep, Count: activeCount(t)})
				break
			}
			next = roll.NewDice(t.Number, t.Faces, append([]roll.Modifier(nil), t.Modifiers...)...)
		default:
			return nil, ErrUnsupportedTerm
		}

		if op != nil && (len(out) > 0 || op.Op != "+") {
			out = append(out, op)
		}
		op = nil
		out = append(out, next)
	}

	return out, nil
}

// activeCount is the number of results of d counting towards its total,
// or its dice count when it has not been rolled
func activeCount(d *roll.Dice) int {
	if !d.Evaluated() {
		return d.Number
	}
	n := 0
	for _, r := range d.Results {
		if r.Active {
			n++
		}
	}
	return n
}

// hasRerollableD20 reports whether r contains a d20 term with at least one die
func hasRerollableD20(r *roll.Roll) bool {
	for _, d := range roll.Flatten(r) {
		if d.Faces == 20 && d.Number > 0 {
			return true
		}
	}
	return false
}
