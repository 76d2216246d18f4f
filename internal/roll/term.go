package roll

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Term is a node of a roll expression. The variant set is closed:
// *Operator, *Dice, *Group, *Number and *Opaque.
type Term interface {
	// Formula renders the term in dice notation
	Formula() string

	// Evaluated reports whether the term carries its outcome
	Evaluated() bool

	clone() Term
	isTerm()
}

// Operator joins two operands
type Operator struct {
	Op string
}

func (o *Operator) Formula() string { return o.Op }
func (o *Operator) Evaluated() bool { return true }
func (o *Operator) clone() Term     { return &Operator{Op: o.Op} }
func (o *Operator) isTerm()         {}

// Plus returns a new '+' operator term
func Plus() *Operator { return &Operator{Op: "+"} }

// Minus returns a new '-' operator term
func Minus() *Operator { return &Operator{Op: "-"} }

// Result is the outcome of a single die
type Result struct {
	Value     int  `json:"result"`
	Active    bool `json:"active"`
	Discarded bool `json:"discarded,omitempty"`
}

// Counts reports whether the result contributes to its term's total
func (r Result) Counts() bool {
	return r.Active && !r.Discarded
}

// ModifierKind selects which results a modifier keeps or drops
type ModifierKind string

const (
	KeepHighest ModifierKind = "kh"
	KeepLowest  ModifierKind = "kl"
	DropHighest ModifierKind = "dh"
	DropLowest  ModifierKind = "dl"
)

// Modifier narrows the results of a dice term after they are rolled
type Modifier struct {
	Kind  ModifierKind `json:"kind"`
	Count int          `json:"count"`
}

func (m Modifier) String() string {
	return string(m.Kind) + strconv.Itoa(m.Count)
}

// Limits on a single dice term
const (
	MaxDice  = 100
	MaxFaces = 1000
)

// Dice is Number dice of Faces faces
type Dice struct {
	Number    int
	Faces     int
	Modifiers []Modifier
	Results   []Result

	evaluated bool
}

// NewDice creates an unevaluated dice term
func NewDice(number, faces int, modifiers ...Modifier) *Dice {
	return &Dice{
		Number:    number,
		Faces:     faces,
		Modifiers: modifiers,
	}
}

// ResolvedDice creates a dice term whose results are already known
func ResolvedDice(number, faces int, results []Result) *Dice {
	return &Dice{
		Number:    number,
		Faces:     faces,
		Results:   append([]Result(nil), results...),
		evaluated: true,
	}
}

func (d *Dice) Formula() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%dd%d", d.Number, d.Faces)
	for _, m := range d.Modifiers {
		b.WriteString(m.String())
	}
	return b.String()
}

func (d *Dice) Evaluated() bool { return d.evaluated }

func (d *Dice) clone() Term {
	return &Dice{
		Number:    d.Number,
		Faces:     d.Faces,
		Modifiers: append([]Modifier(nil), d.Modifiers...),
		Results:   append([]Result(nil), d.Results...),
		evaluated: d.evaluated,
	}
}

func (d *Dice) isTerm() {}

// Total sums the results that count
func (d *Dice) Total() int {
	total := 0
	for _, r := range d.Results {
		if r.Counts() {
			total += r.Value
		}
	}
	return total
}

// Values returns the raw face values in roll order
func (d *Dice) Values() []int {
	values := make([]int, len(d.Results))
	for i, r := range d.Results {
		values[i] = r.Value
	}
	return values
}

// Group is a parenthesised sub expression
type Group struct {
	Terms []Term
}

// NewGroup creates a group over the given terms
func NewGroup(terms ...Term) *Group {
	return &Group{Terms: terms}
}

func (g *Group) Formula() string {
	return "(" + formulaOf(g.Terms) + ")"
}

func (g *Group) Evaluated() bool {
	return allEvaluated(g.Terms)
}

func (g *Group) clone() Term {
	return &Group{Terms: cloneTerms(g.Terms)}
}

func (g *Group) isTerm() {}

// Number is a numeric constant
type Number struct {
	Value int
}

func (n *Number) Formula() string { return strconv.Itoa(n.Value) }
func (n *Number) Evaluated() bool { return true }
func (n *Number) clone() Term     { return &Number{Value: n.Value} }
func (n *Number) isTerm()         {}

// Custom is a host defined term the engine does not inspect
type Custom interface {
	Formula() string
	Evaluate(ctx context.Context) (int, error)
}

// Opaque carries a Custom term through evaluation unexamined
type Opaque struct {
	Custom Custom

	// Async forces the asynchronous evaluation path
	Async bool

	value     int
	evaluated bool
}

// NewOpaque wraps a host term
func NewOpaque(custom Custom, async bool) *Opaque {
	return &Opaque{Custom: custom, Async: async}
}

func (o *Opaque) Formula() string { return o.Custom.Formula() }
func (o *Opaque) Evaluated() bool { return o.evaluated }

func (o *Opaque) clone() Term {
	return &Opaque{Custom: o.Custom, Async: o.Async, value: o.value, evaluated: o.evaluated}
}

func (o *Opaque) isTerm() {}

// Value returns the evaluated value of the host term
func (o *Opaque) Value() int { return o.value }

func cloneTerms(terms []Term) []Term {
	out := make([]Term, len(terms))
	for i, t := range terms {
		out[i] = t.clone()
	}
	return out
}

func allEvaluated(terms []Term) bool {
	for _, t := range terms {
		if !t.Evaluated() {
			return false
		}
	}
	return true
}

func formulaOf(terms []Term) string {
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = t.Formula()
	}
	return strings.Join(parts, " ")
}
