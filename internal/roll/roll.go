package roll

// Roll is an ordered sequence of terms. Operators separate operands.
type Roll struct {
	Terms []Term
}

// New creates a roll from terms
func New(terms ...Term) *Roll {
	return &Roll{Terms: terms}
}

// FromTerms creates a roll over a copy of terms
func FromTerms(terms []Term) *Roll {
	return &Roll{Terms: append([]Term(nil), terms...)}
}

// Clone returns a deep copy of the roll
func (r *Roll) Clone() *Roll {
	if r == nil {
		return nil
	}
	return &Roll{Terms: cloneTerms(r.Terms)}
}

// Formula renders the roll in dice notation
func (r *Roll) Formula() string {
	if r == nil {
		return ""
	}
	return formulaOf(r.Terms)
}

// Evaluated reports whether every term carries its outcome
func (r *Roll) Evaluated() bool {
	return r != nil && allEvaluated(r.Terms)
}

// Total combines operands left to right. Unevaluated operands count as zero.
func (r *Roll) Total() int {
	if r == nil {
		return 0
	}
	return totalOf(r.Terms)
}

func totalOf(terms []Term) int {
	total := 0
	sign := 1
	for _, t := range terms {
		switch v := t.(type) {
		case *Operator:
			if v.Op == "-" {
				sign = -1
			} else {
				sign = 1
			}
			continue
		case *Dice:
			total += sign * v.Total()
		case *Group:
			total += sign * totalOf(v.Terms)
		case *Number:
			total += sign * v.Value
		case *Opaque:
			total += sign * v.value
		}
		sign = 1
	}
	return total
}

// Flatten returns every dice term of the roll left to right, descending into groups
func Flatten(r *Roll) []*Dice {
	if r == nil {
		return nil
	}
	return flattenTerms(r.Terms, nil)
}

func flattenTerms(terms []Term, out []*Dice) []*Dice {
	for _, t := range terms {
		switch v := t.(type) {
		case *Dice:
			out = append(out, v)
		case *Group:
			out = flattenTerms(v.Terms, out)
		case *Operator, *Number, *Opaque:
		}
	}
	return out
}

// CountDice counts the requested dice with the given number of faces
func CountDice(r *Roll, faces int) int {
	count := 0
	for _, d := range Flatten(r) {
		if d.Faces == faces {
			count += d.Number
		}
	}
	return count
}

// HasEvaluatedDice reports whether any dice term of the roll carries outcomes
func HasEvaluatedDice(r *Roll) bool {
	for _, d := range Flatten(r) {
		if d.Evaluated() {
			return true
		}
	}
	return false
}
