package roll

import (
	"encoding/json"
	"fmt"
)

const (
	classOperator = "operator"
	classDice     = "dice"
	classGroup    = "group"
	classNumber   = "number"
)

type termJSON struct {
	Class     string      `json:"class"`
	Operator  string      `json:"operator,omitempty"`
	Number    int         `json:"number,omitempty"`
	Faces     int         `json:"faces,omitempty"`
	Modifiers []Modifier  `json:"modifiers,omitempty"`
	Results   []Result    `json:"results,omitempty"`
	Evaluated bool        `json:"evaluated,omitempty"`
	Terms     []*termJSON `json:"terms,omitempty"`
	Value     int         `json:"value,omitempty"`
}

type rollJSON struct {
	Formula   string      `json:"formula"`
	Total     int         `json:"total"`
	Evaluated bool        `json:"evaluated"`
	Terms     []*termJSON `json:"terms"`
}

// MarshalJSON implements json.Marshaler
func (r *Roll) MarshalJSON() ([]byte, error) {
	terms, err := encodeTerms(r.Terms)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&rollJSON{
		Formula:   r.Formula(),
		Total:     r.Total(),
		Evaluated: r.Evaluated(),
		Terms:     terms,
	})
}

// UnmarshalJSON implements json.Unmarshaler
func (r *Roll) UnmarshalJSON(data []byte) error {
	var raw rollJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	terms, err := decodeTerms(raw.Terms)
	if err != nil {
		return err
	}
	r.Terms = terms
	return nil
}

func encodeTerms(terms []Term) ([]*termJSON, error) {
	out := make([]*termJSON, 0, len(terms))
	for _, t := range terms {
		switch v := t.(type) {
		case *Operator:
			out = append(out, &termJSON{Class: classOperator, Operator: v.Op})
		case *Dice:
			out = append(out, &termJSON{
				Class:     classDice,
				Number:    v.Number,
				Faces:     v.Faces,
				Modifiers: v.Modifiers,
				Results:   v.Results,
				Evaluated: v.evaluated,
			})
		case *Group:
			inner, err := encodeTerms(v.Terms)
			if err != nil {
				return nil, err
			}
			out = append(out, &termJSON{Class: classGroup, Terms: inner})
		case *Number:
			out = append(out, &termJSON{Class: classNumber, Value: v.Value})
		case *Opaque:
			return nil, ErrOpaqueTerm
		}
	}
	return out, nil
}

func decodeTerms(raw []*termJSON) ([]Term, error) {
	out := make([]Term, 0, len(raw))
	for _, t := range raw {
		if t == nil {
			return nil, fmt.Errorf("decode term: null term")
		}
		switch t.Class {
		case classOperator:
			out = append(out, &Operator{Op: t.Operator})
		case classDice:
			out = append(out, &Dice{
				Number:    t.Number,
				Faces:     t.Faces,
				Modifiers: t.Modifiers,
				Results:   t.Results,
				evaluated: t.Evaluated,
			})
		case classGroup:
			inner, err := decodeTerms(t.Terms)
			if err != nil {
				return nil, err
			}
			out = append(out, &Group{Terms: inner})
		case classNumber:
			out = append(out, &Number{Value: t.Value})
		default:
			return nil, fmt.Errorf("decode term: unknown class %q", t.Class)
		}
	}
	return out, nil
}
