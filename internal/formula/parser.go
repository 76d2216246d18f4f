// Package formula parses dice notation into unevaluated rolls.
//
// Supported notation:
//
//	1d20 + 5
//	2d20kh - 1d4
//	4d6dl1 + (2d8 + 3)
//
// A dice term is an optional count, 'd' and a face count, followed by any
// number of keep/drop modifiers (kh, kl, k, dh, dl, d) with an optional count
// defaulting to 1. Operands are joined with '+' and '-'.
package formula

import (
	"strconv"
	"strings"

	"github.com/KirkDiggler/inspired/internal/roll"
)

// Parser implements roll.Parser
type Parser struct{}

// New creates a new formula parser
func New() *Parser {
	return &Parser{}
}

// Parse parses formula into an unevaluated roll
func (p *Parser) Parse(formula string) (*roll.Roll, error) {
	s := &scanner{src: formula}
	s.skipSpace()
	if s.done() {
		return nil, s.fail("empty formula")
	}

	terms, err := s.expr()
	if err != nil {
		return nil, err
	}
	if !s.done() {
		return nil, s.fail("unexpected " + strconv.QuoteRune(rune(s.peek())))
	}
	return roll.New(terms...), nil
}

// Parse parses formula with a default parser
func Parse(formula string) (*roll.Roll, error) {
	return New().Parse(formula)
}

type scanner struct {
	src string
	pos int

	// dice counts the dice requested so far
	dice int
}

func (s *scanner) done() bool { return s.pos >= len(s.src) }

func (s *scanner) peek() byte {
	if s.done() {
		return 0
	}
	return lower(s.src[s.pos])
}

func (s *scanner) skipSpace() {
	for !s.done() && (s.src[s.pos] == ' ' || s.src[s.pos] == '\t') {
		s.pos++
	}
}

func (s *scanner) fail(reason string) error {
	return &roll.FormulaError{Formula: s.src, Pos: s.pos, Reason: reason}
}

// expr := ['+'|'-'] operand (('+'|'-') operand)*
func (s *scanner) expr() ([]roll.Term, error) {
	var terms []roll.Term

	if op := s.peek(); op == '+' || op == '-' {
		s.pos++
		s.skipSpace()
		terms = append(terms, &roll.Operator{Op: string(op)})
	}

	for {
		operand, err := s.operand()
		if err != nil {
			return nil, err
		}
		terms = append(terms, operand)

		s.skipSpace()
		op := s.peek()
		if op != '+' && op != '-' {
			return terms, nil
		}
		s.pos++
		s.skipSpace()
		terms = append(terms, &roll.Operator{Op: string(op)})
	}
}

// operand := dice | int | '(' expr ')'
func (s *scanner) operand() (roll.Term, error) {
	switch c := s.peek(); {
	case c == '(':
		s.pos++
		s.skipSpace()
		inner, err := s.expr()
		if err != nil {
			return nil, err
		}
		s.skipSpace()
		if s.peek() != ')' {
			return nil, s.fail("missing closing parenthesis")
		}
		s.pos++
		return roll.NewGroup(inner...), nil
	case c == 'd':
		return s.diceTerm(s.pos, 1)
	case isDigit(c):
		start := s.pos
		n, err := s.integer()
		if err != nil {
			return nil, err
		}
		if s.peek() == 'd' {
			return s.diceTerm(start, n)
		}
		return &roll.Number{Value: n}, nil
	case s.done():
		return nil, s.fail("unexpected end of formula")
	default:
		return nil, s.fail("unexpected " + strconv.QuoteRune(rune(c)))
	}
}

// dice := [int] 'd' int modifier*
func (s *scanner) diceTerm(start, number int) (roll.Term, error) {
	if number > roll.MaxDice || s.dice+number > roll.MaxDice {
		s.pos = start
		return nil, s.fail("too many dice, at most " + strconv.Itoa(roll.MaxDice) + " per roll")
	}
	s.dice += number

	s.pos++ // 'd'
	if !isDigit(s.peek()) {
		return nil, s.fail("expected face count")
	}
	facesStart := s.pos
	faces, err := s.integer()
	if err != nil {
		return nil, err
	}
	if faces < 1 {
		return nil, s.fail("dice need at least one face")
	}
	if faces > roll.MaxFaces {
		s.pos = facesStart
		return nil, s.fail("too many faces, at most " + strconv.Itoa(roll.MaxFaces))
	}

	var modifiers []roll.Modifier
	for {
		kind, ok := s.modifierKind()
		if !ok {
			break
		}
		count := 1
		if isDigit(s.peek()) {
			if count, err = s.integer(); err != nil {
				return nil, err
			}
		}
		modifiers = append(modifiers, roll.Modifier{Kind: kind, Count: count})
	}

	return roll.NewDice(number, faces, modifiers...), nil
}

func (s *scanner) modifierKind() (roll.ModifierKind, bool) {
	rest := strings.ToLower(s.src[s.pos:])
	switch {
	case strings.HasPrefix(rest, "kh"):
		s.pos += 2
		return roll.KeepHighest, true
	case strings.HasPrefix(rest, "kl"):
		s.pos += 2
		return roll.KeepLowest, true
	case strings.HasPrefix(rest, "k"):
		s.pos++
		return roll.KeepHighest, true
	case strings.HasPrefix(rest, "dh"):
		s.pos += 2
		return roll.DropHighest, true
	case strings.HasPrefix(rest, "dl"):
		s.pos += 2
		return roll.DropLowest, true
	case strings.HasPrefix(rest, "d"):
		s.pos++
		return roll.DropLowest, true
	}
	return "", false
}

func (s *scanner) integer() (int, error) {
	start := s.pos
	for isDigit(s.peek()) {
		s.pos++
	}
	n, err := strconv.Atoi(s.src[start:s.pos])
	if err != nil {
		s.pos = start
		return 0, s.fail("invalid number")
	}
	return n, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
