package roll

import "fmt"

// Error is a sentinel error for roll evaluation and mutation
type Error string

// Error implements the error interface
func (e Error) Error() string {
	return string(e)
}

const (
	ErrStackDiscipline = Error("override stack discipline violated")
	ErrNilParser       = Error("parser cannot be nil")
	ErrNilResolver     = Error("face resolver cannot be nil")
	ErrNilRoller       = Error("dice roller cannot be nil")
	ErrNilSpec         = Error("roll spec cannot be nil")
	ErrNilRoll         = Error("roll cannot be nil")
	ErrInvalidFaces    = Error("dice faces out of range")
	ErrInvalidCount    = Error("dice count out of range")
	ErrInvalidOperator = Error("unknown operator")
	ErrOpaqueTerm      = Error("opaque terms cannot be persisted")
)

// FormulaError reports a formula that could not be parsed
type FormulaError struct {
	Formula string
	Pos     int
	Reason  string
}

func (e *FormulaError) Error() string {
	return fmt.Sprintf("invalid formula %q at position %d: %s", e.Formula, e.Pos, e.Reason)
}

// EvaluationError wraps a failure raised while resolving a term
type EvaluationError struct {
	Term string
	Err  error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("failed to evaluate %s: %v", e.Term, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
