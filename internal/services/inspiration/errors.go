package inspiration

// InspirationError is a custom error type for inspiration-related errors
type InspirationError string

// Error implements the error interface
func (e InspirationError) Error() string {
	return string(e)
}

const (
	ErrMessageNotFound  InspirationError = "message not found"
	ErrActorNotFound    InspirationError = "actor not found"
	ErrNoD20            InspirationError = "roll has no d20 to reroll"
	ErrNotAuthor        InspirationError = "only the roller can consume their inspiration"
	ErrNotGM            InspirationError = "only the GM can do that"
	ErrNoInspiration    InspirationError = "actor has no inspiration"
	ErrAlreadyInspired  InspirationError = "actor already has inspiration"
	ErrInvalidMode      InspirationError = "unknown inspiration mode"
	ErrInvalidInput     InspirationError = "invalid input"
	ErrUnsupportedTerm  InspirationError = "roll contains a term that cannot be rerolled"
	ErrTooManyDice      InspirationError = "roll already has as many d20s as it can"
	ErrRerollConflict   InspirationError = "message was rerolled by someone else, try again"
	ErrNilRoller        InspirationError = "dice roller cannot be nil"
	ErrNilConfig        InspirationError = "config cannot be nil"
	ErrNilMessageRepo   InspirationError = "message repository cannot be nil"
	ErrNilActorRepo     InspirationError = "actor repository cannot be nil"
	ErrNilMutator       InspirationError = "mutator cannot be nil"
	ErrNilParser        InspirationError = "parser cannot be nil"
	ErrNilClock         InspirationError = "clock cannot be nil"
	ErrNilUUIDGenerator InspirationError = "UUID generator cannot be nil"
)
