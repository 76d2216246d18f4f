package models

// InspirationRole is the viewer's relation to an inspiration prompt
type InspirationRole string

const (
	// InspirationRolePlayer may consume inspiration to reroll the lowest d20
	InspirationRolePlayer InspirationRole = "player"

	// InspirationRoleGM may reactivate inspiration to reroll the highest d20
	InspirationRoleGM InspirationRole = "gm"
)

// InspirationState is what a viewer is offered on a rolled message
type InspirationState struct {
	// Role is the viewer's role
	Role InspirationRole

	// HasInspiration indicates the message author holds inspiration
	HasInspiration bool
}

// CanConsume reports whether a player is offered to consume inspiration
func (s *InspirationState) CanConsume() bool {
	return s != nil && s.Role == InspirationRolePlayer && s.HasInspiration
}

// CanReactivate reports whether a GM is offered to reactivate inspiration
func (s *InspirationState) CanReactivate() bool {
	return s != nil && s.Role == InspirationRoleGM && !s.HasInspiration
}
