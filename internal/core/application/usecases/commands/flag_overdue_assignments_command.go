package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrFlagOverdueAssignmentsCommandIsNotConstructed = errors.New(
	"FlagOverdueAssignmentsCommand must be created via NewFlagOverdueAssignmentsCommand constructor",
)

// FlagOverdueAssignmentsCommand triggers a sweep over active deliveries whose
// assignment deadline has passed. Each newly overdue assignment is flagged
// exactly once and leaves a SYSTEM audit entry.
//
// Example:
//
//	cmd := NewFlagOverdueAssignmentsCommand()
//	handler := NewFlagOverdueAssignmentsCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Overdue sweep failed: %v", err)
//	}
type FlagOverdueAssignmentsCommand struct {
	guard guard.ConstructorGuard
}

// NewFlagOverdueAssignmentsCommand creates a command to trigger the overdue sweep.
func NewFlagOverdueAssignmentsCommand() FlagOverdueAssignmentsCommand {
	return FlagOverdueAssignmentsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrFlagOverdueAssignmentsCommandIsNotConstructed if validation fails.
func (c *FlagOverdueAssignmentsCommand) Validate() error {
	return c.guard.Validate(
		ErrFlagOverdueAssignmentsCommandIsNotConstructed,
	)
}
