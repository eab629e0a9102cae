package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var (
	ErrRecordAuditAccessCommandIsNotConstructed = errors.New(
		"RecordAuditAccessCommand must be created via NewRecordAuditAccessCommand constructor",
	)
	// ErrActorIsRequired is returned when recording audit access without an actor.
	ErrActorIsRequired = errors.New("actor is required")
)

// RecordAuditAccessCommand represents the fact that someone read the audit
// log. Reading the log is itself a security-relevant event and leaves a
// SECURITY entry behind.
type RecordAuditAccessCommand struct { //nolint:recvcheck //using for validation
	actor string

	guard guard.ConstructorGuard
}

// NewRecordAuditAccessCommand creates a command recording that actor read the audit log.
func NewRecordAuditAccessCommand(actor string) (RecordAuditAccessCommand, error) {
	if actor == "" {
		return RecordAuditAccessCommand{}, ErrActorIsRequired
	}

	return RecordAuditAccessCommand{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRecordAuditAccessCommandIsNotConstructed if validation fails.
func (c RecordAuditAccessCommand) Validate() error {
	return c.guard.Validate(ErrRecordAuditAccessCommandIsNotConstructed)
}

// Actor returns who accessed the audit log.
func (c RecordAuditAccessCommand) Actor() string {
	return c.actor
}
