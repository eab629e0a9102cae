package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// MinCancellationNoteLength is the shortest justification accepted when
// cancelling a delivery.
const MinCancellationNoteLength = 10

var (
	ErrSetDeliveryStatusCommandIsNotConstructed = errors.New(
		"SetDeliveryStatusCommand must be created via NewSetDeliveryStatusCommand constructor",
	)
	// ErrCancellationNoteTooShort is returned when cancelling without an adequate justification.
	ErrCancellationNoteTooShort = errors.New("cancellation requires a justification of at least 10 characters")
)

// SetDeliveryStatusCommand represents a request to move a delivery to a new
// lifecycle status. Cancellation must carry a justification note; the note is
// preserved in the audit log. A transition to Completed is routed through the
// completion flow so the earnings credit cannot be skipped.
type SetDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	status     delivery.Status
	note       string

	guard guard.ConstructorGuard
}

// NewSetDeliveryStatusCommand creates a command to change a delivery's status.
// The note is optional except for Cancelled, where it must be at least
// MinCancellationNoteLength characters.
func NewSetDeliveryStatusCommand(
	deliveryID kernel.UUID,
	status delivery.Status,
	note string,
) (SetDeliveryStatusCommand, error) {
	command := SetDeliveryStatusCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDeliveryID(deliveryID),
		command.setStatus(status),
	); err != nil {
		return SetDeliveryStatusCommand{}, err
	}

	if status == delivery.Cancelled && len(note) < MinCancellationNoteLength {
		return SetDeliveryStatusCommand{}, ErrCancellationNoteTooShort
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSetDeliveryStatusCommandIsNotConstructed if validation fails.
func (c SetDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetDeliveryStatusCommandIsNotConstructed)
}

// DeliveryID returns the target delivery's ID from the command.
func (c SetDeliveryStatusCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Status returns the requested status from the command.
func (c SetDeliveryStatusCommand) Status() delivery.Status {
	return c.status
}

// Note returns the operator's justification note, possibly empty.
func (c SetDeliveryStatusCommand) Note() string {
	return c.note
}

func (c *SetDeliveryStatusCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.deliveryID = id
	return nil
}

func (c *SetDeliveryStatusCommand) setStatus(status delivery.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}
