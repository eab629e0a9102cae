package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
	"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
)

// CompleteDeliveryCommand represents a request to complete a delivery and
// credit its fee to the assigned driver. Completing an already-completed
// delivery is a no-op, so the fee is credited at most once.
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteDeliveryCommand creates a command to complete a delivery.
func NewCompleteDeliveryCommand(deliveryID kernel.UUID) (CompleteDeliveryCommand, error) {
	command := CompleteDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setDeliveryID(deliveryID); err != nil {
		return CompleteDeliveryCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCompleteDeliveryCommandIsNotConstructed if validation fails.
func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the target delivery's ID from the command.
func (c CompleteDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

func (c *CompleteDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.deliveryID = id
	return nil
}
