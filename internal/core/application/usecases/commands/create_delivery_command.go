package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCreateDeliveryCommandIsNotConstructed = errors.New(
	"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
)

// CreateDeliveryCommand represents a request to create a new delivery in
// Pending status. The fee is fixed at creation and credited to whichever
// driver eventually completes the delivery.
//
// Example:
//
//	fee, _ := kernel.NewMoney(2500)
//	cmd, err := NewCreateDeliveryCommand("Office chairs", "Warehouse A", "Main St 5", fee, "customer@example.com")
//	if err != nil {
//	    return fmt.Errorf("invalid delivery data: %w", err)
//	}
//
//	handler := NewCreateDeliveryCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create delivery: %w", err)
//	}
//	fmt.Printf("Created delivery with ID: %s", cmd.DeliveryID())
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID      kernel.UUID
	description     string
	pickup          string
	dropoff         string
	fee             kernel.Money
	customerContact string

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand creates a command to register a new delivery.
// Automatically generates a unique ID for the delivery.
func NewCreateDeliveryCommand(
	description, pickup, dropoff string,
	fee kernel.Money,
	customerContact string,
) (CreateDeliveryCommand, error) {
	command := CreateDeliveryCommand{
		fee:             fee,
		customerContact: customerContact,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDeliveryID(kernel.NewUUID()),
		command.setDescription(description),
		command.setPickup(pickup),
		command.setDropoff(dropoff),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateDeliveryCommandIsNotConstructed if validation fails.
func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the generated delivery ID from the command.
func (c CreateDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Description returns the delivery description from the command.
func (c CreateDeliveryCommand) Description() string {
	return c.description
}

// Pickup returns the pickup location from the command.
func (c CreateDeliveryCommand) Pickup() string {
	return c.pickup
}

// Dropoff returns the dropoff location from the command.
func (c CreateDeliveryCommand) Dropoff() string {
	return c.dropoff
}

// Fee returns the delivery fee from the command.
func (c CreateDeliveryCommand) Fee() kernel.Money {
	return c.fee
}

// CustomerContact returns the customer contact from the command.
func (c CreateDeliveryCommand) CustomerContact() string {
	return c.customerContact
}

func (c *CreateDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.deliveryID = id
	return nil
}

func (c *CreateDeliveryCommand) setDescription(description string) error {
	if description == "" {
		return delivery.ErrDescriptionIsRequired
	}

	c.description = description
	return nil
}

func (c *CreateDeliveryCommand) setPickup(pickup string) error {
	if pickup == "" {
		return delivery.ErrPickupIsRequired
	}

	c.pickup = pickup
	return nil
}

func (c *CreateDeliveryCommand) setDropoff(dropoff string) error {
	if dropoff == "" {
		return delivery.ErrDropoffIsRequired
	}

	c.dropoff = dropoff
	return nil
}
