package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrRegisterDriverCommandIsNotConstructed = errors.New(
	"RegisterDriverCommand must be created via NewRegisterDriverCommand constructor",
)

// RegisterDriverCommand represents a request to register a new driver together
// with their vehicle. The driver starts in Pending status and cannot take
// assignments until activated.
//
// Example:
//
//	vehicle, _ := driver.NewVehicle("Ford Transit", "AB-123-CD", 500)
//	cmd, err := NewRegisterDriverCommand("John Doe", "john@example.com", "+1555123", vehicle)
//	if err != nil {
//	    return fmt.Errorf("invalid driver data: %w", err)
//	}
//
//	handler := NewRegisterDriverCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to register driver: %w", err)
//	}
//	fmt.Printf("Registered driver with ID: %s", cmd.DriverID())
type RegisterDriverCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	name     string
	email    string
	phone    string
	vehicle  driver.Vehicle

	guard guard.ConstructorGuard
}

// NewRegisterDriverCommand creates a command to register a new driver.
// Automatically generates a unique ID for the driver.
func NewRegisterDriverCommand(name, email, phone string, vehicle driver.Vehicle) (RegisterDriverCommand, error) {
	command := RegisterDriverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDriverID(kernel.NewUUID()),
		command.setName(name),
		command.setEmail(email),
		command.setVehicle(vehicle),
	); err != nil {
		return RegisterDriverCommand{}, err
	}

	command.phone = phone
	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRegisterDriverCommandIsNotConstructed if validation fails.
func (c RegisterDriverCommand) Validate() error {
	return c.guard.Validate(ErrRegisterDriverCommandIsNotConstructed)
}

// DriverID returns the generated driver ID from the command.
func (c RegisterDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Name returns the driver name from the command.
func (c RegisterDriverCommand) Name() string {
	return c.name
}

// Email returns the driver email from the command.
func (c RegisterDriverCommand) Email() string {
	return c.email
}

// Phone returns the driver phone from the command.
func (c RegisterDriverCommand) Phone() string {
	return c.phone
}

// Vehicle returns the driver's vehicle from the command.
func (c RegisterDriverCommand) Vehicle() driver.Vehicle {
	return c.vehicle
}

func (c *RegisterDriverCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.driverID = id
	return nil
}

func (c *RegisterDriverCommand) setName(name string) error {
	if name == "" {
		return driver.ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *RegisterDriverCommand) setEmail(email string) error {
	if email == "" {
		return driver.ErrEmailIsRequired
	}

	c.email = email
	return nil
}

func (c *RegisterDriverCommand) setVehicle(vehicle driver.Vehicle) error {
	if err := vehicle.Validate(); err != nil {
		return err
	}

	c.vehicle = vehicle
	return nil
}
