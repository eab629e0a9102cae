package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignDriverCommand(t *testing.T) {
	deliveryID := kernel.NewUUID()
	driverID := kernel.NewUUID()

	t.Run("valid_command", func(t *testing.T) {
		cmd, err := commands.NewAssignDriverCommand(deliveryID, driverID, delivery.PriorityHigh, 24, false)

		require.NoError(t, err)
		assert.True(t, cmd.DeliveryID().IsEqual(deliveryID))
		assert.True(t, cmd.DriverID().IsEqual(driverID))
		assert.Equal(t, delivery.PriorityHigh, cmd.Priority())
		assert.Equal(t, 24, cmd.DeadlineHours())
		assert.False(t, cmd.AllowOverload())
		require.NoError(t, cmd.AssignmentID().Validate(), "assignment ID is generated")
	})

	t.Run("deadline_bounds", func(t *testing.T) {
		_, err := commands.NewAssignDriverCommand(deliveryID, driverID, delivery.PriorityStandard, 0, false)
		require.Error(t, err)

		_, err = commands.NewAssignDriverCommand(deliveryID, driverID, delivery.PriorityStandard, 169, false)
		require.Error(t, err)

		_, err = commands.NewAssignDriverCommand(deliveryID, driverID, delivery.PriorityStandard, 168, false)
		require.NoError(t, err)
	})

	t.Run("invalid_priority_rejected", func(t *testing.T) {
		_, err := commands.NewAssignDriverCommand(deliveryID, driverID, delivery.PriorityUnknown, 24, false)

		require.Error(t, err)
	})

	t.Run("zero_ids_rejected", func(t *testing.T) {
		var zeroID kernel.UUID

		_, err := commands.NewAssignDriverCommand(zeroID, driverID, delivery.PriorityStandard, 24, false)
		require.Error(t, err)

		_, err = commands.NewAssignDriverCommand(deliveryID, zeroID, delivery.PriorityStandard, 24, false)
		require.Error(t, err)
	})

	t.Run("not_constructed", func(t *testing.T) {
		cmd := commands.AssignDriverCommand{}

		require.ErrorIs(t, cmd.Validate(), commands.ErrAssignDriverCommandIsNotConstructed)
	})
}
