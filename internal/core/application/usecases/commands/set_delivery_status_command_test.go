package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSetDeliveryStatusCommand(t *testing.T) {
	deliveryID := kernel.NewUUID()

	t.Run("valid_command", func(t *testing.T) {
		cmd, err := commands.NewSetDeliveryStatusCommand(deliveryID, delivery.InTransit, "")

		require.NoError(t, err)
		assert.Equal(t, delivery.InTransit, cmd.Status())
		assert.Empty(t, cmd.Note())
	})

	t.Run("cancellation_requires_justification", func(t *testing.T) {
		_, err := commands.NewSetDeliveryStatusCommand(deliveryID, delivery.Cancelled, "")
		require.ErrorIs(t, err, commands.ErrCancellationNoteTooShort)

		_, err = commands.NewSetDeliveryStatusCommand(deliveryID, delivery.Cancelled, "too short")
		require.ErrorIs(t, err, commands.ErrCancellationNoteTooShort)

		cmd, err := commands.NewSetDeliveryStatusCommand(deliveryID, delivery.Cancelled, "customer cancelled the order")
		require.NoError(t, err)
		assert.Equal(t, "customer cancelled the order", cmd.Note())
	})

	t.Run("invalid_status_rejected", func(t *testing.T) {
		_, err := commands.NewSetDeliveryStatusCommand(deliveryID, delivery.Unknown, "")

		require.Error(t, err)
	})

	t.Run("not_constructed", func(t *testing.T) {
		cmd := commands.SetDeliveryStatusCommand{}

		require.ErrorIs(t, cmd.Validate(), commands.ErrSetDeliveryStatusCommandIsNotConstructed)
	})
}
