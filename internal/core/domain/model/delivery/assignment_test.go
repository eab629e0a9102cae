package delivery_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignment(t *testing.T) {
	t.Run("deadline_is_offset_from_assignment_time", func(t *testing.T) {
		assignedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

		a, err := delivery.NewAssignment(kernel.NewUUID(), delivery.PriorityHigh, assignedAt, 24)

		require.NoError(t, err)
		assert.Equal(t, assignedAt.Add(24*time.Hour), a.Deadline())
		assert.Equal(t, assignedAt, a.AssignedAt())
		assert.Equal(t, delivery.PriorityHigh, a.Priority())
		assert.False(t, a.OverdueFlagged())
	})

	t.Run("offset_bounds", func(t *testing.T) {
		now := time.Now()

		_, err := delivery.NewAssignment(kernel.NewUUID(), delivery.PriorityStandard, now, 0)
		require.Error(t, err)

		_, err = delivery.NewAssignment(kernel.NewUUID(), delivery.PriorityStandard, now, 169)
		require.Error(t, err)

		_, err = delivery.NewAssignment(kernel.NewUUID(), delivery.PriorityStandard, now, 168)
		require.NoError(t, err)
	})

	t.Run("invalid_priority_rejected", func(t *testing.T) {
		_, err := delivery.NewAssignment(kernel.NewUUID(), delivery.PriorityUnknown, time.Now(), 24)

		require.Error(t, err)
	})

	t.Run("zero_assignment_time_rejected", func(t *testing.T) {
		_, err := delivery.NewAssignment(kernel.NewUUID(), delivery.PriorityHigh, time.Time{}, 24)

		require.Error(t, err)
	})
}

func TestAssignment_IsOverdue(t *testing.T) {
	assignedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	a, err := delivery.NewAssignment(kernel.NewUUID(), delivery.PriorityStandard, assignedAt, 2)
	require.NoError(t, err)

	assert.False(t, a.IsOverdue(assignedAt.Add(time.Hour)))
	assert.False(t, a.IsOverdue(assignedAt.Add(2*time.Hour)))
	assert.True(t, a.IsOverdue(assignedAt.Add(2*time.Hour+time.Second)))
}

func TestAssignment_MarkOverdue(t *testing.T) {
	a, err := delivery.NewAssignment(kernel.NewUUID(), delivery.PriorityStandard, time.Now(), 1)
	require.NoError(t, err)

	require.NoError(t, a.MarkOverdue())
	assert.True(t, a.OverdueFlagged())

	require.ErrorIs(t, a.MarkOverdue(), delivery.ErrAssignmentAlreadyFlagged)
}

func TestAssignment_Validate(t *testing.T) {
	var zero delivery.Assignment
	var nilAssignment *delivery.Assignment

	require.ErrorIs(t, zero.Validate(), delivery.ErrAssignmentIsNotConstructed)
	require.ErrorIs(t, nilAssignment.Validate(), delivery.ErrAssignmentIsNotConstructed)
}
