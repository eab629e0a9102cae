package queries_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetAuditLogQuery(t *testing.T) {
	t.Run("explicit_limit", func(t *testing.T) {
		q, err := queries.NewGetAuditLogQuery(25)

		require.NoError(t, err)
		assert.Equal(t, 25, q.Limit())
	})

	t.Run("zero_limit_defaults", func(t *testing.T) {
		q, err := queries.NewGetAuditLogQuery(0)

		require.NoError(t, err)
		assert.Equal(t, queries.DefaultAuditLogLimit, q.Limit())
	})

	t.Run("limit_above_cap_clamps", func(t *testing.T) {
		q, err := queries.NewGetAuditLogQuery(queries.DefaultAuditLogLimit + 1)

		require.NoError(t, err)
		assert.Equal(t, queries.DefaultAuditLogLimit, q.Limit())
	})

	t.Run("not_constructed", func(t *testing.T) {
		q := queries.GetAuditLogQuery{}

		require.ErrorIs(t, q.Validate(), queries.ErrGetAuditLogQueryIsNotConstructed)
	})
}

func TestNewGetDriverDeliveriesQuery(t *testing.T) {
	t.Run("valid_query", func(t *testing.T) {
		driverID := kernel.NewUUID()

		q, err := queries.NewGetDriverDeliveriesQuery(driverID)

		require.NoError(t, err)
		assert.True(t, q.DriverID().IsEqual(driverID))
	})

	t.Run("zero_driver_id_rejected", func(t *testing.T) {
		var zeroID kernel.UUID

		_, err := queries.NewGetDriverDeliveriesQuery(zeroID)

		require.Error(t, err)
	})
}

func TestParameterlessQueries_Validate(t *testing.T) {
	require.NoError(t, queries.NewGetAllDriversQuery().Validate())
	require.NoError(t, queries.NewGetAllDeliveriesQuery().Validate())

	require.ErrorIs(
		t,
		queries.GetAllDriversQuery{}.Validate(),
		queries.ErrGetAllDriversQueryIsNotConstructed,
	)
	require.ErrorIs(
		t,
		queries.GetAllDeliveriesQuery{}.Validate(),
		queries.ErrGetAllDeliveriesQueryIsNotConstructed,
	)
}
