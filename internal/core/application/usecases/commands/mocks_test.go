package commands_test

import (
	"context"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/audit"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Update(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetAll(ctx context.Context) ([]*driver.Driver, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*driver.Driver), args.Error(1)
}

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) UpdateWhereStatus(
	ctx context.Context, d *delivery.Delivery, expected delivery.Status,
) error {
	args := m.Called(ctx, d, expected)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetAll(ctx context.Context) ([]*delivery.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetAllByDriver(
	ctx context.Context, driverID kernel.UUID,
) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetAllOverdue(ctx context.Context, now time.Time) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) CountActiveByDriver(ctx context.Context, driverID kernel.UUID) (int, error) {
	args := m.Called(ctx, driverID)
	return args.Int(0), args.Error(1)
}

type MockAuditRepository struct{ mock.Mock }

func (m *MockAuditRepository) Add(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) GetRecent(ctx context.Context, limit int) ([]*audit.Entry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*audit.Entry), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

func (m *MockUoW) AuditRepository() ports.AuditRepository {
	args := m.Called()
	return args.Get(0).(ports.AuditRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockDriverUoWFactory struct{ mock.Mock }

func (m *MockDriverUoWFactory) Create() commands.DriverUoW {
	args := m.Called()
	return args.Get(0).(commands.DriverUoW)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

type MockAuditUoWFactory struct{ mock.Mock }

func (m *MockAuditUoWFactory) Create() commands.AuditUoW {
	args := m.Called()
	return args.Get(0).(commands.AuditUoW)
}

// Fixtures shared by the handler tests.

func driverVehicle() (driver.Vehicle, error) {
	return driver.NewVehicle("Ford Transit", "AB-123-CD", 500)
}

func newPendingDriver(id kernel.UUID, vehicle driver.Vehicle) (*driver.Driver, error) {
	return driver.NewDriver(id, "John Doe", "john@example.com", "+1555123", vehicle)
}

func mustActiveDriver(id kernel.UUID) *driver.Driver {
	vehicle, err := driverVehicle()
	if err != nil {
		panic(err)
	}
	d, err := newPendingDriver(id, vehicle)
	if err != nil {
		panic(err)
	}
	if err := d.ChangeStatus(driver.Active, 0); err != nil {
		panic(err)
	}
	return d
}

func mustPendingDelivery(id kernel.UUID) *delivery.Delivery {
	fee, err := kernel.NewMoney(2500)
	if err != nil {
		panic(err)
	}
	d, err := delivery.NewDelivery(id, "Office chairs", "Warehouse A", "Main St 5", fee, "")
	if err != nil {
		panic(err)
	}
	return d
}

func mustAssignedDelivery(id, driverID kernel.UUID) *delivery.Delivery {
	d := mustPendingDelivery(id)
	a, err := delivery.NewAssignment(kernel.NewUUID(), delivery.PriorityStandard, time.Now(), 24)
	if err != nil {
		panic(err)
	}
	if err := d.Assign(driverID, a); err != nil {
		panic(err)
	}
	return d
}
