package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	postgres_adapter "dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/auditrepo"
	"dispatch/internal/adapters/out/postgres/deliveryrepo"
	"dispatch/internal/adapters/out/postgres/driverrepo"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/audit"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides comprehensive integration testing
// for the GORM-based Unit of Work implementation with real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
// Runs database migrations to prepare schema for unit of work operations.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Connect to database
	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Run migrations
	err = db.AutoMigrate(
		&driverrepo.DriverDTO{},
		&deliveryrepo.DeliveryDTO{},
		&deliveryrepo.AssignmentDTO{},
		&auditrepo.EntryDTO{},
	)
	suite.Require().NoError(err)

	// Create factory
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
// Truncates all tables to prevent test interference.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE assignments, deliveries, drivers, audit_entries").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestUnitOfWorkFactory_Create verifies factory creates unit of work instances
// with proper initialization and isolation between instances.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.DriverRepository(), "First instance should provide driver repository")
	suite.NotNil(uow1.DeliveryRepository(), "First instance should provide delivery repository")
	suite.NotNil(uow1.AuditRepository(), "First instance should provide audit repository")
	suite.NotNil(uow2.DriverRepository(), "Second instance should provide driver repository")
	suite.NotNil(uow2.DeliveryRepository(), "Second instance should provide delivery repository")
}

// TestUnitOfWork_TransactionLifecycle verifies proper transaction management
// including begin, commit, and rollback operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

// TestUnitOfWork_TransactionErrors verifies error handling for invalid transaction operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_SingleRepositoryTransaction verifies repository operations
// within a single transaction boundary work correctly.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SingleRepositoryTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testDelivery := createTestDelivery()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.DeliveryRepository().Add(ctx, testDelivery)
	suite.Require().NoError(err)

	// Visible within the transaction
	retrieved, err := uow.DeliveryRepository().Get(ctx, testDelivery.ID())
	suite.Require().NoError(err)
	suite.Equal(testDelivery.ID(), retrieved.ID())

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Visible to a new unit of work after commit
	newUow := suite.factory.Create()
	retrieved, err = newUow.DeliveryRepository().Get(ctx, testDelivery.ID())
	suite.Require().NoError(err)
	suite.Equal(testDelivery.ID(), retrieved.ID())
}

// TestUnitOfWork_AssignmentWorkflow verifies the full assignment workflow:
// delivery, driver, and audit writes commit atomically.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_AssignmentWorkflow() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testDelivery := createTestDelivery()
	testDriver := createTestDriver(suite.T())

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.DeliveryRepository().Add(ctx, testDelivery)
	suite.Require().NoError(err)

	err = uow.DriverRepository().Add(ctx, testDriver)
	suite.Require().NoError(err)

	assignment, err := delivery.NewAssignment(kernel.NewUUID(), delivery.PriorityStandard, time.Now().UTC(), 24)
	suite.Require().NoError(err)

	err = testDelivery.Assign(testDriver.ID(), assignment)
	suite.Require().NoError(err)

	err = uow.DeliveryRepository().UpdateWhereStatus(ctx, testDelivery, delivery.Pending)
	suite.Require().NoError(err)

	entry, err := audit.NewEntry(kernel.NewUUID(), audit.CategoryDeliveryAssign, "assignment workflow test")
	suite.Require().NoError(err)
	err = uow.AuditRepository().Add(ctx, entry)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Verify all three writes persisted
	newUow := suite.factory.Create()

	retrievedDelivery, err := newUow.DeliveryRepository().Get(ctx, testDelivery.ID())
	suite.Require().NoError(err)
	suite.Equal(delivery.Assigned, retrievedDelivery.Status())
	suite.Require().NotNil(retrievedDelivery.AssignedDriver())
	suite.True(retrievedDelivery.AssignedDriver().IsEqual(testDriver.ID()))

	count, err := newUow.DeliveryRepository().CountActiveByDriver(ctx, testDriver.ID())
	suite.Require().NoError(err)
	suite.Equal(1, count)

	entries, err := newUow.AuditRepository().GetRecent(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Equal(audit.CategoryDeliveryAssign, entries[0].Category())
}

// TestUnitOfWork_CompletionWorkflow verifies that completing a delivery and
// crediting the driver commit together.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CompletionWorkflow() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testDelivery := createTestDelivery()
	testDriver := createTestDriver(suite.T())

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.DeliveryRepository().Add(ctx, testDelivery)
	suite.Require().NoError(err)
	err = uow.DriverRepository().Add(ctx, testDriver)
	suite.Require().NoError(err)

	assignment, err := delivery.NewAssignment(kernel.NewUUID(), delivery.PriorityStandard, time.Now().UTC(), 24)
	suite.Require().NoError(err)
	err = testDelivery.Assign(testDriver.ID(), assignment)
	suite.Require().NoError(err)
	err = uow.DeliveryRepository().UpdateWhereStatus(ctx, testDelivery, delivery.Pending)
	suite.Require().NoError(err)

	err = testDelivery.Complete()
	suite.Require().NoError(err)
	testDriver.CreditEarnings(testDelivery.Fee())

	err = uow.DeliveryRepository().Update(ctx, testDelivery)
	suite.Require().NoError(err)
	err = uow.DriverRepository().Update(ctx, testDriver)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Verify the credit landed and the delivery no longer counts as active
	newUow := suite.factory.Create()

	retrievedDriver, err := newUow.DriverRepository().Get(ctx, testDriver.ID())
	suite.Require().NoError(err)
	suite.Equal(testDelivery.Fee().Cents(), retrievedDriver.Earnings().Cents())

	count, err := newUow.DeliveryRepository().CountActiveByDriver(ctx, testDriver.ID())
	suite.Require().NoError(err)
	suite.Zero(count)
}

// TestUnitOfWork_TransactionRollback verifies rollback discards all changes
// made within the transaction across multiple repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testDelivery := createTestDelivery()
	testDriver := createTestDriver(suite.T())

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.DeliveryRepository().Add(ctx, testDelivery)
	suite.Require().NoError(err)

	err = uow.DriverRepository().Add(ctx, testDriver)
	suite.Require().NoError(err)

	entry, err := audit.NewEntry(kernel.NewUUID(), audit.CategoryOperation, "rollback test")
	suite.Require().NoError(err)
	err = uow.AuditRepository().Add(ctx, entry)
	suite.Require().NoError(err)

	// Visible within the transaction
	_, err = uow.DeliveryRepository().Get(ctx, testDelivery.ID())
	suite.Require().NoError(err)

	_, err = uow.DriverRepository().Get(ctx, testDriver.ID())
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	// Nothing persisted after rollback
	newUow := suite.factory.Create()

	_, err = newUow.DeliveryRepository().Get(ctx, testDelivery.ID())
	suite.Require().Error(err, "Delivery should not exist after rollback")

	_, err = newUow.DriverRepository().Get(ctx, testDriver.ID())
	suite.Require().Error(err, "Driver should not exist after rollback")

	entries, err := newUow.AuditRepository().GetRecent(ctx, 10)
	suite.Require().NoError(err)
	suite.Empty(entries, "Audit entry should not exist after rollback")
}

// TestUnitOfWork_RepositoryIsolation verifies that repositories obtained
// from different unit of work instances operate independently.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	delivery1 := createTestDelivery()
	delivery2 := createTestDelivery()

	err := uow1.Begin(ctx)
	suite.Require().NoError(err)

	err = uow2.Begin(ctx)
	suite.Require().NoError(err)

	err = uow1.DeliveryRepository().Add(ctx, delivery1)
	suite.Require().NoError(err)

	err = uow2.DeliveryRepository().Add(ctx, delivery2)
	suite.Require().NoError(err)

	// Each transaction only sees its own changes
	_, err = uow1.DeliveryRepository().Get(ctx, delivery1.ID())
	suite.Require().NoError(err, "UOW1 should see delivery1")

	_, err = uow1.DeliveryRepository().Get(ctx, delivery2.ID())
	suite.Require().Error(err, "UOW1 should not see delivery2")

	_, err = uow2.DeliveryRepository().Get(ctx, delivery2.ID())
	suite.Require().NoError(err, "UOW2 should see delivery2")

	_, err = uow2.DeliveryRepository().Get(ctx, delivery1.ID())
	suite.Require().Error(err, "UOW2 should not see delivery1")

	err = uow1.Commit(ctx)
	suite.Require().NoError(err)

	err = uow2.Rollback(ctx)
	suite.Require().NoError(err)

	// Only delivery1 persisted
	newUow := suite.factory.Create()
	_, err = newUow.DeliveryRepository().Get(ctx, delivery1.ID())
	suite.Require().NoError(err, "Delivery1 should persist after commit")

	_, err = newUow.DeliveryRepository().Get(ctx, delivery2.ID())
	suite.Require().Error(err, "Delivery2 should not persist after rollback")
}

// TestUnitOfWork_WithoutTransaction verifies that repositories work correctly
// without explicit transaction boundaries for immediate operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testDelivery := createTestDelivery()

	// Add without beginning a transaction (auto-commit)
	err := uow.DeliveryRepository().Add(ctx, testDelivery)
	suite.Require().NoError(err)

	retrieved, err := uow.DeliveryRepository().Get(ctx, testDelivery.ID())
	suite.Require().NoError(err)
	suite.Equal(testDelivery.ID(), retrieved.ID())

	newUow := suite.factory.Create()
	retrieved, err = newUow.DeliveryRepository().Get(ctx, testDelivery.ID())
	suite.Require().NoError(err)
	suite.Equal(testDelivery.ID(), retrieved.ID())
}

// TestUnitOfWork_RejectionAuditCommits verifies that an audit entry can be
// committed on its own, matching the rejected-deactivation flow where the
// mutation is refused but the refusal itself is recorded.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RejectionAuditCommits() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	entry, err := audit.NewEntry(kernel.NewUUID(), audit.CategoryError, "rejected deactivation test")
	suite.Require().NoError(err)
	err = uow.AuditRepository().Add(ctx, entry)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	entries, err := newUow.AuditRepository().GetRecent(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Equal(audit.CategoryError, entries[0].Category())
	suite.False(entries[0].RecordedAt().IsZero())
}

// TestUnitOfWork_ConcurrentCompletionsCreditBothFees verifies that two
// completions for deliveries assigned to the same driver never lose a credit.
// The completion handler locks the driver row, so the second transaction
// reads the earnings the first one committed instead of a stale value.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConcurrentCompletionsCreditBothFees() {
	ctx := context.Background()

	testDriver := createTestDriver(suite.T())
	firstDelivery := createTestDeliveryWithFee(suite.T(), 2500)
	secondDelivery := createTestDeliveryWithFee(suite.T(), 3000)

	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	suite.Require().NoError(setup.DriverRepository().Add(ctx, testDriver))

	for _, d := range []*delivery.Delivery{firstDelivery, secondDelivery} {
		suite.Require().NoError(setup.DeliveryRepository().Add(ctx, d))

		assignment, err := delivery.NewAssignment(kernel.NewUUID(), delivery.PriorityStandard, time.Now().UTC(), 24)
		suite.Require().NoError(err)
		suite.Require().NoError(d.Assign(testDriver.ID(), assignment))
		suite.Require().NoError(setup.DeliveryRepository().UpdateWhereStatus(ctx, d, delivery.Pending))
	}
	suite.Require().NoError(setup.Commit(ctx))

	handler := commands.NewCompleteDeliveryCommandHandler(uowFactoryFunc(func() commands.UoW {
		return suite.factory.Create()
	}))

	errCh := make(chan error, 2)
	var wg sync.WaitGroup
	for _, id := range []kernel.UUID{firstDelivery.ID(), secondDelivery.ID()} {
		wg.Add(1)
		go func(deliveryID kernel.UUID) {
			defer wg.Done()
			command, err := commands.NewCompleteDeliveryCommand(deliveryID)
			if err != nil {
				errCh <- err
				return
			}
			errCh <- handler.Handle(ctx, command)
		}(id)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		suite.Require().NoError(err)
	}

	retrievedDriver, err := suite.factory.Create().DriverRepository().Get(ctx, testDriver.ID())
	suite.Require().NoError(err)
	suite.Equal(int64(5500), retrievedDriver.Earnings().Cents(), "both fees should be credited")

	count, err := suite.factory.Create().DeliveryRepository().CountActiveByDriver(ctx, testDriver.ID())
	suite.Require().NoError(err)
	suite.Zero(count)
}

// TestUnitOfWork_ConcurrentAssignsRespectCapacity verifies that two racing
// assignments to a driver with two active jobs cannot both slip past the
// active-job limit. The driver row lock serializes the capacity check, so the
// second transaction counts the first one's committed assignment.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConcurrentAssignsRespectCapacity() {
	ctx := context.Background()

	testDriver := createTestDriver(suite.T())

	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	suite.Require().NoError(setup.DriverRepository().Add(ctx, testDriver))

	// Two active jobs already held, one short of the limit.
	for i := 0; i < 2; i++ {
		held := createTestDeliveryWithFee(suite.T(), 2000)
		suite.Require().NoError(setup.DeliveryRepository().Add(ctx, held))

		assignment, err := delivery.NewAssignment(kernel.NewUUID(), delivery.PriorityStandard, time.Now().UTC(), 24)
		suite.Require().NoError(err)
		suite.Require().NoError(held.Assign(testDriver.ID(), assignment))
		suite.Require().NoError(setup.DeliveryRepository().UpdateWhereStatus(ctx, held, delivery.Pending))
	}

	firstPending := createTestDeliveryWithFee(suite.T(), 2000)
	secondPending := createTestDeliveryWithFee(suite.T(), 2000)
	suite.Require().NoError(setup.DeliveryRepository().Add(ctx, firstPending))
	suite.Require().NoError(setup.DeliveryRepository().Add(ctx, secondPending))
	suite.Require().NoError(setup.Commit(ctx))

	handler := commands.NewAssignDriverCommandHandler(uowFactoryFunc(func() commands.UoW {
		return suite.factory.Create()
	}))

	errCh := make(chan error, 2)
	var wg sync.WaitGroup
	for _, id := range []kernel.UUID{firstPending.ID(), secondPending.ID()} {
		wg.Add(1)
		go func(deliveryID kernel.UUID) {
			defer wg.Done()
			command, err := commands.NewAssignDriverCommand(
				deliveryID, testDriver.ID(), delivery.PriorityStandard, 24, false,
			)
			if err != nil {
				errCh <- err
				return
			}
			errCh <- handler.Handle(ctx, command)
		}(id)
	}
	wg.Wait()
	close(errCh)

	var succeeded, rejected int
	for err := range errCh {
		if err == nil {
			succeeded++
			continue
		}
		suite.Require().ErrorIs(err, commands.ErrDriverAtCapacity)
		rejected++
	}
	suite.Equal(1, succeeded, "exactly one assignment should land")
	suite.Equal(1, rejected, "the other should be rejected at the limit")

	count, err := suite.factory.Create().DeliveryRepository().CountActiveByDriver(ctx, testDriver.ID())
	suite.Require().NoError(err)
	suite.Equal(3, count)
}

// uowFactoryFunc adapts a closure to the command layer's unit of work factory.
type uowFactoryFunc func() commands.UoW

func (f uowFactoryFunc) Create() commands.UoW {
	return f()
}

// createTestDelivery creates a valid pending delivery for testing purposes.
func createTestDelivery() *delivery.Delivery {
	id := kernel.NewUUID()
	fee, _ := kernel.NewMoney(2500)
	testDelivery, _ := delivery.NewDelivery(id, "Office chairs", "Warehouse A", "Main St 5", fee, "")
	return testDelivery
}

// createTestDeliveryWithFee creates a pending delivery with the given fee.
func createTestDeliveryWithFee(t *testing.T, cents int64) *delivery.Delivery {
	t.Helper()

	fee, err := kernel.NewMoney(cents)
	if err != nil {
		t.Fatal(err)
	}
	testDelivery, err := delivery.NewDelivery(kernel.NewUUID(), "Office chairs", "Warehouse A", "Main St 5", fee, "")
	if err != nil {
		t.Fatal(err)
	}
	return testDelivery
}

// createTestDriver creates a valid active driver for testing purposes.
func createTestDriver(t *testing.T) *driver.Driver {
	t.Helper()

	vehicle, err := driver.NewVehicle("Ford Transit", "AB-123-CD", 500)
	if err != nil {
		t.Fatal(err)
	}
	testDriver, err := driver.NewDriver(kernel.NewUUID(), "Test Driver", "driver@example.com", "+1555123", vehicle)
	if err != nil {
		t.Fatal(err)
	}
	if err := testDriver.ChangeStatus(driver.Active, 0); err != nil {
		t.Fatal(err)
	}
	return testDriver
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
