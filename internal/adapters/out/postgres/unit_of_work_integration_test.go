package postgres_test

import (
	"context"
	"testing"

	postgres_adapter "drycleaning/internal/adapters/out/postgres"
	"drycleaning/internal/adapters/out/postgres/sessionrepo"
	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/core/domain/model/wizard"
	"drycleaning/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
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
	err = db.AutoMigrate(&sessionrepo.SessionDTO{})
	suite.Require().NoError(err)

	// Create factory
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE sessions").Error
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

	suite.NotNil(uow1.SessionRepository(), "First instance should provide session repository")
	suite.NotNil(uow2.SessionRepository(), "Second instance should provide session repository")
}

// TestUnitOfWork_TransactionLifecycle verifies proper transaction management
// including begin, commit, and rollback operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	// Multiple begin calls must not open nested transactions
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

// TestUnitOfWork_CommitPersistsSession verifies repository operations within
// a transaction boundary are visible after commit.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitPersistsSession() {
	ctx := context.Background()
	uow := suite.factory.Create()

	session := createTestSession(suite.T())

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.SessionRepository().Add(ctx, session)
	suite.Require().NoError(err)

	// Visible within the transaction
	retrieved, err := uow.SessionRepository().Get(ctx, session.ID())
	suite.Require().NoError(err)
	suite.Equal(session.ID(), retrieved.ID())

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Visible from a fresh unit of work after commit
	newUow := suite.factory.Create()
	retrieved, err = newUow.SessionRepository().Get(ctx, session.ID())
	suite.Require().NoError(err)
	suite.Equal(session.ID(), retrieved.ID())
	suite.Equal(wizard.StageClientAndOrderInfo, retrieved.Stage())
}

// TestUnitOfWork_TransactionRollback verifies rollback discards all changes
// made within the transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	session := createTestSession(suite.T())

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.SessionRepository().Add(ctx, session)
	suite.Require().NoError(err)

	_, err = uow.SessionRepository().Get(ctx, session.ID())
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	_, err = newUow.SessionRepository().Get(ctx, session.ID())
	suite.Require().Error(err, "Session should not exist after rollback")
}

// TestUnitOfWork_RepositoryIsolation verifies that repositories obtained
// from different unit of work instances operate independently.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	session1 := createTestSession(suite.T())
	session2 := createTestSession(suite.T())

	err := uow1.Begin(ctx)
	suite.Require().NoError(err)

	err = uow2.Begin(ctx)
	suite.Require().NoError(err)

	err = uow1.SessionRepository().Add(ctx, session1)
	suite.Require().NoError(err)

	err = uow2.SessionRepository().Add(ctx, session2)
	suite.Require().NoError(err)

	// Each transaction sees only its own changes
	_, err = uow1.SessionRepository().Get(ctx, session1.ID())
	suite.Require().NoError(err, "UOW1 should see session1")

	_, err = uow1.SessionRepository().Get(ctx, session2.ID())
	suite.Require().Error(err, "UOW1 should not see session2")

	_, err = uow2.SessionRepository().Get(ctx, session2.ID())
	suite.Require().NoError(err, "UOW2 should see session2")

	_, err = uow2.SessionRepository().Get(ctx, session1.ID())
	suite.Require().Error(err, "UOW2 should not see session1")

	err = uow1.Commit(ctx)
	suite.Require().NoError(err)

	err = uow2.Rollback(ctx)
	suite.Require().NoError(err)

	// Only the committed session persists
	newUow := suite.factory.Create()
	_, err = newUow.SessionRepository().Get(ctx, session1.ID())
	suite.Require().NoError(err, "Session1 should persist after commit")

	_, err = newUow.SessionRepository().Get(ctx, session2.ID())
	suite.Require().Error(err, "Session2 should not persist after rollback")
}

// TestUnitOfWork_WithoutTransaction verifies that repositories work correctly
// without explicit transaction boundaries for immediate operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	session := createTestSession(suite.T())

	err := uow.SessionRepository().Add(ctx, session)
	suite.Require().NoError(err)

	retrieved, err := uow.SessionRepository().Get(ctx, session.ID())
	suite.Require().NoError(err)
	suite.Equal(session.ID(), retrieved.ID())

	newUow := suite.factory.Create()
	retrieved, err = newUow.SessionRepository().Get(ctx, session.ID())
	suite.Require().NoError(err)
	suite.Equal(session.ID(), retrieved.ID())
}

// TestUnitOfWork_WizardWorkflow walks a session through client info and
// stage advancement within a single transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WizardWorkflow() {
	ctx := context.Background()
	uow := suite.factory.Create()

	session := createTestSession(suite.T())

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.SessionRepository().Add(ctx, session)
	suite.Require().NoError(err)

	err = session.SetClient(kernel.NewUUID())
	suite.Require().NoError(err)
	err = session.SetBranch(kernel.NewUUID())
	suite.Require().NoError(err)
	err = session.Advance()
	suite.Require().NoError(err)

	err = uow.SessionRepository().Update(ctx, session)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	retrieved, err := newUow.SessionRepository().Get(ctx, session.ID())
	suite.Require().NoError(err)
	suite.Equal(wizard.StageItemCollection, retrieved.Stage())
	suite.Equal(session.Version(), retrieved.Version())
	suite.NotNil(retrieved.ClientID())
	suite.NotNil(retrieved.BranchID())
}

// TestUnitOfWork_WorkflowRollback verifies a mutation rolled back mid-flow
// leaves the previously committed state untouched.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WorkflowRollback() {
	ctx := context.Background()

	session := createTestSession(suite.T())

	// Persist the fresh session first
	initialUow := suite.factory.Create()
	err := initialUow.SessionRepository().Add(ctx, session)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = session.SetClient(kernel.NewUUID())
	suite.Require().NoError(err)
	err = uow.SessionRepository().Update(ctx, session)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	// The stored copy still has no client
	newUow := suite.factory.Create()
	retrieved, err := newUow.SessionRepository().Get(ctx, session.ID())
	suite.Require().NoError(err)
	suite.Nil(retrieved.ClientID(), "Client should not be set after rollback")
}

// createTestSession creates a fresh wizard session for testing purposes.
func createTestSession(t *testing.T) *wizard.Session {
	session, err := wizard.NewSession(kernel.NewUUID())
	if err != nil {
		t.Fatal(err)
	}
	return session
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
