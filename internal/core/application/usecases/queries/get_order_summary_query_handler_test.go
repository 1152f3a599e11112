package queries_test

import (
	"context"
	"testing"
	"time"

	"drycleaning/internal/adapters/out/postgres/sessionrepo"
	"drycleaning/internal/core/application/usecases/queries"
	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/core/domain/model/pricing"
	"drycleaning/internal/core/domain/model/wizard"
	"drycleaning/internal/core/domain/services"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// noopAggregateTracker satisfies the repository's tracker dependency.
type noopAggregateTracker struct{}

func (noopAggregateTracker) TrackAggregate(_ kernel.UUID, _ interface{}) {}

type GetOrderSummaryQueryHandlerTestSuite struct {
	suite.Suite
	container   *postgres.PostgresContainer
	db          *gorm.DB
	handler     queries.GetOrderSummaryQueryHandler
	sessionRepo *sessionrepo.GormSessionRepository
}

func (suite *GetOrderSummaryQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&sessionrepo.SessionDTO{}))

	suite.handler = queries.NewGetOrderSummaryQueryHandler(db)
	suite.sessionRepo = sessionrepo.NewGormSessionRepository(db, noopAggregateTracker{})
}

func (suite *GetOrderSummaryQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetOrderSummaryQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE sessions").Error)
}

func (suite *GetOrderSummaryQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsZeros() {
	query := queries.NewGetOrderSummaryQuery()

	summary, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(0, summary.ActiveSessions)
	suite.Equal(0, summary.CommittedItems)
	suite.Equal(int64(0), summary.ItemsTotal.MinorUnits())
	suite.Equal(int64(0), summary.PrepaymentTotal.MinorUnits())
}

func (suite *GetOrderSummaryQueryHandlerTestSuite) TestHandle_CountsOnlyActiveSessions() {
	ctx := context.Background()

	withItem := sessionWithItem(suite.T(), kernel.NewUUID(), kernel.NewUUID())
	empty := sessionAtItems(suite.T(), kernel.NewUUID())
	cancelled := sessionWithItem(suite.T(), kernel.NewUUID(), kernel.NewUUID())
	suite.Require().NoError(cancelled.Cancel())

	suite.Require().NoError(suite.sessionRepo.Add(ctx, withItem))
	suite.Require().NoError(suite.sessionRepo.Add(ctx, empty))
	suite.Require().NoError(suite.sessionRepo.Add(ctx, cancelled))

	summary, err := suite.handler.Handle(ctx, queries.NewGetOrderSummaryQuery())

	suite.Require().NoError(err)
	suite.Equal(2, summary.ActiveSessions)
	suite.Equal(1, summary.CommittedItems)
	suite.Equal(int64(1000), summary.ItemsTotal.MinorUnits())
	suite.Equal(int64(0), summary.PrepaymentTotal.MinorUnits())
}

func (suite *GetOrderSummaryQueryHandlerTestSuite) TestHandle_SumsItemTotalsAndPrepayments() {
	ctx := context.Background()

	first := sessionWithItem(suite.T(), kernel.NewUUID(), kernel.NewUUID())
	second := suite.sessionWithPrepayment(300)

	suite.Require().NoError(suite.sessionRepo.Add(ctx, first))
	suite.Require().NoError(suite.sessionRepo.Add(ctx, second))

	summary, err := suite.handler.Handle(ctx, queries.NewGetOrderSummaryQuery())

	suite.Require().NoError(err)
	suite.Equal(2, summary.ActiveSessions)
	suite.Equal(2, summary.CommittedItems)
	suite.Equal(int64(2000), summary.ItemsTotal.MinorUnits())
	suite.Equal(int64(300), summary.PrepaymentTotal.MinorUnits())
}

// sessionWithPrepayment walks a one-item session to the adjustments stage
// and records a prepayment.
func (suite *GetOrderSummaryQueryHandlerTestSuite) sessionWithPrepayment(minor int64) *wizard.Session {
	t := suite.T()
	session := sessionWithItem(t, kernel.NewUUID(), kernel.NewUUID())
	suite.Require().NoError(session.Advance())

	prepayment, err := kernel.NewMoney(minor)
	suite.Require().NoError(err)
	adjustments, err := pricing.NewAdjustments(
		pricing.DiscountNone, 0, pricing.UrgencyNormal, pricing.PaymentCash, prepayment)
	suite.Require().NoError(err)

	composer := services.NewPriceComposer()
	repriced := make([]pricing.Result, 0, len(session.Items()))
	for _, item := range session.Items() {
		price, composeErr := composer.ComposeItemPrice(item.Draft(), coatEntry(t), nil, adjustments)
		suite.Require().NoError(composeErr)
		repriced = append(repriced, price)
	}

	suite.Require().NoError(session.SetAdjustments(adjustments, repriced))
	return session
}

func TestGetOrderSummaryQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderSummaryQueryHandlerTestSuite))
}
