package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "shop/internal/adapters/out/postgres"
	"shop/internal/adapters/out/postgres/cartrepo"
	"shop/internal/adapters/out/postgres/customerrepo"
	"shop/internal/adapters/out/postgres/orderrepo"
	"shop/internal/adapters/out/postgres/productrepo"
	"shop/internal/adapters/out/postgres/storerepo"
	"shop/internal/core/domain/model/cart"
	"shop/internal/core/domain/model/customer"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/core/domain/model/product"
	"shop/internal/core/domain/model/store"
	"shop/internal/core/domain/services/pricing"
	"shop/internal/core/ports"

	"github.com/shopspring/decimal"
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
		&storerepo.StoreDTO{},
		&productrepo.ProductDTO{},
		&customerrepo.CustomerDTO{},
		&customerrepo.CustomerSequenceDTO{},
		&cartrepo.CartDTO{},
		&cartrepo.CartItemDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.PaymentDTO{},
		&orderrepo.OrderSequenceDTO{},
	)
	suite.Require().NoError(err)

	// Create factory
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
// Truncates all tables to prevent test interference.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE stores, products, customers, customer_sequences, " +
		"carts, cart_items, orders, order_items, order_payments, order_sequences").Error
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
	// Create multiple unit of work instances
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	// Verify instances are different
	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	// Verify both instances provide access to repositories
	suite.NotNil(uow1.CartRepository(), "First instance should provide cart repository")
	suite.NotNil(uow1.OrderRepository(), "First instance should provide order repository")
	suite.NotNil(uow2.ProductRepository(), "Second instance should provide product repository")
	suite.NotNil(uow2.StoreRepository(), "Second instance should provide store repository")
}

// TestUnitOfWork_TransactionLifecycle verifies proper transaction management
// including begin, commit, and rollback operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	// Test begin transaction
	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	// Test multiple begin calls are safe
	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	// Test commit
	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	// Test rollback on new transaction
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

// TestUnitOfWork_TransactionErrors verifies error handling for invalid transaction operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	// Test commit without begin
	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	// Test rollback without begin
	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_SingleRepositoryTransaction verifies repository operations
// within a single transaction boundary work correctly.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SingleRepositoryTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testStore := suite.createTestStore()

	// Begin transaction
	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	// Add store within transaction
	err = uow.StoreRepository().Add(ctx, testStore)
	suite.Require().NoError(err)

	// Verify store exists within transaction
	retrievedStore, err := uow.StoreRepository().Get(ctx, testStore.ID())
	suite.Require().NoError(err)
	suite.Equal(testStore.ID(), retrievedStore.ID())

	// Commit transaction
	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Verify store persists after commit using new unit of work
	newUow := suite.factory.Create()
	retrievedStore, err = newUow.StoreRepository().Get(ctx, testStore.ID())
	suite.Require().NoError(err)
	suite.Equal(testStore.ID(), retrievedStore.ID())
	suite.Equal(testStore.Currency(), retrievedStore.Currency())
}

// TestUnitOfWork_MultiRepositoryTransaction verifies multiple repository operations
// within a single transaction work atomically.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_MultiRepositoryTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testStore := suite.createTestStore()
	testProduct := suite.createTestProduct(testStore, "10.00", 5)
	testCustomer := suite.createTestCustomer(testStore)

	// Begin transaction
	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	// Add entities using different repositories within same transaction
	err = uow.StoreRepository().Add(ctx, testStore)
	suite.Require().NoError(err)
	err = uow.ProductRepository().Add(ctx, testProduct)
	suite.Require().NoError(err)
	err = uow.CustomerRepository().Add(ctx, testCustomer)
	suite.Require().NoError(err)

	// Build a cart with one purchasing line
	testCart := suite.createTestCart(testCustomer, testStore)
	_, _, err = testCart.GetOrCreateItem(testProduct, 2, nil)
	suite.Require().NoError(err)
	err = uow.CartRepository().Add(ctx, testCart)
	suite.Require().NoError(err)

	// Commit transaction
	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Verify the cart round-trips with its line and the backing product
	newUow := suite.factory.Create()
	retrievedCart, err := newUow.CartRepository().GetByCustomer(ctx, testCustomer.ID())
	suite.Require().NoError(err)
	suite.Equal(testCart.ID(), retrievedCart.ID())
	suite.Require().Len(retrievedCart.Items(), 1)
	suite.Equal(testProduct.ID(), retrievedCart.Items()[0].Product().ID())
	suite.Equal(2, retrievedCart.Items()[0].Quantity())
	suite.True(retrievedCart.IsDirty(), "A never recomputed cart should load dirty")
}

// TestUnitOfWork_TransactionRollback verifies rollback discards all changes
// made within the transaction across multiple repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testStore := suite.createTestStore()
	testProduct := suite.createTestProduct(testStore, "10.00", 5)

	// Begin transaction
	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	// Add entities within transaction
	err = uow.StoreRepository().Add(ctx, testStore)
	suite.Require().NoError(err)
	err = uow.ProductRepository().Add(ctx, testProduct)
	suite.Require().NoError(err)

	// Verify entities exist within transaction
	_, err = uow.StoreRepository().Get(ctx, testStore.ID())
	suite.Require().NoError(err)
	_, err = uow.ProductRepository().Get(ctx, testProduct.ID())
	suite.Require().NoError(err)

	// Rollback transaction
	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	// Verify entities do not exist after rollback using new unit of work
	newUow := suite.factory.Create()

	_, err = newUow.StoreRepository().Get(ctx, testStore.ID())
	suite.Require().Error(err, "Store should not exist after rollback")

	_, err = newUow.ProductRepository().Get(ctx, testProduct.ID())
	suite.Require().Error(err, "Product should not exist after rollback")
}

// TestUnitOfWork_RepositoryIsolation verifies that repositories obtained
// from different unit of work instances operate independently.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()

	// Create two unit of work instances
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	store1 := suite.createTestStore()
	store2 := suite.createTestStore()

	// Begin transactions on both
	err := uow1.Begin(ctx)
	suite.Require().NoError(err)

	err = uow2.Begin(ctx)
	suite.Require().NoError(err)

	// Add a different store in each transaction
	err = uow1.StoreRepository().Add(ctx, store1)
	suite.Require().NoError(err)

	err = uow2.StoreRepository().Add(ctx, store2)
	suite.Require().NoError(err)

	// Each transaction should only see its own changes
	_, err = uow1.StoreRepository().Get(ctx, store1.ID())
	suite.Require().NoError(err, "UOW1 should see store1")

	_, err = uow1.StoreRepository().Get(ctx, store2.ID())
	suite.Require().Error(err, "UOW1 should not see store2")

	_, err = uow2.StoreRepository().Get(ctx, store2.ID())
	suite.Require().NoError(err, "UOW2 should see store2")

	_, err = uow2.StoreRepository().Get(ctx, store1.ID())
	suite.Require().Error(err, "UOW2 should not see store1")

	// Commit first transaction
	err = uow1.Commit(ctx)
	suite.Require().NoError(err)

	// Rollback second transaction
	err = uow2.Rollback(ctx)
	suite.Require().NoError(err)

	// Verify only store1 persisted
	newUow := suite.factory.Create()
	_, err = newUow.StoreRepository().Get(ctx, store1.ID())
	suite.Require().NoError(err, "Store1 should persist after commit")

	_, err = newUow.StoreRepository().Get(ctx, store2.ID())
	suite.Require().Error(err, "Store2 should not persist after rollback")
}

// TestUnitOfWork_WithoutTransaction verifies that repositories work correctly
// without explicit transaction boundaries for immediate operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testStore := suite.createTestStore()

	// Add store without beginning transaction (should auto-commit)
	err := uow.StoreRepository().Add(ctx, testStore)
	suite.Require().NoError(err)

	// Verify store persists immediately with new unit of work instance
	newUow := suite.factory.Create()
	retrievedStore, err := newUow.StoreRepository().Get(ctx, testStore.ID())
	suite.Require().NoError(err)
	suite.Equal(testStore.ID(), retrievedStore.ID())
}

// TestUnitOfWork_NumberSequences verifies both number sequences draw
// monotonically and the order sequence restarts per year.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_NumberSequences() {
	ctx := context.Background()
	uow := suite.factory.Create()

	first, err := uow.CustomerRepository().NextNumber(ctx)
	suite.Require().NoError(err)
	second, err := uow.CustomerRepository().NextNumber(ctx)
	suite.Require().NoError(err)
	suite.Equal(first+1, second, "Customer numbers should increment")

	seq1, err := uow.OrderRepository().NextNumber(ctx, 2026)
	suite.Require().NoError(err)
	suite.Equal(1, seq1)

	seq2, err := uow.OrderRepository().NextNumber(ctx, 2026)
	suite.Require().NoError(err)
	suite.Equal(2, seq2)

	// A new year starts its own sequence
	seq3, err := uow.OrderRepository().NextNumber(ctx, 2027)
	suite.Require().NoError(err)
	suite.Equal(1, seq3)
}

// TestUnitOfWork_CheckoutWorkflow tests the complete cart to order conversion
// involving every aggregate within a single transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CheckoutWorkflow() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testStore := suite.createTestStore()
	testProduct := suite.createTestProduct(testStore, "10.00", 5)
	testCustomer := suite.createTestCustomer(testStore)
	testCart := suite.createTestCart(testCustomer, testStore)
	_, _, err := testCart.GetOrCreateItem(testProduct, 2, nil)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.StoreRepository().Add(ctx, testStore)
	suite.Require().NoError(err)
	err = uow.ProductRepository().Add(ctx, testProduct)
	suite.Require().NoError(err)
	err = uow.CustomerRepository().Add(ctx, testCustomer)
	suite.Require().NoError(err)
	err = uow.CartRepository().Add(ctx, testCart)
	suite.Require().NoError(err)

	// Draw an order number and convert the cart
	sequence, err := uow.OrderRepository().NextNumber(ctx, 2026)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(kernel.NewUUID(), testCustomer.ID(), testStore.ID(),
		testStore.Currency(), 2026, sequence)
	suite.Require().NoError(err)

	pipeline, err := suite.pricingPool().Get(testStore)
	suite.Require().NoError(err)
	pctx := pricing.NewContext(ctx, testCustomer, testStore, stockAvailability{})

	err = testOrder.PopulateFromCart(ctx, testCart, pctx, pipeline, nil)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)
	err = uow.ProductRepository().Update(ctx, testProduct)
	suite.Require().NoError(err)
	err = uow.CartRepository().Update(ctx, testCart)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Verify final state using a new unit of work
	newUow := suite.factory.Create()

	retrievedOrder, err := newUow.OrderRepository().GetByNumber(ctx, testOrder.Number())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrievedOrder.ID())
	suite.Equal(order.StatusCreated, retrievedOrder.Status())
	suite.Require().Len(retrievedOrder.Items(), 1)
	suite.Equal("mug-01", retrievedOrder.Items()[0].ProductCode())
	suite.True(decimal.NewFromFloat(20.00).Equal(retrievedOrder.Total().Amount()))

	retrievedProduct, err := newUow.ProductRepository().Get(ctx, testProduct.ID())
	suite.Require().NoError(err)
	suite.Equal(3, retrievedProduct.StockQuantity())

	retrievedCart, err := newUow.CartRepository().Get(ctx, testCart.ID())
	suite.Require().NoError(err)
	suite.Empty(retrievedCart.Items(), "Converted lines should leave the cart")
}

// TestUnitOfWork_PaymentRoundTrip verifies payments persist with the order
// and restore the acknowledged status.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_PaymentRoundTrip() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testStore := suite.createTestStore()
	testOrder, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), testStore.ID(),
		testStore.Currency(), 2026, 1)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)
	err = uow.StoreRepository().Add(ctx, testStore)
	suite.Require().NoError(err)
	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	amount, err := kernel.NewMoney(decimal.NewFromFloat(5.00), testStore.Currency())
	suite.Require().NoError(err)
	err = testOrder.AddPayment(order.Payment{
		Amount:        amount,
		TransactionID: "tx-100",
		Method:        "bank-transfer",
		ReceivedAt:    time.Now().UTC().Truncate(time.Second),
	})
	suite.Require().NoError(err)
	err = uow.OrderRepository().Update(ctx, testOrder)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	retrievedOrder, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().Len(retrievedOrder.Payments(), 1)
	suite.Equal("tx-100", retrievedOrder.Payments()[0].TransactionID)
	suite.True(amount.IsEqual(retrievedOrder.Payments()[0].Amount))
}

// TestUnitOfWork_StaleCartPurge verifies DeleteStale removes only carts
// untouched since the cutoff, lines included.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_StaleCartPurge() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testStore := suite.createTestStore()
	staleCustomer := suite.createTestCustomer(testStore)
	freshCustomer := suite.createTestCustomer(testStore)
	staleCart := suite.createTestCart(staleCustomer, testStore)
	freshCart := suite.createTestCart(freshCustomer, testStore)

	err := uow.Begin(ctx)
	suite.Require().NoError(err)
	err = uow.StoreRepository().Add(ctx, testStore)
	suite.Require().NoError(err)
	err = uow.CartRepository().Add(ctx, staleCart)
	suite.Require().NoError(err)
	err = uow.CartRepository().Add(ctx, freshCart)
	suite.Require().NoError(err)
	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Backdate the stale cart past the cutoff
	err = suite.db.Exec("UPDATE carts SET updated_at = now() - interval '60 days' WHERE id = ?",
		staleCart.ID().Bytes()).Error
	suite.Require().NoError(err)

	purgeUow := suite.factory.Create()
	purged, err := purgeUow.CartRepository().DeleteStale(ctx, time.Now().AddDate(0, 0, -30))
	suite.Require().NoError(err)
	suite.Equal(int64(1), purged)

	_, err = purgeUow.CartRepository().Get(ctx, staleCart.ID())
	suite.Require().Error(err, "Stale cart should be gone")

	_, err = purgeUow.CartRepository().Get(ctx, freshCart.ID())
	suite.Require().NoError(err, "Fresh cart should survive the purge")
}

// createTestStore creates a valid store for testing purposes.
func (suite *UnitOfWorkIntegrationTestSuite) createTestStore() *store.Store {
	s, err := store.NewStore(kernel.NewUUID(), "Demo Store", "shop@example.com",
		kernel.Currency("EUR"), decimal.Zero, []string{pricing.DefaultModifierID})
	suite.Require().NoError(err)
	return s
}

// createTestProduct creates a valid product in the given store.
func (suite *UnitOfWorkIntegrationTestSuite) createTestProduct(s *store.Store, price string, stock int) *product.Product {
	unitPrice, err := kernel.MoneyFromString(price, s.Currency())
	suite.Require().NoError(err)
	p, err := product.NewProduct(kernel.NewUUID(), s.ID(), "Ceramic Mug", "mug-01", unitPrice, stock)
	suite.Require().NoError(err)
	return p
}

// createTestCustomer creates a valid guest customer in the given store.
func (suite *UnitOfWorkIntegrationTestSuite) createTestCustomer(s *store.Store) *customer.Customer {
	c, err := customer.NewCustomer(kernel.NewUUID(), s.ID(), customer.Guest, "guest@example.com")
	suite.Require().NoError(err)
	return c
}

// createTestCart creates an empty cart for the given customer.
func (suite *UnitOfWorkIntegrationTestSuite) createTestCart(cust *customer.Customer, s *store.Store) *cart.Cart {
	c, err := cart.NewCart(kernel.NewUUID(), cust.ID(), s.ID(), s.Currency())
	suite.Require().NoError(err)
	return c
}

// pricingPool resolves every store to a pipeline holding only the default
// price modifier.
func (suite *UnitOfWorkIntegrationTestSuite) pricingPool() *pricing.Pool {
	registry := pricing.NewRegistry()
	err := registry.Register(pricing.DefaultModifierID, func(_ *store.Store) (pricing.Modifier, error) {
		return pricing.NewDefaultModifier(), nil
	})
	suite.Require().NoError(err)
	return pricing.NewPool(registry)
}

// stockAvailability reports availability straight from the product backing a
// cart line.
type stockAvailability struct{}

func (stockAvailability) Availability(_ context.Context, item *cart.Item) (product.Availability, error) {
	return item.Product().GetAvailability(time.Now()), nil
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
