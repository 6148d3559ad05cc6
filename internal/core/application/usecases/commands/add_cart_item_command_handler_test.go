package commands_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shop/internal/core/application/usecases/commands"
	"shop/internal/core/domain/model/cart"
	"shop/internal/core/domain/model/customer"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
)

func TestAddCartItemCommandHandler_Handle_ExistingCart(t *testing.T) {
	ctx := t.Context()
	s := newTestStore(t)
	cust := newTestCustomer(t, s.ID())
	existing := newTestCart(t, cust.ID(), s)
	p := newTestProduct(t, s.ID(), "9.99", 10)

	cmd, err := commands.NewAddCartItemCommand(cust.ID(), s.ID(), p.ID(), 2, nil)
	require.NoError(t, err)

	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	uow := new(MockCartUoW)
	uow.On("CartRepository").Return(carts)
	uow.On("ProductRepository").Return(products)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		carts.On("GetByCustomer", ctx, cust.ID()).Return(existing, nil).Once(),
		products.On("Get", ctx, p.ID()).Return(p, nil).Once(),
		carts.On("Update", ctx, existing).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCartUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddCartItemCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	require.Len(t, existing.Items(), 1)
	assert.Equal(t, 2, existing.Items()[0].Quantity())
	assert.True(t, existing.IsDirty())
	carts.AssertExpectations(t)
	products.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAddCartItemCommandHandler_Handle_CreatesCartOnFirstUse(t *testing.T) {
	ctx := t.Context()
	s := newTestStore(t)
	cust := newTestCustomer(t, s.ID())
	p := newTestProduct(t, s.ID(), "9.99", 10)

	cmd, err := commands.NewAddCartItemCommand(cust.ID(), s.ID(), p.ID(), 1, nil)
	require.NoError(t, err)

	carts := new(MockCartRepository)
	customers := new(MockCustomerRepository)
	stores := new(MockStoreRepository)
	products := new(MockProductRepository)
	uow := new(MockCartUoW)
	uow.On("CartRepository").Return(carts)
	uow.On("CustomerRepository").Return(customers)
	uow.On("StoreRepository").Return(stores)
	uow.On("ProductRepository").Return(products)

	var created *cart.Cart
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		carts.On("GetByCustomer", ctx, cust.ID()).
			Return(nil, errs.NewObjectNotFoundError("cart", cust.ID())).Once(),
		customers.On("Get", ctx, cust.ID()).Return(cust, nil).Once(),
		stores.On("Get", ctx, s.ID()).Return(s, nil).Once(),
		carts.On("Add", ctx, mock.AnythingOfType("*cart.Cart")).
			Run(func(args mock.Arguments) { created = args.Get(1).(*cart.Cart) }).
			Return(nil).Once(),
		products.On("Get", ctx, p.ID()).Return(p, nil).Once(),
		carts.On("Update", ctx, mock.AnythingOfType("*cart.Cart")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCartUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddCartItemCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	require.NotNil(t, created)
	assert.Equal(t, cust.ID(), created.CustomerID())
	assert.Equal(t, s.Currency(), created.Currency())
	require.Len(t, created.Items(), 1)
	carts.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAddCartItemCommandHandler_Handle_RecoversMissingProfile(t *testing.T) {
	ctx := t.Context()
	s := newTestStore(t)
	customerID := kernel.NewUUID()
	p := newTestProduct(t, s.ID(), "9.99", 10)

	cmd, err := commands.NewAddCartItemCommand(customerID, s.ID(), p.ID(), 1, nil)
	require.NoError(t, err)

	carts := new(MockCartRepository)
	customers := new(MockCustomerRepository)
	stores := new(MockStoreRepository)
	products := new(MockProductRepository)
	uow := new(MockCartUoW)
	uow.On("CartRepository").Return(carts)
	uow.On("CustomerRepository").Return(customers)
	uow.On("StoreRepository").Return(stores)
	uow.On("ProductRepository").Return(products)

	var recovered *customer.Customer
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		carts.On("GetByCustomer", ctx, customerID).
			Return(nil, errs.NewObjectNotFoundError("cart", customerID)).Once(),
		customers.On("Get", ctx, customerID).
			Return(nil, errs.NewObjectNotFoundError("customer", customerID)).Once(),
		customers.On("Add", ctx, mock.AnythingOfType("*customer.Customer")).
			Run(func(args mock.Arguments) { recovered = args.Get(1).(*customer.Customer) }).
			Return(nil).Once(),
		stores.On("Get", ctx, s.ID()).Return(s, nil).Once(),
		carts.On("Add", ctx, mock.AnythingOfType("*cart.Cart")).Return(nil).Once(),
		products.On("Get", ctx, p.ID()).Return(p, nil).Once(),
		carts.On("Update", ctx, mock.AnythingOfType("*cart.Cart")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCartUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddCartItemCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	require.NotNil(t, recovered)
	assert.Equal(t, customerID, recovered.ID())
	assert.Equal(t, customer.Visitor, recovered.Recognition())
	customers.AssertExpectations(t)
}

func TestAddCartItemCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.AddCartItemCommand{} // not constructed properly
	factory := new(MockCartUoWFactory)
	h := commands.NewAddCartItemCommandHandler(factory)
	require.Error(t, h.Handle(ctx, cmd))
}

func TestAddCartItemCommandHandler_Handle_ProductLookupError(t *testing.T) {
	ctx := t.Context()
	s := newTestStore(t)
	cust := newTestCustomer(t, s.ID())
	existing := newTestCart(t, cust.ID(), s)
	productID := kernel.NewUUID()

	cmd, err := commands.NewAddCartItemCommand(cust.ID(), s.ID(), productID, 1, nil)
	require.NoError(t, err)

	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	uow := new(MockCartUoW)
	uow.On("CartRepository").Return(carts)
	uow.On("ProductRepository").Return(products)
	lookupErr := errors.New("connection reset")
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		carts.On("GetByCustomer", ctx, cust.ID()).Return(existing, nil).Once(),
		products.On("Get", ctx, productID).Return(nil, lookupErr).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCartUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddCartItemCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, lookupErr)
	uow.AssertExpectations(t)
	uow.AssertNotCalled(t, "Commit", ctx)
}
