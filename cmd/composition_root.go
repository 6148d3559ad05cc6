package cmd

import (
	"log/slog"

	"shop/internal/adapters/out/notification"
	"shop/internal/adapters/out/postgres"
	"shop/internal/core/application/usecases/commands"
	"shop/internal/core/application/usecases/queries"
	"shop/internal/core/domain/model/order"
	"shop/internal/core/domain/model/store"
	"shop/internal/core/domain/services/pricing"
	"shop/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters, domain services and use case handlers. It is
// built once at startup; modifier registration and observer subscription run
// here and are fatal on failure.
type CompositionRoot struct {
	gormDB       *gorm.DB
	uowFactory   postgres.GormUnitOfWorkFactory
	pool         *pricing.Pool
	availability pricing.AvailabilityProvider
	logger       *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	registry := pricing.NewRegistry()
	mustRegister(registry, pricing.DefaultModifierID, func(_ *store.Store) (pricing.Modifier, error) {
		return pricing.NewDefaultModifier(), nil
	})
	mustRegister(registry, pricing.IncludedTaxModifierID, func(s *store.Store) (pricing.Modifier, error) {
		return pricing.NewIncludedTaxModifier(s), nil
	})
	mustRegister(registry, pricing.ExcludedTaxModifierID, func(s *store.Store) (pricing.Modifier, error) {
		return pricing.NewExcludedTaxModifier(s), nil
	})
	mustRegister(registry, pricing.SelfCollectionModifierID, func(s *store.Store) (pricing.Modifier, error) {
		return pricing.NewSelfCollectionModifier(s), nil
	})
	mustRegister(registry, "pay-in-advance", func(s *store.Store) (pricing.Modifier, error) {
		return pricing.NewPaymentModifier(pricing.NewPayInAdvanceProvider(s)), nil
	})

	dispatcher := notification.NewSlogDispatcher(logger)
	order.StatusMachine.SubscribePost(notification.NewOrderTransitionObserver(dispatcher))

	return CompositionRoot{
		gormDB:       gormDB,
		uowFactory:   *postgres.NewGormUnitOfWorkFactory(gormDB),
		pool:         pricing.NewPool(registry),
		availability: postgres.NewCartAwareAvailabilityProvider(gormDB),
		logger:       logger,
	}
}

func mustRegister(registry *pricing.Registry, name string, factory pricing.Factory) {
	if err := registry.Register(name, factory); err != nil {
		panic(err)
	}
}

func (c *CompositionRoot) CreateAddCartItemCommandHandler() commands.AddCartItemCommandHandler {
	var f commands.CartUoWFactory = FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddCartItemCommandHandler(f)
}

func (c *CompositionRoot) CreateRemoveCartItemCommandHandler() commands.RemoveCartItemCommandHandler {
	var f commands.CartUoWFactory = FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRemoveCartItemCommandHandler(f)
}

func (c *CompositionRoot) CreateMergeCartsCommandHandler() commands.MergeCartsCommandHandler {
	var f commands.CartUoWFactory = FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMergeCartsCommandHandler(f)
}

func (c *CompositionRoot) CreateCheckoutCommandHandler() commands.CheckoutCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCheckoutCommandHandler(f, c.pool, c.availability)
}

func (c *CompositionRoot) CreateAcknowledgePaymentCommandHandler() commands.AcknowledgePaymentCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcknowledgePaymentCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateStorePricingCommandHandler() commands.UpdateStorePricingCommandHandler {
	var f commands.StoreUoWFactory = FuncStoreUoWFactory(func() commands.StoreUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateStorePricingCommandHandler(f, c.pool)
}

func (c *CompositionRoot) CreatePurgeStaleCartsCommandHandler() commands.PurgeStaleCartsCommandHandler {
	var f commands.CartUoWFactory = FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPurgeStaleCartsCommandHandler(f)
}

func (c *CompositionRoot) CreateGetCartQueryHandler() queries.GetCartQueryHandler {
	var f queries.CartUoWFactory = FuncQueryCartUoWFactory(func() queries.CartUoW {
		return c.uowFactory.Create()
	})
	return queries.NewGetCartQueryHandler(f, c.pool, c.availability)
}

func (c *CompositionRoot) CreateGetOrderByNumberQueryHandler() queries.GetOrderByNumberQueryHandler {
	return queries.NewGetOrderByNumberQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager(config Config) *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreatePurgeStaleCartsCommandHandler(),
		config.CartPurgeSchedule,
		config.CartMaxAge,
		c.logger,
	)
}

type FuncCartUoWFactory func() commands.CartUoW

func (f FuncCartUoWFactory) Create() commands.CartUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncStoreUoWFactory func() commands.StoreUoW

func (f FuncStoreUoWFactory) Create() commands.StoreUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncQueryCartUoWFactory func() queries.CartUoW

func (f FuncQueryCartUoWFactory) Create() queries.CartUoW {
	return f()
}
