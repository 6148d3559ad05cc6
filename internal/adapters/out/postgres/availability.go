package postgres

import (
	"context"
	"time"

	"shop/internal/core/domain/model/cart"
	"shop/internal/core/domain/model/product"

	"gorm.io/gorm"
)

// CartAwareAvailabilityProvider reports sellable quantity as live stock minus
// what other carts currently hold of the same product. A unit sitting in
// another customer's cart is not promised, but pricing should not invite two
// customers to race for it either.
type CartAwareAvailabilityProvider struct {
	db *gorm.DB
}

// NewCartAwareAvailabilityProvider creates a provider reading reservations
// from the cart line table.
func NewCartAwareAvailabilityProvider(db *gorm.DB) *CartAwareAvailabilityProvider {
	return &CartAwareAvailabilityProvider{db: db}
}

// Availability returns the product's availability reduced by the quantity
// held in other carts' lines.
func (p *CartAwareAvailabilityProvider) Availability(
	ctx context.Context,
	item *cart.Item,
) (product.Availability, error) {
	availability := item.Product().GetAvailability(time.Now())
	if availability.Quantity <= 0 {
		return availability, nil
	}

	var reserved int64
	err := p.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(quantity), 0)
		FROM cart_items
		WHERE product_id = ? AND id <> ?
	`, item.Product().ID().Bytes(), item.ID().Bytes()).Scan(&reserved).Error
	if err != nil {
		return product.Availability{}, err
	}

	availability.Quantity -= int(reserved)
	if availability.Quantity < 0 {
		availability.Quantity = 0
	}
	return availability, nil
}
