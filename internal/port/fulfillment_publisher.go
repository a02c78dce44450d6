package port

import (
	"context"

	"github.com/acruxa/storefront/internal/core/domain"
)

// FulfillmentPublisher hands placed orders to the warehouse. Delivery is best
// effort; the order is already committed when this runs.
type FulfillmentPublisher interface {
	PublishOrderPlaced(ctx context.Context, order domain.Order) error
}
