package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/acruxa/storefront/internal/core/domain"
)

const publishTimeout = 5 * time.Second

type orderPlacedMessage struct {
	OrderID           string            `json:"order_id"`
	OrderNumber       string            `json:"order_number"`
	UserID            string            `json:"user_id"`
	Total             string            `json:"total"`
	Currency          string            `json:"currency"`
	ShippingAddressID string            `json:"shipping_address_id"`
	ShippingMethod    string            `json:"shipping_method"`
	PlacedAt          time.Time         `json:"placed_at"`
	Items             []orderPlacedItem `json:"items"`
}

type orderPlacedItem struct {
	ProductID  string `json:"product_id"`
	ProductSKU string `json:"product_sku"`
	Quantity   int    `json:"quantity"`
}

// Publisher sends placed orders to the fulfillment queue.
type Publisher struct {
	pool      *ChannelPool
	queueName string
}

func NewPublisher(pool *ChannelPool, queueName string) *Publisher {
	return &Publisher{
		pool:      pool,
		queueName: queueName,
	}
}

func (p *Publisher) PublishOrderPlaced(ctx context.Context, order domain.Order) error {
	ch, err := p.pool.GetChannel()
	if err != nil {
		return fmt.Errorf("failed to get channel from pool: %w", err)
	}
	defer p.pool.ReturnChannel(ch)

	msg := orderPlacedMessage{
		OrderID:           order.ID,
		OrderNumber:       order.OrderNumber,
		UserID:            order.UserID,
		Total:             order.Total.StringFixed(2),
		Currency:          order.Currency,
		ShippingAddressID: order.ShippingAddressID,
		ShippingMethod:    order.ShippingMethod,
		PlacedAt:          order.CreatedAt,
	}
	for _, item := range order.Items {
		msg.Items = append(msg.Items, orderPlacedItem{
			ProductID:  item.ProductID,
			ProductSKU: item.ProductSKU,
			Quantity:   item.Quantity,
		})
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal order message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = ch.PublishWithContext(ctx,
		"",          // exchange
		p.queueName, // routing key (queue name)
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("failed to publish order: %w", err)
	}

	log.Printf("Published order %s to fulfillment queue", order.OrderNumber)
	return nil
}
