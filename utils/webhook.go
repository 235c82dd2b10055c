package utils

import (
	"coursestore/config"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// OrderStatusEvent mirrors one audit row for external consumers.
type OrderStatusEvent struct {
	OrderID     uint      `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	ActorID     uint      `json:"actor_id"`
	FromStatus  string    `json:"from_status"`
	ToStatus    string    `json:"to_status"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// NotifyOrderStatusChange posts an order transition to the configured
// back-office webhook. Fire and forget; delivery is best effort and
// never blocks or fails the transition itself.
func NotifyOrderStatusChange(event OrderStatusEvent) {
	if config.AppConfig.WebhookURL == "" {
		return
	}

	go func() {
		client := resty.New().SetTimeout(10 * time.Second)

		resp, err := client.R().
			SetHeader("Content-Type", "application/json").
			SetBody(event).
			Post(config.AppConfig.WebhookURL)
		if err != nil {
			log.Printf("[WEBHOOK] Error posting order status event for order %d: %v", event.OrderID, err)
			return
		}
		if resp.StatusCode() >= 400 {
			log.Printf("[WEBHOOK] Order status event for order %d rejected with code %d", event.OrderID, resp.StatusCode())
		}
	}()
}
