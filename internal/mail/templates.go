package mail

import (
	"fmt"
	"strings"

	"github.com/Skotchmaster/storefront/internal/models"
)

const timeLayout = "02/01/2006 15:04:05"

func OrderConfirmation(order *models.Order) Message {
	var b strings.Builder
	name, to := "", ""
	if order.Client != nil {
		name, to = order.Client.Name, order.Client.Email
	}

	fmt.Fprintf(&b, "Order number: %d\n", order.ID)
	fmt.Fprintf(&b, "Instant: %s\n", order.Instant.Format(timeLayout))
	fmt.Fprintf(&b, "Client: %s\n", name)
	if order.Payment != nil {
		fmt.Fprintf(&b, "Payment status: %s\n", order.Payment.Status)
	}
	b.WriteString("Details:\n")
	for _, it := range order.Items {
		product := fmt.Sprintf("product %d", it.ProductID)
		if it.Product != nil {
			product = it.Product.Name
		}
		fmt.Fprintf(&b, "%s, Qty: %d, Unit price: %s, Subtotal: %s\n",
			product, it.Quantity, it.Price.StringFixed(2), it.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(&b, "Total: %s\n", order.Total().StringFixed(2))

	return Message{
		To:      to,
		Subject: fmt.Sprintf("Order confirmed! Code: %d", order.ID),
		Body:    b.String(),
	}
}

func NewPassword(client *models.Client, password string) Message {
	return Message{
		To:      client.Email,
		Subject: "New password request",
		Body:    "New password: " + password,
	}
}
