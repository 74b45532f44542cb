package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/mail"
	"github.com/Skotchmaster/storefront/internal/metrics"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/util"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/tokens"
)

type OrderService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
	Mail   mail.Sender
	Now    func() time.Time
}

// FromOrderDTO builds an unsaved order. Prices and payment status are set by Insert.
func FromOrderDTO(dto transport.CreateOrderRequest) *models.Order {
	order := &models.Order{
		ClientID:          dto.ClientID,
		DeliveryAddressID: dto.DeliveryAddressID,
	}
	switch models.PaymentKind(dto.Payment.Kind) {
	case models.PaymentCard:
		order.Payment = models.NewCardPayment(models.PaymentWaiting, dto.Payment.Installments)
	case models.PaymentBoleto:
		order.Payment = &models.Payment{Kind: models.PaymentBoleto}
	}
	for _, it := range dto.Items {
		order.Items = append(order.Items, models.OrderItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return order
}

func (s *OrderService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *OrderService) Insert(ctx context.Context, p *tokens.Principal, order *models.Order) (*models.Order, error) {
	log := logging.FromContext(ctx).With("svc", "order")

	if !p.CanAccessClient(order.ClientID) {
		return nil, ErrAccessDenied
	}
	cli, err := s.Repo.GetClient(ctx, order.ClientID)
	if err != nil {
		return nil, mapRepoErr(err, "Client", order.ClientID)
	}

	verr := &ValidationError{}
	if !cli.OwnsAddress(order.DeliveryAddressID) {
		verr.Add("delivery_address_id", "address does not belong to the client")
	}
	if order.Payment == nil {
		verr.Add("payment", "must be card or boleto")
	}
	items := mergeItems(order.Items)
	if len(items) == 0 {
		verr.Add("items", "must not be empty")
	}
	for _, it := range items {
		if it.Quantity <= 0 {
			verr.Add("items", "quantity must be greater than 0")
			break
		}
	}
	if !verr.Empty() {
		return nil, verr
	}

	ids := make([]uint, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	products, err := s.Repo.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range items {
		prod, ok := products[items[i].ProductID]
		if !ok {
			return nil, notFound("Product", items[i].ProductID)
		}
		items[i].Discount = decimal.Zero
		items[i].Price = prod.Price
	}

	order.ID = 0
	order.Instant = s.now().UTC().Truncate(time.Second)
	order.Client = nil
	order.DeliveryAddress = nil
	order.Items = items
	order.Payment.Status = models.PaymentWaiting
	if order.Payment.Kind == models.PaymentBoleto {
		due := order.Instant.AddDate(0, 0, models.BoletoDueDays)
		order.Payment.DueDate = &due
		order.Payment.PaidAt = nil
		order.Payment.Installments = nil
	} else if order.Payment.Installments == nil || *order.Payment.Installments < 1 {
		one := 1
		order.Payment.Installments = &one
	}

	if _, err := s.Repo.CreateOrder(ctx, order); err != nil {
		return nil, mapRepoErr(err, "Order", order.ClientID)
	}
	saved, err := s.Repo.GetOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	log.Info("order_created", "order_id", saved.ID, "client_id", saved.ClientID, "total", saved.Total().StringFixed(2))
	metrics.RecordOrderCreated(string(saved.Payment.Kind))

	publish(ctx, s.Events, events.TopicOrders, saved.ID, orderCreated(saved))
	if s.Mail != nil {
		if err := s.Mail.Send(ctx, mail.OrderConfirmation(saved)); err != nil {
			log.Error("order_confirmation_mail_error", "order_id", saved.ID, "error", err)
			recordFailure("mail")
		}
	}
	return saved, nil
}

// mergeItems folds repeated products into one line.
func mergeItems(in []models.OrderItem) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(in))
	pos := make(map[uint]int, len(in))
	for _, it := range in {
		if i, ok := pos[it.ProductID]; ok {
			out[i].Quantity += it.Quantity
			continue
		}
		pos[it.ProductID] = len(out)
		out = append(out, models.OrderItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return out
}

func orderCreated(o *models.Order) events.OrderCreated {
	ev := events.OrderCreated{
		Type:        "order_created",
		OrderID:     o.ID,
		ClientID:    o.ClientID,
		PaymentKind: string(o.Payment.Kind),
		Total:       o.Total().StringFixed(2),
		Instant:     o.Instant,
	}
	for _, it := range o.Items {
		ev.Items = append(ev.Items, events.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price.StringFixed(2),
			Discount:  it.Discount.StringFixed(2),
		})
	}
	return ev
}

func (s *OrderService) FindByID(ctx context.Context, p *tokens.Principal, id uint) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err, "Order", id)
	}
	if !p.CanAccessClient(order.ClientID) {
		return nil, ErrAccessDenied
	}
	return order, nil
}

// FindPage lists the caller's orders, or every order for an admin.
func (s *OrderService) FindPage(ctx context.Context, p *tokens.Principal, req util.PageRequest) (util.Page[models.Order], error) {
	if p == nil {
		return util.Page[models.Order]{}, ErrAccessDenied
	}
	req = req.WithDefaults("instant", "DESC")
	var clientID *uint
	if !p.IsAdmin() {
		id := p.ClientID
		clientID = &id
	}
	page, err := s.Repo.PageOrders(ctx, clientID, req)
	return page, mapRepoErr(err, "Order", "-")
}
