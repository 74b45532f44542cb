package transport

import (
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/util"
)

func ToCategory(c models.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name}
}

func ToCategoryDetail(c *models.Category) CategoryDetailResponse {
	out := CategoryDetailResponse{ID: c.ID, Name: c.Name, Products: make([]ProductResponse, 0, len(c.Products))}
	for _, p := range c.Products {
		out.Products = append(out.Products, ToProduct(*p))
	}
	return out
}

func ToProduct(p models.Product) ProductResponse {
	return ProductResponse{ID: p.ID, Name: p.Name, Price: p.Price}
}

func ToProductDetail(p *models.Product) ProductDetailResponse {
	out := ProductDetailResponse{ID: p.ID, Name: p.Name, Price: p.Price, Categories: make([]CategoryResponse, 0, len(p.Categories))}
	for _, c := range p.Categories {
		out.Categories = append(out.Categories, ToCategory(*c))
	}
	return out
}

func ToState(s models.State) StateResponse {
	return StateResponse{ID: s.ID, Name: s.Name}
}

func ToCity(c models.City) CityResponse {
	out := CityResponse{ID: c.ID, Name: c.Name}
	if c.State != nil {
		st := ToState(*c.State)
		out.State = &st
	}
	return out
}

func ToAddress(a models.Address) AddressResponse {
	out := AddressResponse{
		ID:         a.ID,
		Street:     a.Street,
		Number:     a.Number,
		Complement: a.Complement,
		District:   a.District,
		ZipCode:    a.ZipCode,
	}
	if a.City != nil {
		c := ToCity(*a.City)
		out.City = &c
	}
	return out
}

func ToClient(c models.Client) ClientResponse {
	out := ClientResponse{
		ID:     c.ID,
		Name:   c.Name,
		Email:  c.Email,
		TaxID:  c.TaxID,
		Type:   c.Type,
		Roles:  c.RoleList(),
		Phones: c.PhoneNumbers(),
	}
	for _, a := range c.Addresses {
		out.Addresses = append(out.Addresses, ToAddress(a))
	}
	return out
}

func ToOrder(o models.Order) OrderResponse {
	out := OrderResponse{
		ID:      o.ID,
		Instant: o.Instant,
		Items:   make([]OrderItemResponse, 0, len(o.Items)),
		Total:   o.Total(),
	}
	if o.Client != nil {
		out.Client = &OrderClientResponse{ID: o.Client.ID, Name: o.Client.Name, Email: o.Client.Email}
	}
	if o.DeliveryAddress != nil {
		a := ToAddress(*o.DeliveryAddress)
		out.DeliveryAddress = &a
	}
	if p := o.Payment; p != nil {
		out.Payment = &PaymentResponse{
			Kind:         p.Kind,
			Status:       p.Status,
			Installments: p.Installments,
			DueDate:      p.DueDate,
			PaidAt:       p.PaidAt,
		}
	}
	for _, it := range o.Items {
		prod := ProductResponse{ID: it.ProductID}
		if it.Product != nil {
			prod = ToProduct(*it.Product)
		}
		out.Items = append(out.Items, OrderItemResponse{
			Product:  prod,
			Quantity: it.Quantity,
			Price:    it.Price,
			Discount: it.Discount,
			Subtotal: it.Subtotal(),
		})
	}
	return out
}

func ToPage[T, U any](p util.Page[T], f func(T) U) PageResponse[U] {
	mapped := util.MapPage(p, f)
	return PageResponse[U]{Data: mapped.Items, Meta: mapped.Meta()}
}

func ToList[T, U any](items []T, f func(T) U) []U {
	out := make([]U, 0, len(items))
	for _, it := range items {
		out = append(out, f(it))
	}
	return out
}
