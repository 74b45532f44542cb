package models

import "github.com/shopspring/decimal"

type Category struct {
	ID       uint       `gorm:"primaryKey;autoIncrement"          json:"id"`
	Name     string     `gorm:"size:80;not null"                  json:"name"`
	Products []*Product `gorm:"many2many:product_categories;"     json:"-"`
}

type Product struct {
	ID         uint            `gorm:"primaryKey;autoIncrement"      json:"id"`
	Name       string          `gorm:"size:120;not null;index"       json:"name"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null"   json:"price"`
	Categories []*Category     `gorm:"many2many:product_categories;" json:"-"`
}

// LinkCategoryProduct records the membership on both ends. Calling it twice is a no-op.
func LinkCategoryProduct(c *Category, p *Product) {
	if !hasProduct(c.Products, p) {
		c.Products = append(c.Products, p)
	}
	if !hasCategory(p.Categories, c) {
		p.Categories = append(p.Categories, c)
	}
}

// UnlinkCategoryProduct drops the membership on both ends. The arguments may be
// copies of the linked instances; matching is by ID, and the linked instances
// are updated too.
func UnlinkCategoryProduct(c *Category, p *Product) {
	for _, x := range c.Products {
		if x != p && sameProduct(x, p) {
			x.Categories = removeCategory(x.Categories, c)
		}
	}
	for _, x := range p.Categories {
		if x != c && sameCategory(x, c) {
			x.Products = removeProduct(x.Products, p)
		}
	}
	c.Products = removeProduct(c.Products, p)
	p.Categories = removeCategory(p.Categories, c)
}

func sameProduct(a, b *Product) bool {
	return a == b || (a.ID != 0 && a.ID == b.ID)
}

func sameCategory(a, b *Category) bool {
	return a == b || (a.ID != 0 && a.ID == b.ID)
}

func hasProduct(list []*Product, p *Product) bool {
	for _, x := range list {
		if sameProduct(x, p) {
			return true
		}
	}
	return false
}

func hasCategory(list []*Category, c *Category) bool {
	for _, x := range list {
		if sameCategory(x, c) {
			return true
		}
	}
	return false
}

func removeProduct(list []*Product, p *Product) []*Product {
	out := list[:0]
	for _, x := range list {
		if !sameProduct(x, p) {
			out = append(out, x)
		}
	}
	return out
}

func removeCategory(list []*Category, c *Category) []*Category {
	out := list[:0]
	for _, x := range list {
		if !sameCategory(x, c) {
			out = append(out, x)
		}
	}
	return out
}
