package accounting

import (
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicer/internal/invoice"
)

// FindProduct returns the product with the given id. A nil id never matches.
func FindProduct(products []invoice.Product, id *uuid.UUID) (invoice.Product, bool) {
	return find(products, id, func(p invoice.Product) uuid.UUID { return p.ID })
}

// FindSalesTax returns the tax with the given id. A nil id never matches.
func FindSalesTax(taxes []invoice.SalesTax, id *uuid.UUID) (invoice.SalesTax, bool) {
	return find(taxes, id, func(t invoice.SalesTax) uuid.UUID { return t.ID })
}

// FindCustomer returns the customer with the given id. A nil id never matches.
func FindCustomer(customers []invoice.Customer, id *uuid.UUID) (invoice.Customer, bool) {
	return find(customers, id, func(c invoice.Customer) uuid.UUID { return c.ID })
}

// FindPricing returns the pricing entry for a product. A nil id never matches.
func FindPricing(pricing []invoice.ProductPricing, productID *uuid.UUID) (invoice.ProductPricing, bool) {
	return find(pricing, productID, func(p invoice.ProductPricing) uuid.UUID { return p.ProductID })
}

func find[T any](items []T, id *uuid.UUID, key func(T) uuid.UUID) (T, bool) {
	var zero T

	if id == nil {
		return zero, false
	}

	for _, item := range items {
		if key(item) == *id {
			return item, true
		}
	}

	return zero, false
}

// MergedPricing lists the price and tax each product is sold at to customer.
// The customer's special pricing comes first, followed by the default pricing of
// every product it does not override, in product order. A nil customer gets the
// defaults only.
func MergedPricing(products []invoice.Product, customer *invoice.Customer) []invoice.ProductPricing {
	var special []invoice.ProductPricing
	if customer != nil {
		special = customer.ProductPricing
	}

	overridden := make(map[uuid.UUID]bool, len(special))
	for _, p := range special {
		overridden[p.ProductID] = true
	}

	merged := make([]invoice.ProductPricing, 0, len(special)+len(products))
	merged = append(merged, special...)

	for _, p := range products {
		if overridden[p.ID] {
			continue
		}

		merged = append(merged, defaultPricing(p))
	}

	return merged
}

func defaultPricing(p invoice.Product) invoice.ProductPricing {
	pricing := invoice.ProductPricing{ProductID: p.ID}

	if p.UnitPrice != nil {
		pricing.UnitPrice = *p.UnitPrice
	}

	if p.SalesTax != nil {
		pricing.SalesTaxID = new(p.SalesTax.ID)
	}

	return pricing
}
