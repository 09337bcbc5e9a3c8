package invoice

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus is the collection state of an invoice as recorded by the store.
type PaymentStatus string

const (
	PaymentStatusUnpaid        PaymentStatus = "unpaid"
	PaymentStatusPartiallyPaid PaymentStatus = "partially_paid"
	PaymentStatusPaid          PaymentStatus = "paid"
	PaymentStatusOverpaid      PaymentStatus = "overpaid"
)

// SalesTax is a tax rate that can be applied to a line item.
type SalesTax struct {
	ID            uuid.UUID
	Name          string
	Abbreviation  string
	Rate          float64 // Fraction, e.g. 0.05 for 5%
	IsRecoverable bool
	IsArchived    bool
}

// ProductCategory groups products for reporting.
type ProductCategory struct {
	ID       uuid.UUID
	Name     string
	Position int
}

// ProductInventory tracks stock for a single product.
type ProductInventory struct {
	ProductID                uuid.UUID
	Stock                    float64
	LowStockThreshold        float64
	AllowSalesWhenOutOfStock bool
}

// IsLowStock reports whether stock has reached the configured threshold.
func (pi ProductInventory) IsLowStock() bool {
	return pi.Stock <= pi.LowStockThreshold
}

// Product is a sellable item with an optional default price and tax.
type Product struct {
	ID         uuid.UUID
	Name       string
	UnitPrice  *float64
	SalesTax   *SalesTax
	Category   *ProductCategory
	Inventory  *ProductInventory
	IsArchived bool
}

// ProductRef is the subset of a product carried on a line item.
type ProductRef struct {
	ID         uuid.UUID
	Name       string
	Category   *ProductCategory
	IsArchived bool
}

// ProductPricing is a customer-specific price override for a product.
type ProductPricing struct {
	ProductID  uuid.UUID
	UnitPrice  float64
	SalesTaxID *uuid.UUID
}

// Customer is the billed party of an invoice.
type Customer struct {
	ID                    uuid.UUID
	Name                  string
	TaxRegistrationNumber *string
	Email                 *string
	ImageURL              *string
	ProductPricing        []ProductPricing
	IsArchived            bool
}

// LineItem is one product/quantity/price/tax entry within an invoice.
// A nil SalesTax means the line carries no tax.
type LineItem struct {
	ID                 uuid.UUID
	Product            ProductRef
	Quantity           float64
	UnitPrice          float64
	SalesTax           *SalesTax
	DeliveryNoteNumber *string
	Description        *string
}

// Invoice is a billed document. Date is an ISO-8601 calendar date (YYYY-MM-DD)
// and is kept as the store returns it so grouping can compare it verbatim.
type Invoice struct {
	ID            uuid.UUID
	Number        string
	Date          string
	Customer      Customer
	LineItems     []LineItem
	Notes         *string
	PaidAmount    float64
	PaymentStatus PaymentStatus
	CreatedAt     time.Time
	IsVoid        bool
}
