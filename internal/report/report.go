package report

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicer/internal/accounting"
	"github.com/MrJamesThe3rd/invoicer/internal/invoice"
)

// ActivityReport summarizes sales over a date range.
type ActivityReport struct {
	StartDate        string
	EndDate          string
	Subtotal         float64
	SalesTaxAmount   float64
	Expense          float64
	ProductInsights  []ProductInsight
	CustomerInsights []CustomerInsight
}

type ProductInsight struct {
	ProductID      uuid.UUID
	ProductName    string
	CategoryName   string
	Quantity       float64
	Subtotal       float64
	SalesTaxAmount float64
}

type ProductOrdered struct {
	ProductName string
	Quantity    float64
}

type CustomerInsight struct {
	CustomerID      uuid.UUID
	CustomerName    string
	CustomerImage   *string
	ProductsOrdered []ProductOrdered
	Subtotal        float64
	SalesTaxAmount  float64
}

// Build derives the activity report of the given invoices. Void invoices are skipped.
// Insights are ordered by subtotal, largest first; ties keep first-appearance order.
func Build(start, end string, invoices []invoice.Invoice) ActivityReport {
	var totals accounting.Totals

	products := newTally[uuid.UUID, *productTally]()
	customers := newTally[uuid.UUID, *customerTally]()

	for _, inv := range invoices {
		if inv.IsVoid {
			continue
		}

		c := customers.get(inv.Customer.ID, func() *customerTally {
			return &customerTally{customer: inv.Customer, ordered: newTally[uuid.UUID, *ProductOrdered]()}
		})

		for _, li := range inv.LineItems {
			totals.AddLine(li)

			p := products.get(li.Product.ID, func() *productTally {
				return &productTally{product: li.Product}
			})
			p.quantity += li.Quantity
			p.totals.AddLine(li)

			o := c.ordered.get(li.Product.ID, func() *ProductOrdered {
				return &ProductOrdered{ProductName: li.Product.Name}
			})
			o.Quantity += li.Quantity
			c.totals.AddLine(li)
		}
	}

	sum := totals.Summary()

	r := ActivityReport{
		StartDate:        start,
		EndDate:          end,
		Subtotal:         sum.Subtotal,
		SalesTaxAmount:   sum.SalesTaxAmount,
		ProductInsights:  make([]ProductInsight, 0, len(products.order)),
		CustomerInsights: make([]CustomerInsight, 0, len(customers.order)),
	}

	for _, p := range products.values() {
		r.ProductInsights = append(r.ProductInsights, p.insight())
	}

	for _, c := range customers.values() {
		r.CustomerInsights = append(r.CustomerInsights, c.insight())
	}

	slices.SortStableFunc(r.ProductInsights, func(a, b ProductInsight) int {
		return cmp.Compare(b.Subtotal, a.Subtotal)
	})
	slices.SortStableFunc(r.CustomerInsights, func(a, b CustomerInsight) int {
		return cmp.Compare(b.Subtotal, a.Subtotal)
	})

	return r
}

// tally keeps values keyed by K in first-insertion order.
type tally[K comparable, V any] struct {
	order []K
	byKey map[K]V
}

func newTally[K comparable, V any]() *tally[K, V] {
	return &tally[K, V]{byKey: make(map[K]V)}
}

func (t *tally[K, V]) get(k K, init func() V) V {
	v, ok := t.byKey[k]
	if !ok {
		v = init()
		t.byKey[k] = v
		t.order = append(t.order, k)
	}

	return v
}

func (t *tally[K, V]) values() []V {
	out := make([]V, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, t.byKey[k])
	}

	return out
}

type productTally struct {
	product  invoice.ProductRef
	quantity float64
	totals   accounting.Totals
}

func (p *productTally) insight() ProductInsight {
	sum := p.totals.Summary()

	var category string
	if p.product.Category != nil {
		category = p.product.Category.Name
	}

	return ProductInsight{
		ProductID:      p.product.ID,
		ProductName:    p.product.Name,
		CategoryName:   category,
		Quantity:       p.quantity,
		Subtotal:       sum.Subtotal,
		SalesTaxAmount: sum.SalesTaxAmount,
	}
}

type customerTally struct {
	customer invoice.Customer
	ordered  *tally[uuid.UUID, *ProductOrdered]
	totals   accounting.Totals
}

func (c *customerTally) insight() CustomerInsight {
	sum := c.totals.Summary()

	ordered := make([]ProductOrdered, 0, len(c.ordered.order))
	for _, o := range c.ordered.values() {
		ordered = append(ordered, *o)
	}

	return CustomerInsight{
		CustomerID:      c.customer.ID,
		CustomerName:    c.customer.Name,
		CustomerImage:   c.customer.ImageURL,
		ProductsOrdered: ordered,
		Subtotal:        sum.Subtotal,
		SalesTaxAmount:  sum.SalesTaxAmount,
	}
}

type Service struct {
	repo invoice.Repository
}

func NewService(repo invoice.Repository) *Service {
	return &Service{repo: repo}
}

// Generate builds the activity report for the inclusive ISO-8601 date range.
func (s *Service) Generate(ctx context.Context, start, end string) (*ActivityReport, error) {
	invoices, err := s.repo.ListInvoices(ctx, invoice.ListFilter{
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}

	r := Build(start, end, invoices)

	return &r, nil
}
