package statement

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicer/internal/invoice"
)

type Service struct {
	repo invoice.Repository
}

func NewService(repo invoice.Repository) *Service {
	return &Service{repo: repo}
}

// Request selects the customer and inclusive ISO-8601 date range of a statement.
type Request struct {
	CustomerID         uuid.UUID
	StartDate          string
	EndDate            string
	PaidAmountOverride *float64
}

// Generate loads the customer's non-void invoices in the range, oldest first, and
// groups them by date. An unknown customer yields invoice.ErrNotFound.
func (s *Service) Generate(ctx context.Context, req Request) (*Statement, error) {
	customer, err := s.repo.GetCustomer(ctx, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("getting customer: %w", err)
	}

	invoices, err := s.repo.ListInvoices(ctx, invoice.ListFilter{
		CustomerID: &req.CustomerID,
		StartDate:  &req.StartDate,
		EndDate:    &req.EndDate,
	})
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}

	return &Statement{
		Customer:           *customer,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		PaidAmountOverride: req.PaidAmountOverride,
		InvoicesByDate:     GroupByDate(invoices),
	}, nil
}
