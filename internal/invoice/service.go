package invoice

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	ListInvoices(ctx context.Context, filter ListFilter) ([]Invoice, error)

	GetCustomer(ctx context.Context, id uuid.UUID) (*Customer, error)
	ListCustomers(ctx context.Context, includeArchived bool) ([]Customer, error)

	ListProducts(ctx context.Context, includeArchived bool) ([]Product, error)
	ListSalesTaxes(ctx context.Context) ([]SalesTax, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListFilter narrows an invoice listing. Dates are inclusive ISO-8601 calendar dates.
// Void invoices are excluded unless IncludeVoid is set.
type ListFilter struct {
	CustomerID  *uuid.UUID
	StartDate   *string
	EndDate     *string
	IncludeVoid bool
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Invoice, error) {
	return s.repo.ListInvoices(ctx, filter)
}

func (s *Service) Customer(ctx context.Context, id uuid.UUID) (*Customer, error) {
	return s.repo.GetCustomer(ctx, id)
}

// Customers lists active customers, or all of them when includeArchived is set.
func (s *Service) Customers(ctx context.Context, includeArchived bool) ([]Customer, error) {
	return s.repo.ListCustomers(ctx, includeArchived)
}

// Products lists products ordered by category position and name.
func (s *Service) Products(ctx context.Context, includeArchived bool) ([]Product, error) {
	return s.repo.ListProducts(ctx, includeArchived)
}

// SalesTaxes lists every sales tax, archived ones included, so historical lines still resolve.
func (s *Service) SalesTaxes(ctx context.Context) ([]SalesTax, error) {
	return s.repo.ListSalesTaxes(ctx)
}
