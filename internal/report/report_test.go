package report_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/invoicer/internal/invoice"
	"github.com/MrJamesThe3rd/invoicer/internal/report"
)

var (
	vat     = &invoice.SalesTax{ID: uuid.New(), Rate: 0.05}
	bakery  = &invoice.ProductCategory{ID: uuid.New(), Name: "Bakery"}
	bread   = invoice.ProductRef{ID: uuid.New(), Name: "Bread", Category: bakery}
	milk    = invoice.ProductRef{ID: uuid.New(), Name: "Milk"}
	acme    = invoice.Customer{ID: uuid.New(), Name: "Acme", ImageURL: new("https://img/acme.png")}
	blueCo  = invoice.Customer{ID: uuid.New(), Name: "Blue Co"}
	january = []invoice.Invoice{
		{
			Number:   "INV-1",
			Date:     "2025-01-02",
			Customer: acme,
			LineItems: []invoice.LineItem{
				{Product: bread, Quantity: 2, UnitPrice: 2, SalesTax: vat},
				{Product: milk, Quantity: 1, UnitPrice: 4},
			},
		},
		{
			Number:   "INV-2",
			Date:     "2025-01-03",
			Customer: blueCo,
			LineItems: []invoice.LineItem{
				{Product: milk, Quantity: 5, UnitPrice: 4},
			},
		},
		{
			Number:   "INV-3",
			Date:     "2025-01-04",
			Customer: acme,
			IsVoid:   true,
			LineItems: []invoice.LineItem{
				{Product: bread, Quantity: 100, UnitPrice: 2, SalesTax: vat},
			},
		},
		{
			Number:   "INV-4",
			Date:     "2025-01-05",
			Customer: acme,
			LineItems: []invoice.LineItem{
				{Product: bread, Quantity: 1, UnitPrice: 2, SalesTax: vat},
			},
		},
	}
)

func TestBuild(t *testing.T) {
	got := report.Build("2025-01-01", "2025-01-31", january)

	assert.Equal(t, "2025-01-01", got.StartDate)
	assert.Equal(t, "2025-01-31", got.EndDate)
	assert.Equal(t, 30.0, got.Subtotal)
	assert.Equal(t, 0.3, got.SalesTaxAmount)
	assert.Zero(t, got.Expense)

	require.Len(t, got.ProductInsights, 2)
	assert.Equal(t, report.ProductInsight{
		ProductID: milk.ID, ProductName: "Milk", Quantity: 6, Subtotal: 24,
	}, got.ProductInsights[0])
	assert.Equal(t, report.ProductInsight{
		ProductID: bread.ID, ProductName: "Bread", CategoryName: "Bakery", Quantity: 3, Subtotal: 6, SalesTaxAmount: 0.3,
	}, got.ProductInsights[1])

	require.Len(t, got.CustomerInsights, 2)
	assert.Equal(t, "Blue Co", got.CustomerInsights[0].CustomerName)
	assert.Equal(t, 20.0, got.CustomerInsights[0].Subtotal)

	a := got.CustomerInsights[1]
	assert.Equal(t, "Acme", a.CustomerName)
	assert.Equal(t, acme.ImageURL, a.CustomerImage)
	assert.Equal(t, 10.0, a.Subtotal)
	assert.Equal(t, 0.3, a.SalesTaxAmount)
	assert.Equal(t, []report.ProductOrdered{
		{ProductName: "Bread", Quantity: 3},
		{ProductName: "Milk", Quantity: 1},
	}, a.ProductsOrdered)
}

func TestBuild_TiesKeepOrder(t *testing.T) {
	invoices := []invoice.Invoice{
		{Customer: acme, LineItems: []invoice.LineItem{{Product: bread, Quantity: 1, UnitPrice: 2}}},
		{Customer: blueCo, LineItems: []invoice.LineItem{{Product: milk, Quantity: 1, UnitPrice: 2}}},
	}

	got := report.Build("", "", invoices)

	assert.Equal(t, "Bread", got.ProductInsights[0].ProductName)
	assert.Equal(t, "Milk", got.ProductInsights[1].ProductName)
	assert.Equal(t, "Acme", got.CustomerInsights[0].CustomerName)
}

func TestBuild_Empty(t *testing.T) {
	got := report.Build("2025-01-01", "2025-01-31", nil)

	assert.Zero(t, got.Subtotal)
	assert.NotNil(t, got.ProductInsights)
	assert.Empty(t, got.ProductInsights)
	assert.Empty(t, got.CustomerInsights)
}

func TestService_Generate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	svc := report.NewService(repo)

	repo.EXPECT().
		ListInvoices(gomock.Any(), invoice.ListFilter{StartDate: new("2025-01-01"), EndDate: new("2025-01-31")}).
		Return(january, nil)

	got, err := svc.Generate(context.Background(), "2025-01-01", "2025-01-31")
	require.NoError(t, err)
	assert.Equal(t, 30.0, got.Subtotal)

	repo.EXPECT().ListInvoices(gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))

	_, err = svc.Generate(context.Background(), "2025-01-01", "2025-01-31")
	assert.EqualError(t, err, "listing invoices: db error")
}
