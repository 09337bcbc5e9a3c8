package store_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/invoicer/internal/invoice"
	"github.com/MrJamesThe3rd/invoicer/internal/invoice/store"
)

var invoiceRowColumns = []string{
	"invoice_id", "invoice_number", "invoice_date", "notes", "paid_amount",
	"payment_status", "created_at", "is_void",
	"customer_id", "name", "tax_registration_number", "email", "image_url", "is_archived",
}

var lineItemRowColumns = []string{
	"invoice_id", "line_item_id", "quantity", "unit_price",
	"delivery_note_number", "description",
	"product_id", "name", "is_archived",
	"category_id", "name", "position",
	"sales_tax_id", "name", "abbreviation", "rate", "is_recoverable", "is_archived",
}

func newStore(t *testing.T) (*store.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	return store.New(db), mock
}

func TestStore_GetInvoice(t *testing.T) {
	s, mock := newStore(t)

	invoiceID := uuid.New()
	customerID := uuid.New()
	productID := uuid.New()
	taxID := uuid.New()
	createdAt := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM invoice i JOIN customer c ON c.customer_id = i.customer_id WHERE i.invoice_id = ").
		WithArgs(invoiceID.String()).
		WillReturnRows(sqlmock.NewRows(invoiceRowColumns).AddRow(
			invoiceID.String(), "INV-0001", "2025-01-05", nil, 10.5,
			"partially_paid", createdAt, false,
			customerID.String(), "Acme", "TRN-1", nil, "https://img/acme.png", false,
		))

	mock.ExpectQuery("FROM invoice_line_item li").
		WithArgs(invoiceID.String()).
		WillReturnRows(sqlmock.NewRows(lineItemRowColumns).AddRow(
			invoiceID.String(), uuid.New().String(), 2.0, 10.0,
			"DN-7", nil,
			productID.String(), "Bread", false,
			nil, nil, nil,
			taxID.String(), "Value Added Tax", "VAT", 0.05, true, false,
		))

	got, err := s.GetInvoice(context.Background(), invoiceID)
	require.NoError(t, err)

	assert.Equal(t, invoiceID, got.ID)
	assert.Equal(t, "2025-01-05", got.Date)
	assert.Nil(t, got.Notes)
	assert.Equal(t, invoice.PaymentStatusPartiallyPaid, got.PaymentStatus)
	assert.Equal(t, "Acme", got.Customer.Name)
	assert.Equal(t, new("TRN-1"), got.Customer.TaxRegistrationNumber)
	assert.Nil(t, got.Customer.Email)

	require.Len(t, got.LineItems, 1)

	li := got.LineItems[0]
	assert.Equal(t, productID, li.Product.ID)
	assert.Nil(t, li.Product.Category)
	assert.Equal(t, new("DN-7"), li.DeliveryNoteNumber)
	require.NotNil(t, li.SalesTax)
	assert.Equal(t, taxID, li.SalesTax.ID)
	assert.Equal(t, 0.05, li.SalesTax.Rate)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetInvoice_LineItemOrder(t *testing.T) {
	s, mock := newStore(t)

	invoiceID := uuid.New()

	mock.ExpectQuery("FROM invoice i").
		WillReturnRows(sqlmock.NewRows(invoiceRowColumns).AddRow(
			invoiceID.String(), "INV-0002", "2025-01-06", nil, 0.0,
			"unpaid", time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC), false,
			uuid.NewString(), "Acme", nil, nil, nil, false,
		))

	rows := sqlmock.NewRows(lineItemRowColumns)
	for _, name := range []string{"Milk", "Bread", "Eggs"} {
		rows.AddRow(
			invoiceID.String(), uuid.NewString(), 1.0, 1.0,
			nil, nil,
			uuid.NewString(), name, false,
			nil, nil, nil,
			nil, nil, nil, nil, nil, nil,
		)
	}

	mock.ExpectQuery(`FROM invoice_line_item li .* ORDER BY li\.invoice_id$`).
		WithArgs(invoiceID.String()).
		WillReturnRows(rows)

	got, err := s.GetInvoice(context.Background(), invoiceID)
	require.NoError(t, err)

	products := make([]string, len(got.LineItems))
	for i, li := range got.LineItems {
		products[i] = li.Product.Name
	}

	assert.Equal(t, []string{"Milk", "Bread", "Eggs"}, products)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetInvoice_NotFound(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery("FROM invoice i").WillReturnError(sql.ErrNoRows)

	_, err := s.GetInvoice(context.Background(), uuid.New())
	assert.ErrorIs(t, err, invoice.ErrNotFound)
}

func TestStore_ListInvoices(t *testing.T) {
	type testCase struct {
		name      string
		filter    invoice.ListFilter
		wantQuery string
		wantArgs  int
	}

	customerID := uuid.New()

	tests := []testCase{
		{
			name:      "DefaultExcludesVoid",
			filter:    invoice.ListFilter{},
			wantQuery: `WHERE i.is_void = \$1 ORDER BY i.invoice_date ASC, i.created_at ASC`,
			wantArgs:  1,
		},
		{
			name: "CustomerAndRange",
			filter: invoice.ListFilter{
				CustomerID: &customerID,
				StartDate:  new("2025-01-01"),
				EndDate:    new("2025-01-31"),
			},
			wantQuery: `WHERE i.is_void = \$1 AND i.customer_id = \$2 AND i.invoice_date >= \$3 AND i.invoice_date <= \$4`,
			wantArgs:  4,
		},
		{
			name:      "IncludeVoid",
			filter:    invoice.ListFilter{IncludeVoid: true},
			wantQuery: `JOIN customer c ON c.customer_id = i.customer_id ORDER BY`,
			wantArgs:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newStore(t)

			args := make([]driver.Value, tt.wantArgs)
			for i := range args {
				args[i] = sqlmock.AnyArg()
			}

			mock.ExpectQuery(tt.wantQuery).
				WithArgs(args...).
				WillReturnRows(sqlmock.NewRows(invoiceRowColumns))

			got, err := s.ListInvoices(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Empty(t, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_ListInvoices_AttachesLineItems(t *testing.T) {
	s, mock := newStore(t)

	first, second := uuid.New(), uuid.New()
	customerID := uuid.New().String()
	categoryID := uuid.New()
	createdAt := time.Now()

	mock.ExpectQuery("FROM invoice i").
		WithArgs(false).
		WillReturnRows(sqlmock.NewRows(invoiceRowColumns).
			AddRow(first.String(), "INV-1", "2025-01-05", "rush", 0.0, "unpaid", createdAt, false,
				customerID, "Acme", nil, nil, nil, false).
			AddRow(second.String(), "INV-2", "2025-01-06", nil, 5.0, "paid", createdAt, false,
				customerID, "Acme", nil, nil, nil, false))

	mock.ExpectQuery(`WHERE li.invoice_id IN \(\$1,\$2\)`).
		WithArgs(first.String(), second.String()).
		WillReturnRows(sqlmock.NewRows(lineItemRowColumns).
			AddRow(second.String(), uuid.New().String(), 1.0, 5.0, nil, "gift wrap",
				uuid.New().String(), "Cake", false,
				categoryID.String(), "Bakery", int64(2),
				nil, nil, nil, nil, nil, nil))

	got, err := s.ListInvoices(context.Background(), invoice.ListFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, new("rush"), got[0].Notes)
	assert.Empty(t, got[0].LineItems)

	require.Len(t, got[1].LineItems, 1)

	li := got[1].LineItems[0]
	assert.Nil(t, li.SalesTax)
	assert.Equal(t, new("gift wrap"), li.Description)
	require.NotNil(t, li.Product.Category)
	assert.Equal(t, "Bakery", li.Product.Category.Name)
	assert.Equal(t, 2, li.Product.Category.Position)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListInvoices_QueryError(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery("FROM invoice i").WillReturnError(errors.New("connection reset"))

	_, err := s.ListInvoices(context.Background(), invoice.ListFilter{})
	assert.EqualError(t, err, "listing invoices: connection reset")
}

func TestStore_GetCustomer(t *testing.T) {
	s, mock := newStore(t)

	customerID := uuid.New()
	productID := uuid.New()
	taxID := uuid.New()

	mock.ExpectQuery("FROM customer WHERE customer_id = ").
		WithArgs(customerID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"customer_id", "name", "tax_registration_number", "email", "image_url", "is_archived"}).
			AddRow(customerID.String(), "Acme", nil, "billing@acme.io", nil, false))

	mock.ExpectQuery("FROM customer_product_pricing WHERE customer_id = ").
		WithArgs(customerID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "unit_price", "sales_tax_id"}).
			AddRow(productID.String(), 3.25, taxID.String()).
			AddRow(uuid.New().String(), 1.0, nil))

	got, err := s.GetCustomer(context.Background(), customerID)
	require.NoError(t, err)

	assert.Equal(t, "Acme", got.Name)
	assert.Equal(t, new("billing@acme.io"), got.Email)
	require.Len(t, got.ProductPricing, 2)
	assert.Equal(t, invoice.ProductPricing{ProductID: productID, UnitPrice: 3.25, SalesTaxID: &taxID}, got.ProductPricing[0])
	assert.Nil(t, got.ProductPricing[1].SalesTaxID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetCustomer_NotFound(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery("FROM customer").WillReturnRows(sqlmock.NewRows([]string{"customer_id"}))

	_, err := s.GetCustomer(context.Background(), uuid.New())
	assert.ErrorIs(t, err, invoice.ErrNotFound)
}

func TestStore_ListCustomers(t *testing.T) {
	type testCase struct {
		name            string
		includeArchived bool
		wantQuery       string
	}

	tests := []testCase{
		{name: "ActiveOnly", includeArchived: false, wantQuery: `FROM customer WHERE is_archived = \$1 ORDER BY name ASC`},
		{name: "All", includeArchived: true, wantQuery: `FROM customer ORDER BY name ASC`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newStore(t)

			mock.ExpectQuery(tt.wantQuery).
				WillReturnRows(sqlmock.NewRows([]string{"customer_id", "name", "tax_registration_number", "email", "image_url", "is_archived"}).
					AddRow(uuid.New().String(), "Acme", nil, nil, nil, tt.includeArchived))

			got, err := s.ListCustomers(context.Background(), tt.includeArchived)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, tt.includeArchived, got[0].IsArchived)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_ListProducts(t *testing.T) {
	s, mock := newStore(t)

	productID := uuid.New()
	taxID := uuid.New()

	mock.ExpectQuery(`FROM product p .* LEFT JOIN product_inventory pi ON pi.product_id = p.product_id WHERE p.is_archived = \$1`).
		WithArgs(false).
		WillReturnRows(sqlmock.NewRows([]string{
			"product_id", "name", "unit_price", "is_archived",
			"category_id", "name", "position",
			"sales_tax_id", "name", "abbreviation", "rate", "is_recoverable", "is_archived",
			"stock", "low_stock_threshold", "allow_sales_when_out_of_stock",
		}).
			AddRow(productID.String(), "Bread", 2.5, false,
				nil, nil, nil,
				taxID.String(), "Value Added Tax", "VAT", 0.05, true, false,
				3.0, 5.0, false).
			AddRow(uuid.New().String(), "Custom Cake", nil, false,
				nil, nil, nil,
				nil, nil, nil, nil, nil, nil,
				nil, nil, nil))

	got, err := s.ListProducts(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, got, 2)

	bread := got[0]
	assert.Equal(t, new(2.5), bread.UnitPrice)
	require.NotNil(t, bread.SalesTax)
	assert.Equal(t, taxID, bread.SalesTax.ID)
	require.NotNil(t, bread.Inventory)
	assert.True(t, bread.Inventory.IsLowStock())

	cake := got[1]
	assert.Nil(t, cake.UnitPrice)
	assert.Nil(t, cake.SalesTax)
	assert.Nil(t, cake.Inventory)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListSalesTaxes(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery("FROM sales_tax ORDER BY name ASC").
		WillReturnRows(sqlmock.NewRows([]string{"sales_tax_id", "name", "abbreviation", "rate", "is_recoverable", "is_archived"}).
			AddRow(uuid.New().String(), "Value Added Tax", "VAT", 0.05, true, false))

	got, err := s.ListSalesTaxes(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "VAT", got[0].Abbreviation)
}
