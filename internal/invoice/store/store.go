package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicer/internal/invoice"
)

type Store struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

func New(db *sql.DB) *Store {
	return &Store{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// invoiceColumns is the column order expected by scanInvoice.
// invoice_date is selected as text so grouping sees the calendar date verbatim.
var invoiceColumns = []string{
	"i.invoice_id", "i.invoice_number", "i.invoice_date::text", "i.notes", "i.paid_amount",
	"i.payment_status", "i.created_at", "i.is_void",
	"c.customer_id", "c.name", "c.tax_registration_number", "c.email", "c.image_url", "c.is_archived",
}

func scanInvoice(s scanner) (invoice.Invoice, error) {
	var inv invoice.Invoice

	var status string

	var notes, taxNumber, email, imageURL sql.NullString

	if err := s.Scan(
		&inv.ID, &inv.Number, &inv.Date, &notes, &inv.PaidAmount,
		&status, &inv.CreatedAt, &inv.IsVoid,
		&inv.Customer.ID, &inv.Customer.Name, &taxNumber, &email, &imageURL, &inv.Customer.IsArchived,
	); err != nil {
		return invoice.Invoice{}, err
	}

	inv.PaymentStatus = invoice.PaymentStatus(status)
	inv.Notes = optionalString(notes)
	inv.Customer.TaxRegistrationNumber = optionalString(taxNumber)
	inv.Customer.Email = optionalString(email)
	inv.Customer.ImageURL = optionalString(imageURL)

	return inv, nil
}

func optionalString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}

	return new(ns.String)
}

func (s *Store) selectInvoices() sq.SelectBuilder {
	return s.sb.Select(invoiceColumns...).
		From("invoice i").
		Join("customer c ON c.customer_id = i.customer_id")
}

func (s *Store) GetInvoice(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	query, args, err := s.selectInvoices().Where(sq.Eq{"i.invoice_id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building invoice query: %w", err)
	}

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	items, err := s.lineItems(ctx, []uuid.UUID{inv.ID})
	if err != nil {
		return nil, err
	}

	inv.LineItems = items[inv.ID]

	return &inv, nil
}

func (s *Store) ListInvoices(ctx context.Context, filter invoice.ListFilter) ([]invoice.Invoice, error) {
	qb := s.selectInvoices()

	if !filter.IncludeVoid {
		qb = qb.Where(sq.Eq{"i.is_void": false})
	}

	if filter.CustomerID != nil {
		qb = qb.Where(sq.Eq{"i.customer_id": *filter.CustomerID})
	}

	if filter.StartDate != nil {
		qb = qb.Where(sq.GtOrEq{"i.invoice_date": *filter.StartDate})
	}

	if filter.EndDate != nil {
		qb = qb.Where(sq.LtOrEq{"i.invoice_date": *filter.EndDate})
	}

	query, args, err := qb.OrderBy("i.invoice_date ASC", "i.created_at ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("building invoice query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var invoices []invoice.Invoice

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice rows: %w", err)
	}

	if len(invoices) == 0 {
		return invoices, nil
	}

	ids := make([]uuid.UUID, len(invoices))
	for i, inv := range invoices {
		ids[i] = inv.ID
	}

	items, err := s.lineItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range invoices {
		invoices[i].LineItems = items[invoices[i].ID]
	}

	return invoices, nil
}

// lineItems loads the line items of the given invoices keyed by invoice id,
// joined with their product, product category and sales tax.
// invoice_line_item has no position column, so lines within an invoice come back
// in the order PostgreSQL reads them; line_item_id is a random uuid and is not
// used as a sort key.
func (s *Store) lineItems(ctx context.Context, invoiceIDs []uuid.UUID) (map[uuid.UUID][]invoice.LineItem, error) {
	query, args, err := s.sb.Select(
		"li.invoice_id", "li.line_item_id", "li.quantity", "li.unit_price",
		"li.delivery_note_number", "li.description",
		"p.product_id", "p.name", "p.is_archived",
		"pc.category_id", "pc.name", "pc.position",
		"st.sales_tax_id", "st.name", "st.abbreviation", "st.rate", "st.is_recoverable", "st.is_archived",
	).
		From("invoice_line_item li").
		Join("product p ON p.product_id = li.product_id").
		LeftJoin("product_category pc ON pc.category_id = p.category_id").
		LeftJoin("sales_tax st ON st.sales_tax_id = li.sales_tax_id").
		Where(sq.Eq{"li.invoice_id": invoiceIDs}).
		OrderBy("li.invoice_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building line item query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing line items: %w", err)
	}
	defer rows.Close()

	items := make(map[uuid.UUID][]invoice.LineItem, len(invoiceIDs))

	for rows.Next() {
		var (
			invoiceID uuid.UUID
			li        invoice.LineItem

			deliveryNote, description sql.NullString

			categoryID       uuid.NullUUID
			categoryName     sql.NullString
			categoryPosition sql.NullInt64

			taxID                       uuid.NullUUID
			taxName, taxAbbreviation    sql.NullString
			taxRate                     sql.NullFloat64
			taxRecoverable, taxArchived sql.NullBool
		)

		if err := rows.Scan(
			&invoiceID, &li.ID, &li.Quantity, &li.UnitPrice,
			&deliveryNote, &description,
			&li.Product.ID, &li.Product.Name, &li.Product.IsArchived,
			&categoryID, &categoryName, &categoryPosition,
			&taxID, &taxName, &taxAbbreviation, &taxRate, &taxRecoverable, &taxArchived,
		); err != nil {
			return nil, fmt.Errorf("scanning line item: %w", err)
		}

		li.DeliveryNoteNumber = optionalString(deliveryNote)
		li.Description = optionalString(description)

		if categoryID.Valid {
			li.Product.Category = &invoice.ProductCategory{
				ID:       categoryID.UUID,
				Name:     categoryName.String,
				Position: int(categoryPosition.Int64),
			}
		}

		if taxID.Valid {
			li.SalesTax = &invoice.SalesTax{
				ID:            taxID.UUID,
				Name:          taxName.String,
				Abbreviation:  taxAbbreviation.String,
				Rate:          taxRate.Float64,
				IsRecoverable: taxRecoverable.Bool,
				IsArchived:    taxArchived.Bool,
			}
		}

		items[invoiceID] = append(items[invoiceID], li)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating line item rows: %w", err)
	}

	return items, nil
}

var customerColumns = []string{
	"customer_id", "name", "tax_registration_number", "email", "image_url", "is_archived",
}

func scanCustomer(s scanner) (invoice.Customer, error) {
	var c invoice.Customer

	var taxNumber, email, imageURL sql.NullString

	if err := s.Scan(&c.ID, &c.Name, &taxNumber, &email, &imageURL, &c.IsArchived); err != nil {
		return invoice.Customer{}, err
	}

	c.TaxRegistrationNumber = optionalString(taxNumber)
	c.Email = optionalString(email)
	c.ImageURL = optionalString(imageURL)

	return c, nil
}

// GetCustomer returns the customer together with its special product pricing.
func (s *Store) GetCustomer(ctx context.Context, id uuid.UUID) (*invoice.Customer, error) {
	query, args, err := s.sb.Select(customerColumns...).
		From("customer").
		Where(sq.Eq{"customer_id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building customer query: %w", err)
	}

	c, err := scanCustomer(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("getting customer: %w", err)
	}

	pricing, err := s.customerPricing(ctx, id)
	if err != nil {
		return nil, err
	}

	c.ProductPricing = pricing

	return &c, nil
}

func (s *Store) customerPricing(ctx context.Context, customerID uuid.UUID) ([]invoice.ProductPricing, error) {
	query, args, err := s.sb.Select("product_id", "unit_price", "sales_tax_id").
		From("customer_product_pricing").
		Where(sq.Eq{"customer_id": customerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building pricing query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing customer pricing: %w", err)
	}
	defer rows.Close()

	pricing := []invoice.ProductPricing{}

	for rows.Next() {
		var (
			p     invoice.ProductPricing
			taxID uuid.NullUUID
		)

		if err := rows.Scan(&p.ProductID, &p.UnitPrice, &taxID); err != nil {
			return nil, fmt.Errorf("scanning customer pricing: %w", err)
		}

		if taxID.Valid {
			p.SalesTaxID = new(taxID.UUID)
		}

		pricing = append(pricing, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pricing rows: %w", err)
	}

	return pricing, nil
}

func (s *Store) ListCustomers(ctx context.Context, includeArchived bool) ([]invoice.Customer, error) {
	qb := s.sb.Select(customerColumns...).From("customer")

	if !includeArchived {
		qb = qb.Where(sq.Eq{"is_archived": false})
	}

	query, args, err := qb.OrderBy("name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("building customer query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	var customers []invoice.Customer

	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning customer: %w", err)
		}

		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customer rows: %w", err)
	}

	return customers, nil
}

func (s *Store) ListProducts(ctx context.Context, includeArchived bool) ([]invoice.Product, error) {
	qb := s.sb.Select(
		"p.product_id", "p.name", "p.unit_price", "p.is_archived",
		"pc.category_id", "pc.name", "pc.position",
		"st.sales_tax_id", "st.name", "st.abbreviation", "st.rate", "st.is_recoverable", "st.is_archived",
		"pi.stock", "pi.low_stock_threshold", "pi.allow_sales_when_out_of_stock",
	).
		From("product p").
		LeftJoin("product_category pc ON pc.category_id = p.category_id").
		LeftJoin("sales_tax st ON st.sales_tax_id = p.sales_tax_id").
		LeftJoin("product_inventory pi ON pi.product_id = p.product_id")

	if !includeArchived {
		qb = qb.Where(sq.Eq{"p.is_archived": false})
	}

	query, args, err := qb.OrderBy("pc.position ASC NULLS LAST", "p.name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("building product query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []invoice.Product

	for rows.Next() {
		var (
			p         invoice.Product
			unitPrice sql.NullFloat64

			categoryID       uuid.NullUUID
			categoryName     sql.NullString
			categoryPosition sql.NullInt64

			taxID                       uuid.NullUUID
			taxName, taxAbbreviation    sql.NullString
			taxRate                     sql.NullFloat64
			taxRecoverable, taxArchived sql.NullBool

			stock, lowStock sql.NullFloat64
			allowOutOfStock sql.NullBool
		)

		if err := rows.Scan(
			&p.ID, &p.Name, &unitPrice, &p.IsArchived,
			&categoryID, &categoryName, &categoryPosition,
			&taxID, &taxName, &taxAbbreviation, &taxRate, &taxRecoverable, &taxArchived,
			&stock, &lowStock, &allowOutOfStock,
		); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}

		if unitPrice.Valid {
			p.UnitPrice = new(unitPrice.Float64)
		}

		if categoryID.Valid {
			p.Category = &invoice.ProductCategory{
				ID:       categoryID.UUID,
				Name:     categoryName.String,
				Position: int(categoryPosition.Int64),
			}
		}

		if taxID.Valid {
			p.SalesTax = &invoice.SalesTax{
				ID:            taxID.UUID,
				Name:          taxName.String,
				Abbreviation:  taxAbbreviation.String,
				Rate:          taxRate.Float64,
				IsRecoverable: taxRecoverable.Bool,
				IsArchived:    taxArchived.Bool,
			}
		}

		if stock.Valid {
			p.Inventory = &invoice.ProductInventory{
				ProductID:                p.ID,
				Stock:                    stock.Float64,
				LowStockThreshold:        lowStock.Float64,
				AllowSalesWhenOutOfStock: allowOutOfStock.Bool,
			}
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}

func (s *Store) ListSalesTaxes(ctx context.Context) ([]invoice.SalesTax, error) {
	query, args, err := s.sb.Select("sales_tax_id", "name", "abbreviation", "rate", "is_recoverable", "is_archived").
		From("sales_tax").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building sales tax query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sales taxes: %w", err)
	}
	defer rows.Close()

	var taxes []invoice.SalesTax

	for rows.Next() {
		var t invoice.SalesTax
		if err := rows.Scan(&t.ID, &t.Name, &t.Abbreviation, &t.Rate, &t.IsRecoverable, &t.IsArchived); err != nil {
			return nil, fmt.Errorf("scanning sales tax: %w", err)
		}

		taxes = append(taxes, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sales tax rows: %w", err)
	}

	return taxes, nil
}
