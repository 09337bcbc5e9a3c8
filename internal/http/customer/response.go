package customer

import (
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicer/internal/accounting"
	"github.com/MrJamesThe3rd/invoicer/internal/invoice"
)

type customerResponse struct {
	ID                    uuid.UUID `json:"id"`
	Name                  string    `json:"name"`
	Initials              string    `json:"initials"`
	TaxRegistrationNumber *string   `json:"tax_registration_number,omitempty"`
	Email                 *string   `json:"email,omitempty"`
	ImageURL              *string   `json:"image_url,omitempty"`
	IsArchived            bool      `json:"is_archived"`
}

func toResponse(c invoice.Customer) customerResponse {
	return customerResponse{
		ID:                    c.ID,
		Name:                  c.Name,
		Initials:              accounting.NameInitials(c.Name),
		TaxRegistrationNumber: c.TaxRegistrationNumber,
		Email:                 c.Email,
		ImageURL:              c.ImageURL,
		IsArchived:            c.IsArchived,
	}
}

func toResponseList(customers []invoice.Customer) []customerResponse {
	resp := make([]customerResponse, len(customers))
	for i, c := range customers {
		resp[i] = toResponse(c)
	}

	return resp
}

type pricingResponse struct {
	ProductID      uuid.UUID  `json:"product_id"`
	ProductName    string     `json:"product_name"`
	UnitPrice      float64    `json:"unit_price"`
	UnitPriceLabel string     `json:"unit_price_label"`
	SalesTaxID     *uuid.UUID `json:"sales_tax_id,omitempty"`
	SalesTaxLabel  string     `json:"sales_tax_label"`
	Special        bool       `json:"special"`
}

func (h *Handler) toPricingList(c *invoice.Customer, products []invoice.Product, taxes []invoice.SalesTax) []pricingResponse {
	merged := accounting.MergedPricing(products, c)

	resp := make([]pricingResponse, 0, len(merged))

	for _, p := range merged {
		product, ok := accounting.FindProduct(products, &p.ProductID)
		if !ok {
			// Special pricing for an archived product.
			continue
		}

		var tax *invoice.SalesTax
		if t, ok := accounting.FindSalesTax(taxes, p.SalesTaxID); ok {
			tax = &t
		}

		_, special := accounting.FindPricing(c.ProductPricing, &p.ProductID)

		resp = append(resp, pricingResponse{
			ProductID:      p.ProductID,
			ProductName:    product.Name,
			UnitPrice:      p.UnitPrice,
			UnitPriceLabel: h.currency.Format(p.UnitPrice),
			SalesTaxID:     p.SalesTaxID,
			SalesTaxLabel:  accounting.SalesTaxLabel(tax, accounting.LabelAbbreviation, ""),
			Special:        special,
		})
	}

	return resp
}
