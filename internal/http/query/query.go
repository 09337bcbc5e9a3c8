// Package query parses and validates the query strings shared by several handlers.
package query

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicer/internal/statement"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// DateRange is an inclusive range of ISO-8601 calendar dates.
type DateRange struct {
	StartDate string `validate:"required,datetime=2006-01-02"`
	EndDate   string `validate:"required,datetime=2006-01-02"`
}

type statementParams struct {
	CustomerID         string `validate:"required,uuid"`
	PaidAmountOverride string `validate:"omitempty,numeric"`
	DateRange
}

// Range reads start_date and end_date.
func Range(r *http.Request) (DateRange, error) {
	q := r.URL.Query()

	dr := DateRange{
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	}

	if err := validate.Struct(dr); err != nil {
		return DateRange{}, describe(err)
	}

	return dr, nil
}

// Statement reads customer_id, start_date, end_date and the optional paid_amount_override.
func Statement(r *http.Request) (statement.Request, error) {
	q := r.URL.Query()

	p := statementParams{
		CustomerID:         q.Get("customer_id"),
		PaidAmountOverride: q.Get("paid_amount_override"),
		DateRange: DateRange{
			StartDate: q.Get("start_date"),
			EndDate:   q.Get("end_date"),
		},
	}

	if err := validate.Struct(p); err != nil {
		return statement.Request{}, describe(err)
	}

	req := statement.Request{
		CustomerID: uuid.MustParse(p.CustomerID),
		StartDate:  p.StartDate,
		EndDate:    p.EndDate,
	}

	if p.PaidAmountOverride != "" {
		paid, err := strconv.ParseFloat(p.PaidAmountOverride, 64)
		if err != nil {
			return statement.Request{}, fmt.Errorf("invalid paid_amount_override: %w", err)
		}

		req.PaidAmountOverride = &paid
	}

	return req, nil
}

// describe turns validation failures into a single client-facing message.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", param(fe.Field()), fe.Tag()))
	}

	return fmt.Errorf("invalid query parameters: %s", strings.Join(fields, ", "))
}

func param(field string) string {
	switch field {
	case "CustomerID":
		return "customer_id"
	case "PaidAmountOverride":
		return "paid_amount_override"
	case "StartDate":
		return "start_date"
	case "EndDate":
		return "end_date"
	}

	return field
}
