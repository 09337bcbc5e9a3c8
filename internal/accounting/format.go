package accounting

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/MrJamesThe3rd/invoicer/internal/invoice"
)

// FormatNumber renders amount with two decimals and comma-grouped thousands,
// e.g. 1234567.891 -> "1,234,567.89". amount may be any Go number, a
// decimal.Decimal or a numeric string; anything else, including NaN, renders as 0.
func FormatNumber(amount any) string {
	fixed := toDecimal(amount).StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return sign + fixed
	}

	p := message.NewPrinter(language.AmericanEnglish)

	return sign + p.Sprintf("%d", n) + "." + fracPart
}

func toDecimal(amount any) decimal.Decimal {
	switch v := amount.(type) {
	case decimal.Decimal:
		return v
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero
		}

		return decimal.NewFromFloat(v)
	case float32:
		return toDecimal(float64(v))
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return decimal.Zero
		}

		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero
		}

		return d
	}

	return decimal.Zero
}

// Currency prefixes formatted amounts with a currency code or symbol.
type Currency struct {
	Code string
}

// Format renders amount as Code followed by FormatNumber(amount).
func (c Currency) Format(amount any) string {
	return c.Code + FormatNumber(amount)
}

// LabelStyle selects how SalesTaxLabel names a tax.
type LabelStyle int

const (
	LabelName LabelStyle = iota
	LabelAbbreviation
)

// SalesTaxLabel renders a tax as "VAT (5%)" (LabelName) or "VAT 5%" (LabelAbbreviation).
// A nil tax renders as fallback, or "None" when fallback is empty.
func SalesTaxLabel(tax *invoice.SalesTax, style LabelStyle, fallback string) string {
	if tax == nil {
		if fallback == "" {
			return "None"
		}

		return fallback
	}

	rate := strconv.FormatFloat(tax.Rate*100, 'f', -1, 64) + "%"

	if style == LabelAbbreviation {
		return tax.Abbreviation + " " + rate
	}

	return tax.Name + " (" + rate + ")"
}

// Badge is the colour a payment status is displayed with.
type Badge string

const (
	BadgeRed    Badge = "red"
	BadgeYellow Badge = "yellow"
	BadgeGreen  Badge = "green"
	BadgeMuted  Badge = "muted"
)

func BadgeFor(status invoice.PaymentStatus) Badge {
	switch status {
	case invoice.PaymentStatusUnpaid:
		return BadgeRed
	case invoice.PaymentStatusPartiallyPaid:
		return BadgeYellow
	case invoice.PaymentStatusPaid, invoice.PaymentStatusOverpaid:
		return BadgeGreen
	}

	return BadgeMuted
}
