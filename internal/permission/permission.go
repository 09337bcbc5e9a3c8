// Package permission decides which actions and paths an identity may use.
package permission

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

type Category string

const (
	CategoryCustomers          Category = "customers"
	CategoryProducts           Category = "products"
	CategoryInventory          Category = "inventory"
	CategoryInvoices           Category = "invoices"
	CategoryDeliveryNotes      Category = "delivery_notes"
	CategoryReceiptVouchers    Category = "receipt_vouchers"
	CategoryActivityReport     Category = "activity_report"
	CategoryCustomerStatements Category = "customer_statements"
)

var Categories = []Category{
	CategoryCustomers,
	CategoryProducts,
	CategoryInventory,
	CategoryInvoices,
	CategoryDeliveryNotes,
	CategoryReceiptVouchers,
	CategoryActivityReport,
	CategoryCustomerStatements,
}

type Action string

const (
	ActionCreate            Action = "create"
	ActionRead              Action = "read"
	ActionUpdate            Action = "update"
	ActionUpdateConditional Action = "update_conditional"
	ActionDelete            Action = "delete"
)

var Actions = []Action{ActionCreate, ActionRead, ActionUpdate, ActionUpdateConditional, ActionDelete}

// Permission is a "category:action" token.
type Permission string

func New(c Category, a Action) Permission {
	return Permission(string(c) + ":" + string(a))
}

var ErrInvalidPermission = errors.New("invalid permission")

// ParsePermission accepts only tokens built from the known categories and actions.
func ParsePermission(s string) (Permission, error) {
	c, a, ok := strings.Cut(s, ":")
	if !ok || !slices.Contains(Categories, Category(c)) || !slices.Contains(Actions, Action(a)) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPermission, s)
	}

	return Permission(s), nil
}

// Set is an unordered collection of granted permissions. The nil Set grants nothing.
type Set map[Permission]struct{}

func NewSet(perms ...Permission) Set {
	s := make(Set, len(perms))
	for _, p := range perms {
		s[p] = struct{}{}
	}

	return s
}

func grant(c Category, actions ...Action) []Permission {
	perms := make([]Permission, 0, len(actions))
	for _, a := range actions {
		perms = append(perms, New(c, a))
	}

	return perms
}

func (s Set) Has(p Permission) bool {
	if p == "" {
		return false
	}

	_, ok := s[p]

	return ok
}

// Has reports whether set grants p. An empty token is never granted.
func Has(set Set, p Permission) bool {
	return set.Has(p)
}

// List returns the granted permissions in lexical order.
func (s Set) List() []Permission {
	perms := make([]Permission, 0, len(s))
	for p := range s {
		perms = append(perms, p)
	}

	slices.Sort(perms)

	return perms
}
