package permission

import "strings"

// Identity identifies an authenticated principal, such as an email address.
// The zero value is the anonymous identity.
type Identity string

const Anonymous Identity = ""

type Role string

const (
	RoleOwner    Role = "owner"
	RoleEmployee Role = "employee"
)

// Resolver maps an identity to its role. Unknown identities resolve to "".
type Resolver interface {
	Role(id Identity) Role
}

// TableResolver resolves roles from a fixed identity table.
type TableResolver map[Identity]Role

// NewTableResolver maps the owner and employee identities to their roles.
// Empty identities are skipped. When both are the same identity it resolves as owner.
func NewTableResolver(owner, employee Identity) TableResolver {
	roles := TableResolver{}

	if employee != Anonymous {
		roles[employee] = RoleEmployee
	}

	if owner != Anonymous {
		roles[owner] = RoleOwner
	}

	return roles
}

func (t TableResolver) Role(id Identity) Role {
	if id == Anonymous {
		return ""
	}

	return t[id]
}

var (
	ownerPermissions = NewSet(concat(
		grant(CategoryCustomers, ActionCreate, ActionRead, ActionUpdate),
		grant(CategoryProducts, ActionCreate, ActionRead, ActionUpdate),
		grant(CategoryInventory, ActionCreate, ActionRead, ActionUpdate, ActionDelete),
		grant(CategoryInvoices, ActionCreate, ActionRead, ActionUpdate),
		grant(CategoryDeliveryNotes, ActionCreate, ActionRead, ActionUpdate),
		grant(CategoryReceiptVouchers, ActionCreate, ActionRead, ActionUpdate),
		grant(CategoryActivityReport, ActionRead),
		grant(CategoryCustomerStatements, ActionRead),
	)...)

	employeePermissions = NewSet(concat(
		grant(CategoryCustomers, ActionCreate),
		grant(CategoryInvoices, ActionCreate, ActionRead),
		grant(CategoryDeliveryNotes, ActionCreate, ActionRead, ActionUpdate),
	)...)
)

func concat(groups ...[]Permission) []Permission {
	var all []Permission
	for _, g := range groups {
		all = append(all, g...)
	}

	return all
}

// RolePermissions returns a copy of the built-in permissions of role.
func RolePermissions(role Role) Set {
	var src Set

	switch role {
	case RoleOwner:
		src = ownerPermissions
	case RoleEmployee:
		src = employeePermissions
	}

	s := make(Set, len(src))
	for p := range src {
		s[p] = struct{}{}
	}

	return s
}

// pathPermissions gates paths by substring, checked in order.
var pathPermissions = []struct {
	segment    string
	permission Permission
}{
	{"customers", New(CategoryCustomers, ActionRead)},
	{"products", New(CategoryProducts, ActionRead)},
	{"inventory", New(CategoryInventory, ActionRead)},
	{"invoices", New(CategoryInvoices, ActionRead)},
	{"delivery-notes", New(CategoryDeliveryNotes, ActionRead)},
	{"receipt-vouchers", New(CategoryReceiptVouchers, ActionRead)},
	{"activity-report", New(CategoryActivityReport, ActionRead)},
	{"statements", New(CategoryCustomerStatements, ActionRead)},
}

// Policy grants permissions to identities through their role.
type Policy struct {
	resolver Resolver
	roles    map[Role]Set
}

// NewPolicy builds a policy over the built-in owner and employee tables.
func NewPolicy(resolver Resolver) *Policy {
	return &Policy{
		resolver: resolver,
		roles: map[Role]Set{
			RoleOwner:    RolePermissions(RoleOwner),
			RoleEmployee: RolePermissions(RoleEmployee),
		},
	}
}

// Resolve returns the permissions held by id. Unknown identities and roles hold none.
// The returned set is shared and must not be modified.
func (p *Policy) Resolve(id Identity) Set {
	role := p.resolver.Role(id)
	if role == "" {
		return Set{}
	}

	set, ok := p.roles[role]
	if !ok {
		return Set{}
	}

	return set
}

func (p *Policy) Has(id Identity, perm Permission) bool {
	return p.Resolve(id).Has(perm)
}

// CanAccessPath reports whether id may open path. Every gated segment that path
// contains must be granted; paths containing none are open.
func (p *Policy) CanAccessPath(id Identity, path string) bool {
	perms := p.Resolve(id)

	for _, pp := range pathPermissions {
		if strings.Contains(path, pp.segment) && !perms.Has(pp.permission) {
			return false
		}
	}

	return true
}
