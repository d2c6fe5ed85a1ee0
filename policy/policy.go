// Package policy decides which principal may perform which operation on
// which kind of resource. Every gate in the API goes through Decide so the
// role matrix lives in one table.
package policy

import (
	"slices"

	"github.com/Kariqs/littlelemon-api/apperr"
)

type Role string

const (
	RoleManager      Role = "Manager"
	RoleDeliveryCrew Role = "Delivery crew"
)

// RoleSet is the set of named roles a user holds. Holding neither role
// makes the user a customer.
type RoleSet []Role

func NewRoleSet(names ...string) RoleSet {
	var set RoleSet
	for _, name := range names {
		role := Role(name)
		if (role == RoleManager || role == RoleDeliveryCrew) && !set.Has(role) {
			set = append(set, role)
		}
	}
	return set
}

func (rs RoleSet) Has(role Role) bool {
	return slices.Contains(rs, role)
}

// Subject is what the evaluator needs to know about a principal.
type Subject struct {
	Authenticated bool
	Superuser     bool
	Roles         RoleSet
}

func (s Subject) IsManager() bool      { return s.Roles.Has(RoleManager) }
func (s Subject) IsDeliveryCrew() bool { return s.Roles.Has(RoleDeliveryCrew) }
func (s Subject) IsCustomer() bool     { return !s.IsManager() && !s.IsDeliveryCrew() }

type Operation int

const (
	Read Operation = iota
	List
	Create
	Update
	PartialUpdate
	Delete
)

func (op Operation) String() string {
	switch op {
	case Read:
		return "read"
	case List:
		return "list"
	case Create:
		return "create"
	case Update:
		return "update"
	case PartialUpdate:
		return "partial update"
	case Delete:
		return "delete"
	default:
		return "unknown"
	}
}

type Resource int

const (
	MenuItem Resource = iota
	Category
	Cart
	Order
	ManagerRole
	DeliveryCrewRole
	User
)

func (r Resource) String() string {
	switch r {
	case MenuItem:
		return "menu item"
	case Category:
		return "category"
	case Cart:
		return "cart"
	case Order:
		return "order"
	case ManagerRole:
		return "manager group"
	case DeliveryCrewRole:
		return "delivery crew group"
	case User:
		return "user"
	default:
		return "unknown"
	}
}

// RoleResource returns the membership resource guarding the given role.
func RoleResource(role Role) (Resource, bool) {
	switch role {
	case RoleManager:
		return ManagerRole, true
	case RoleDeliveryCrew:
		return DeliveryCrewRole, true
	default:
		return 0, false
	}
}

type Effect int

const (
	Deny Effect = iota
	Allow
	Unauthenticated
)

// Scope restricts which order rows an allowed read may see.
type Scope int

const (
	ScopeNone Scope = iota
	ScopeAll
	ScopeAssigned
	ScopeOwn
)

// Writable order fields.
const (
	FieldUser         = "user"
	FieldDeliveryCrew = "delivery_crew"
	FieldStatus       = "status"
	FieldTotal        = "total"
	FieldDate         = "date"
)

var OrderFields = []string{FieldUser, FieldDeliveryCrew, FieldStatus, FieldTotal, FieldDate}

type Decision struct {
	Effect Effect
	Scope  Scope
	// Fields limits a partial update. Nil means every writable field.
	Fields []string
}

func (d Decision) Allowed() bool { return d.Effect == Allow }

// Permits reports whether a partial update may touch field.
func (d Decision) Permits(field string) bool {
	if d.Fields == nil {
		return true
	}
	return slices.Contains(d.Fields, field)
}

// Err converts a refusal into the matching sentinel error.
func (d Decision) Err() error {
	switch d.Effect {
	case Allow:
		return nil
	case Unauthenticated:
		return apperr.ErrNotAuthenticated
	default:
		return apperr.ErrNotAuthorized
	}
}

type rule func(Subject) Decision

var (
	allow = Decision{Effect: Allow}
	deny  = Decision{Effect: Deny}
)

func anyone(Subject) Decision { return allow }

func managerOnly(s Subject) Decision {
	if s.IsManager() {
		return allow
	}
	return deny
}

func managerOrSuperuser(s Subject) Decision {
	if s.IsManager() || s.Superuser {
		return allow
	}
	return deny
}

func superuserOnly(s Subject) Decision {
	if s.Superuser {
		return allow
	}
	return deny
}

func customerOnly(s Subject) Decision {
	if s.IsCustomer() {
		return allow
	}
	return deny
}

func scopedOrders(s Subject) Decision {
	switch {
	case s.IsManager():
		return Decision{Effect: Allow, Scope: ScopeAll}
	case s.IsDeliveryCrew():
		return Decision{Effect: Allow, Scope: ScopeAssigned}
	default:
		return Decision{Effect: Allow, Scope: ScopeOwn}
	}
}

func managerOverOrders(s Subject) Decision {
	if s.IsManager() {
		return Decision{Effect: Allow, Scope: ScopeAll}
	}
	return deny
}

func partialOrderUpdate(s Subject) Decision {
	switch {
	case s.IsManager():
		return Decision{Effect: Allow, Scope: ScopeAll}
	case s.IsDeliveryCrew():
		return Decision{Effect: Allow, Scope: ScopeAssigned, Fields: []string{FieldStatus}}
	default:
		return deny
	}
}

var table = map[Resource]map[Operation]rule{
	MenuItem: {
		Read:          anyone,
		List:          anyone,
		Create:        managerOrSuperuser,
		Update:        managerOrSuperuser,
		PartialUpdate: managerOrSuperuser,
		Delete:        managerOrSuperuser,
	},
	Category: {
		Read:   anyone,
		List:   anyone,
		Create: managerOrSuperuser,
		Update: managerOrSuperuser,
		Delete: managerOrSuperuser,
	},
	Cart: {
		Read:   customerOnly,
		List:   customerOnly,
		Create: customerOnly,
		Delete: customerOnly,
	},
	Order: {
		Read:          scopedOrders,
		List:          scopedOrders,
		Create:        customerOnly,
		Update:        managerOverOrders,
		PartialUpdate: partialOrderUpdate,
		Delete:        managerOverOrders,
	},
	ManagerRole: {
		List:   managerOrSuperuser,
		Create: managerOrSuperuser,
		Delete: managerOnly,
	},
	DeliveryCrewRole: {
		List:   managerOnly,
		Create: managerOnly,
		Delete: managerOnly,
	},
	User: {
		Delete: superuserOnly,
	},
}

// Decide evaluates the role matrix. Unauthenticated subjects are refused
// everything with a distinct effect; pairs missing from the table are
// denied.
func Decide(s Subject, op Operation, res Resource) Decision {
	if !s.Authenticated {
		return Decision{Effect: Unauthenticated}
	}
	r, ok := table[res][op]
	if !ok {
		return deny
	}
	return r(s)
}
