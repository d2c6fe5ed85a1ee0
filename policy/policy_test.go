package policy

import (
	"testing"

	"github.com/Kariqs/littlelemon-api/apperr"
	"github.com/stretchr/testify/assert"
)

var (
	customer  = Subject{Authenticated: true}
	crew      = Subject{Authenticated: true, Roles: NewRoleSet("Delivery crew")}
	manager   = Subject{Authenticated: true, Roles: NewRoleSet("Manager")}
	both      = Subject{Authenticated: true, Roles: NewRoleSet("Manager", "Delivery crew")}
	superuser = Subject{Authenticated: true, Superuser: true}
	anonymous = Subject{}
)

func TestDecideMatrix(t *testing.T) {
	tests := []struct {
		name    string
		subject Subject
		op      Operation
		res     Resource
		want    Effect
	}{
		{"customer reads menu", customer, List, MenuItem, Allow},
		{"crew reads menu", crew, Read, MenuItem, Allow},
		{"customer creates menu item", customer, Create, MenuItem, Deny},
		{"crew deletes menu item", crew, Delete, MenuItem, Deny},
		{"manager updates menu item", manager, Update, MenuItem, Allow},
		{"superuser creates menu item", superuser, Create, MenuItem, Allow},
		{"customer creates category", customer, Create, Category, Deny},
		{"superuser creates category", superuser, Create, Category, Allow},
		{"manager deletes category", manager, Delete, Category, Allow},

		{"customer reads cart", customer, Read, Cart, Allow},
		{"customer adds to cart", customer, Create, Cart, Allow},
		{"customer clears cart", customer, Delete, Cart, Allow},
		{"crew reads cart", crew, Read, Cart, Deny},
		{"manager adds to cart", manager, Create, Cart, Deny},

		{"customer creates order", customer, Create, Order, Allow},
		{"crew creates order", crew, Create, Order, Deny},
		{"manager creates order", manager, Create, Order, Deny},
		{"customer full update", customer, Update, Order, Deny},
		{"crew full update", crew, Update, Order, Deny},
		{"manager full update", manager, Update, Order, Allow},
		{"customer partial update", customer, PartialUpdate, Order, Deny},
		{"crew partial update", crew, PartialUpdate, Order, Allow},
		{"customer deletes order", customer, Delete, Order, Deny},
		{"crew deletes order", crew, Delete, Order, Deny},
		{"manager deletes order", manager, Delete, Order, Allow},

		{"customer lists managers", customer, List, ManagerRole, Deny},
		{"superuser adds manager", superuser, Create, ManagerRole, Allow},
		{"superuser removes manager", superuser, Delete, ManagerRole, Deny},
		{"manager removes manager", manager, Delete, ManagerRole, Allow},
		{"crew lists crew", crew, List, DeliveryCrewRole, Deny},
		{"superuser adds crew", superuser, Create, DeliveryCrewRole, Deny},
		{"manager adds crew", manager, Create, DeliveryCrewRole, Allow},

		{"manager deletes user", manager, Delete, User, Deny},
		{"superuser deletes user", superuser, Delete, User, Allow},
		{"missing pair", manager, Update, Cart, Deny},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.subject, tt.op, tt.res).Effect)
		})
	}
}

func TestDecideAnonymous(t *testing.T) {
	for res := range table {
		for op := range table[res] {
			d := Decide(anonymous, op, res)
			assert.Equal(t, Unauthenticated, d.Effect, "%s %s", op, res)
			assert.ErrorIs(t, d.Err(), apperr.ErrNotAuthenticated)
		}
	}
}

func TestOrderScopes(t *testing.T) {
	assert.Equal(t, ScopeAll, Decide(manager, List, Order).Scope)
	assert.Equal(t, ScopeAssigned, Decide(crew, List, Order).Scope)
	assert.Equal(t, ScopeOwn, Decide(customer, List, Order).Scope)
	assert.Equal(t, ScopeOwn, Decide(superuser, Read, Order).Scope)
	assert.Equal(t, ScopeAll, Decide(both, Read, Order).Scope, "manager wins over delivery crew")
	assert.Equal(t, ScopeAll, Decide(manager, Update, Order).Scope)
	assert.Equal(t, ScopeAssigned, Decide(crew, PartialUpdate, Order).Scope)
}

func TestPartialUpdateFields(t *testing.T) {
	crewDecision := Decide(crew, PartialUpdate, Order)
	assert.True(t, crewDecision.Permits(FieldStatus))
	assert.False(t, crewDecision.Permits(FieldTotal))
	assert.False(t, crewDecision.Permits(FieldDeliveryCrew))

	managerDecision := Decide(manager, PartialUpdate, Order)
	for _, f := range OrderFields {
		assert.True(t, managerDecision.Permits(f), f)
	}
}

func TestDecisionErr(t *testing.T) {
	assert.NoError(t, Decide(manager, Delete, Order).Err())
	assert.ErrorIs(t, Decide(customer, Delete, Order).Err(), apperr.ErrNotAuthorized)
}

func TestNewRoleSetIgnoresUnknownAndDuplicates(t *testing.T) {
	rs := NewRoleSet("Manager", "Chef", "Manager")
	assert.Equal(t, RoleSet{RoleManager}, rs)
	assert.True(t, Subject{Roles: NewRoleSet("Chef")}.IsCustomer())
}

func TestRoleResource(t *testing.T) {
	res, ok := RoleResource(RoleDeliveryCrew)
	assert.True(t, ok)
	assert.Equal(t, DeliveryCrewRole, res)

	_, ok = RoleResource(Role("Chef"))
	assert.False(t, ok)
}
