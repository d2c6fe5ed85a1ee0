package services

import (
	"context"

	"github.com/Kariqs/littlelemon-api/models"
	"github.com/Kariqs/littlelemon-api/policy"
)

// Principal is the actor behind a request. The zero value is anonymous.
type Principal struct {
	UserID        uint
	Username      string
	Authenticated bool
	Superuser     bool
	Roles         policy.RoleSet
}

func (p Principal) Subject() policy.Subject {
	return policy.Subject{
		Authenticated: p.Authenticated,
		Superuser:     p.Superuser,
		Roles:         p.Roles,
	}
}

func (p Principal) decide(op policy.Operation, res policy.Resource) policy.Decision {
	return policy.Decide(p.Subject(), op, res)
}

// RoleLookup returns the roles a user holds.
type RoleLookup interface {
	RolesOf(ctx context.Context, userID uint) (policy.RoleSet, error)
}

// CatalogLookup returns the current state of a menu item.
type CatalogLookup interface {
	MenuItemByID(ctx context.Context, id uint) (*models.MenuItem, error)
}

// UserDirectory finds users and their roles.
type UserDirectory interface {
	RoleLookup
	ByID(ctx context.Context, id uint) (*models.User, error)
}
