package services

import (
	"context"
	"testing"

	"github.com/Kariqs/littlelemon-api/apperr"
	"github.com/Kariqs/littlelemon-api/models"
	"github.com/Kariqs/littlelemon-api/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSameItemTwiceKeepsOneLine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	customer := f.principal(t, "alice")
	pasta := f.menuItem(t, "Pasta", 900)

	line, created, err := f.cartSvc.Add(ctx, customer, models.CartLineInput{MenuItemID: pasta.ID, Quantity: 1})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "9.00", line.Price.String())

	line, created, err = f.cartSvc.Add(ctx, customer, models.CartLineInput{MenuItemID: pasta.ID, Quantity: 2})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 3, line.Quantity)
	assert.Equal(t, "27.00", line.Price.String())

	lines, subtotal, err := f.cartSvc.Lines(ctx, customer)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
	assert.Equal(t, "27.00", subtotal.String())
}

func TestAddSnapshotsCurrentPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	customer := f.principal(t, "alice")
	pasta := f.menuItem(t, "Pasta", 900)
	f.addToCart(t, customer, pasta, 1)

	pasta.Price = models.Cents(1000)
	require.NoError(t, f.catalog.SaveMenuItem(ctx, &pasta))

	line, _, err := f.cartSvc.Add(ctx, customer, models.CartLineInput{MenuItemID: pasta.ID, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, "10.00", line.UnitPrice.String())
	assert.Equal(t, "20.00", line.Price.String())
}

func TestAddRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	customer := f.principal(t, "alice")

	var validation *apperr.ValidationError
	_, _, err := f.cartSvc.Add(ctx, customer, models.CartLineInput{MenuItemID: 42, Quantity: 1})
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "menuitem", validation.Field)

	pasta := f.menuItem(t, "Pasta", 900)
	_, _, err = f.cartSvc.Add(ctx, customer, models.CartLineInput{MenuItemID: pasta.ID, Quantity: 0})
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "quantity", validation.Field)
}

func TestCartIsCustomerOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pasta := f.menuItem(t, "Pasta", 900)

	for _, p := range []Principal{
		f.principal(t, "mia", policy.RoleManager),
		f.principal(t, "dave", policy.RoleDeliveryCrew),
	} {
		_, _, err := f.cartSvc.Add(ctx, p, models.CartLineInput{MenuItemID: pasta.ID, Quantity: 1})
		assert.ErrorIs(t, err, apperr.ErrNotAuthorized)
		_, _, err = f.cartSvc.Lines(ctx, p)
		assert.ErrorIs(t, err, apperr.ErrNotAuthorized)
	}

	_, _, err := f.cartSvc.Lines(ctx, Principal{})
	assert.ErrorIs(t, err, apperr.ErrNotAuthenticated)
}

func TestClearAndRemove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.principal(t, "alice")
	bob := f.principal(t, "bob")
	pasta := f.menuItem(t, "Pasta", 900)
	soup := f.menuItem(t, "Soup", 450)

	f.addToCart(t, alice, pasta, 1)
	f.addToCart(t, alice, soup, 1)
	f.addToCart(t, bob, pasta, 1)

	require.NoError(t, f.cartSvc.Remove(ctx, alice, soup.ID))
	assert.ErrorIs(t, f.cartSvc.Remove(ctx, alice, soup.ID), apperr.ErrNotFound)

	n, err := f.cartSvc.Clear(ctx, alice)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	lines, _, err := f.cartSvc.Lines(ctx, bob)
	require.NoError(t, err)
	assert.Len(t, lines, 1, "other carts are untouched")
}
