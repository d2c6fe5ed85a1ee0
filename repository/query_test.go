package repository

import (
	"testing"

	"github.com/Kariqs/littlelemon-api/apperr"
	"github.com/Kariqs/littlelemon-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrdering(t *testing.T) {
	keys, err := ParseOrdering("-total, date,user__username", OrderSortFields)
	require.NoError(t, err)
	assert.Equal(t, []SortKey{
		{Column: "orders.total", Desc: true},
		{Column: "orders.date"},
		{Column: "owner_user.username"},
	}, keys)

	keys, err = ParseOrdering("", OrderSortFields)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestParseOrderingRejectsUnknownField(t *testing.T) {
	_, err := ParseOrdering("price", OrderSortFields)
	var validation *apperr.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "ordering", validation.Field)
}

func TestOrderQueryIsImmutable(t *testing.T) {
	base := NewOrderQuery().WithOwner("alice").OrderedBy(SortKey{Column: "orders.date"})

	scoped := base.AssignedTo(7).OrderedBy(SortKey{Column: "orders.total", Desc: true})
	dated := base.WithDate(models.NewOrderDate(testDay))

	assert.Zero(t, base.assigneeID)
	assert.Nil(t, base.date)
	assert.Len(t, base.sort, 1)
	assert.Len(t, scoped.sort, 2)
	assert.Len(t, dated.sort, 1)
	assert.Equal(t, uint(7), scoped.assigneeID)
	assert.Equal(t, "alice", dated.owner)
}

func TestMenuItemQueryIsImmutable(t *testing.T) {
	base := NewMenuItemQuery().WithCategory("mains")
	cheap := base.WithPrice(models.Cents(500))

	assert.Nil(t, base.price)
	require.NotNil(t, cheap.price)
	assert.Equal(t, "mains", cheap.categorySlug)
}

func TestNewPage(t *testing.T) {
	assert.Equal(t, Page{}, NewPage(3, 0))
	assert.Equal(t, Page{Number: 1, Limit: 10}, NewPage(0, 10))
	assert.Equal(t, maxPageLimit, NewPage(1, 1000).Limit)
	assert.Equal(t, 20, NewPage(3, 10).Offset())
	assert.Zero(t, Page{}.Offset())
}
