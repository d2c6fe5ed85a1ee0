package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Kariqs/littlelemon-api/initializers"
	"github.com/Kariqs/littlelemon-api/models"
	"github.com/Kariqs/littlelemon-api/policy"
	"github.com/Kariqs/littlelemon-api/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testNow = time.Date(2026, 10, 15, 12, 30, 0, 0, time.UTC)

type fixture struct {
	db      *gorm.DB
	users   *repository.UserRepository
	catalog *repository.CatalogRepository
	carts   *repository.CartRepository
	orders  *repository.OrderRepository

	orderSvc   *OrderService
	cartSvc    *CartService
	catalogSvc *CatalogService
	roleSvc    *RoleService
	userSvc    *UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := initializers.OpenDatabase(&initializers.Config{
		DBDriver: "sqlite",
		DBSource: "file:" + name + "?mode=memory&cache=shared&_foreign_keys=on",
		AppEnv:   "test",
	})
	require.NoError(t, err)
	require.NoError(t, initializers.SyncDatabase(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	f := &fixture{
		db:      db,
		users:   repository.NewUserRepository(db),
		catalog: repository.NewCatalogRepository(db),
		carts:   repository.NewCartRepository(db),
		orders:  repository.NewOrderRepository(db),
	}
	f.orderSvc = NewOrderService(db, f.orders, f.carts, f.users)
	f.orderSvc.Now = func() time.Time { return testNow }
	f.cartSvc = NewCartService(f.carts, f.catalog)
	f.catalogSvc = NewCatalogService(f.catalog, nil)
	f.catalogSvc.Now = func() time.Time { return testNow }
	f.roleSvc = NewRoleService(f.users)
	f.userSvc = NewUserService(f.users)
	return f
}

// principal creates a user holding roles and returns them as an
// authenticated principal.
func (f *fixture) principal(t *testing.T, username string, roles ...policy.Role) Principal {
	t.Helper()
	u := models.User{Username: username, Password: "x"}
	require.NoError(t, f.users.Create(context.Background(), &u))
	for _, role := range roles {
		_, err := f.users.AddToGroup(context.Background(), u.ID, role)
		require.NoError(t, err)
	}
	return Principal{UserID: u.ID, Username: username, Authenticated: true, Roles: roles}
}

func (f *fixture) superuser(t *testing.T, username string) Principal {
	t.Helper()
	u := models.User{Username: username, Password: "x", IsSuperuser: true}
	require.NoError(t, f.users.Create(context.Background(), &u))
	return Principal{UserID: u.ID, Username: username, Authenticated: true, Superuser: true}
}

func (f *fixture) menuItem(t *testing.T, title string, cents int64) models.MenuItem {
	t.Helper()
	var c models.Category
	require.NoError(t, f.db.Where(models.Category{Slug: "mains"}).
		Attrs(models.Category{Title: "Mains"}).
		FirstOrCreate(&c).Error)
	item := models.MenuItem{Title: title, Price: models.Cents(cents), CategoryID: c.ID}
	require.NoError(t, f.catalog.CreateMenuItem(context.Background(), &item))
	return item
}

func (f *fixture) addToCart(t *testing.T, p Principal, item models.MenuItem, qty int) {
	t.Helper()
	_, _, err := f.cartSvc.Add(context.Background(), p, models.CartLineInput{MenuItemID: item.ID, Quantity: qty})
	require.NoError(t, err)
}

func (f *fixture) placeOrder(t *testing.T, p Principal, item models.MenuItem, qty int) *models.Order {
	t.Helper()
	f.addToCart(t, p, item, qty)
	o, err := f.orderSvc.CreateFromCart(context.Background(), p)
	require.NoError(t, err)
	return o
}

func ptr[T any](v T) *T { return &v }
