package repository

import (
	"slices"
	"strings"

	"github.com/Kariqs/littlelemon-api/apperr"
	"github.com/Kariqs/littlelemon-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Query values below are immutable: every With* method returns a modified
// copy, so a base query can be shared between branches safely.

type SortKey struct {
	Column string
	Desc   bool
}

// ParseOrdering reads a comma separated list such as "-total,date" and maps
// each public field name onto a column through allowed.
func ParseOrdering(raw string, allowed map[string]string) ([]SortKey, error) {
	var keys []SortKey
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		desc := strings.HasPrefix(part, "-")
		name := strings.TrimPrefix(part, "-")
		column, ok := allowed[name]
		if !ok {
			return nil, apperr.Invalid("ordering", "cannot order by %q", name)
		}
		keys = append(keys, SortKey{Column: column, Desc: desc})
	}
	return keys, nil
}

func applySort(db *gorm.DB, keys []SortKey, tieBreak string) *gorm.DB {
	for _, k := range keys {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: k.Column, Raw: true}, Desc: k.Desc})
	}
	return db.Order(tieBreak)
}

// Page selects a window of a listing. A zero Limit means no pagination.
type Page struct {
	Number int
	Limit  int
}

const maxPageLimit = 100

func NewPage(number, limit int) Page {
	if limit <= 0 {
		return Page{}
	}
	if number < 1 {
		number = 1
	}
	return Page{Number: number, Limit: min(limit, maxPageLimit)}
}

func (p Page) Offset() int {
	if p.Limit == 0 {
		return 0
	}
	return (p.Number - 1) * p.Limit
}

func applyPage(db *gorm.DB, p Page) *gorm.DB {
	if p.Limit == 0 {
		return db
	}
	return db.Limit(p.Limit).Offset(p.Offset())
}

var OrderSortFields = map[string]string{
	"user__username":          "owner_user.username",
	"delivery_crew__username": "crew_user.username",
	"status":                  "orders.status",
	"total":                   "orders.total",
	"date":                    "orders.date",
}

type OrderQuery struct {
	owner        string
	deliveryCrew string
	date         *models.OrderDate
	total        *models.Money
	ownerID      uint
	assigneeID   uint
	sort         []SortKey
	page         Page
}

func NewOrderQuery() OrderQuery { return OrderQuery{} }

// WithOwner keeps orders placed by the user with this username.
func (q OrderQuery) WithOwner(username string) OrderQuery {
	q.owner = username
	return q
}

// WithDeliveryCrew keeps orders assigned to the user with this username.
func (q OrderQuery) WithDeliveryCrew(username string) OrderQuery {
	q.deliveryCrew = username
	return q
}

func (q OrderQuery) WithDate(d models.OrderDate) OrderQuery {
	q.date = &d
	return q
}

func (q OrderQuery) WithTotal(m models.Money) OrderQuery {
	q.total = &m
	return q
}

// OwnedBy scopes the query to one customer's orders.
func (q OrderQuery) OwnedBy(userID uint) OrderQuery {
	q.ownerID = userID
	return q
}

// AssignedTo scopes the query to one delivery crew member's orders.
func (q OrderQuery) AssignedTo(userID uint) OrderQuery {
	q.assigneeID = userID
	return q
}

func (q OrderQuery) OrderedBy(keys ...SortKey) OrderQuery {
	q.sort = append(slices.Clone(q.sort), keys...)
	return q
}

func (q OrderQuery) Paginate(p Page) OrderQuery {
	q.page = p
	return q
}

func (q OrderQuery) Page() Page { return q.page }

var MenuItemSortFields = map[string]string{
	"title":          "menu_items.title",
	"price":          "menu_items.price",
	"category__slug": "categories.slug",
}

type MenuItemQuery struct {
	categorySlug string
	price        *models.Money
	search       string
	sort         []SortKey
	page         Page
}

func NewMenuItemQuery() MenuItemQuery { return MenuItemQuery{} }

func (q MenuItemQuery) WithCategory(slug string) MenuItemQuery {
	q.categorySlug = slug
	return q
}

func (q MenuItemQuery) WithPrice(m models.Money) MenuItemQuery {
	q.price = &m
	return q
}

// WithSearch keeps items whose category slug starts with prefix.
func (q MenuItemQuery) WithSearch(prefix string) MenuItemQuery {
	q.search = prefix
	return q
}

func (q MenuItemQuery) OrderedBy(keys ...SortKey) MenuItemQuery {
	q.sort = append(slices.Clone(q.sort), keys...)
	return q
}

func (q MenuItemQuery) Paginate(p Page) MenuItemQuery {
	q.page = p
	return q
}

func (q MenuItemQuery) Page() Page { return q.page }

var CategorySortFields = map[string]string{
	"slug":  "categories.slug",
	"title": "categories.title",
}

type CategoryQuery struct {
	search string
	sort   []SortKey
}

func NewCategoryQuery() CategoryQuery { return CategoryQuery{} }

func (q CategoryQuery) WithSearch(prefix string) CategoryQuery {
	q.search = prefix
	return q
}

func (q CategoryQuery) OrderedBy(keys ...SortKey) CategoryQuery {
	q.sort = append(slices.Clone(q.sort), keys...)
	return q
}
