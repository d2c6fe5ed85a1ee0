package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/Kariqs/littlelemon-api/apperr"
	"github.com/Kariqs/littlelemon-api/models"
	"github.com/Kariqs/littlelemon-api/policy"
	"github.com/Kariqs/littlelemon-api/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// errCartChanged aborts an order when the cart clear does not remove
// exactly the lines that were converted.
var errCartChanged = errors.New("cart changed while the order was being placed")

var maxOrderTotal = decimal.New(999999999999, -2)

type OrderService struct {
	DB     *gorm.DB
	Orders *repository.OrderRepository
	Carts  *repository.CartRepository
	Users  UserDirectory
	Now    func() time.Time
}

func NewOrderService(db *gorm.DB, orders *repository.OrderRepository, carts *repository.CartRepository, users UserDirectory) *OrderService {
	return &OrderService{DB: db, Orders: orders, Carts: carts, Users: users, Now: time.Now}
}

// CreateFromCart turns the principal's cart into an order. The cart read,
// the order and item inserts and the cart clear commit together or not at
// all. Cart rows stay locked for the whole unit so a concurrent call for
// the same user waits and then finds the cart empty.
func (s *OrderService) CreateFromCart(ctx context.Context, p Principal) (*models.Order, error) {
	if err := p.decide(policy.Create, policy.Order).Err(); err != nil {
		return nil, err
	}

	var order *models.Order
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lines, err := s.Carts.LockLines(tx, p.UserID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return apperr.ErrEmptyCart
		}

		o := &models.Order{
			UserID: p.UserID,
			Status: models.OrderPending,
			Date:   models.NewOrderDate(s.Now()),
		}
		if err := s.Orders.Create(tx, o); err != nil {
			return err
		}

		var total models.Money
		for _, line := range lines {
			item := models.OrderItem{
				OrderID:    o.ID,
				MenuItemID: line.MenuItemID,
				Quantity:   line.Quantity,
				UnitPrice:  line.UnitPrice,
				Price:      line.Price,
			}
			if err := s.Orders.CreateItem(tx, &item); err != nil {
				return err
			}
			o.OrderItems = append(o.OrderItems, item)
			total = total.Add(item.Price)
		}

		if err := s.Orders.SetTotal(tx, o.ID, total); err != nil {
			return err
		}
		o.Total = total

		cleared, err := s.Carts.Clear(tx, p.UserID)
		if err != nil {
			return err
		}
		if cleared != int64(len(lines)) {
			return errCartChanged
		}

		order = o
		return nil
	})
	if errors.Is(err, apperr.ErrEmptyCart) {
		return nil, err
	}
	if err != nil {
		return nil, &apperr.TransactionFailedError{Op: "create order", Err: err}
	}
	return order, nil
}

// visible reports whether the decided scope lets p see o.
func visible(d policy.Decision, p Principal, o *models.Order) bool {
	switch d.Scope {
	case policy.ScopeAll:
		return true
	case policy.ScopeAssigned:
		return o.DeliveryCrewID != nil && *o.DeliveryCrewID == p.UserID
	case policy.ScopeOwn:
		return o.UserID == p.UserID
	default:
		return false
	}
}

func (s *OrderService) Get(ctx context.Context, p Principal, id uint) (*models.Order, error) {
	d := p.decide(policy.Read, policy.Order)
	if err := d.Err(); err != nil {
		return nil, err
	}

	o, err := s.Orders.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !visible(d, p, o) {
		return nil, fmt.Errorf("order %d: %w", id, apperr.ErrNotAuthorized)
	}
	return o, nil
}

// List applies the caller's filters and then narrows the result to the
// orders the principal may see.
func (s *OrderService) List(ctx context.Context, p Principal, q repository.OrderQuery) ([]models.Order, int64, error) {
	d := p.decide(policy.List, policy.Order)
	if err := d.Err(); err != nil {
		return nil, 0, err
	}

	switch d.Scope {
	case policy.ScopeAll:
	case policy.ScopeAssigned:
		q = q.AssignedTo(p.UserID)
	case policy.ScopeOwn:
		q = q.OwnedBy(p.UserID)
	default:
		return nil, 0, apperr.ErrNotAuthorized
	}
	return s.Orders.List(ctx, q)
}

// Update changes an order from a JSON object payload. A full update
// (partial false) must carry user, total and date. A partial update may
// carry any non-empty subset of the fields the principal is allowed to
// touch. The total is taken as given and never recomputed.
func (s *OrderService) Update(ctx context.Context, p Principal, id uint, payload map[string]json.RawMessage, partial bool) (*models.Order, error) {
	op := policy.Update
	if partial {
		op = policy.PartialUpdate
	}
	d := p.decide(op, policy.Order)
	if err := d.Err(); err != nil {
		return nil, err
	}

	o, err := s.Orders.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !visible(d, p, o) {
		return nil, fmt.Errorf("order %d: %w", id, apperr.ErrNotAuthorized)
	}

	if err := checkFieldSet(d, payload); err != nil {
		return nil, err
	}
	if !partial {
		for _, field := range []string{policy.FieldUser, policy.FieldTotal, policy.FieldDate} {
			if _, ok := payload[field]; !ok {
				return nil, apperr.Invalid(field, "this field is required")
			}
		}
	}

	if err := s.applyOrderFields(ctx, o, payload); err != nil {
		return nil, err
	}
	if err := s.Orders.Update(ctx, o); err != nil {
		return nil, err
	}
	return s.Orders.ByID(ctx, id)
}

func checkFieldSet(d policy.Decision, payload map[string]json.RawMessage) error {
	if len(payload) == 0 {
		return fmt.Errorf("%w: no fields given", apperr.ErrInvalidFieldSet)
	}

	var rejected []string
	for field := range payload {
		if !slices.Contains(policy.OrderFields, field) || !d.Permits(field) {
			rejected = append(rejected, field)
		}
	}
	if len(rejected) == 0 {
		return nil
	}
	sort.Strings(rejected)
	if d.Fields != nil {
		return fmt.Errorf("%w: only %s may be changed, got %s",
			apperr.ErrInvalidFieldSet, strings.Join(d.Fields, ", "), strings.Join(rejected, ", "))
	}
	return fmt.Errorf("%w: unknown field(s) %s", apperr.ErrInvalidFieldSet, strings.Join(rejected, ", "))
}

// applyOrderFields decodes and checks every payload field before touching o.
func (s *OrderService) applyOrderFields(ctx context.Context, o *models.Order, payload map[string]json.RawMessage) error {
	next := *o

	if raw, ok := payload[policy.FieldUser]; ok {
		var userID uint
		if err := json.Unmarshal(raw, &userID); err != nil || userID == 0 {
			return apperr.Invalid(policy.FieldUser, "expected a user id")
		}
		if _, err := s.Users.ByID(ctx, userID); err != nil {
			if errors.Is(err, apperr.ErrUserNotFound) {
				return apperr.Invalid(policy.FieldUser, "user %d does not exist", userID)
			}
			return err
		}
		next.UserID = userID
	}

	if raw, ok := payload[policy.FieldDeliveryCrew]; ok {
		crewID, err := s.decodeDeliveryCrew(ctx, raw)
		if err != nil {
			return err
		}
		next.DeliveryCrewID = crewID
	}

	if raw, ok := payload[policy.FieldStatus]; ok {
		var status models.OrderStatus
		if err := json.Unmarshal(raw, &status); err != nil {
			return apperr.Invalid(policy.FieldStatus, "must be a boolean")
		}
		next.Status = status
	}

	if raw, ok := payload[policy.FieldTotal]; ok {
		var total models.Money
		if isNull(raw) || json.Unmarshal(raw, &total) != nil {
			return apperr.Invalid(policy.FieldTotal, "a valid number is required")
		}
		if err := validatePrice(policy.FieldTotal, total, maxOrderTotal); err != nil {
			return err
		}
		next.Total = total
	}

	if raw, ok := payload[policy.FieldDate]; ok {
		var date models.OrderDate
		if isNull(raw) || json.Unmarshal(raw, &date) != nil {
			return apperr.Invalid(policy.FieldDate, "date has wrong format, use YYYY-MM-DD")
		}
		next.Date = date
	}

	*o = next
	return nil
}

// decodeDeliveryCrew accepts null to unassign, or the id of a user holding
// the delivery crew role.
func (s *OrderService) decodeDeliveryCrew(ctx context.Context, raw json.RawMessage) (*uint, error) {
	if isNull(raw) {
		return nil, nil
	}

	var crewID uint
	if err := json.Unmarshal(raw, &crewID); err != nil || crewID == 0 {
		return nil, apperr.Invalid(policy.FieldDeliveryCrew, "expected a user id or null")
	}
	if _, err := s.Users.ByID(ctx, crewID); err != nil {
		if errors.Is(err, apperr.ErrUserNotFound) {
			return nil, apperr.Invalid(policy.FieldDeliveryCrew, "user %d does not exist", crewID)
		}
		return nil, err
	}

	roles, err := s.Users.RolesOf(ctx, crewID)
	if err != nil {
		return nil, err
	}
	if !roles.Has(policy.RoleDeliveryCrew) {
		return nil, apperr.Invalid(policy.FieldDeliveryCrew, "user %d is not in the %s group", crewID, policy.RoleDeliveryCrew)
	}
	return &crewID, nil
}

func (s *OrderService) Delete(ctx context.Context, p Principal, id uint) error {
	if err := p.decide(policy.Delete, policy.Order).Err(); err != nil {
		return err
	}
	return s.Orders.Delete(ctx, id)
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
