package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OrderStatus is the two-state delivery flag of an order. On the wire it
// stays a boolean: false while pending, true once delivered.
type OrderStatus uint8

const (
	OrderPending OrderStatus = iota
	OrderDelivered
)

func (s OrderStatus) String() string {
	if s == OrderDelivered {
		return "delivered"
	}
	return "pending"
}

func (s OrderStatus) Delivered() bool { return s == OrderDelivered }

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Delivered())
}

// UnmarshalJSON accepts a boolean, 0/1, or the names "pending"/"delivered".
func (s *OrderStatus) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch val := v.(type) {
	case bool:
		*s = statusFromBool(val)
		return nil
	case float64:
		if val == 0 || val == 1 {
			*s = statusFromBool(val == 1)
			return nil
		}
	case string:
		switch strings.ToLower(val) {
		case "pending", "false", "0":
			*s = OrderPending
			return nil
		case "delivered", "true", "1":
			*s = OrderDelivered
			return nil
		}
	}
	return fmt.Errorf("invalid order status %s", string(b))
}

func statusFromBool(delivered bool) OrderStatus {
	if delivered {
		return OrderDelivered
	}
	return OrderPending
}
