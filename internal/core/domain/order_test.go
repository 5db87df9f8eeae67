package domain

import "testing"

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	allowed := map[OrderStatus][]OrderStatus{
		OrderPending: {OrderPaid, OrderCancelled},
		OrderPaid:    {OrderShipped, OrderCancelled},
		OrderShipped: {OrderDelivered},
	}
	all := []OrderStatus{OrderPending, OrderPaid, OrderShipped, OrderDelivered, OrderCancelled}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			if got := from.CanTransitionTo(to); got != want {
				t.Errorf("%s -> %s: got %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestOrderStatus_TerminalStates(t *testing.T) {
	for _, terminal := range []OrderStatus{OrderDelivered, OrderCancelled} {
		for _, to := range []OrderStatus{OrderPending, OrderPaid, OrderShipped, OrderDelivered, OrderCancelled} {
			if terminal.CanTransitionTo(to) {
				t.Errorf("%s is terminal but allows transition to %s", terminal, to)
			}
		}
	}
}

func TestOrderStatus_Valid(t *testing.T) {
	for _, s := range []OrderStatus{OrderPending, OrderPaid, OrderShipped, OrderDelivered, OrderCancelled} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if OrderStatus("REFUNDED").Valid() {
		t.Error("unknown status should not be valid")
	}
}
