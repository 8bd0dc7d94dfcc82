package model

import "testing"

func TestNextOrderStatus(t *testing.T) {
	tests := []struct {
		from string
		want string
		ok   bool
	}{
		{OrderStatusSubmitted, OrderStatusAwaitingPayment, true},
		{OrderStatusAwaitingPayment, OrderStatusConfirmed, true},
		{OrderStatusConfirmed, OrderStatusInProduction, true},
		{OrderStatusInProduction, OrderStatusReady, true},
		{OrderStatusReady, OrderStatusDelivered, true},
		{OrderStatusDelivered, "", false},
		{OrderStatusCancelled, "", false},
		{"Bogus", "", false},
	}

	for _, tt := range tests {
		got, ok := NextOrderStatus(tt.from)
		if got != tt.want || ok != tt.ok {
			t.Errorf("NextOrderStatus(%q) = (%q, %v), want (%q, %v)", tt.from, got, ok, tt.want, tt.ok)
		}
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	for _, status := range []string{OrderStatusDelivered, OrderStatusCancelled} {
		if !OrderStatusTerminal(status) {
			t.Errorf("expected %q to be terminal", status)
		}
	}
	for _, status := range []string{OrderStatusSubmitted, OrderStatusAwaitingPayment, OrderStatusConfirmed, OrderStatusInProduction, OrderStatusReady} {
		if OrderStatusTerminal(status) {
			t.Errorf("expected %q not to be terminal", status)
		}
	}
}

func TestOrderAssignable(t *testing.T) {
	for _, status := range []string{OrderStatusConfirmed, OrderStatusInProduction} {
		if !OrderAssignable(status) {
			t.Errorf("expected %q to be assignable", status)
		}
	}
	for _, status := range []string{OrderStatusSubmitted, OrderStatusAwaitingPayment, OrderStatusReady, OrderStatusDelivered, OrderStatusCancelled} {
		if OrderAssignable(status) {
			t.Errorf("expected %q not to be assignable", status)
		}
	}
}
