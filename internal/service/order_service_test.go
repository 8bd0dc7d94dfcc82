package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"brewhouse/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func seedProduct(t *testing.T, db *gorm.DB, name string, price string, active bool) *model.Product {
	t.Helper()
	product := &model.Product{
		Name:      name,
		UnitPrice: decimal.RequireFromString(price),
		Active:    active,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return product
}

func createTestOrder(t *testing.T, svc OrderService, product *model.Product, qty int) *model.Order {
	t.Helper()
	order, err := svc.Create(context.Background(), uuid.NewString(), CreateOrderRequest{
		CustomerName: "Ingrid",
		Items:        []OrderItemRequest{{ProductID: product.ID.String(), Quantity: qty}},
	})
	if err != nil {
		t.Fatalf("failed to create order: %v", err)
	}
	return order
}

func TestCreateOrderPricesFromCatalog(t *testing.T) {
	db := setupTestDB(t, "order_create")
	svc := newTestOrderService(db)
	product := seedProduct(t, db, "Pale Ale", "6.50", true)

	order := createTestOrder(t, svc, product, 4)

	if order.Status != model.OrderStatusSubmitted {
		t.Errorf("expected status Submitted, got %q", order.Status)
	}
	if !order.TotalCost.Equal(decimal.RequireFromString("26.00")) {
		t.Errorf("expected total 26.00, got %s", order.TotalCost)
	}
	if len(order.Items) != 1 || order.Items[0].ProductName != "Pale Ale" {
		t.Fatalf("expected one snapshot item, got %+v", order.Items)
	}
}

func TestCreateOrderRejectsInactiveProduct(t *testing.T) {
	db := setupTestDB(t, "order_inactive")
	svc := newTestOrderService(db)
	product := seedProduct(t, db, "Retired Stout", "7.00", false)

	_, err := svc.Create(context.Background(), uuid.NewString(), CreateOrderRequest{
		CustomerName: "Ingrid",
		Items:        []OrderItemRequest{{ProductID: product.ID.String(), Quantity: 1}},
	})
	if err == nil {
		t.Fatal("expected inactive product to be rejected")
	}
}

func TestAdvanceWalksEveryStatusInOrder(t *testing.T) {
	db := setupTestDB(t, "order_advance")
	svc := newTestOrderService(db)
	product := seedProduct(t, db, "Pale Ale", "6.50", true)
	order := createTestOrder(t, svc, product, 1)

	want := []string{
		model.OrderStatusAwaitingPayment,
		model.OrderStatusConfirmed,
		model.OrderStatusInProduction,
		model.OrderStatusReady,
		model.OrderStatusDelivered,
	}
	actorID := uuid.NewString()
	for _, expected := range want {
		advanced, err := svc.Advance(context.Background(), actorID, order.ID.String())
		if err != nil {
			t.Fatalf("advance to %q failed: %v", expected, err)
		}
		if advanced.Status != expected {
			t.Fatalf("expected status %q, got %q", expected, advanced.Status)
		}
		if expected == model.OrderStatusConfirmed && !advanced.PaymentConfirmed {
			t.Error("expected payment_confirmed to be set on entering Confirmed")
		}
	}
}

func TestAdvanceTerminalOrderIsRejectedWithoutWrite(t *testing.T) {
	db := setupTestDB(t, "order_terminal")
	svc := newTestOrderService(db)
	product := seedProduct(t, db, "Pale Ale", "6.50", true)
	order := createTestOrder(t, svc, product, 1)

	actorID := uuid.NewString()
	for i := 0; i < 5; i++ {
		if _, err := svc.Advance(context.Background(), actorID, order.ID.String()); err != nil {
			t.Fatalf("advance %d failed: %v", i, err)
		}
	}

	before, err := svc.Get(context.Background(), order.ID.String())
	if err != nil {
		t.Fatalf("failed to reload order: %v", err)
	}

	if _, err := svc.Advance(context.Background(), actorID, order.ID.String()); !errors.Is(err, ErrOrderTerminal) {
		t.Fatalf("expected ErrOrderTerminal, got %v", err)
	}

	after, err := svc.Get(context.Background(), order.ID.String())
	if err != nil {
		t.Fatalf("failed to reload order: %v", err)
	}
	if after.Status != model.OrderStatusDelivered {
		t.Errorf("expected status unchanged, got %q", after.Status)
	}
	if !after.StatusUpdatedAt.Equal(before.StatusUpdatedAt) {
		t.Error("expected status_updated_at unchanged after rejected advance")
	}
}

func TestCancelRequiresReason(t *testing.T) {
	db := setupTestDB(t, "order_cancel_reason")
	svc := newTestOrderService(db)
	product := seedProduct(t, db, "Pale Ale", "6.50", true)
	order := createTestOrder(t, svc, product, 1)

	if _, err := svc.Cancel(context.Background(), uuid.NewString(), order.ID.String(), "   "); !errors.Is(err, ErrCancelReason) {
		t.Fatalf("expected ErrCancelReason, got %v", err)
	}

	reloaded, err := svc.Get(context.Background(), order.ID.String())
	if err != nil {
		t.Fatalf("failed to reload order: %v", err)
	}
	if reloaded.Status != model.OrderStatusSubmitted {
		t.Errorf("expected order untouched, got status %q", reloaded.Status)
	}
}

func TestCancelAppendsReasonToNotes(t *testing.T) {
	db := setupTestDB(t, "order_cancel_notes")
	svc := newTestOrderService(db)
	product := seedProduct(t, db, "Pale Ale", "6.50", true)

	order, err := svc.Create(context.Background(), uuid.NewString(), CreateOrderRequest{
		CustomerName: "Ingrid",
		Notes:        "leave at the back door",
		Items:        []OrderItemRequest{{ProductID: product.ID.String(), Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("failed to create order: %v", err)
	}

	cancelled, err := svc.Cancel(context.Background(), uuid.NewString(), order.ID.String(), "customer changed their mind")
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	if cancelled.Status != model.OrderStatusCancelled {
		t.Errorf("expected Cancelled, got %q", cancelled.Status)
	}
	if !strings.HasPrefix(cancelled.Notes, "leave at the back door") {
		t.Errorf("expected prior notes preserved, got %q", cancelled.Notes)
	}
	if !strings.Contains(cancelled.Notes, "[CANCELLED] customer changed their mind") {
		t.Errorf("expected cancellation marker in notes, got %q", cancelled.Notes)
	}
}

func TestClaimFusesAssignmentAndProduction(t *testing.T) {
	db := setupTestDB(t, "order_claim")
	svc := newTestOrderService(db)
	product := seedProduct(t, db, "Pale Ale", "6.50", true)
	order := createTestOrder(t, svc, product, 1)

	actorID := uuid.NewString()
	// Submitted → Awaiting Payment → Confirmed
	for i := 0; i < 2; i++ {
		if _, err := svc.Advance(context.Background(), actorID, order.ID.String()); err != nil {
			t.Fatalf("advance failed: %v", err)
		}
	}

	brewer := uuid.NewString()
	claimed, err := svc.Claim(context.Background(), brewer, order.ID.String())
	if err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if claimed.Status != model.OrderStatusInProduction {
		t.Errorf("expected In Production after claim, got %q", claimed.Status)
	}
	if claimed.AssignedTo == nil || claimed.AssignedTo.String() != brewer {
		t.Errorf("expected assignee %s, got %v", brewer, claimed.AssignedTo)
	}

	// A second brewer cannot claim an assigned order even after release flow checks
	if _, err := svc.Claim(context.Background(), uuid.NewString(), order.ID.String()); err == nil {
		t.Fatal("expected claim on In Production order to fail")
	}
}

func TestReleaseRequiresCurrentAssignee(t *testing.T) {
	db := setupTestDB(t, "order_release")
	svc := newTestOrderService(db)
	product := seedProduct(t, db, "Pale Ale", "6.50", true)
	order := createTestOrder(t, svc, product, 1)

	actorID := uuid.NewString()
	for i := 0; i < 2; i++ {
		if _, err := svc.Advance(context.Background(), actorID, order.ID.String()); err != nil {
			t.Fatalf("advance failed: %v", err)
		}
	}

	brewer := uuid.NewString()
	if _, err := svc.Claim(context.Background(), brewer, order.ID.String()); err != nil {
		t.Fatalf("claim failed: %v", err)
	}

	if _, err := svc.Release(context.Background(), uuid.NewString(), order.ID.String()); !errors.Is(err, ErrNotCurrentAssignee) {
		t.Fatalf("expected ErrNotCurrentAssignee, got %v", err)
	}

	released, err := svc.Release(context.Background(), brewer, order.ID.String())
	if err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if released.Status != model.OrderStatusConfirmed {
		t.Errorf("expected Confirmed after release, got %q", released.Status)
	}
	if released.AssignedTo != nil {
		t.Errorf("expected assignee cleared, got %v", released.AssignedTo)
	}
}

func TestCreatePublicAlwaysEntersSubmitted(t *testing.T) {
	db := setupTestDB(t, "order_public")
	svc := newTestOrderService(db)
	product := seedProduct(t, db, "Pale Ale", "6.50", true)

	order, err := svc.CreatePublic(context.Background(), CreateOrderRequest{
		CustomerName: "Walk-in",
		Status:       model.OrderStatusConfirmed, // must be ignored
		Items:        []OrderItemRequest{{ProductID: product.ID.String(), Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("public create failed: %v", err)
	}
	if order.Status != model.OrderStatusSubmitted {
		t.Errorf("expected public order to enter Submitted, got %q", order.Status)
	}

	if _, err := svc.CreatePublic(context.Background(), CreateOrderRequest{
		CustomerName: "   ",
		Items:        []OrderItemRequest{{ProductID: product.ID.String(), Quantity: 1}},
	}); err == nil {
		t.Fatal("expected blank customer name to be rejected")
	}
}
