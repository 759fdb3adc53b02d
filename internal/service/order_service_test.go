package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"mokha/internal/domain"
	"mokha/internal/repository"
)

func seedOrder(t *testing.T, orders *repository.MemoryOrders, id string, status domain.OrderStatus, customerID *int64) {
	t.Helper()
	if err := orders.Create(context.Background(), &domain.Order{ID: id, Status: status, CustomerID: customerID}); err != nil {
		t.Fatalf("seed order: %v", err)
	}
}

func TestUpdateStatusAllowedTransitions(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewOrderService(env.orders, zap.NewNop())
	seedOrder(t, env.orders, "ORD-1", domain.OrderStatusProcessing, nil)

	o, err := svc.UpdateStatus(ctx, "ORD-1", domain.OrderStatusShipped)
	if err != nil {
		t.Fatalf("ship: %v", err)
	}
	if o.Status != domain.OrderStatusShipped {
		t.Fatalf("status: %s", o.Status)
	}
	if _, err := svc.UpdateStatus(ctx, "ORD-1", domain.OrderStatusDelivered); err != nil {
		t.Fatalf("deliver: %v", err)
	}
}

func TestUpdateStatusRejectsSkipsAndTerminalStates(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewOrderService(env.orders, zap.NewNop())

	seedOrder(t, env.orders, "ORD-1", domain.OrderStatusProcessing, nil)
	if _, err := svc.UpdateStatus(ctx, "ORD-1", domain.OrderStatusDelivered); err != ErrInvalidState {
		t.Fatalf("skip to delivered: %v", err)
	}

	seedOrder(t, env.orders, "ORD-2", domain.OrderStatusDelivered, nil)
	if _, err := svc.UpdateStatus(ctx, "ORD-2", domain.OrderStatusCancelled); err != ErrInvalidState {
		t.Fatalf("cancel delivered: %v", err)
	}

	seedOrder(t, env.orders, "ORD-3", domain.OrderStatusCancelled, nil)
	if _, err := svc.UpdateStatus(ctx, "ORD-3", domain.OrderStatusShipped); err != ErrInvalidState {
		t.Fatalf("revive cancelled: %v", err)
	}
}

func TestUpdateStatusAllowsCancelFromShipped(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewOrderService(env.orders, zap.NewNop())
	seedOrder(t, env.orders, "ORD-1", domain.OrderStatusShipped, nil)

	if _, err := svc.UpdateStatus(ctx, "ORD-1", domain.OrderStatusCancelled); err != nil {
		t.Fatalf("cancel shipped: %v", err)
	}
}

func TestUpdateStatusValidatesInput(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewOrderService(env.orders, zap.NewNop())

	if _, err := svc.UpdateStatus(ctx, "", domain.OrderStatusShipped); err != ErrInvalidInput {
		t.Fatalf("empty id: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, "ORD-1", domain.OrderStatus("Lost")); err != ErrInvalidInput {
		t.Fatalf("unknown status: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, "missing", domain.OrderStatusShipped); err != repository.ErrNotFound {
		t.Fatalf("missing order: %v", err)
	}
}

func TestListForCustomer(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewOrderService(env.orders, zap.NewNop())

	alice, bob := int64(1), int64(2)
	seedOrder(t, env.orders, "ORD-1", domain.OrderStatusProcessing, &alice)
	seedOrder(t, env.orders, "ORD-2", domain.OrderStatusProcessing, &bob)
	seedOrder(t, env.orders, "ORD-3", domain.OrderStatusProcessing, nil)
	seedOrder(t, env.orders, "ORD-4", domain.OrderStatusProcessing, &alice)

	got, err := svc.ListForCustomer(ctx, alice)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != "ORD-4" || got[1].ID != "ORD-1" {
		t.Fatalf("expected alice's orders newest first, got %v", got)
	}
}
