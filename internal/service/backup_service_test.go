package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"mokha/internal/domain"
	"mokha/internal/repository"
)

func newBackupService(env *testEnv) *BackupService {
	return NewBackupService(env.store, env.orders, env.customers, env.employees, env.settings, env.notifications, env.tx, zap.NewNop())
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newTestEnv(t)
	src.addCustomer(t, 150)
	seedOrder(t, src.orders, "ORD-1", domain.OrderStatusProcessing, nil)

	svc := newBackupService(src)
	svc.now = fixedClock(time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC))

	var buf bytes.Buffer
	filename, err := svc.Snapshot(ctx, &buf)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if filename != "pos-backup-2026-08-30.json" {
		t.Fatalf("filename: %s", filename)
	}

	dst := newTestEnv(t)
	if err := dst.store.ReplaceAll(ctx, nil); err != nil {
		t.Fatalf("wipe: %v", err)
	}
	if err := newBackupService(dst).Restore(ctx, &buf); err != nil {
		t.Fatalf("restore: %v", err)
	}

	products, _ := dst.store.List(ctx, repository.ProductFilter{})
	if len(products) != 3 {
		t.Fatalf("products restored: %d", len(products))
	}
	orders, _ := dst.orders.List(ctx)
	if len(orders) != 1 || orders[0].ID != "ORD-1" {
		t.Fatalf("orders restored: %v", orders)
	}
	customers, _ := dst.customers.List(ctx)
	if len(customers) != 1 || customers[0].LoyaltyPoints != 150 {
		t.Fatalf("customers restored: %v", customers)
	}
	settings, _ := dst.settings.Get(ctx)
	if !settings.TaxRate.Equal(dec("0.15")) {
		t.Fatalf("settings restored: %s", settings.TaxRate)
	}
}

func TestRestorePartialPayloadLeavesRestUnchanged(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	seedOrder(t, env.orders, "ORD-KEEP", domain.OrderStatusProcessing, nil)

	doc := `{
		"version": 1,
		"timestamp": "2026-08-30T10:00:00Z",
		"data": {
			"products": [{"id": 5, "name": {"en": "Only", "ar": "فقط"}, "category": "sweets", "basePrice": "1.5", "stock": 4, "lowStockThreshold": 5, "variants": []}],
			"settings": {"taxRate": "0.1", "shippingMethods": [], "loyaltySettings": {"pointsPerDollar": "1", "dollarsPerPoint": "0.01"}}
		}
	}`
	if err := newBackupService(env).Restore(ctx, strings.NewReader(doc)); err != nil {
		t.Fatalf("restore: %v", err)
	}

	products, _ := env.store.List(ctx, repository.ProductFilter{})
	if len(products) != 1 || products[0].ID != 5 {
		t.Fatalf("products replaced: %v", products)
	}
	orders, _ := env.orders.List(ctx)
	if len(orders) != 1 || orders[0].ID != "ORD-KEEP" {
		t.Fatalf("orders should be untouched: %v", orders)
	}
	settings, _ := env.settings.Get(ctx)
	if !settings.TaxRate.Equal(dec("0.1")) {
		t.Fatalf("settings not applied: %s", settings.TaxRate)
	}
	// low-stock list rebuilt from the restored catalog
	notes, _ := env.notifications.List(ctx)
	if len(notes) != 1 || notes[0].UniqueID != "product-5" {
		t.Fatalf("notifications not rescanned: %v", notes)
	}
}

func TestRestoreRejectsInvalidDocuments(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newBackupService(env)

	cases := []string{
		"not json at all",
		`{"version": 1, "data": {"settings": {"taxRate": "0.1"}}}`, // missing products
		`{"version": 1, "data": {"products": []}}`,                 // missing settings
	}
	for i, doc := range cases {
		if err := svc.Restore(ctx, strings.NewReader(doc)); err != ErrInvalidBackup {
			t.Fatalf("case %d: %v", i, err)
		}
	}

	// prior state untouched after a rejected restore
	products, _ := env.store.List(ctx, repository.ProductFilter{})
	if len(products) != 3 {
		t.Fatalf("state mutated by rejected restore: %d products", len(products))
	}
}
