package service

import (
	"context"
	"testing"

	"mokha/internal/domain"
)

func TestInventoryReportAggregates(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	if err := env.settings.ReplaceCategories(ctx, []domain.Category{
		{Key: "hot_drinks", Name: domain.LocalizedString{EN: "Hot Drinks", AR: "مشروبات ساخنة"}},
	}); err != nil {
		t.Fatalf("categories: %v", err)
	}
	if err := env.orders.ReplaceAll(ctx, []domain.Order{
		{ID: "ORD-1", Status: domain.OrderStatusProcessing, Total: dec("13.05")},
		{ID: "ORD-2", Status: domain.OrderStatusDelivered, Total: dec("6.95")},
	}); err != nil {
		t.Fatalf("orders: %v", err)
	}

	svc := NewReportService(env.store, env.orders, env.settings)
	report, err := svc.Inventory(ctx)
	if err != nil {
		t.Fatalf("inventory: %v", err)
	}

	if !report.Revenue.Equal(dec("20")) {
		t.Fatalf("revenue: %s", report.Revenue)
	}

	var hot *CategoryStat
	for i := range report.Categories {
		if report.Categories[i].Key == "hot_drinks" {
			hot = &report.Categories[i]
		}
	}
	if hot == nil {
		t.Fatalf("hot_drinks stat missing: %v", report.Categories)
	}
	if hot.Name != "Hot Drinks" {
		t.Fatalf("category name: %s", hot.Name)
	}
	// espresso 100 units + cappuccino variants 30+50+20
	if hot.Stock != 200 {
		t.Fatalf("stock: %d", hot.Stock)
	}
	// 100*2.50 + 30*3.00 + 50*3.50 + 20*4.25
	if !hot.Value.Equal(dec("600")) {
		t.Fatalf("value: %s", hot.Value)
	}

	// bakery key has no display name registered: falls back to the raw key
	for _, stat := range report.Categories {
		if stat.Key == "bakery" && stat.Name != "bakery" {
			t.Fatalf("fallback name: %s", stat.Name)
		}
	}
}
