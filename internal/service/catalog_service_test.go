package service

import (
	"context"
	"strings"
	"testing"

	"mokha/internal/catalog"
	"mokha/internal/domain"
	"mokha/internal/repository"
)

func TestCreateFillsVariantIDs(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	p, err := env.catalog.Create(ctx, domain.Product{
		Name:      domain.LocalizedString{EN: "Iced Latte", AR: "لاتيه مثلج"},
		Category:  "cold_drinks",
		BasePrice: dec("4.50"),
		Variants: []domain.Variant{
			{Name: domain.LocalizedString{EN: "Extra Shot", AR: "جرعة إضافية"}, Stock: 10},
			{ID: "keep-me", Name: domain.LocalizedString{EN: "Plain", AR: "سادة"}, Stock: 10},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Variants[0].ID != "extra-shot" {
		t.Fatalf("slugged id: %s", p.Variants[0].ID)
	}
	if p.Variants[1].ID != "keep-me" {
		t.Fatalf("existing id overwritten: %s", p.Variants[1].ID)
	}
}

func TestCreateRejectsInvalidProduct(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	bad := []domain.Product{
		{Name: domain.LocalizedString{EN: "", AR: "x"}, Category: "c", BasePrice: dec("1")},
		{Name: domain.LocalizedString{EN: "x", AR: "x"}, Category: "", BasePrice: dec("1")},
		{Name: domain.LocalizedString{EN: "x", AR: "x"}, Category: "c", BasePrice: dec("-1")},
		{Name: domain.LocalizedString{EN: "x", AR: "x"}, Category: "c", BasePrice: dec("1"), Stock: -1},
	}
	for i, p := range bad {
		if _, err := env.catalog.Create(ctx, p); err != ErrInvalidInput {
			t.Fatalf("case %d: %v", i, err)
		}
	}
}

func TestDeleteRescansNotifications(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	// croissant (301) sits above threshold; pull it low, then delete it
	if err := env.catalog.BulkStockUpdate(ctx, []StockUpdate{{ProductID: 301, NewStock: 2}}); err != nil {
		t.Fatalf("stock update: %v", err)
	}
	notes, _ := env.notifications.List(ctx)
	if len(notes) != 1 {
		t.Fatalf("expected one notification, got %v", notes)
	}

	if err := env.catalog.Delete(ctx, 301); err != nil {
		t.Fatalf("delete: %v", err)
	}
	notes, _ = env.notifications.List(ctx)
	if len(notes) != 0 {
		t.Fatalf("stale notification survived delete: %v", notes)
	}
}

func TestToggleFavorite(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	on, err := env.catalog.ToggleFavorite(ctx, 101)
	if err != nil || !on {
		t.Fatalf("first toggle: %v %v", on, err)
	}
	off, err := env.catalog.ToggleFavorite(ctx, 101)
	if err != nil || off {
		t.Fatalf("second toggle: %v %v", off, err)
	}
	if _, err := env.catalog.ToggleFavorite(ctx, 999); err != repository.ErrNotFound {
		t.Fatalf("unknown product: %v", err)
	}
}

func TestBulkDeleteProductWinsOverVariant(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	err := env.catalog.BulkDelete(ctx, []Deletion{
		{ProductID: 102, VariantID: "md"},
		{ProductID: 102},
	})
	if err != nil {
		t.Fatalf("bulk delete: %v", err)
	}
	if _, err := env.store.GetByID(ctx, 102); err != repository.ErrNotFound {
		t.Fatalf("product 102 should be gone: %v", err)
	}
}

func TestBulkStockUpdateRejectsNegative(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	err := env.catalog.BulkStockUpdate(ctx, []StockUpdate{{ProductID: 101, NewStock: -1}})
	if err != ErrInvalidInput {
		t.Fatalf("negative stock: %v", err)
	}
}

func TestImportAppendsNewProducts(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	feed := "Name,cents,Department,Upc\nMatcha Latte,550,Cold Drinks,900\nEspresso,250,Hot Drinks,101\n"
	result, err := env.catalog.Import(ctx, strings.NewReader(feed))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(result.Added) != 1 || result.Skipped != 1 {
		t.Fatalf("added %d skipped %d", len(result.Added), result.Skipped)
	}
	p, err := env.store.GetByID(ctx, 900)
	if err != nil {
		t.Fatalf("imported product missing: %v", err)
	}
	if p.Category != "cold_drinks" || p.Stock != catalog.DefaultImportStock {
		t.Fatalf("imported product: %+v", p)
	}
}

func TestImportAllDuplicatesFails(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	feed := "Name,cents,Department,Upc\nEspresso,250,Hot Drinks,101\n"
	_, err := env.catalog.Import(ctx, strings.NewReader(feed))
	if err != catalog.ErrNoNewRows {
		t.Fatalf("expected ErrNoNewRows, got %v", err)
	}
}
