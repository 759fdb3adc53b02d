package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"mokha/internal/domain"
	"mokha/internal/repository"
	"mokha/internal/stock"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
func i64(v int64) *int64           { return &v }

type testEnv struct {
	store         *repository.MemoryStore
	orders        *repository.MemoryOrders
	customers     *repository.MemoryCustomers
	employees     *repository.MemoryEmployees
	settings      *repository.MemorySettings
	notifications *repository.MemoryNotifications
	tx            *repository.MemoryTx

	checkout *CheckoutService
	catalog  *CatalogService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{store: repository.NewMemoryStore()}
	env.orders = repository.NewMemoryOrders(env.store)
	env.customers = repository.NewMemoryCustomers(env.store)
	env.employees = repository.NewMemoryEmployees(env.store)
	env.settings = repository.NewMemorySettings(env.store)
	env.notifications = repository.NewMemoryNotifications(env.store)
	env.tx = repository.NewMemoryTx(env.store)

	log := zap.NewNop()
	settler := stock.Settler{}
	env.checkout = NewCheckoutService(env.store, env.orders, env.customers, env.settings, env.notifications, env.tx, settler, log)
	env.catalog = NewCatalogService(env.store, env.settings, env.notifications, env.tx, settler, log)

	ctx := context.Background()
	threshold := dec("35")
	err := env.settings.Update(ctx, domain.AppSettings{
		TaxRate: dec("0.15"),
		ShippingMethods: []domain.ShippingMethod{
			{ID: domain.ShippingStandard, Label: "Standard", Cost: dec("5")},
			{ID: domain.ShippingFree, Label: "Free", Cost: decimal.Zero, Threshold: &threshold},
		},
		LoyaltySettings: domain.LoyaltySettings{
			PointsPerDollar: dec("1"),
			DollarsPerPoint: dec("0.01"),
		},
	})
	if err != nil {
		t.Fatalf("settings: %v", err)
	}

	catalog := []domain.Product{
		{ID: 101, Name: domain.LocalizedString{EN: "Espresso", AR: "اسبريسو"}, Category: "hot_drinks", BasePrice: dec("2.50"), Stock: 100, LowStockThreshold: i64(10)},
		{ID: 102, Name: domain.LocalizedString{EN: "Cappuccino", AR: "كابتشينو"}, Category: "hot_drinks", BasePrice: dec("3.50"), Variants: []domain.Variant{
			{ID: "sm", Name: domain.LocalizedString{EN: "Small", AR: "صغير"}, PriceModifier: dec("-0.5"), Stock: 30},
			{ID: "md", Name: domain.LocalizedString{EN: "Medium", AR: "وسط"}, Stock: 50, LowStockThreshold: i64(5)},
			{ID: "lg", Name: domain.LocalizedString{EN: "Large", AR: "كبير"}, PriceModifier: dec("0.75"), Stock: 20},
		}},
		{ID: 301, Name: domain.LocalizedString{EN: "Croissant", AR: "كرواسان"}, Category: "bakery", BasePrice: dec("2.75"), Stock: 60, LowStockThreshold: i64(5)},
	}
	if err := env.store.ReplaceAll(ctx, catalog); err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return env
}

func (env *testEnv) addCustomer(t *testing.T, points int64) *domain.Customer {
	t.Helper()
	c := domain.Customer{Name: "Test", Email: "customer@example.com", LoyaltyPoints: points}
	if err := env.customers.Create(context.Background(), &c); err != nil {
		t.Fatalf("customer: %v", err)
	}
	return &c
}

var testShipping = domain.ShippingInfo{
	Name:    "Test Buyer",
	Address: "1 Main St",
	City:    "Riyadh",
	State:   "Riyadh",
	Zip:     "12345",
}

func fixedClock(base time.Time) func() time.Time {
	return func() time.Time { return base }
}
