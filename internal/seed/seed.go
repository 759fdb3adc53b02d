// Package seed loads the demo storefront: a small coffee-shop catalog,
// default settings, one customer and a little order history.
package seed

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"mokha/internal/domain"
	"mokha/internal/repository"
	"mokha/internal/stock"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
func i64(v int64) *int64           { return &v }
func boolPtr(v bool) *bool         { return &v }

// Categories is the static reference set.
func Categories() []domain.Category {
	return []domain.Category{
		{Key: "hot_drinks", Name: domain.LocalizedString{EN: "Hot Drinks", AR: "مشروبات ساخنة"}},
		{Key: "cold_drinks", Name: domain.LocalizedString{EN: "Cold Drinks", AR: "مشروبات باردة"}},
		{Key: "bakery", Name: domain.LocalizedString{EN: "Bakery", AR: "مخبوزات"}},
		{Key: "sweets", Name: domain.LocalizedString{EN: "Sweets", AR: "حلويات"}},
		{Key: "sandwiches", Name: domain.LocalizedString{EN: "Sandwiches", AR: "ساندويتشات"}},
	}
}

// Products is the demo catalog.
func Products() []domain.Product {
	return []domain.Product{
		{ID: 101, Name: domain.LocalizedString{EN: "Espresso Coffee", AR: "قهوة اسبريسو"}, Category: "hot_drinks", BasePrice: dec("2.50"), Stock: 100, LowStockThreshold: i64(10), Variants: []domain.Variant{}, ImageURL: "https://picsum.photos/seed/101/400"},
		{ID: 102, Name: domain.LocalizedString{EN: "Cappuccino", AR: "كابتشينو"}, Category: "hot_drinks", BasePrice: dec("3.50"), Stock: 80, Variants: []domain.Variant{
			{ID: "sm", Name: domain.LocalizedString{EN: "Small", AR: "صغير"}, PriceModifier: dec("-0.5"), Stock: 30},
			{ID: "md", Name: domain.LocalizedString{EN: "Medium", AR: "وسط"}, PriceModifier: decimal.Zero, Stock: 50, LowStockThreshold: i64(5)},
			{ID: "lg", Name: domain.LocalizedString{EN: "Large", AR: "كبير"}, PriceModifier: dec("0.75"), Stock: 20},
		}, ImageURL: "https://picsum.photos/seed/102/400"},
		{ID: 103, Name: domain.LocalizedString{EN: "Green Tea", AR: "شاي أخضر"}, Category: "hot_drinks", BasePrice: dec("2.00"), Stock: 120, Variants: []domain.Variant{}, ImageURL: "https://picsum.photos/seed/103/400"},
		{ID: 201, Name: domain.LocalizedString{EN: "Fresh Orange Juice", AR: "عصير برتقال طازج"}, Category: "cold_drinks", BasePrice: dec("4.00"), Stock: 50, Variants: []domain.Variant{}, ImageURL: "https://picsum.photos/seed/201/400"},
		{ID: 202, Name: domain.LocalizedString{EN: "Strawberry Milkshake", AR: "ميلك شيك فراولة"}, Category: "cold_drinks", BasePrice: dec("5.50"), Stock: 40, Variants: []domain.Variant{}, ImageURL: "https://picsum.photos/seed/202/400"},
		{ID: 301, Name: domain.LocalizedString{EN: "Cheese Croissant", AR: "كرواسان بالجبنة"}, Category: "bakery", BasePrice: dec("2.75"), Stock: 60, LowStockThreshold: i64(5), Variants: []domain.Variant{}, ImageURL: "https://picsum.photos/seed/301/400"},
		{ID: 302, Name: domain.LocalizedString{EN: "Chocolate Cake", AR: "كيكة الشوكولاتة"}, Category: "sweets", BasePrice: dec("4.50"), Stock: 30, Variants: []domain.Variant{}, ImageURL: "https://picsum.photos/seed/302/400"},
		{ID: 303, Name: domain.LocalizedString{EN: "Chicken Sandwich", AR: "ساندويتش دجاج"}, Category: "sandwiches", BasePrice: dec("6.00"), Stock: 25, Variants: []domain.Variant{}, ImageURL: "https://picsum.photos/seed/303/400"},
	}
}

// Settings is the default back-office configuration: 15% tax, three
// shipping methods (free shipping unlocked at a 35 subtotal), one point
// earned per dollar and one cent of value per point.
func Settings() domain.AppSettings {
	return domain.AppSettings{
		StoreInfo: domain.StoreInfo{
			Name:     "My Awesome Store",
			Address:  "123 Tech Street, Silicon Valley",
			Currency: "USD",
		},
		TaxRate: dec("0.15"),
		ShippingMethods: []domain.ShippingMethod{
			{ID: domain.ShippingStandard, Label: "شحن قياسي", Cost: dec("5"), Enabled: boolPtr(true)},
			{ID: domain.ShippingFree, Label: "شحن مجاني", Cost: decimal.Zero, Threshold: threshold("35"), Enabled: boolPtr(true)},
			{ID: domain.ShippingCustom, Label: "شحن سريع", Cost: dec("15"), Enabled: boolPtr(false)},
		},
		PaymentSettings: domain.PaymentSettings{
			PayPal: domain.GatewayConfig{Enabled: true, APIKey: "YOUR_PAYPAL_API_KEY"},
			Stripe: domain.GatewayConfig{Enabled: true, APIKey: "pk_test_YOUR_STRIPE_PUBLISHABLE_KEY"},
		},
		PrinterSettings: domain.PrinterSettings{
			AutoPrint:   false,
			PrinterName: "Default Printer",
			Receipt: domain.ReceiptSettings{
				ShowLogo:         true,
				ShowStoreAddress: true,
				ShowBarcode:      true,
				CustomFooterText: "شكرًا لتسوقك معنا!",
			},
		},
		LoyaltySettings: domain.LoyaltySettings{
			PointsPerDollar: dec("1"),
			DollarsPerPoint: dec("0.01"),
		},
	}
}

func threshold(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// Employees is the demo staff roster.
func Employees() []domain.Employee {
	return []domain.Employee{
		{ID: 1, Name: domain.LocalizedString{EN: "Ahmed Mahmoud", AR: "أحمد محمود"}, Role: domain.LocalizedString{EN: "Manager", AR: "مدير"}, Salary: dec("5000"), StartDate: time.Date(2022, 1, 15, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Name: domain.LocalizedString{EN: "Fatima Ali", AR: "فاطمة علي"}, Role: domain.LocalizedString{EN: "Cashier", AR: "كاشير"}, Salary: dec("3200"), StartDate: time.Date(2022, 5, 20, 0, 0, 0, 0, time.UTC)},
		{ID: 3, Name: domain.LocalizedString{EN: "Khalid Saeed", AR: "خالد سعيد"}, Role: domain.LocalizedString{EN: "Barista", AR: "باريستا"}, Salary: dec("3500"), StartDate: time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC)},
	}
}

// Customers holds the demo account. The password is "password".
func Customers() ([]domain.Customer, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return []domain.Customer{{
		ID:           1,
		Name:         "Abdullah Mohammed",
		Email:        "customer@example.com",
		PasswordHash: string(hash),
		ShippingInfo: &domain.ShippingInfo{
			Name:    "عبدالله محمد",
			Address: "123 شارع الملك فهد",
			City:    "الرياض",
			State:   "منطقة الرياض",
			Zip:     "12345",
		},
		LoyaltyPoints: 150,
	}}, nil
}

// Store populates every collection and derives the initial low-stock list.
func Store(
	ctx context.Context,
	products repository.ProductRepository,
	customers repository.CustomerRepository,
	employees repository.EmployeeRepository,
	settings repository.SettingsRepository,
	notifications repository.NotificationRepository,
) error {
	catalog := Products()
	if err := products.ReplaceAll(ctx, catalog); err != nil {
		return err
	}
	if err := notifications.Replace(ctx, stock.Scan(catalog)); err != nil {
		return err
	}
	if err := settings.Update(ctx, Settings()); err != nil {
		return err
	}
	if err := settings.ReplaceCategories(ctx, Categories()); err != nil {
		return err
	}
	demo, err := Customers()
	if err != nil {
		return err
	}
	if err := customers.ReplaceAll(ctx, demo); err != nil {
		return err
	}
	return employees.ReplaceAll(ctx, Employees())
}
