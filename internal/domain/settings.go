package domain

import "github.com/shopspring/decimal"

// StoreInfo is the storefront identity shown on receipts.
type StoreInfo struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Currency string `json:"currency"`
	LogoURL  string `json:"logoUrl"`
}

// ShippingMethod is one configurable delivery option. A nil Enabled means
// enabled; Threshold, when set, is the minimum subtotal that unlocks the
// method.
type ShippingMethod struct {
	ID        string           `json:"id"`
	Label     string           `json:"label"`
	Cost      decimal.Decimal  `json:"cost"`
	Threshold *decimal.Decimal `json:"threshold,omitempty"`
	Enabled   *bool            `json:"enabled,omitempty"`
}

// Known shipping method ids.
const (
	ShippingStandard = "standard"
	ShippingFree     = "free"
	ShippingCustom   = "custom"
)

// IsEnabled treats an unset flag as enabled.
func (m ShippingMethod) IsEnabled() bool {
	return m.Enabled == nil || *m.Enabled
}

// GatewayConfig is a payment gateway toggle. The key never leaves the
// back office; no gateway call is ever made.
type GatewayConfig struct {
	Enabled bool   `json:"enabled"`
	APIKey  string `json:"apiKey"`
}

// PaymentSettings holds the gateway toggles.
type PaymentSettings struct {
	PayPal GatewayConfig `json:"paypal"`
	Stripe GatewayConfig `json:"stripe"`
}

// ReceiptSettings customizes the printed receipt.
type ReceiptSettings struct {
	ShowLogo         bool   `json:"showLogo"`
	ShowStoreAddress bool   `json:"showStoreAddress"`
	ShowBarcode      bool   `json:"showBarcode"`
	CustomFooterText string `json:"customFooterText"`
}

// PrinterSettings holds receipt printing preferences.
type PrinterSettings struct {
	AutoPrint   bool            `json:"autoPrint"`
	PrinterName string          `json:"printerName"`
	Receipt     ReceiptSettings `json:"receipt"`
}

// LoyaltySettings configures point accrual and redemption.
// PointsPerDollar points accrue per dollar of final order total;
// DollarsPerPoint is the cash value of one redeemed point.
type LoyaltySettings struct {
	PointsPerDollar decimal.Decimal `json:"pointsPerDollar"`
	DollarsPerPoint decimal.Decimal `json:"dollarsPerPoint"`
}

// AppSettings is the whole back-office configuration.
type AppSettings struct {
	StoreInfo       StoreInfo        `json:"storeInfo"`
	TaxRate         decimal.Decimal  `json:"taxRate"`
	ShippingMethods []ShippingMethod `json:"shippingMethods"`
	PaymentSettings PaymentSettings  `json:"paymentSettings"`
	PrinterSettings PrinterSettings  `json:"printerSettings"`
	LoyaltySettings LoyaltySettings  `json:"loyaltySettings"`
}
