package domain

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// LocalizedString carries the two display languages of the storefront.
type LocalizedString struct {
	EN string `json:"en"`
	AR string `json:"ar"`
}

// Variant is a purchasable option of a product (size, flavor) with its own
// stock level and a signed price delta on top of the product's base price.
type Variant struct {
	ID                string          `json:"id"`
	Name              LocalizedString `json:"name"`
	PriceModifier     decimal.Decimal `json:"priceModifier"`
	Stock             int64           `json:"stock"`
	LowStockThreshold *int64          `json:"lowStockThreshold,omitempty"`
}

// Product is a catalog entry. When Variants is non-empty, stock and the
// low-stock threshold are tracked per variant and the product-level fields
// are ignored.
type Product struct {
	ID                int64           `json:"id"`
	Name              LocalizedString `json:"name"`
	Category          string          `json:"category"`
	BasePrice         decimal.Decimal `json:"basePrice"`
	Stock             int64           `json:"stock"`
	LowStockThreshold *int64          `json:"lowStockThreshold,omitempty"`
	Variants          []Variant       `json:"variants"`
	ImageURL          string          `json:"imageUrl"`
	Favorited         bool            `json:"isFavorited"`
}

// HasVariants reports whether stock is tracked per variant.
func (p Product) HasVariants() bool { return len(p.Variants) > 0 }

// FindVariant returns the variant with the given id, or nil.
func (p *Product) FindVariant(id string) *Variant {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i]
		}
	}
	return nil
}

// Clone returns a structural copy sharing no mutable state with the receiver.
func (p Product) Clone() Product {
	cp := p
	if p.LowStockThreshold != nil {
		v := *p.LowStockThreshold
		cp.LowStockThreshold = &v
	}
	if p.Variants != nil {
		cp.Variants = make([]Variant, len(p.Variants))
		for i, vr := range p.Variants {
			cv := vr
			if vr.LowStockThreshold != nil {
				th := *vr.LowStockThreshold
				cv.LowStockThreshold = &th
			}
			cp.Variants[i] = cv
		}
	}
	return cp
}

// CloneCatalog deep-copies a product list.
func CloneCatalog(products []Product) []Product {
	out := make([]Product, len(products))
	for i, p := range products {
		out[i] = p.Clone()
	}
	return out
}

// Category is a static reference entry. Products reference categories by
// key; a dangling key is tolerated and displayed as-is.
type Category struct {
	Key  string          `json:"key"`
	Name LocalizedString `json:"name"`
}

// CartItem is a snapshot of a product at add-to-cart time plus the chosen
// variant and quantity. Cart identity is CartID, not the product id: the
// same product with a different variant is a distinct line.
type CartItem struct {
	Product
	CartID   string   `json:"cartId"`
	Quantity int64    `json:"quantity"`
	Variant  *Variant `json:"variant,omitempty"`
}

// CartLineID builds the composite cart identifier for a product/variant pair.
func CartLineID(productID int64, variantID string) string {
	if variantID == "" {
		return strconv.FormatInt(productID, 10)
	}
	return strconv.FormatInt(productID, 10) + "-" + variantID
}

// UnitPrice is the effective per-unit price of the line.
func (ci CartItem) UnitPrice() decimal.Decimal {
	if ci.Variant != nil {
		return ci.BasePrice.Add(ci.Variant.PriceModifier)
	}
	return ci.BasePrice
}

// ShippingInfo is the delivery address captured at checkout.
type ShippingInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}

// Complete reports whether every address field is filled in.
func (s ShippingInfo) Complete() bool {
	return s.Name != "" && s.Address != "" && s.City != "" && s.State != "" && s.Zip != ""
}

// Order is an immutable record of a completed checkout. Only Status may
// change after creation.
type Order struct {
	ID             string          `json:"id"`
	Date           time.Time       `json:"date"`
	Items          []CartItem      `json:"items"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Tax            decimal.Decimal `json:"tax"`
	ShippingCost   decimal.Decimal `json:"shippingCost"`
	Total          decimal.Decimal `json:"total"`
	Status         OrderStatus     `json:"status"`
	ShippingInfo   ShippingInfo    `json:"shippingInfo"`
	PaymentMethod  string          `json:"paymentMethod"`
	CustomerID     *int64          `json:"customerId,omitempty"`
	PointsEarned   int64           `json:"pointsEarned"`
	PointsRedeemed int64           `json:"pointsRedeemed,omitempty"`
}

// Customer is a storefront account with a loyalty point balance. The balance
// is mutated only through checkout settlement.
type Customer struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	PasswordHash  string        `json:"passwordHash"`
	ShippingInfo  *ShippingInfo `json:"shippingInfo,omitempty"`
	LoyaltyPoints int64         `json:"loyaltyPoints"`
}

// Employee is a back-office staff record.
type Employee struct {
	ID        int64           `json:"id"`
	Name      LocalizedString `json:"name"`
	Role      LocalizedString `json:"role"`
	Salary    decimal.Decimal `json:"salary"`
	StartDate time.Time       `json:"startDate"`
}

// LowStockNotification flags a product or variant sitting at or below its
// reorder threshold while still in stock. Derived state: rebuilt wholesale
// on every catalog mutation, never patched incrementally.
type LowStockNotification struct {
	UniqueID       string           `json:"uniqueId"`
	ProductID      int64            `json:"productId"`
	VariantID      string           `json:"variantId,omitempty"`
	ProductName    LocalizedString  `json:"productName"`
	VariantName    *LocalizedString `json:"variantName,omitempty"`
	RemainingStock int64            `json:"remainingStock"`
	Threshold      int64            `json:"threshold"`
}
