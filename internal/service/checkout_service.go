package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"mokha/internal/domain"
	"mokha/internal/loyalty"
	"mokha/internal/pricing"
	"mokha/internal/repository"
	"mokha/internal/stock"
)

// CartLine is one requested cart entry, resolved against the live catalog
// so checkout always prices authoritative data, not client-supplied prices.
type CartLine struct {
	ProductID int64  `json:"productId"`
	VariantID string `json:"variantId,omitempty"`
	Quantity  int64  `json:"quantity"`
}

// QuoteResult is a priced candidate cart plus the shipping methods the
// current subtotal unlocks.
type QuoteResult struct {
	pricing.Quote
	AvailableShippingMethods []domain.ShippingMethod `json:"availableShippingMethods"`
}

// CheckoutService runs the whole order pipeline: price the cart, assemble
// the immutable order, settle stock, rescan low-stock notifications and
// update the customer's loyalty balance — all inside one store transaction
// so no intermediate state is ever observable.
type CheckoutService struct {
	products      repository.ProductRepository
	orders        repository.OrderRepository
	customers     repository.CustomerRepository
	settings      repository.SettingsRepository
	notifications repository.NotificationRepository
	tx            repository.TxManager
	settler       stock.Settler
	log           *zap.Logger

	now       func() time.Time
	lastMilli int64
	seq       int64
}

func NewCheckoutService(
	products repository.ProductRepository,
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
	settings repository.SettingsRepository,
	notifications repository.NotificationRepository,
	tx repository.TxManager,
	settler stock.Settler,
	log *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		products:      products,
		orders:        orders,
		customers:     customers,
		settings:      settings,
		notifications: notifications,
		tx:            tx,
		settler:       settler,
		log:           log,
		now:           time.Now,
	}
}

// BuildCart resolves request lines into cart item snapshots. Lines with the
// same composite cart id merge by summing quantities, matching the
// storefront's merge-on-add rule.
func (s *CheckoutService) BuildCart(ctx context.Context, lines []CartLine) ([]domain.CartItem, error) {
	items := make([]domain.CartItem, 0, len(lines))
	index := make(map[string]int, len(lines))

	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, ErrInvalidInput
		}
		product, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		var variant *domain.Variant
		if line.VariantID != "" {
			if variant = product.FindVariant(line.VariantID); variant == nil {
				return nil, repository.ErrNotFound
			}
		} else if product.HasVariants() {
			// a varianted product cannot be bought without picking one
			return nil, ErrInvalidInput
		}

		cartID := domain.CartLineID(line.ProductID, line.VariantID)
		if i, ok := index[cartID]; ok {
			items[i].Quantity += line.Quantity
			continue
		}
		index[cartID] = len(items)
		items = append(items, domain.CartItem{
			Product:  *product,
			CartID:   cartID,
			Quantity: line.Quantity,
			Variant:  variant,
		})
	}
	return items, nil
}

// Quote prices a candidate cart without side effects.
func (s *CheckoutService) Quote(ctx context.Context, lines []CartLine, methodID string, redeem bool, customerID *int64) (*QuoteResult, error) {
	items, err := s.BuildCart(ctx, lines)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	available := pricing.AvailableMethods(settings.ShippingMethods, pricing.Subtotal(items))
	var method *domain.ShippingMethod
	if methodID != "" {
		if method = findMethod(available, methodID); method == nil {
			return nil, ErrMethodUnavailable
		}
	}

	quote := pricing.Compute(items, settings, method, s.redeemIntent(ctx, redeem, customerID))
	return &QuoteResult{Quote: quote, AvailableShippingMethods: available}, nil
}

// PlaceOrder assembles and commits an order. The assembled record is
// immutable: its items are a snapshot of the cart at purchase time and its
// total satisfies total = subtotal + tax + shipping - pointsDiscount
// exactly.
func (s *CheckoutService) PlaceOrder(
	ctx context.Context,
	lines []CartLine,
	shippingInfo domain.ShippingInfo,
	methodID string,
	paymentMethod string,
	redeem bool,
	customerID *int64,
) (*domain.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	if !shippingInfo.Complete() {
		return nil, ErrShippingRequired
	}
	if paymentMethod == "" {
		return nil, ErrInvalidInput
	}

	var order *domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		items, err := s.BuildCart(ctx, lines)
		if err != nil {
			return err
		}
		settings, err := s.settings.Get(ctx)
		if err != nil {
			return err
		}

		available := pricing.AvailableMethods(settings.ShippingMethods, pricing.Subtotal(items))
		method := findMethod(available, methodID)
		if method == nil {
			return ErrMethodUnavailable
		}

		var customer *domain.Customer
		if customerID != nil {
			if customer, err = s.customers.GetByID(ctx, *customerID); err != nil {
				return err
			}
		}
		intent := pricing.RedeemIntent{Requested: redeem && customer != nil}
		if customer != nil {
			intent.Balance = customer.LoyaltyPoints
		}

		quote := pricing.Compute(items, settings, method, intent)
		now := s.now()
		order = &domain.Order{
			ID:             s.nextOrderID(now),
			Date:           now,
			Items:          items,
			Subtotal:       quote.Subtotal,
			Tax:            quote.Tax,
			ShippingCost:   quote.ShippingCost,
			Total:          quote.Total,
			Status:         domain.OrderStatusProcessing,
			ShippingInfo:   shippingInfo,
			PaymentMethod:  paymentMethod,
			CustomerID:     customerID,
			PointsEarned:   loyalty.PointsEarned(quote.Total, settings.LoyaltySettings),
			PointsRedeemed: quote.PointsToRedeem,
		}
		if err := s.orders.Create(ctx, order); err != nil {
			return err
		}

		// settle stock against a catalog snapshot and swap it in whole
		catalogNow, err := s.products.List(ctx, repository.ProductFilter{})
		if err != nil {
			return err
		}
		settled, err := s.settler.Apply(catalogNow, stock.DecrementOps(items))
		if err != nil {
			return err
		}
		if err := s.products.ReplaceAll(ctx, settled); err != nil {
			return err
		}
		if err := s.notifications.Replace(ctx, stock.Scan(settled)); err != nil {
			return err
		}

		if customer != nil {
			customer.LoyaltyPoints = loyalty.NewBalance(customer.LoyaltyPoints, order.PointsRedeemed, order.PointsEarned)
			info := shippingInfo
			customer.ShippingInfo = &info
			if err := s.customers.Update(ctx, customer); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("total", order.Total.String()),
		zap.Int64("points_earned", order.PointsEarned),
		zap.Int64("points_redeemed", order.PointsRedeemed),
	)
	return order, nil
}

func (s *CheckoutService) redeemIntent(ctx context.Context, redeem bool, customerID *int64) pricing.RedeemIntent {
	if !redeem || customerID == nil {
		return pricing.RedeemIntent{}
	}
	customer, err := s.customers.GetByID(ctx, *customerID)
	if err != nil {
		return pricing.RedeemIntent{}
	}
	return pricing.RedeemIntent{Requested: true, Balance: customer.LoyaltyPoints}
}

// nextOrderID derives ids from the clock, with a sequence suffix when two
// orders land in the same millisecond.
func (s *CheckoutService) nextOrderID(now time.Time) string {
	ms := now.UnixMilli()
	if ms == s.lastMilli {
		s.seq++
		return fmt.Sprintf("ORD-%d-%d", ms, s.seq)
	}
	s.lastMilli, s.seq = ms, 0
	return fmt.Sprintf("ORD-%d", ms)
}

func findMethod(methods []domain.ShippingMethod, id string) *domain.ShippingMethod {
	for i := range methods {
		if methods[i].ID == id {
			return &methods[i]
		}
	}
	return nil
}
