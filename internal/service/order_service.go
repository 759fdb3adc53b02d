package service

import (
	"context"

	"go.uber.org/zap"

	"mokha/internal/domain"
	"mokha/internal/repository"
)

// OrderService reads order history and advances order status. Orders are
// append-only; status is the only field that mutates after creation.
type OrderService struct {
	orders repository.OrderRepository
	log    *zap.Logger
}

func NewOrderService(orders repository.OrderRepository, log *zap.Logger) *OrderService {
	return &OrderService{orders: orders, log: log}
}

// List returns order history, newest first.
func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

// ListForCustomer narrows history to one customer's orders.
func (s *OrderService) ListForCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	all, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0)
	for _, o := range all {
		if o.CustomerID != nil && *o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *OrderService) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.orders.GetByID(ctx, id)
}

// UpdateStatus moves an order along Processing -> Shipped -> Delivered, or
// to Cancelled from any non-terminal state.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if id == "" || !status.Valid() {
		return nil, ErrInvalidInput
	}
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.Status.CanTransition(status) {
		return nil, ErrInvalidState
	}
	if err := s.orders.SetStatus(ctx, id, status); err != nil {
		return nil, err
	}
	o.Status = status
	s.log.Info("order status updated", zap.String("order_id", id), zap.String("status", string(status)))
	return o, nil
}
