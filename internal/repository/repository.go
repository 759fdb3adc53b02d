package repository

import (
	"context"
	"errors"
	"strings"

	"mokha/internal/domain"
)

// ErrNotFound is returned when an entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a unique constraint (product id, customer
// email) would be violated.
var ErrDuplicate = errors.New("already exists")

// ProductFilter narrows a catalog listing.
type ProductFilter struct {
	NameSubstring string
	Category      string
	FavoritesOnly bool
}

// ProductRepository owns the product catalog. List and GetByID return
// structural copies; ReplaceAll swaps in a settled catalog snapshot
// wholesale.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f ProductFilter) ([]domain.Product, error)
	ReplaceAll(ctx context.Context, products []domain.Product) error
}

// OrderRepository owns order history, newest first.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	SetStatus(ctx context.Context, id string, status domain.OrderStatus) error
	List(ctx context.Context) ([]domain.Order, error)
	ReplaceAll(ctx context.Context, orders []domain.Order) error
}

// CustomerRepository owns storefront accounts.
type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	List(ctx context.Context) ([]domain.Customer, error)
	ReplaceAll(ctx context.Context, customers []domain.Customer) error
}

// EmployeeRepository owns back-office staff records.
type EmployeeRepository interface {
	Create(ctx context.Context, e *domain.Employee) error
	Update(ctx context.Context, e *domain.Employee) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Employee, error)
	ReplaceAll(ctx context.Context, employees []domain.Employee) error
}

// SettingsRepository owns the single AppSettings document and the static
// category reference set.
type SettingsRepository interface {
	Get(ctx context.Context) (domain.AppSettings, error)
	Update(ctx context.Context, s domain.AppSettings) error
	Categories(ctx context.Context) ([]domain.Category, error)
	ReplaceCategories(ctx context.Context, categories []domain.Category) error
}

// NotificationRepository holds the derived low-stock list, replaced
// wholesale after every catalog mutation.
type NotificationRepository interface {
	Replace(ctx context.Context, notifications []domain.LowStockNotification) error
	List(ctx context.Context) ([]domain.LowStockNotification, error)
}

// TxManager is the transaction abstraction. For in-memory it is a global
// write lock: engine snapshots stay consistent because nothing else can
// observe intermediate state.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// helper: case-insensitive contains
func containsIgnoreCase(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
