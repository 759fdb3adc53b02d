package repository

import (
	"context"
	"strings"
	"sync"

	"mokha/internal/domain"
)

// MemoryStore is the single in-memory home of all application state plus a
// simple id generator. Catalog order is insertion order, which import,
// export and the low-stock scan rely on.
type MemoryStore struct {
	mu             sync.RWMutex
	nextProductID  int64
	nextCustomerID int64
	nextEmployeeID int64
	products       []domain.Product
	orders         []domain.Order
	customers      []domain.Customer
	employees      []domain.Employee
	categories     []domain.Category
	settings       domain.AppSettings
	notifications  []domain.LowStockNotification
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextProductID:  1,
		nextCustomerID: 1,
		nextEmployeeID: 1,
	}
}

// transaction-aware locking helpers
type txKey struct{}

func isTx(ctx context.Context) bool {
	v := ctx.Value(txKey{})
	if v == nil {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func (m *MemoryStore) rlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RLock()
	}
}
func (m *MemoryStore) runlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RUnlock()
	}
}
func (m *MemoryStore) wlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Lock()
	}
}
func (m *MemoryStore) wunlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Unlock()
	}
}

// Ensure interfaces
var _ ProductRepository = (*MemoryStore)(nil)

func (m *MemoryStore) bumpProductID(id int64) {
	if id >= m.nextProductID {
		m.nextProductID = id + 1
	}
}

// ProductRepository implementation

func (m *MemoryStore) Create(ctx context.Context, p *domain.Product) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if p.ID == 0 {
		p.ID = m.nextProductID
	} else if m.findProduct(p.ID) >= 0 {
		return ErrDuplicate
	}
	m.bumpProductID(p.ID)
	m.products = append(m.products, p.Clone())
	return nil
}

func (m *MemoryStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	i := m.findProduct(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	cp := m.products[i].Clone()
	return &cp, nil
}

func (m *MemoryStore) Update(ctx context.Context, p *domain.Product) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	i := m.findProduct(p.ID)
	if i < 0 {
		return ErrNotFound
	}
	m.products[i] = p.Clone()
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id int64) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	i := m.findProduct(id)
	if i < 0 {
		return ErrNotFound
	}
	m.products = append(m.products[:i], m.products[i+1:]...)
	return nil
}

func (m *MemoryStore) List(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]domain.Product, 0, len(m.products))
	for _, p := range m.products {
		if !containsIgnoreCase(p.Name.EN, f.NameSubstring) && !containsIgnoreCase(p.Name.AR, f.NameSubstring) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.FavoritesOnly && !p.Favorited {
			continue
		}
		out = append(out, p.Clone())
	}
	return out, nil
}

func (m *MemoryStore) ReplaceAll(ctx context.Context, products []domain.Product) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	m.products = domain.CloneCatalog(products)
	for _, p := range m.products {
		m.bumpProductID(p.ID)
	}
	return nil
}

func (m *MemoryStore) findProduct(id int64) int {
	for i := range m.products {
		if m.products[i].ID == id {
			return i
		}
	}
	return -1
}

// OrderRepository implementation on wrapper type

type MemoryOrders struct{ store *MemoryStore }

func NewMemoryOrders(store *MemoryStore) *MemoryOrders { return &MemoryOrders{store: store} }

var _ OrderRepository = (*MemoryOrders)(nil)

// Create prepends: order history is kept newest first.
func (mo *MemoryOrders) Create(ctx context.Context, o *domain.Order) error {
	mo.store.wlock(ctx)
	defer mo.store.wunlock(ctx)
	mo.store.orders = append([]domain.Order{*o}, mo.store.orders...)
	return nil
}

func (mo *MemoryOrders) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	mo.store.rlock(ctx)
	defer mo.store.runlock(ctx)
	for i := range mo.store.orders {
		if mo.store.orders[i].ID == id {
			cp := mo.store.orders[i]
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (mo *MemoryOrders) SetStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	mo.store.wlock(ctx)
	defer mo.store.wunlock(ctx)
	for i := range mo.store.orders {
		if mo.store.orders[i].ID == id {
			mo.store.orders[i].Status = status
			return nil
		}
	}
	return ErrNotFound
}

func (mo *MemoryOrders) List(ctx context.Context) ([]domain.Order, error) {
	mo.store.rlock(ctx)
	defer mo.store.runlock(ctx)
	out := make([]domain.Order, len(mo.store.orders))
	copy(out, mo.store.orders)
	return out, nil
}

func (mo *MemoryOrders) ReplaceAll(ctx context.Context, orders []domain.Order) error {
	mo.store.wlock(ctx)
	defer mo.store.wunlock(ctx)
	mo.store.orders = make([]domain.Order, len(orders))
	copy(mo.store.orders, orders)
	return nil
}

// CustomerRepository implementation on wrapper type

type MemoryCustomers struct{ store *MemoryStore }

func NewMemoryCustomers(store *MemoryStore) *MemoryCustomers { return &MemoryCustomers{store: store} }

var _ CustomerRepository = (*MemoryCustomers)(nil)

func (mc *MemoryCustomers) Create(ctx context.Context, c *domain.Customer) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	for i := range mc.store.customers {
		if strings.EqualFold(mc.store.customers[i].Email, c.Email) {
			return ErrDuplicate
		}
	}
	if c.ID == 0 {
		c.ID = mc.store.nextCustomerID
	}
	if c.ID >= mc.store.nextCustomerID {
		mc.store.nextCustomerID = c.ID + 1
	}
	mc.store.customers = append(mc.store.customers, *c)
	return nil
}

func (mc *MemoryCustomers) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	mc.store.rlock(ctx)
	defer mc.store.runlock(ctx)
	for i := range mc.store.customers {
		if mc.store.customers[i].ID == id {
			cp := mc.store.customers[i]
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (mc *MemoryCustomers) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	mc.store.rlock(ctx)
	defer mc.store.runlock(ctx)
	for i := range mc.store.customers {
		if strings.EqualFold(mc.store.customers[i].Email, email) {
			cp := mc.store.customers[i]
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (mc *MemoryCustomers) Update(ctx context.Context, c *domain.Customer) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	for i := range mc.store.customers {
		if mc.store.customers[i].ID == c.ID {
			mc.store.customers[i] = *c
			return nil
		}
	}
	return ErrNotFound
}

func (mc *MemoryCustomers) List(ctx context.Context) ([]domain.Customer, error) {
	mc.store.rlock(ctx)
	defer mc.store.runlock(ctx)
	out := make([]domain.Customer, len(mc.store.customers))
	copy(out, mc.store.customers)
	return out, nil
}

func (mc *MemoryCustomers) ReplaceAll(ctx context.Context, customers []domain.Customer) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	mc.store.customers = make([]domain.Customer, len(customers))
	copy(mc.store.customers, customers)
	for _, c := range customers {
		if c.ID >= mc.store.nextCustomerID {
			mc.store.nextCustomerID = c.ID + 1
		}
	}
	return nil
}

// EmployeeRepository implementation on wrapper type

type MemoryEmployees struct{ store *MemoryStore }

func NewMemoryEmployees(store *MemoryStore) *MemoryEmployees { return &MemoryEmployees{store: store} }

var _ EmployeeRepository = (*MemoryEmployees)(nil)

func (me *MemoryEmployees) Create(ctx context.Context, e *domain.Employee) error {
	me.store.wlock(ctx)
	defer me.store.wunlock(ctx)
	if e.ID == 0 {
		e.ID = me.store.nextEmployeeID
	}
	if e.ID >= me.store.nextEmployeeID {
		me.store.nextEmployeeID = e.ID + 1
	}
	me.store.employees = append(me.store.employees, *e)
	return nil
}

func (me *MemoryEmployees) Update(ctx context.Context, e *domain.Employee) error {
	me.store.wlock(ctx)
	defer me.store.wunlock(ctx)
	for i := range me.store.employees {
		if me.store.employees[i].ID == e.ID {
			me.store.employees[i] = *e
			return nil
		}
	}
	return ErrNotFound
}

func (me *MemoryEmployees) Delete(ctx context.Context, id int64) error {
	me.store.wlock(ctx)
	defer me.store.wunlock(ctx)
	for i := range me.store.employees {
		if me.store.employees[i].ID == id {
			me.store.employees = append(me.store.employees[:i], me.store.employees[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (me *MemoryEmployees) List(ctx context.Context) ([]domain.Employee, error) {
	me.store.rlock(ctx)
	defer me.store.runlock(ctx)
	out := make([]domain.Employee, len(me.store.employees))
	copy(out, me.store.employees)
	return out, nil
}

func (me *MemoryEmployees) ReplaceAll(ctx context.Context, employees []domain.Employee) error {
	me.store.wlock(ctx)
	defer me.store.wunlock(ctx)
	me.store.employees = make([]domain.Employee, len(employees))
	copy(me.store.employees, employees)
	for _, e := range employees {
		if e.ID >= me.store.nextEmployeeID {
			me.store.nextEmployeeID = e.ID + 1
		}
	}
	return nil
}

// SettingsRepository implementation on wrapper type

type MemorySettings struct{ store *MemoryStore }

func NewMemorySettings(store *MemoryStore) *MemorySettings { return &MemorySettings{store: store} }

var _ SettingsRepository = (*MemorySettings)(nil)

func (ms *MemorySettings) Get(ctx context.Context) (domain.AppSettings, error) {
	ms.store.rlock(ctx)
	defer ms.store.runlock(ctx)
	return ms.store.settings, nil
}

func (ms *MemorySettings) Update(ctx context.Context, s domain.AppSettings) error {
	ms.store.wlock(ctx)
	defer ms.store.wunlock(ctx)
	ms.store.settings = s
	return nil
}

func (ms *MemorySettings) Categories(ctx context.Context) ([]domain.Category, error) {
	ms.store.rlock(ctx)
	defer ms.store.runlock(ctx)
	out := make([]domain.Category, len(ms.store.categories))
	copy(out, ms.store.categories)
	return out, nil
}

func (ms *MemorySettings) ReplaceCategories(ctx context.Context, categories []domain.Category) error {
	ms.store.wlock(ctx)
	defer ms.store.wunlock(ctx)
	ms.store.categories = make([]domain.Category, len(categories))
	copy(ms.store.categories, categories)
	return nil
}

// NotificationRepository implementation on wrapper type

type MemoryNotifications struct{ store *MemoryStore }

func NewMemoryNotifications(store *MemoryStore) *MemoryNotifications {
	return &MemoryNotifications{store: store}
}

var _ NotificationRepository = (*MemoryNotifications)(nil)

func (mn *MemoryNotifications) Replace(ctx context.Context, notifications []domain.LowStockNotification) error {
	mn.store.wlock(ctx)
	defer mn.store.wunlock(ctx)
	mn.store.notifications = make([]domain.LowStockNotification, len(notifications))
	copy(mn.store.notifications, notifications)
	return nil
}

func (mn *MemoryNotifications) List(ctx context.Context) ([]domain.LowStockNotification, error) {
	mn.store.rlock(ctx)
	defer mn.store.runlock(ctx)
	out := make([]domain.LowStockNotification, len(mn.store.notifications))
	copy(out, mn.store.notifications)
	return out, nil
}

// Tx manager using write lock to emulate transaction boundary

type MemoryTx struct{ store *MemoryStore }

func NewMemoryTx(store *MemoryStore) *MemoryTx { return &MemoryTx{store: store} }

var _ TxManager = (*MemoryTx)(nil)

// WithTransaction takes the write lock for the duration of fn and marks the
// context so repositories skip their own locking inside.
func (tx *MemoryTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	ctx = context.WithValue(ctx, txKey{}, true)
	return fn(ctx)
}
