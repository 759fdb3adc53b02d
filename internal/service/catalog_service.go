package service

import (
	"context"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"mokha/internal/catalog"
	"mokha/internal/domain"
	"mokha/internal/repository"
	"mokha/internal/stock"
)

// StockUpdate sets an absolute stock level for a product or one of its
// variants (admin bulk edit).
type StockUpdate struct {
	ProductID int64  `json:"productId"`
	VariantID string `json:"variantId,omitempty"`
	NewStock  int64  `json:"newStock"`
}

// Deletion removes a variant, or the whole product when VariantID is empty.
type Deletion struct {
	ProductID int64  `json:"productId"`
	VariantID string `json:"variantId,omitempty"`
}

// CatalogService encapsulates product management. Every mutation rebuilds
// the low-stock notification list from the resulting catalog snapshot.
type CatalogService struct {
	products      repository.ProductRepository
	settings      repository.SettingsRepository
	notifications repository.NotificationRepository
	tx            repository.TxManager
	settler       stock.Settler
	log           *zap.Logger
	now           func() time.Time
}

func NewCatalogService(
	products repository.ProductRepository,
	settings repository.SettingsRepository,
	notifications repository.NotificationRepository,
	tx repository.TxManager,
	settler stock.Settler,
	log *zap.Logger,
) *CatalogService {
	return &CatalogService{
		products:      products,
		settings:      settings,
		notifications: notifications,
		tx:            tx,
		settler:       settler,
		log:           log,
		now:           time.Now,
	}
}

func validProduct(p domain.Product) bool {
	if p.Name.EN == "" || p.Name.AR == "" || p.Category == "" || p.BasePrice.IsNegative() {
		return false
	}
	if p.HasVariants() {
		for _, v := range p.Variants {
			if v.Name.EN == "" || v.Stock < 0 {
				return false
			}
		}
		return true
	}
	return p.Stock >= 0
}

// fillVariantIDs slugs an id out of the English name for variants created
// without one.
func fillVariantIDs(p *domain.Product) {
	for i := range p.Variants {
		if p.Variants[i].ID == "" {
			p.Variants[i].ID = strings.Join(strings.Fields(strings.ToLower(p.Variants[i].Name.EN)), "-")
		}
	}
}

func (s *CatalogService) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if !validProduct(p) {
		return nil, ErrInvalidInput
	}
	fillVariantIDs(&p)
	cp := p
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.products.Create(ctx, &cp); err != nil {
			return err
		}
		return s.rescan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *CatalogService) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.products.GetByID(ctx, id)
}

func (s *CatalogService) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if p.ID <= 0 || !validProduct(p) {
		return nil, ErrInvalidInput
	}
	fillVariantIDs(&p)
	cp := p
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.products.Update(ctx, &cp); err != nil {
			return err
		}
		return s.rescan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.products.Delete(ctx, id); err != nil {
			return err
		}
		return s.rescan(ctx)
	})
}

func (s *CatalogService) List(ctx context.Context, f repository.ProductFilter) ([]domain.Product, error) {
	return s.products.List(ctx, f)
}

func (s *CatalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.settings.Categories(ctx)
}

// ToggleFavorite flips the favorite flag and returns the new state.
func (s *CatalogService) ToggleFavorite(ctx context.Context, id int64) (bool, error) {
	var favorited bool
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		p, err := s.products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		p.Favorited = !p.Favorited
		favorited = p.Favorited
		return s.products.Update(ctx, p)
	})
	return favorited, err
}

// BulkStockUpdate applies absolute stock levels as one settlement batch.
func (s *CatalogService) BulkStockUpdate(ctx context.Context, updates []StockUpdate) error {
	for _, u := range updates {
		if u.NewStock < 0 {
			return ErrInvalidInput
		}
	}
	ops := make([]stock.Op, 0, len(updates))
	for _, u := range updates {
		ops = append(ops, stock.Op{Kind: stock.OpSet, ProductID: u.ProductID, VariantID: u.VariantID, Qty: u.NewStock})
	}
	return s.settle(ctx, ops)
}

// BulkDelete removes variants and products in one batch. Whole-product
// deletions win over variant deletions for the same product.
func (s *CatalogService) BulkDelete(ctx context.Context, deletions []Deletion) error {
	ops := make([]stock.Op, 0, len(deletions))
	for _, d := range deletions {
		ops = append(ops, stock.Op{Kind: stock.OpDelete, ProductID: d.ProductID, VariantID: d.VariantID})
	}
	return s.settle(ctx, ops)
}

func (s *CatalogService) settle(ctx context.Context, ops []stock.Op) error {
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		current, err := s.products.List(ctx, repository.ProductFilter{})
		if err != nil {
			return err
		}
		settled, err := s.settler.Apply(current, ops)
		if err != nil {
			return err
		}
		if err := s.products.ReplaceAll(ctx, settled); err != nil {
			return err
		}
		return s.notifications.Replace(ctx, stock.Scan(settled))
	})
}

// Import parses a CSV feed and appends the new products. Row-level problems
// skip the row; a file that yields no new products at all is reported as
// catalog.ErrNoNewRows so the caller can distinguish the two outcomes.
func (s *CatalogService) Import(ctx context.Context, r io.Reader) (catalog.ImportResult, error) {
	var result catalog.ImportResult
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.products.List(ctx, repository.ProductFilter{})
		if err != nil {
			return err
		}
		ids := make(map[int64]bool, len(existing))
		for _, p := range existing {
			ids[p.ID] = true
		}

		result, err = catalog.Import(r, func(id int64) bool { return ids[id] }, s.log)
		if err != nil {
			return err
		}
		if len(result.Added) == 0 {
			return catalog.ErrNoNewRows
		}
		for i := range result.Added {
			if err := s.products.Create(ctx, &result.Added[i]); err != nil {
				return err
			}
		}
		return s.rescan(ctx)
	})
	if err != nil {
		return result, err
	}
	s.log.Info("catalog imported", zap.Int("added", len(result.Added)), zap.Int("skipped", result.Skipped))
	return result, nil
}

// Export writes the flattened catalog and returns the stamped filename.
func (s *CatalogService) Export(ctx context.Context, w io.Writer) (string, error) {
	products, err := s.products.List(ctx, repository.ProductFilter{})
	if err != nil {
		return "", err
	}
	categories, err := s.settings.Categories(ctx)
	if err != nil {
		return "", err
	}
	if err := catalog.Export(w, products, categories); err != nil {
		return "", err
	}
	return catalog.ExportFilename(s.now()), nil
}

// LowStock lists the current notifications.
func (s *CatalogService) LowStock(ctx context.Context) ([]domain.LowStockNotification, error) {
	return s.notifications.List(ctx)
}

// Rescan recomputes notifications from the current catalog. Exposed for
// startup seeding and backup restore.
func (s *CatalogService) Rescan(ctx context.Context) error {
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		return s.rescan(ctx)
	})
}

func (s *CatalogService) rescan(ctx context.Context) error {
	current, err := s.products.List(ctx, repository.ProductFilter{})
	if err != nil {
		return err
	}
	return s.notifications.Replace(ctx, stock.Scan(current))
}
