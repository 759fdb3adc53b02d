package service

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"mokha/internal/repository"
)

// CategoryStat aggregates stock units and inventory value (price x stock,
// per variant where variants exist) for one category.
type CategoryStat struct {
	Key   string          `json:"key"`
	Name  string          `json:"name"`
	Stock int64           `json:"stock"`
	Value decimal.Decimal `json:"value"`
}

// InventoryReport is the back-office reporting payload.
type InventoryReport struct {
	Categories []CategoryStat  `json:"categories"`
	TopByStock []CategoryStat  `json:"topByStock"`
	TopByValue []CategoryStat  `json:"topByValue"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// ReportService derives reporting aggregates from catalog and order
// snapshots.
type ReportService struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	settings repository.SettingsRepository
}

func NewReportService(products repository.ProductRepository, orders repository.OrderRepository, settings repository.SettingsRepository) *ReportService {
	return &ReportService{products: products, orders: orders, settings: settings}
}

const topCategories = 5

func (s *ReportService) Inventory(ctx context.Context) (*InventoryReport, error) {
	products, err := s.products.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	categories, err := s.settings.Categories(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.Key] = c.Name.EN
	}

	index := make(map[string]int)
	stats := make([]CategoryStat, 0)
	for _, p := range products {
		i, ok := index[p.Category]
		if !ok {
			i = len(stats)
			index[p.Category] = i
			name := names[p.Category]
			if name == "" {
				name = p.Category
			}
			stats = append(stats, CategoryStat{Key: p.Category, Name: name, Value: decimal.Zero})
		}
		if p.HasVariants() {
			for _, v := range p.Variants {
				stats[i].Stock += v.Stock
				stats[i].Value = stats[i].Value.Add(p.BasePrice.Add(v.PriceModifier).Mul(decimal.NewFromInt(v.Stock)))
			}
		} else {
			stats[i].Stock += p.Stock
			stats[i].Value = stats[i].Value.Add(p.BasePrice.Mul(decimal.NewFromInt(p.Stock)))
		}
	}

	revenue := decimal.Zero
	for _, o := range orders {
		revenue = revenue.Add(o.Total)
	}

	return &InventoryReport{
		Categories: stats,
		TopByStock: topBy(stats, func(a, b CategoryStat) bool { return a.Stock > b.Stock }),
		TopByValue: topBy(stats, func(a, b CategoryStat) bool { return a.Value.GreaterThan(b.Value) }),
		Revenue:    revenue,
	}, nil
}

func topBy(stats []CategoryStat, more func(a, b CategoryStat) bool) []CategoryStat {
	sorted := make([]CategoryStat, len(stats))
	copy(sorted, stats)
	sort.SliceStable(sorted, func(i, j int) bool { return more(sorted[i], sorted[j]) })
	if len(sorted) > topCategories {
		sorted = sorted[:topCategories]
	}
	return sorted
}
