package stock

import (
	"fmt"

	"mokha/internal/domain"
)

// Scan rebuilds the low-stock notification list from a catalog snapshot.
// A variant qualifies when its threshold is set and 0 < stock <= threshold;
// products without variants are evaluated under the same rule themselves.
// Zero or negative stock never qualifies: the notification exists to prompt
// reordering before stockout, not to report stockout.
func Scan(catalog []domain.Product) []domain.LowStockNotification {
	notifications := make([]domain.LowStockNotification, 0)
	for _, p := range catalog {
		if p.HasVariants() {
			for _, v := range p.Variants {
				if v.LowStockThreshold == nil || v.Stock <= 0 || v.Stock > *v.LowStockThreshold {
					continue
				}
				name := v.Name
				notifications = append(notifications, domain.LowStockNotification{
					UniqueID:       fmt.Sprintf("variant-%d-%s", p.ID, v.ID),
					ProductID:      p.ID,
					VariantID:      v.ID,
					ProductName:    p.Name,
					VariantName:    &name,
					RemainingStock: v.Stock,
					Threshold:      *v.LowStockThreshold,
				})
			}
			continue
		}
		if p.LowStockThreshold == nil || p.Stock <= 0 || p.Stock > *p.LowStockThreshold {
			continue
		}
		notifications = append(notifications, domain.LowStockNotification{
			UniqueID:       fmt.Sprintf("product-%d", p.ID),
			ProductID:      p.ID,
			ProductName:    p.Name,
			RemainingStock: p.Stock,
			Threshold:      *p.LowStockThreshold,
		})
	}
	return notifications
}
